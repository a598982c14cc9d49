// fadecandy-1
// Copyright (c) 2026 The fadecandy-1 Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of fadecandy-1.
//
// fadecandy-1 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// fadecandy-1 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fadecandy-1; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package fadecandy

import (
	"errors"
	"log/slog"
)

// Option is a functional option for configuring a Device.
type Option func(*Device) error

// WithLogger sets the structured logger used for protocol and transfer
// diagnostics. Protocol noise (unsupported commands, malformed input) is
// logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Device) error {
		if logger != nil {
			d.logger = logger
		}
		return nil
	}
}

// WithMaxFramesPending overrides the bound on in-flight frame transfers.
func WithMaxFramesPending(n int) Option {
	return func(d *Device) error {
		if n < 1 {
			return errors.New("max frames pending must be at least 1")
		}
		d.maxFramesPending = n
		return nil
	}
}

// WithConfig applies a configuration document as soon as the device is
// created, sending the firmware config and color LUT immediately.
func WithConfig(config *DeviceConfig) Option {
	return func(d *Device) error {
		if config == nil {
			return errors.New("config cannot be nil")
		}
		d.Configure(config)
		return nil
	}
}
