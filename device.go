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
	"fmt"
	"log/slog"
)

// Device represents one attached Fadecandy controller.
//
// Thread Safety: Device is NOT thread-safe. All methods must be called from
// a single owning goroutine. The only concurrent interaction permitted is
// the transport's completion callback, which is restricted to an atomic
// flag write; every consequential state change happens in Flush on the
// owning goroutine.
type Device struct {
	transport Transport
	logger    *slog.Logger
	info      DeviceInfo

	rules []MappingRule

	framebuffer    []byte
	colorLUT       []byte
	firmwareConfig []byte

	pending          map[*transfer]struct{}
	framesPending    int
	frameWaiting     bool
	maxFramesPending int
}

// New creates a Device on top of an open transport. The device starts with
// no mapping rules; configure it with MatchConfiguration, Configure, or
// SetMapping before it will react to pixel data.
func New(transport Transport, opts ...Option) (*Device, error) {
	if transport == nil {
		return nil, errors.New("transport cannot be nil")
	}

	d := &Device{
		transport:        transport,
		logger:           slog.Default(),
		info:             transport.Info(),
		framebuffer:      newFramebuffer(),
		colorLUT:         newColorLUT(),
		firmwareConfig:   newFirmwareConfig(),
		pending:          make(map[*transfer]struct{}),
		maxFramesPending: MaxFramesPending,
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Transport returns the underlying transport.
func (d *Device) Transport() Transport {
	return d.transport
}

// Info returns the identity of the attached controller.
func (d *Device) Info() DeviceInfo {
	return d.info
}

// Name returns a human-readable device name for diagnostics.
func (d *Device) Name() string {
	if d.info.Serial == "" {
		return "Fadecandy"
	}
	return fmt.Sprintf("Fadecandy (Serial# %s, Version %s)", d.info.Serial, d.info.Version)
}

// SetMapping replaces the device's mapping rules. Rules are applied in
// order on every incoming pixel message; later rules win where regions
// overlap.
func (d *Device) SetMapping(rules []MappingRule) {
	d.rules = rules
}

// Close cancels every in-flight transfer and closes the transport. It does
// not wait for cancellation completions; they drain through the normal
// completion path.
func (d *Device) Close() error {
	for t := range d.pending {
		t.handle.Cancel()
	}
	if err := d.transport.Close(); err != nil {
		return fmt.Errorf("closing transport: %w", err)
	}
	return nil
}
