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

import "errors"

// Driver errors
var (
	// ErrNoDevice indicates no Fadecandy controller was found.
	ErrNoDevice = errors.New("no fadecandy device found")
	// ErrStall indicates the endpoint stalled during submission. Stalls are
	// expected noise from a resetting controller and are not logged.
	ErrStall = errors.New("endpoint stall")
	// ErrTransportClosed indicates a submission after the transport closed.
	ErrTransportClosed = errors.New("transport closed")
)

// TransportError wraps a failure from the underlying host USB stack.
type TransportError struct {
	Err error
	Op  string
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
