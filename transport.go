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

// Transport is the asynchronous host-to-device channel. The transport/usb
// package implements it on top of google/gousb; MockTransport implements it
// in memory for tests.
//
// Submit hands a packet stream to the host stack for asynchronous delivery
// and returns immediately. The transport takes a private snapshot of buf at
// submission time, so the caller may keep mutating the buffer while the
// transfer is in flight. The complete callback may be invoked from any
// goroutine, including after Close; implementations guarantee it is called
// exactly once per successful Submit, whether the transfer finished,
// failed, or was cancelled.
type Transport interface {
	// Submit starts an asynchronous write of buf to the device. A non-nil
	// error means the transfer was never started and complete will not be
	// called.
	Submit(buf []byte, complete func()) (Handle, error)

	// Info returns the identity of the attached device.
	Info() DeviceInfo

	// Close cancels all in-flight transfers and releases the device.
	Close() error
}

// Handle identifies one in-flight transfer for cancellation.
type Handle interface {
	// Cancel requests cancellation. The transfer's complete callback still
	// fires through the normal completion path.
	Cancel()
}

// DeviceInfo identifies an attached Fadecandy controller.
type DeviceInfo struct {
	// Serial is the device serial string from the USB descriptor.
	Serial string
	// Version is the firmware version, major.minor in hex, from bcdDevice.
	Version string
	// Bus and Address locate the device on the USB topology.
	Bus     int
	Address int
}
