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

/*
Package fadecandy drives Fadecandy addressable-LED controllers over USB.

The Fadecandy controller accepts fixed-size 64-byte packets over a single
bulk OUT endpoint. Groups of packets form logical messages: the 512-pixel
RGB framebuffer, the 16-bit gamma/whitepoint color lookup table, and a
one-packet firmware configuration block. This package translates decoded
Open Pixel Control messages into those packet groups, applies configurable
pixel-to-channel mapping, and manages the asynchronous transfer lifecycle.

A Device owns its framebuffer, color LUT, and the set of in-flight
transfers. Incoming OPC messages are dispatched with WriteMessage; the
frame pacing policy bounds the number of outstanding frame transfers and
coalesces newer frames under backpressure rather than queueing them, so
latency stays bounded at the cost of dropping intermediate frames.

Transports implement the asynchronous host-to-device channel. The
transport/usb package provides the google/gousb implementation; the
in-package MockTransport supports tests and simulation.

Basic usage:

	transports, err := usb.OpenAll()
	if err != nil {
		log.Fatal(err)
	}
	dev, err := fadecandy.New(transports[0])
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Close()

	dev.SetMapping([]fadecandy.MappingRule{{Channel: 0, Count: fadecandy.NumPixels}})
	dev.WriteMessage(msg)   // decoded OPC message from the network front end
	dev.Flush()             // periodic housekeeping on the owning goroutine
*/
package fadecandy
