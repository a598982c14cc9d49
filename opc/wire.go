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

package opc

import (
	"errors"

	goopc "github.com/kellydunn/go-opc"
)

// HeaderLen is the length of the OPC wire header.
const HeaderLen = 4

// ErrShortMessage indicates a framed message shorter than its own header.
var ErrShortMessage = errors.New("opc: message shorter than header")

// FromWire converts a framed go-opc message into the decoded form the
// driver dispatches on. The library owns connection handling and frame
// assembly; this is the seam where its messages enter the driver.
func FromWire(m *goopc.Message) (Message, error) {
	raw := m.ByteArray()
	if len(raw) < HeaderLen {
		return Message{}, ErrShortMessage
	}
	return Message{
		Channel: raw[0],
		Command: Command(raw[1]),
		Data:    raw[HeaderLen:],
	}, nil
}
