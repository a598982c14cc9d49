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

// Package testing provides shared fixtures for decoding Fadecandy packet
// streams in tests. The layout constants are duplicated from the root
// package deliberately: in-package tests there could not import a helper
// package that imported it back.
package testing

import "encoding/binary"

// Hardware packet layout, mirrored from the driver package.
const (
	PacketSize      = 64
	PixelsPerPacket = 21
	LUTEntriesPer   = 31
	LUTEntries      = 257
)

// PixelAt extracts framebuffer pixel i from a packet stream.
func PixelAt(stream []byte, i int) [3]byte {
	off := (i/PixelsPerPacket)*PacketSize + 1 + (i%PixelsPerPacket)*3
	return [3]byte{stream[off], stream[off+1], stream[off+2]}
}

// LUTEntryAt extracts little-endian LUT entry n (0 to 3*257-1) from a
// packet stream.
func LUTEntryAt(stream []byte, n int) uint16 {
	off := (n/LUTEntriesPer)*PacketSize + 2 + (n%LUTEntriesPer)*2
	return binary.LittleEndian.Uint16(stream[off : off+2])
}

// ChannelLUT extracts the full 257-entry table of one channel (0=R, 1=G,
// 2=B) from a packet stream.
func ChannelLUT(stream []byte, channel int) []uint16 {
	out := make([]uint16, LUTEntries)
	for e := range out {
		out[e] = LUTEntryAt(stream, channel*LUTEntries+e)
	}
	return out
}

// PacketControls returns the control byte of every packet in a stream.
func PacketControls(stream []byte) []byte {
	out := make([]byte, 0, len(stream)/PacketSize)
	for off := 0; off < len(stream); off += PacketSize {
		out = append(out, stream[off])
	}
	return out
}

// RGBPayload builds a SetPixelColors payload repeating one RGB triple.
func RGBPayload(r, g, b byte, count int) []byte {
	out := make([]byte, 0, count*3)
	for i := 0; i < count; i++ {
		out = append(out, r, g, b)
	}
	return out
}
