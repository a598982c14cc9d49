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

// Hardware packet geometry. Every transfer to the controller is a stream of
// fixed 64-byte packets, each with a one-byte control header.
const (
	// PacketSize is the fixed size of one hardware packet, header included.
	PacketSize = 64
	// PacketDataSize is the payload capacity of one packet.
	PacketDataSize = PacketSize - 1

	// NumPixels is the size of the device framebuffer in RGB pixels.
	NumPixels = 512
	// PixelsPerPacket is how many RGB triples fit in one framebuffer packet.
	PixelsPerPacket = 21
	// FramebufferPackets is the packet count of a full framebuffer message.
	FramebufferPackets = 25

	// LUTEntries is the number of 16-bit entries per color channel.
	LUTEntries = 257
	// LUTEntriesPerPacket is how many entries fit in one LUT packet. The
	// first payload byte of each LUT packet is padding, so entries start at
	// an even offset.
	LUTEntriesPerPacket = 31
	// LUTPackets is the packet count of a full color LUT message.
	LUTPackets = 25
)

// Control byte layout: a type in the high bits, a packet sequence index in
// the low five bits, and a flag marking the last packet of a message.
const (
	packetTypeFramebuffer byte = 0x00
	packetTypeLUT         byte = 0x40
	packetTypeConfig      byte = 0x80

	packetFinal byte = 0x20

	packetIndexMask byte = 0x1f
)

// Firmware configuration flags, carried in the first payload byte of the
// config packet.
const (
	// ConfigNoDithering disables temporal dithering.
	ConfigNoDithering byte = 1 << 0
	// ConfigNoInterpolation disables inter-frame interpolation.
	ConfigNoInterpolation byte = 1 << 1
	// ConfigNoActivityLED stops the built-in LED from blinking on activity.
	ConfigNoActivityLED byte = 1 << 2
	// ConfigLEDControl sets the built-in LED state once ConfigNoActivityLED
	// has disabled the activity blinker.
	ConfigLEDControl byte = 1 << 3
)

// PixelOffset returns the byte offset of pixel i within the framebuffer
// packet stream. Pixels are packed 21 to a packet, three bytes each,
// immediately after each packet's control byte.
func PixelOffset(i int) int {
	packet := i / PixelsPerPacket
	return packet*PacketSize + 1 + (i%PixelsPerPacket)*3
}

// LUTOffset returns the byte offset of LUT entry n within the color LUT
// packet stream. Entries are stored little-endian, 31 to a packet, after
// each packet's control byte and one padding byte.
func LUTOffset(n int) int {
	packet := n / LUTEntriesPerPacket
	return packet*PacketSize + 2 + (n%LUTEntriesPerPacket)*2
}

// newFramebuffer allocates a zeroed framebuffer stream with packet headers
// filled in.
func newFramebuffer() []byte {
	buf := make([]byte, FramebufferPackets*PacketSize)
	initPacketHeaders(buf, packetTypeFramebuffer)
	return buf
}

// newColorLUT allocates a zeroed color LUT stream with packet headers
// filled in.
func newColorLUT() []byte {
	buf := make([]byte, LUTPackets*PacketSize)
	initPacketHeaders(buf, packetTypeLUT)
	return buf
}

// newFirmwareConfig allocates the single firmware configuration packet.
func newFirmwareConfig() []byte {
	buf := make([]byte, PacketSize)
	buf[0] = packetTypeConfig
	return buf
}

// initPacketHeaders writes sequence-indexed control bytes over a packet
// stream and marks the last packet final.
func initPacketHeaders(buf []byte, packetType byte) {
	packets := len(buf) / PacketSize
	for i := 0; i < packets; i++ {
		buf[i*PacketSize] = packetType | byte(i)&packetIndexMask
	}
	buf[(packets-1)*PacketSize] |= packetFinal
}

// pixel returns the 3-byte RGB slot of framebuffer pixel i.
func (d *Device) pixel(i int) []byte {
	off := PixelOffset(i)
	return d.framebuffer[off : off+3]
}
