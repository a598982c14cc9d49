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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fctest "github.com/PatrikBrosell/fadecandy-1/internal/testing"
)

func TestFramebufferHeaders(t *testing.T) {
	t.Parallel()

	buf := newFramebuffer()
	require.Len(t, buf, FramebufferPackets*PacketSize)

	controls := fctest.PacketControls(buf)
	require.Len(t, controls, FramebufferPackets)
	for i, control := range controls {
		expected := packetTypeFramebuffer | byte(i)
		if i == FramebufferPackets-1 {
			expected |= packetFinal
		}
		assert.Equal(t, expected, control, "packet %d", i)
	}
}

func TestColorLUTHeaders(t *testing.T) {
	t.Parallel()

	buf := newColorLUT()
	require.Len(t, buf, LUTPackets*PacketSize)

	controls := fctest.PacketControls(buf)
	require.Len(t, controls, LUTPackets)
	for i, control := range controls {
		expected := packetTypeLUT | byte(i)
		if i == LUTPackets-1 {
			expected |= packetFinal
		}
		assert.Equal(t, expected, control, "packet %d", i)
	}
}

func TestFirmwareConfigHeader(t *testing.T) {
	t.Parallel()

	buf := newFirmwareConfig()
	require.Len(t, buf, PacketSize)
	assert.Equal(t, packetTypeConfig, buf[0])
}

func TestPixelOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pixel  int
		offset int
	}{
		{"first pixel", 0, 1},
		{"last pixel of first packet", 20, 61},
		{"first pixel of second packet", 21, 65},
		{"last pixel of second packet", 41, 125},
		{"last framebuffer pixel", 511, 1558},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.offset, PixelOffset(tt.pixel))
		})
	}
}

func TestLUTOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		entry  int
		offset int
	}{
		{"first entry", 0, 2},
		{"last entry of first packet", 30, 62},
		{"first entry of second packet", 31, 66},
		{"last entry", 770, 1590},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.offset, LUTOffset(tt.entry))
		})
	}
}

// The last LUT entry must still land inside the 25-packet stream.
func TestLUTOffsetWithinStream(t *testing.T) {
	t.Parallel()

	last := LUTOffset(3*LUTEntries - 1)
	assert.Less(t, last+1, LUTPackets*PacketSize)
}
