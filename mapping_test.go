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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fctest "github.com/PatrikBrosell/fadecandy-1/internal/testing"
	"github.com/PatrikBrosell/fadecandy-1/opc"
)

func TestMapPixelColors(t *testing.T) {
	t.Parallel()

	red := fctest.RGBPayload(0xff, 0, 0, 4)

	tests := []struct {
		name    string
		rule    MappingRule
		msg     opc.Message
		written []int // framebuffer pixels expected to hold red
	}{
		{
			name:    "direct copy",
			rule:    MappingRule{Channel: 0, Source: 0, Dest: 0, Count: 4},
			msg:     opc.Message{Channel: 0, Data: red},
			written: []int{0, 1, 2, 3},
		},
		{
			name:    "count clamped to message size",
			rule:    MappingRule{Channel: 0, Source: 0, Dest: 0, Count: 1000},
			msg:     opc.Message{Channel: 0, Data: red},
			written: []int{0, 1, 2, 3},
		},
		{
			name:    "source past end of message",
			rule:    MappingRule{Channel: 0, Source: 10, Dest: 0, Count: 4},
			msg:     opc.Message{Channel: 0, Data: red},
			written: nil,
		},
		{
			name:    "dest past end of framebuffer",
			rule:    MappingRule{Channel: 0, Source: 0, Dest: NumPixels + 50, Count: 4},
			msg:     opc.Message{Channel: 0, Data: red},
			written: nil,
		},
		{
			name:    "dest clamped at framebuffer edge",
			rule:    MappingRule{Channel: 0, Source: 0, Dest: NumPixels - 2, Count: 4},
			msg:     opc.Message{Channel: 0, Data: red},
			written: []int{NumPixels - 2, NumPixels - 1},
		},
		{
			name:    "source offset into message",
			rule:    MappingRule{Channel: 0, Source: 2, Dest: 0, Count: 4},
			msg:     opc.Message{Channel: 0, Data: red},
			written: []int{0, 1},
		},
		{
			name:    "channel mismatch",
			rule:    MappingRule{Channel: 1, Source: 0, Dest: 0, Count: 4},
			msg:     opc.Message{Channel: 0, Data: red},
			written: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dev, _ := newTestDevice(t)
			dev.SetMapping([]MappingRule{tt.rule})
			dev.setPixelColors(tt.msg)

			isWritten := make(map[int]bool, len(tt.written))
			for _, i := range tt.written {
				isWritten[i] = true
			}
			for i := 0; i < NumPixels; i++ {
				expected := [3]byte{}
				if isWritten[i] {
					expected = [3]byte{0xff, 0, 0}
				}
				require.Equal(t, expected, fctest.PixelAt(dev.framebuffer, i), "pixel %d", i)
			}
		})
	}
}

func TestMappingRuleOrder(t *testing.T) {
	t.Parallel()

	dev, _ := newTestDevice(t)
	dev.SetMapping([]MappingRule{
		{Channel: 0, Source: 0, Dest: 0, Count: 2},
		{Channel: 0, Source: 2, Dest: 1, Count: 1},
	})

	data := append(fctest.RGBPayload(1, 1, 1, 2), fctest.RGBPayload(9, 9, 9, 1)...)
	dev.setPixelColors(opc.Message{Channel: 0, Data: data})

	// The second rule overwrote pixel 1; later rules win.
	assert.Equal(t, [3]byte{1, 1, 1}, fctest.PixelAt(dev.framebuffer, 0))
	assert.Equal(t, [3]byte{9, 9, 9}, fctest.PixelAt(dev.framebuffer, 1))
}

func TestChannels(t *testing.T) {
	t.Parallel()

	dev, _ := newTestDevice(t)
	assert.Empty(t, dev.Channels())

	dev.SetMapping([]MappingRule{
		{Channel: 0, Count: 64},
		{Channel: 2, Count: 64},
		{Channel: 0, Source: 64, Dest: 64, Count: 64},
		{Channel: 1, Count: 64},
	})
	assert.Equal(t, []byte{0, 2, 1}, dev.Channels())
}

func TestParseMappingRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    MappingRule
		wantErr bool
	}{
		{
			name: "valid",
			raw:  "[1, 2, 3, 4]",
			want: MappingRule{Channel: 1, Source: 2, Dest: 3, Count: 4},
		},
		{
			name:    "not an array",
			raw:     `{"channel": 1}`,
			wantErr: true,
		},
		{
			name:    "wrong length",
			raw:     "[1, 2, 3]",
			wantErr: true,
		},
		{
			name:    "negative field",
			raw:     "[0, -1, 0, 4]",
			wantErr: true,
		},
		{
			name:    "channel out of range",
			raw:     "[256, 0, 0, 4]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, err := parseMappingRule(json.RawMessage(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rule)
		})
	}
}
