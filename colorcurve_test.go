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

func TestLUTIdentity(t *testing.T) {
	t.Parallel()

	params := DefaultCorrectionParams()
	for e := 0; e < LUTEntries; e++ {
		want := e * 256
		if want > 0xffff {
			want = 0xffff
		}
		require.Equal(t, uint16(want), params.lutValue(0, e), "entry %d", e)
	}
}

func TestLUTMonotonic(t *testing.T) {
	t.Parallel()

	params := CorrectionParams{
		Gamma:        2.2,
		Whitepoint:   [3]float64{1.0, 0.9, 0.8},
		LinearSlope:  1.0,
		LinearCutoff: 1.0 / 256,
	}

	for channel := 0; channel < 3; channel++ {
		prev := params.lutValue(channel, 0)
		for e := 1; e < LUTEntries; e++ {
			value := params.lutValue(channel, e)
			require.GreaterOrEqual(t, value, prev, "channel %d entry %d", channel, e)
			prev = value
		}
	}
}

// The linear and nonlinear sections must join without a visible step: with
// moderate parameters no adjacent entries may differ by more than a few
// 8-bit levels.
func TestLUTContinuityAtCutoff(t *testing.T) {
	t.Parallel()

	params := CorrectionParams{
		Gamma:        2.2,
		Whitepoint:   [3]float64{1.0, 1.0, 1.0},
		LinearSlope:  1.0,
		LinearCutoff: 0.1,
	}

	prev := params.lutValue(0, 0)
	for e := 1; e < LUTEntries; e++ {
		value := params.lutValue(0, e)
		require.LessOrEqual(t, int(value)-int(prev), 3*256, "entry %d", e)
		prev = value
	}
}

func TestLUTWhitepointScaling(t *testing.T) {
	t.Parallel()

	params := DefaultCorrectionParams()
	params.Whitepoint = [3]float64{2.0, 0.5, 1.0}

	// Channel 0 saturates halfway up; channel 1 tops out at half scale.
	assert.Equal(t, uint16(0xffff), params.lutValue(0, 200))
	assert.Equal(t, uint16(256*256/2), params.lutValue(1, 256))
	half := params.lutValue(1, 128)
	assert.InDelta(t, 128*256/2, int(half), 1)
}

func TestWriteColorCorrection(t *testing.T) {
	t.Parallel()

	dev, mock := newTestDevice(t)
	dev.WriteColorCorrection(DefaultCorrectionParams())

	stream := mock.LastSubmission()
	require.Len(t, stream, LUTPackets*PacketSize)

	controls := fctest.PacketControls(stream)
	assert.Equal(t, byte(0x40), controls[0])
	assert.Equal(t, byte(0x40|0x20|24), controls[len(controls)-1])

	for channel := 0; channel < 3; channel++ {
		lut := fctest.ChannelLUT(stream, channel)
		require.Len(t, lut, LUTEntries)
		assert.Equal(t, uint16(0), lut[0])
		assert.Equal(t, uint16(256), lut[1])
		assert.Equal(t, uint16(0xffff), lut[LUTEntries-1])
	}
}

func TestParseCorrectionParams(t *testing.T) {
	t.Parallel()

	defaults := DefaultCorrectionParams()

	tests := []struct {
		name    string
		data    string
		want    CorrectionParams
		wantErr bool
	}{
		{
			name: "empty document",
			data: "",
			want: defaults,
		},
		{
			name: "null document",
			data: "null",
			want: defaults,
		},
		{
			name: "full document",
			data: `{"gamma": 2.5, "whitepoint": [1.0, 0.9, 0.8], "linearSlope": 1.2, "linearCutoff": 0.05}`,
			want: CorrectionParams{
				Gamma:        2.5,
				Whitepoint:   [3]float64{1.0, 0.9, 0.8},
				LinearSlope:  1.2,
				LinearCutoff: 0.05,
			},
		},
		{
			name: "partial document keeps other defaults",
			data: `{"gamma": 2.2}`,
			want: CorrectionParams{
				Gamma:        2.2,
				Whitepoint:   [3]float64{1.0, 1.0, 1.0},
				LinearSlope:  1.0,
				LinearCutoff: 0.0,
			},
		},
		{
			name:    "invalid JSON",
			data:    `{"gamma": 2.5`,
			wantErr: true,
		},
		{
			name: "valid JSON of wrong shape",
			data: `[1, 2, 3]`,
			want: defaults,
		},
		{
			name: "malformed field falls back alone",
			data: `{"gamma": "bright", "linearSlope": 1.5}`,
			want: CorrectionParams{
				Gamma:        1.0,
				Whitepoint:   [3]float64{1.0, 1.0, 1.0},
				LinearSlope:  1.5,
				LinearCutoff: 0.0,
			},
		},
		{
			name: "whitepoint of wrong length ignored",
			data: `{"whitepoint": [1.0, 0.5]}`,
			want: defaults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params, err := parseCorrectionParams([]byte(tt.data), discardLogger())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, params)
		})
	}
}
