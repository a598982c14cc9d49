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
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
)

// CorrectionParams describes the gamma/whitepoint color correction curve.
//
// The curve has a linear section near zero and a nonlinear section above
// the cutoff, joined without discontinuity. The linear section avoids very
// low output values that flicker visibly under dithering when the LEDs are
// viewed directly; it is disabled by default (LinearCutoff zero). A good
// starting point for enabling it is 1/256, the lowest 8-bit PWM level.
type CorrectionParams struct {
	// Gamma is the power applied to the nonlinear portion of the curve.
	Gamma float64
	// Whitepoint scales each RGB channel; it doubles as global brightness.
	Whitepoint [3]float64
	// LinearSlope is output/input in the linear section near zero.
	LinearSlope float64
	// LinearCutoff is the output level where the linear section ends.
	LinearCutoff float64
}

// DefaultCorrectionParams returns the identity curve.
func DefaultCorrectionParams() CorrectionParams {
	return CorrectionParams{
		Gamma:        1.0,
		Whitepoint:   [3]float64{1.0, 1.0, 1.0},
		LinearSlope:  1.0,
		LinearCutoff: 0.0,
	}
}

// lutValue computes the corrected 16-bit output for one LUT entry of one
// channel.
func (p *CorrectionParams) lutValue(channel, entry int) uint16 {
	// Normalized input for this entry, 0 to slightly above 1 (the last
	// entry can't quite be reached). Whitepoint scaling comes first.
	input := float64(entry<<8) / 65535.0 * p.Whitepoint[channel]

	var output float64
	if input*p.LinearSlope <= p.LinearCutoff {
		output = input * p.LinearSlope
	} else {
		// The nonlinear section starts right where the linear section
		// leaves off.
		nonlinearInput := input - p.LinearSlope*p.LinearCutoff
		scale := 1.0 - p.LinearCutoff
		output = p.LinearCutoff + math.Pow(nonlinearInput/scale, p.Gamma)*scale
	}

	// Round and clamp in 64 bits so extreme parameters can't overflow.
	value := int64(output*0xffff + 0.5)
	if value < 0 {
		value = 0
	}
	if value > 0xffff {
		value = 0xffff
	}
	return uint16(value)
}

// WriteColorCorrection regenerates the color LUT from params and sends it.
// The table is rebuilt wholesale; there is no incremental update.
func (d *Device) WriteColorCorrection(params CorrectionParams) {
	entry := 0
	for channel := 0; channel < 3; channel++ {
		for e := 0; e < LUTEntries; e++ {
			value := params.lutValue(channel, e)
			off := LUTOffset(entry)
			d.colorLUT[off] = byte(value)
			d.colorLUT[off+1] = byte(value >> 8)
			entry++
		}
	}

	d.submit(d.colorLUT, transferOther)
}

// correctionDocument mirrors the JSON color correction object with raw
// fields, so one malformed field falls back to its default without
// poisoning the rest.
type correctionDocument struct {
	Gamma        json.RawMessage `json:"gamma"`
	Whitepoint   json.RawMessage `json:"whitepoint"`
	LinearSlope  json.RawMessage `json:"linearSlope"`
	LinearCutoff json.RawMessage `json:"linearCutoff"`
}

// parseCorrectionParams interprets a JSON color correction document. A nil
// or null document yields the identity defaults. The returned error is
// non-nil only for input that is not valid JSON at all; a valid document of
// the wrong shape or with malformed fields is logged and degrades to
// defaults, matching how configuration files are handled.
func parseCorrectionParams(data []byte, logger *slog.Logger) (CorrectionParams, error) {
	params := DefaultCorrectionParams()

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return params, nil
	}
	if !json.Valid(data) {
		var check any
		return params, json.Unmarshal(data, &check)
	}

	var doc correctionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("color correction value must be a JSON object")
		return params, nil
	}

	numberField(doc.Gamma, "gamma", &params.Gamma, logger)
	numberField(doc.LinearSlope, "linearSlope", &params.LinearSlope, logger)
	numberField(doc.LinearCutoff, "linearCutoff", &params.LinearCutoff, logger)

	if doc.Whitepoint != nil && !bytes.Equal(doc.Whitepoint, []byte("null")) {
		var wp []float64
		if err := json.Unmarshal(doc.Whitepoint, &wp); err != nil || len(wp) != 3 {
			logger.Warn("whitepoint value must be a list of 3 numbers")
		} else {
			copy(params.Whitepoint[:], wp)
		}
	}

	return params, nil
}

// numberField applies one optional numeric JSON field, keeping the default
// and logging when the field is present but not a number.
func numberField(raw json.RawMessage, name string, dst *float64, logger *slog.Logger) {
	if raw == nil || bytes.Equal(raw, []byte("null")) {
		return
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("color correction field must be a number", slog.String("field", name))
		return
	}
	*dst = v
}
