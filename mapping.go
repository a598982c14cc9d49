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
	"errors"

	"github.com/PatrikBrosell/fadecandy-1/opc"
)

// MappingRule routes a pixel range from an OPC channel into a framebuffer
// region. In configuration documents it appears as the array
// [channel, source offset, dest offset, count].
type MappingRule struct {
	// Channel is the OPC channel the rule listens on.
	Channel byte
	// Source is the first pixel taken from the message.
	Source int
	// Dest is the first framebuffer pixel written.
	Dest int
	// Count is the number of pixels to copy before clamping.
	Count int
}

// parseMappingRule decodes one JSON mapping instruction. Only the
// four-element unsigned array form is recognized.
func parseMappingRule(raw json.RawMessage) (MappingRule, error) {
	var fields []int64
	if err := json.Unmarshal(raw, &fields); err != nil {
		return MappingRule{}, errors.New("mapping instruction must be an array")
	}
	if len(fields) != 4 {
		return MappingRule{}, errors.New("mapping instruction must have 4 elements")
	}
	for _, f := range fields {
		if f < 0 {
			return MappingRule{}, errors.New("mapping instruction fields must be unsigned")
		}
	}
	if fields[0] > 0xff {
		return MappingRule{}, errors.New("mapping instruction channel out of range")
	}

	return MappingRule{
		Channel: byte(fields[0]),
		Source:  int(fields[1]),
		Dest:    int(fields[2]),
		Count:   int(fields[3]),
	}, nil
}

// Channels returns the distinct OPC channels the device's mapping rules
// listen on, in first-seen order.
func (d *Device) Channels() []byte {
	seen := make(map[byte]bool, len(d.rules))
	channels := make([]byte, 0, len(d.rules))
	for _, rule := range d.rules {
		if !seen[rule.Channel] {
			seen[rule.Channel] = true
			channels = append(channels, rule.Channel)
		}
	}
	return channels
}

// setPixelColors runs every mapping rule against an incoming pixel message,
// storing the relevant portions in the framebuffer.
func (d *Device) setPixelColors(msg opc.Message) {
	for _, rule := range d.rules {
		d.mapPixelColors(rule, msg)
	}
}

// mapPixelColors copies the pixel range a rule selects from msg into the
// framebuffer. All arithmetic is clamped, so out-of-range rules degrade to
// copying fewer pixels or none rather than reading or writing out of
// bounds.
func (d *Device) mapPixelColors(rule MappingRule, msg opc.Message) {
	if rule.Channel != msg.Channel {
		return
	}

	available := msg.PixelCount()
	source := min(rule.Source, available)
	dest := min(rule.Dest, NumPixels)
	count := min(rule.Count, available-source, NumPixels-dest)

	for i := 0; i < count; i++ {
		in := msg.Data[(source+i)*3:]
		copy(d.pixel(dest+i), in[:3])
	}
}
