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
)

// DeviceConfig is one device entry from a server configuration document.
// Raw JSON fields keep parsing lenient: a malformed field is logged and
// falls back to its default instead of rejecting the whole document.
type DeviceConfig struct {
	// Type selects the device driver; this driver answers to "fadecandy".
	Type string `json:"type"`
	// Serial restricts the entry to one device. Empty matches any.
	Serial string `json:"serial"`
	// Map is the ordered list of mapping instructions, each
	// [channel, source offset, dest offset, count].
	Map []json.RawMessage `json:"map"`
	// LED controls the activity LED: true always on, false always off,
	// null firmware default.
	LED json.RawMessage `json:"led"`
	// Color is an optional color correction object (gamma, whitepoint,
	// linearSlope, linearCutoff). Null loads the identity curve.
	Color json.RawMessage `json:"color"`
}

// MatchConfiguration reports whether config applies to this device and, if
// it does, configures the device from it: mapping rules, firmware flags,
// and the color correction curve.
func (d *Device) MatchConfiguration(config *DeviceConfig) bool {
	if config == nil || config.Type != "fadecandy" {
		return false
	}
	if config.Serial != "" && config.Serial != d.info.Serial {
		return false
	}

	d.Configure(config)
	return true
}

// Configure applies a configuration document to the device. Settings sent
// here are defaults; they can be overridden over OPC later on.
func (d *Device) Configure(config *DeviceConfig) {
	rules := make([]MappingRule, 0, len(config.Map))
	for _, raw := range config.Map {
		rule, err := parseMappingRule(raw)
		if err != nil {
			d.logger.Warn("unsupported mapping instruction",
				slog.String("instruction", string(raw)), slog.Any("err", err))
			continue
		}
		rules = append(rules, rule)
	}
	d.rules = rules

	d.firmwareConfig[1] = ledFlags(config.LED, d.logger)
	d.WriteFirmwareConfig()

	params, err := parseCorrectionParams(config.Color, d.logger)
	if err != nil {
		d.logger.Warn("invalid color correction document", slog.Any("err", err))
	}
	d.WriteColorCorrection(params)
}

// ledFlags maps the led tri-state onto firmware flags: null keeps the
// activity blinker, true and false take manual control.
func ledFlags(raw json.RawMessage, logger *slog.Logger) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}

	// Any non-null value takes manual control; an unrecognized one is
	// logged and leaves the LED off.
	var on bool
	if err := json.Unmarshal(raw, &on); err != nil {
		logger.Warn("LED configuration must be true (always on), false (always off), or null (default)")
		return ConfigNoActivityLED
	}

	flags := ConfigNoActivityLED
	if on {
		flags |= ConfigLEDControl
	}
	return flags
}
