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
	"encoding/binary"
	"log/slog"

	"github.com/PatrikBrosell/fadecandy-1/opc"
)

// WriteMessage dispatches one decoded OPC message. Unsupported commands are
// ignored; nothing in the dispatch path is fatal.
func (d *Device) WriteMessage(msg opc.Message) {
	switch msg.Command {
	case opc.SetPixelColors:
		d.setPixelColors(msg)
		d.WriteFramebuffer()
	case opc.SystemExclusive:
		d.systemExclusive(msg)
	default:
		d.logger.Debug("unsupported OPC command", slog.Int("command", int(msg.Command)))
	}
}

// systemExclusive sub-dispatches on the 4-byte big-endian identifier at the
// start of the payload. Unrecognized identifiers are ignored quietly so
// future vendor extensions pass through harmlessly.
func (d *Device) systemExclusive(msg opc.Message) {
	if len(msg.Data) < opc.SysExHeaderLen {
		d.logger.Debug("SysEx message too short", slog.Int("length", len(msg.Data)))
		return
	}

	switch binary.BigEndian.Uint32(msg.Data[:opc.SysExHeaderLen]) {
	case opc.SysExSetGlobalColorCorrection:
		d.setGlobalColorCorrection(msg.Data[opc.SysExHeaderLen:])
	case opc.SysExSetFirmwareConfiguration:
		d.setFirmwareConfiguration(msg.Data[opc.SysExHeaderLen:])
	}
}

// setGlobalColorCorrection parses the payload as a JSON color correction
// document and sends the resulting LUT. A payload that is not valid JSON is
// discarded; a valid document with bad fields degrades to defaults.
func (d *Device) setGlobalColorCorrection(payload []byte) {
	params, err := parseCorrectionParams(payload, d.logger)
	if err != nil {
		d.logger.Debug("parse error in color correction JSON", slog.Any("err", err))
		return
	}
	d.WriteColorCorrection(params)
}

// setFirmwareConfiguration copies raw firmware configuration bytes, bounded
// to the config packet's capacity, and sends the packet.
func (d *Device) setFirmwareConfiguration(payload []byte) {
	copy(d.firmwareConfig[1:], payload)
	d.WriteFirmwareConfig()
}
