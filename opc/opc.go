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

// Package opc models decoded Open Pixel Control messages.
//
// OPC is a simple length-prefixed protocol for streaming pixel data: each
// message is a 4-byte header {channel, command, length-hi, length-lo}
// followed by a payload of up to 65535 bytes. Connection handling and wire
// framing come from github.com/kellydunn/go-opc; FromWire converts its
// framed messages into the decoded form the driver dispatches on.
// Fadecandy reuses the SystemExclusive command for vendor extensions
// selected by a 4-byte big-endian identifier at the start of the payload.
package opc

// Command is an OPC top-level command code.
type Command byte

const (
	// SetPixelColors carries a flat sequence of 8-bit RGB triples for one
	// channel.
	SetPixelColors Command = 0x00
	// SystemExclusive carries a vendor extension payload.
	SystemExclusive Command = 0xff
)

// Fadecandy SystemExclusive identifiers, big-endian in the first four
// payload bytes: vendor id 0x0001 in the high half, sub-command in the low.
const (
	// SysExSetGlobalColorCorrection replaces the color correction curve.
	// The remainder of the payload is a JSON document.
	SysExSetGlobalColorCorrection uint32 = 0x00010001
	// SysExSetFirmwareConfiguration replaces the raw firmware
	// configuration bytes.
	SysExSetFirmwareConfiguration uint32 = 0x00010002
)

// SysExHeaderLen is the length of the SystemExclusive identifier prefix.
const SysExHeaderLen = 4

// Message is one decoded OPC message.
type Message struct {
	Data    []byte
	Channel byte
	Command Command
}

// PixelCount returns how many complete RGB pixels the payload carries.
func (m Message) PixelCount() int {
	return len(m.Data) / 3
}
