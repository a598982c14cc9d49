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
	"errors"
	"log/slog"
	"sync/atomic"
)

// MaxFramesPending is the default bound on simultaneously in-flight frame
// transfers. With the framebuffer holding the latest pixel data, anything
// beyond a small pipeline only adds latency.
const MaxFramesPending = 2

type transferKind int

const (
	transferOther transferKind = iota
	transferFrame
)

// transfer is one in-flight host-to-device write. It is owned by the
// device's pending set from submission until Flush observes completion.
type transfer struct {
	handle   Handle
	kind     transferKind
	finished atomic.Bool
}

// complete marks the transfer finished. It may run on any goroutine, so it
// must not touch device state; Flush does the accounting.
func (t *transfer) complete() {
	t.finished.Store(true)
}

// submit hands a packet stream to the transport. On submission failure the
// transfer is dropped immediately; such failures are transient pipe or
// hardware errors and are not fatal to the driver.
func (d *Device) submit(buf []byte, kind transferKind) bool {
	t := &transfer{kind: kind}

	handle, err := d.transport.Submit(buf, t.complete)
	if err != nil {
		if !errors.Is(err, ErrStall) {
			d.logger.Warn("error submitting USB transfer", slog.Any("err", err))
		}
		return false
	}

	t.handle = handle
	d.pending[t] = struct{}{}
	return true
}

// Flush reaps finished transfers and, if a frame was held back for lack of
// capacity, submits the current framebuffer contents. It must be called
// periodically from the owning goroutine; it is the only place transfers
// leave the pending set.
func (d *Device) Flush() {
	for t := range d.pending {
		if !t.finished.Load() {
			continue
		}
		if t.kind == transferFrame {
			d.framesPending--
		}
		delete(d.pending, t)
	}

	if d.frameWaiting && d.framesPending < d.maxFramesPending {
		d.WriteFramebuffer()
	}
}

// Pending returns the number of outstanding transfers.
func (d *Device) Pending() int {
	return len(d.pending)
}

// WriteFramebuffer asynchronously writes the current framebuffer. If too
// many frames are already in flight the submission is deferred; the next
// Flush with free capacity sends whatever the framebuffer holds then, so
// intermediate frames are superseded rather than queued.
func (d *Device) WriteFramebuffer() {
	if d.framesPending >= d.maxFramesPending {
		d.frameWaiting = true
		return
	}

	if d.submit(d.framebuffer, transferFrame) {
		d.frameWaiting = false
		d.framesPending++
	}
}

// WriteFirmwareConfig asynchronously writes the firmware configuration
// packet. The whole fixed-size packet is always sent.
func (d *Device) WriteFirmwareConfig() {
	d.submit(d.firmwareConfig, transferOther)
}
