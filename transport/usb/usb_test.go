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

package usb

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/gousb"
	"github.com/stretchr/testify/assert"
)

// Write errors reported by the host stack during shutdown or device reset
// are routine; only genuine failures may reach the default log level.
func TestLogWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		logged bool
	}{
		{"context cancelled", context.Canceled, false},
		{"transfer cancelled", gousb.TransferCancelled, false},
		{"endpoint stall", gousb.TransferStall, false},
		{"io error", errors.New("device vanished"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tr := &Transport{logger: slog.New(slog.NewTextHandler(&buf, nil))}
			tr.logWriteError(tt.err)

			if tt.logged {
				assert.Contains(t, buf.String(), "bulk transfer failed")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestContextRefCounting(t *testing.T) {
	t.Parallel()

	// An unowned context is never closed by release, no matter the count.
	ref := &ctxRef{owned: false}
	ref.acquire()
	ref.acquire()
	assert.NoError(t, ref.release())
	assert.NoError(t, ref.release())
	assert.Equal(t, 0, ref.refs)
}
