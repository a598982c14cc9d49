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

package opc

import (
	"testing"

	goopc "github.com/kellydunn/go-opc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromWire(t *testing.T) {
	t.Parallel()

	m := goopc.NewMessage(3)
	m.SetLength(6)
	m.SetPixelColor(0, 10, 20, 30)
	m.SetPixelColor(1, 40, 50, 60)

	msg, err := FromWire(m)
	require.NoError(t, err)
	assert.Equal(t, byte(3), msg.Channel)
	assert.Equal(t, SetPixelColors, msg.Command)
	assert.Equal(t, []byte{10, 20, 30, 40, 50, 60}, msg.Data)
	assert.Equal(t, 2, msg.PixelCount())
}

func TestFromWireEmptyPayload(t *testing.T) {
	t.Parallel()

	msg, err := FromWire(goopc.NewMessage(0))
	require.NoError(t, err)
	assert.Equal(t, byte(0), msg.Channel)
	assert.Equal(t, SetPixelColors, msg.Command)
	assert.Empty(t, msg.Data)
}

func TestPixelCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Message{}.PixelCount())
	assert.Equal(t, 2, Message{Data: make([]byte, 6)}.PixelCount())
	// A trailing partial pixel does not count.
	assert.Equal(t, 2, Message{Data: make([]byte, 8)}.PixelCount())
}
