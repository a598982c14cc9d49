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

import "sync"

// MockTransport is an in-memory Transport for tests and simulation. It
// records a snapshot of every submitted buffer and lets the caller decide
// when each transfer completes, so the asynchronous mark/sweep lifecycle
// can be driven deterministically.
type MockTransport struct {
	mu          sync.Mutex
	submissions [][]byte
	inFlight    []*mockHandle
	submitErr   error
	deviceInfo  DeviceInfo
	cancelled   int
	closed      bool
}

// mockHandle is one mock in-flight transfer.
type mockHandle struct {
	transport *MockTransport
	complete  func()
	completed bool
}

// Cancel marks the transfer cancelled and routes it through the normal
// completion path, like a host stack reporting a cancelled transfer.
func (h *mockHandle) Cancel() {
	h.transport.mu.Lock()
	already := h.completed
	h.completed = true
	if !already {
		h.transport.cancelled++
		h.transport.removeInFlight(h)
	}
	h.transport.mu.Unlock()

	if !already {
		h.complete()
	}
}

// NewMockTransport creates a mock transport with a fixed test identity.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		deviceInfo: DeviceInfo{Serial: "TESTSERIAL001", Version: "1.07"},
	}
}

// Submit records a snapshot of buf and keeps the completion callback until
// CompleteOldest, CompleteAll, or Cancel fires it.
func (m *MockTransport) Submit(buf []byte, complete func()) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrTransportClosed
	}
	if m.submitErr != nil {
		return nil, m.submitErr
	}

	snapshot := make([]byte, len(buf))
	copy(snapshot, buf)
	m.submissions = append(m.submissions, snapshot)

	h := &mockHandle{transport: m, complete: complete}
	m.inFlight = append(m.inFlight, h)
	return h, nil
}

// Info returns the mock device identity.
func (m *MockTransport) Info() DeviceInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deviceInfo
}

// Close marks the transport closed. Transfers still in flight stay pending
// until completed or cancelled explicitly.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// SetInfo overrides the mock device identity.
func (m *MockTransport) SetInfo(info DeviceInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deviceInfo = info
}

// SetSubmitError makes every subsequent Submit fail with err until cleared
// with nil.
func (m *MockTransport) SetSubmitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitErr = err
}

// CompleteOldest fires the completion callback of the oldest transfer still
// in flight. It reports whether there was one.
func (m *MockTransport) CompleteOldest() bool {
	m.mu.Lock()
	if len(m.inFlight) == 0 {
		m.mu.Unlock()
		return false
	}
	h := m.inFlight[0]
	h.completed = true
	m.inFlight = m.inFlight[1:]
	m.mu.Unlock()

	h.complete()
	return true
}

// CompleteAll fires every outstanding completion callback.
func (m *MockTransport) CompleteAll() {
	for m.CompleteOldest() {
	}
}

// InFlight returns how many submitted transfers have not completed.
func (m *MockTransport) InFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inFlight)
}

// Cancelled returns how many transfers were cancelled.
func (m *MockTransport) Cancelled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancelled
}

// Submissions returns snapshots of every submitted buffer, oldest first.
func (m *MockTransport) Submissions() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.submissions))
	copy(out, m.submissions)
	return out
}

// LastSubmission returns the most recently submitted buffer, or nil.
func (m *MockTransport) LastSubmission() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.submissions) == 0 {
		return nil
	}
	return m.submissions[len(m.submissions)-1]
}

// removeInFlight drops h from the in-flight list. Caller holds the lock.
func (m *MockTransport) removeInFlight(h *mockHandle) {
	for i, other := range m.inFlight {
		if other == h {
			m.inFlight = append(m.inFlight[:i], m.inFlight[i+1:]...)
			return
		}
	}
}
