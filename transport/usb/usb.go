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

// Package usb implements the fadecandy.Transport interface on top of
// google/gousb. Each submission snapshots its buffer and runs as its own
// bulk write on a background goroutine; cancellation and shutdown work
// through context cancellation, and completion is reported through the
// driver's callback exactly once per transfer.
package usb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/gousb"

	fadecandy "github.com/PatrikBrosell/fadecandy-1"
)

// Fadecandy USB identity and endpoint layout.
const (
	// VendorID is the Fadecandy USB vendor id (OpenMoko).
	VendorID = 0x1d50
	// ProductID is the Fadecandy USB product id.
	ProductID = 0x607a

	// outEndpoint is the single bulk OUT endpoint packets are written to.
	outEndpoint = 1

	// transferTimeout bounds one bulk transfer, matching the controller's
	// worst-case frame latency with a wide margin.
	transferTimeout = 2 * time.Second
)

// ctxRef shares one gousb context between transports opened together. The
// context is closed when the last transport referencing it closes, and
// only if it was created here rather than supplied by the caller.
type ctxRef struct {
	ctx   *gousb.Context
	mu    sync.Mutex
	refs  int
	owned bool
}

func (c *ctxRef) acquire() {
	c.mu.Lock()
	c.refs++
	c.mu.Unlock()
}

func (c *ctxRef) release() error {
	c.mu.Lock()
	c.refs--
	last := c.refs == 0
	c.mu.Unlock()
	if last && c.owned {
		return c.ctx.Close()
	}
	return nil
}

// Transport is a gousb-backed fadecandy.Transport.
type Transport struct {
	usbCtx  *ctxRef
	dev     *gousb.Device
	intf    *gousb.Interface
	relIntf func()
	out     *gousb.OutEndpoint

	info   fadecandy.DeviceInfo
	logger *slog.Logger

	runCtx context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// Option is a functional option for opening transports.
type Option func(*openConfig)

type openConfig struct {
	usbCtx *gousb.Context
	logger *slog.Logger
}

// WithLogger sets the logger used for asynchronous write errors.
func WithLogger(logger *slog.Logger) Option {
	return func(c *openConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUSBContext reuses an existing gousb context instead of creating one
// per transport. The caller keeps ownership and must close it after every
// transport opened from it.
func WithUSBContext(ctx *gousb.Context) Option {
	return func(c *openConfig) {
		c.usbCtx = ctx
	}
}

// Open opens the first attached Fadecandy controller. It returns
// fadecandy.ErrNoDevice when none is present.
func Open(opts ...Option) (*Transport, error) {
	transports, err := OpenAll(opts...)
	if err != nil {
		return nil, err
	}
	if len(transports) == 0 {
		return nil, fadecandy.ErrNoDevice
	}
	for _, t := range transports[1:] {
		_ = t.Close()
	}
	return transports[0], nil
}

// OpenAll opens every attached Fadecandy controller. Devices that match by
// id but fail to open (descriptor read, interface claim) are logged and
// skipped; such a device cannot be used and the caller should not retry.
func OpenAll(opts ...Option) ([]*Transport, error) {
	cfg := &openConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	shared := &ctxRef{ctx: cfg.usbCtx, owned: cfg.usbCtx == nil}
	if shared.owned {
		shared.ctx = gousb.NewContext()
	}

	devs, err := shared.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(VendorID) && desc.Product == gousb.ID(ProductID)
	})
	if err != nil && len(devs) == 0 {
		if shared.owned {
			_ = shared.ctx.Close()
		}
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}

	transports := make([]*Transport, 0, len(devs))
	for _, dev := range devs {
		t, err := newTransport(shared, dev, cfg.logger)
		if err != nil {
			cfg.logger.Warn("skipping unusable fadecandy device",
				slog.Int("bus", dev.Desc.Bus),
				slog.Int("address", dev.Desc.Address),
				slog.Any("err", err))
			_ = dev.Close()
			continue
		}
		transports = append(transports, t)
	}

	if shared.owned && len(transports) == 0 {
		_ = shared.ctx.Close()
	}
	return transports, nil
}

// newTransport claims a matched device and reads its identity. Errors here
// are the reason this device instance cannot be used.
func newTransport(usbCtx *ctxRef, dev *gousb.Device, logger *slog.Logger) (*Transport, error) {
	if err := dev.SetAutoDetach(true); err != nil {
		return nil, fmt.Errorf("enabling kernel driver auto-detach: %w", err)
	}

	serial, err := dev.SerialNumber()
	if err != nil {
		return nil, fmt.Errorf("reading serial descriptor: %w", err)
	}

	intf, release, err := dev.DefaultInterface()
	if err != nil {
		return nil, fmt.Errorf("claiming interface: %w", err)
	}

	out, err := intf.OutEndpoint(outEndpoint)
	if err != nil {
		release()
		return nil, fmt.Errorf("opening OUT endpoint %d: %w", outEndpoint, err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	usbCtx.acquire()
	return &Transport{
		usbCtx:  usbCtx,
		dev:     dev,
		intf:    intf,
		relIntf: release,
		out:     out,
		logger:  logger,
		runCtx:  runCtx,
		cancel:  cancel,
		info: fadecandy.DeviceInfo{
			Serial:  serial,
			Version: dev.Desc.Device.String(),
			Bus:     dev.Desc.Bus,
			Address: dev.Desc.Address,
		},
	}, nil
}

// handle cancels one in-flight bulk write.
type handle struct {
	cancel context.CancelFunc
}

func (h *handle) Cancel() {
	h.cancel()
}

// Submit starts an asynchronous bulk write of a private copy of buf. The
// complete callback fires from the write goroutine whether the transfer
// finished, failed, or was cancelled; the driver ignores the distinction
// and the transport logs failures itself, suppressing endpoint stalls as
// expected noise from a resetting controller.
func (t *Transport) Submit(buf []byte, complete func()) (fadecandy.Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, &fadecandy.TransportError{Op: "submit", Err: fadecandy.ErrTransportClosed}
	}
	t.wg.Add(1)
	t.mu.Unlock()

	snapshot := make([]byte, len(buf))
	copy(snapshot, buf)

	writeCtx, cancel := context.WithTimeout(t.runCtx, transferTimeout)
	go func() {
		defer t.wg.Done()
		defer cancel()
		defer complete()

		if _, err := t.out.WriteContext(writeCtx, snapshot); err != nil {
			t.logWriteError(err)
		}
	}()

	return &handle{cancel: cancel}, nil
}

// logWriteError reports an asynchronous write failure. Cancellation is the
// normal shutdown path and stalls are expected noise; both stay quiet
// below debug level.
func (t *Transport) logWriteError(err error) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, gousb.TransferCancelled):
		t.logger.Debug("bulk transfer cancelled")
	case errors.Is(err, gousb.TransferStall):
		t.logger.Debug("bulk transfer stalled")
	default:
		t.logger.Warn("bulk transfer failed", slog.Any("err", err))
	}
}

// Info returns the identity read from the device descriptors at open time.
func (t *Transport) Info() fadecandy.DeviceInfo {
	return t.info
}

// Close aborts in-flight writes, waits for their goroutines to observe the
// cancellation, and releases the interface and device.
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()

	t.relIntf()
	err := t.dev.Close()
	if cerr := t.usbCtx.release(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("closing USB device: %w", err)
	}
	return nil
}
