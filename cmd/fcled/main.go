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

// fcled is a diagnostic tool: it lists attached controllers or drives the
// first one with a hue sweep so a strip can be verified end to end without
// an OPC client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	fadecandy "github.com/PatrikBrosell/fadecandy-1"
	"github.com/PatrikBrosell/fadecandy-1/detection"
	"github.com/PatrikBrosell/fadecandy-1/opc"
	"github.com/PatrikBrosell/fadecandy-1/transport/usb"
)

func main() {
	list := flag.Bool("list", false, "List attached Fadecandy controllers and exit")
	pixels := flag.Int("pixels", 64, "Number of pixels to drive")
	interval := flag.Duration("interval", 33*time.Millisecond, "Frame interval")
	debug := flag.Bool("debug", false, "Enable debug output")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *list {
		if err := listDevices(); err != nil {
			logger.Error("listing devices", slog.Any("err", err))
			os.Exit(1)
		}
		return
	}

	if err := run(*pixels, *interval, logger); err != nil {
		logger.Error("fcled failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func listDevices() error {
	infos, err := detection.DetectAll()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No Fadecandy controllers found.")
		return nil
	}
	for _, info := range infos {
		fmt.Printf("Bus %03d Device %03d: Serial# %s, Version %s\n",
			info.Bus, info.Address, info.Serial, info.Version)
	}
	return nil
}

func run(pixels int, interval time.Duration, logger *slog.Logger) error {
	if pixels < 1 || pixels > fadecandy.NumPixels {
		return fmt.Errorf("pixel count must be between 1 and %d", fadecandy.NumPixels)
	}

	transport, err := usb.Open(usb.WithLogger(logger))
	if err != nil {
		return err
	}

	dev, err := fadecandy.New(transport, fadecandy.WithLogger(logger))
	if err != nil {
		_ = transport.Close()
		return err
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil {
			logger.Warn("closing device", slog.Any("err", cerr))
		}
	}()

	dev.SetMapping([]fadecandy.MappingRule{{Channel: 0, Count: fadecandy.NumPixels}})
	dev.WriteColorCorrection(fadecandy.DefaultCorrectionParams())

	logger.Info("driving hue sweep", slog.String("device", dev.Name()), slog.Int("pixels", pixels))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	payload := make([]byte, pixels*3)
	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		base := float64(frame % 360)
		for i := 0; i < pixels; i++ {
			hue := base + float64(i)*360/float64(pixels)
			for hue >= 360 {
				hue -= 360
			}
			r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
			payload[i*3] = r
			payload[i*3+1] = g
			payload[i*3+2] = b
		}

		dev.WriteMessage(opc.Message{Command: opc.SetPixelColors, Data: payload})
		dev.Flush()
	}
}
