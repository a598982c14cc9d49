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

// fcserver accepts Open Pixel Control over TCP and drives attached
// Fadecandy controllers. Connection handling and frame assembly belong to
// the go-opc server; decoded messages cross a channel into one dispatch
// goroutine, which owns every device exclusively.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	goopc "github.com/kellydunn/go-opc"
	"github.com/natefinch/lumberjack"

	fadecandy "github.com/PatrikBrosell/fadecandy-1"
	"github.com/PatrikBrosell/fadecandy-1/opc"
	"github.com/PatrikBrosell/fadecandy-1/transport/usb"
)

const defaultListen = "127.0.0.1:7890"

// reapInterval paces the pending-transfer sweep on the dispatch goroutine.
const reapInterval = 5 * time.Millisecond

type serverConfig struct {
	Listen  string                   `json:"listen"`
	Devices []fadecandy.DeviceConfig `json:"devices"`
}

type flags struct {
	configPath *string
	listen     *string
	logFile    *string
	debug      *bool
}

func parseFlags() *flags {
	f := &flags{
		configPath: flag.String("config", "", "Path to the JSON configuration file"),
		listen:     flag.String("listen", "", "TCP listen address (overrides the config file)"),
		logFile:    flag.String("log", "", "Log to a rotating file instead of stderr"),
		debug:      flag.Bool("debug", false, "Enable debug output (protocol noise, dropped frames)"),
	}
	flag.Parse()
	return f
}

func newLogger(logFile string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		w = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(path string) (*serverConfig, error) {
	config := &serverConfig{Listen: defaultListen}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if config.Listen == "" {
		config.Listen = defaultListen
	}
	return config, nil
}

func main() {
	f := parseFlags()
	logger := newLogger(*f.logFile, *f.debug)

	if err := run(f, logger); err != nil {
		logger.Error("fcserver failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(f *flags, logger *slog.Logger) error {
	config, err := loadConfig(*f.configPath)
	if err != nil {
		return err
	}
	if *f.listen != "" {
		config.Listen = *f.listen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	devices, err := attachDevices(config, logger)
	if err != nil {
		return err
	}
	defer func() {
		for _, d := range devices {
			if cerr := d.Close(); cerr != nil {
				logger.Warn("closing device", slog.String("device", d.Name()), slog.Any("err", cerr))
			}
		}
	}()

	messages := make(chan opc.Message, 64)

	server := goopc.NewServer()
	for _, channel := range receiverChannels(devices) {
		server.RegisterDevice(&opcReceiver{
			ctx:      ctx,
			channel:  channel,
			messages: messages,
		})
	}
	if err := server.ListenOnPort("tcp", config.Listen); err != nil {
		return fmt.Errorf("listening on %s: %w", config.Listen, err)
	}
	logger.Info("listening for OPC connections", slog.String("addr", config.Listen))
	go server.Process()

	dispatch(ctx, devices, messages)
	return nil
}

// attachDevices opens every controller on the bus and applies the first
// matching configuration entry. A device with no matching entry stays
// attached but has no mapping, so it ignores pixel data.
func attachDevices(config *serverConfig, logger *slog.Logger) ([]*fadecandy.Device, error) {
	transports, err := usb.OpenAll(usb.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if len(transports) == 0 {
		return nil, fadecandy.ErrNoDevice
	}

	devices := make([]*fadecandy.Device, 0, len(transports))
	for _, t := range transports {
		dev, err := fadecandy.New(t, fadecandy.WithLogger(logger))
		if err != nil {
			_ = t.Close()
			return nil, err
		}

		matched := false
		for i := range config.Devices {
			if dev.MatchConfiguration(&config.Devices[i]) {
				matched = true
				break
			}
		}
		if !matched {
			logger.Warn("no configuration for device", slog.String("device", dev.Name()))
		}

		logger.Info("USB device attached", slog.String("device", dev.Name()))
		devices = append(devices, dev)
	}
	return devices, nil
}

// receiverChannels returns the broadcast channel plus every channel the
// attached devices' mapping rules listen on.
func receiverChannels(devices []*fadecandy.Device) []byte {
	seen := map[byte]bool{0: true}
	channels := []byte{0}
	for _, d := range devices {
		for _, channel := range d.Channels() {
			if !seen[channel] {
				seen[channel] = true
				channels = append(channels, channel)
			}
		}
	}
	return channels
}

// opcReceiver stands in for one OPC channel on the go-opc server and
// forwards its frames to the dispatch goroutine. Each receiver forwards
// only messages addressed to its own channel, so a frame reaches dispatch
// exactly once no matter how the server fans it out.
type opcReceiver struct {
	ctx      context.Context
	messages chan<- opc.Message
	channel  uint8
}

func (r *opcReceiver) Channel() uint8 {
	return r.channel
}

func (r *opcReceiver) Write(m *goopc.Message) error {
	msg, err := opc.FromWire(m)
	if err != nil {
		return err
	}
	if msg.Channel != r.channel {
		return nil
	}

	select {
	case r.messages <- msg:
		return nil
	case <-r.ctx.Done():
		return r.ctx.Err()
	}
}

// dispatch is the single goroutine that owns all devices. It interleaves
// message handling with the periodic reap pass that retires completed
// transfers and releases deferred frames.
func dispatch(ctx context.Context, devices []*fadecandy.Device, messages <-chan opc.Message) {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-messages:
			for _, d := range devices {
				d.WriteMessage(msg)
			}
		case <-ticker.C:
			for _, d := range devices {
				d.Flush()
			}
		}
	}
}
