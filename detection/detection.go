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

// Package detection enumerates attached Fadecandy controllers without
// claiming them, for listings and attach decisions. Open the devices with
// transport/usb afterwards.
package detection

import (
	"fmt"

	"github.com/google/gousb"

	fadecandy "github.com/PatrikBrosell/fadecandy-1"
	"github.com/PatrikBrosell/fadecandy-1/transport/usb"
)

// DetectAll returns the identity of every Fadecandy controller on the bus,
// matched by vendor/product id. Devices whose serial descriptor cannot be
// read are reported with an empty serial rather than dropped, so a
// half-broken device still shows up in listings.
func DetectAll() ([]fadecandy.DeviceInfo, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(usb.VendorID) && desc.Product == gousb.ID(usb.ProductID)
	})
	for _, dev := range devs {
		defer dev.Close()
	}
	if err != nil && len(devs) == 0 {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}

	infos := make([]fadecandy.DeviceInfo, 0, len(devs))
	for _, dev := range devs {
		serial, serr := dev.SerialNumber()
		if serr != nil {
			serial = ""
		}
		infos = append(infos, fadecandy.DeviceInfo{
			Serial:  serial,
			Version: dev.Desc.Device.String(),
			Bus:     dev.Desc.Bus,
			Address: dev.Desc.Address,
		})
	}
	return infos, nil
}
