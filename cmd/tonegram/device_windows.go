//go:build windows

package main

import (
	"fmt"

	"Tonegram/cmd/tonegram/config"
	"Tonegram/pkg/device"
	"Tonegram/pkg/modem"
)

func buildDevice(cfg *config.Config, channel modem.Config) (device.Device, error) {
	switch cfg.Device.Backend {
	case "", "malgo":
		return &device.Malgo{SampleRate: channel.SampleRate}, nil
	case "loopback":
		return &device.Loopback{SampleRate: channel.SampleRate}, nil
	case "asio":
		return &device.ASIOMono{
			DeviceName: cfg.Device.DeviceName,
			SampleRate: channel.SampleRate,
		}, nil
	default:
		return nil, fmt.Errorf("unknown device backend %q", cfg.Device.Backend)
	}
}
