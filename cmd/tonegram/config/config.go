// Package config loads the tonegram node configuration: device settings
// plus a set of named channel presets the user picks from on the command
// line.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"Tonegram/pkg/modem"
)

type Config struct {
	Device struct {
		Backend    string  `yaml:"backend"` // "malgo", "asio" or "loopback"
		DeviceName string  `yaml:"device_name"`
		SampleRate float64 `yaml:"sample_rate"`
	} `yaml:"device"`

	Channels map[string]modem.Config `yaml:"channels"`
}

func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	for name, channel := range config.Channels {
		if channel.SampleRate == 0 {
			channel.SampleRate = config.Device.SampleRate
			config.Channels[name] = channel
		}
		if err := config.Channels[name].Validate(); err != nil {
			return nil, fmt.Errorf("channel %q: %w", name, err)
		}
	}
	return &config, nil
}

// Channel resolves a preset by name, falling back to the built-in default
// when the name is empty and no presets are configured.
func (c *Config) Channel(name string) (modem.Config, error) {
	if name == "" && len(c.Channels) == 0 {
		return modem.DefaultConfig(), nil
	}
	if name == "" {
		name = "audible"
	}
	channel, ok := c.Channels[name]
	if !ok {
		return modem.Config{}, fmt.Errorf("unknown channel preset %q", name)
	}
	return channel, nil
}
