// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	SuppressionOn  = "on"
	SuppressionOff = "off"
)

type Config struct {
	Database string

	Gateway string
	Token   string

	SuppressionMode     string
	OnlyHideInStream    bool
	HideInQuickSwitcher bool
	AutoClearMentions   bool

	RateLimitedSuppression   bool
	MaxSuppressionsPerSecond int

	Loglevel *string
}

func defaultConfig() *Config {
	return &Config{
		Database:                 "guildhush.db",
		SuppressionMode:          SuppressionOn,
		HideInQuickSwitcher:      true,
		RateLimitedSuppression:   true,
		MaxSuppressionsPerSecond: 10,
	}
}

func ReadConfig(filename string) (*Config, error) {
	config := defaultConfig()

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// ParseConfig reads the configuration from TOML text.
func ParseConfig(data string) (*Config, error) {
	config := defaultConfig()

	_, err := toml.Decode(data, config)
	if err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Database, "Database name must not be empty, set to a filename for the sqlite database"); err != nil {
		return err
	}

	c.SuppressionMode = strings.ToLower(strings.TrimSpace(c.SuppressionMode))
	if c.SuppressionMode != SuppressionOn && c.SuppressionMode != SuppressionOff {
		return fmt.Errorf("SuppressionMode must be %q or %q, got %q", SuppressionOn, SuppressionOff, c.SuppressionMode)
	}

	if c.RateLimitedSuppression && c.MaxSuppressionsPerSecond <= 0 {
		return fmt.Errorf("MaxSuppressionsPerSecond must be greater than 0 if RateLimitedSuppression is set")
	}

	return nil
}

// ValidateGateway checks the settings needed to connect to the event stream.
func (c *Config) ValidateGateway() error {
	if err := validateNonEmptyStringField(c.Gateway, "Gateway must not be empty, set to the websocket url of the event stream"); err != nil {
		return err
	}

	if !strings.HasPrefix(c.Gateway, "ws://") && !strings.HasPrefix(c.Gateway, "wss://") {
		return fmt.Errorf("Gateway must be a ws:// or wss:// url")
	}

	return nil
}

func (c *Config) SuppressionEnabled() bool {
	return c.SuppressionMode != SuppressionOff
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}
