// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	c, err := ParseConfig("")
	require.NoError(t, err)

	assert.Equal(t, "guildhush.db", c.Database)
	assert.Equal(t, SuppressionOn, c.SuppressionMode)
	assert.True(t, c.SuppressionEnabled())
	assert.True(t, c.HideInQuickSwitcher)
	assert.True(t, c.RateLimitedSuppression)
	assert.Equal(t, 10, c.MaxSuppressionsPerSecond)
	assert.False(t, c.OnlyHideInStream)
	assert.False(t, c.AutoClearMentions)
	assert.Nil(t, c.Loglevel)
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  string
	}{
		{"full", `
Database = "x.db"
Gateway = "wss://gateway.example/events"
Token = "secret"
SuppressionMode = "OFF"
OnlyHideInStream = true
HideInQuickSwitcher = false
AutoClearMentions = true
MaxSuppressionsPerSecond = 3
Loglevel = "debug"
`, ""},
		{"empty database", `Database = " "`, "Database name must not be empty, set to a filename for the sqlite database"},
		{"bad mode", `SuppressionMode = "sometimes"`, `SuppressionMode must be "on" or "off", got "sometimes"`},
		{"bad rate", `MaxSuppressionsPerSecond = 0`, "MaxSuppressionsPerSecond must be greater than 0 if RateLimitedSuppression is set"},
		{"rate unused", "RateLimitedSuppression = false\nMaxSuppressionsPerSecond = 0", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseConfig(tc.data)
			if len(tc.err) == 0 {
				assert.NotNil(t, c)
				assert.NoError(t, err)
			} else {
				assert.Nil(t, c)
				assert.EqualError(t, err, tc.err)
			}
		})
	}
}

func TestParseConfig_Values(t *testing.T) {
	c, err := ParseConfig(`
SuppressionMode = "OFF"
OnlyHideInStream = true
Loglevel = "warn"
`)
	require.NoError(t, err)
	assert.False(t, c.SuppressionEnabled())
	assert.True(t, c.OnlyHideInStream)
	require.NotNil(t, c.Loglevel)
	assert.Equal(t, "warn", *c.Loglevel)
}

func TestReadConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(filename, []byte(`Gateway = "ws://localhost:8080/ws"`), 0600))

	c, err := ReadConfig(filename)
	require.NoError(t, err)
	assert.NoError(t, c.ValidateGateway())

	_, err = ReadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidateGateway(t *testing.T) {
	tests := []struct {
		gateway string
		err     bool
	}{
		{"", true},
		{"http://example", true},
		{"ws://example", false},
		{"wss://example/ws", false},
	}
	for _, tc := range tests {
		t.Run(tc.gateway, func(t *testing.T) {
			c := defaultConfig()
			c.Gateway = tc.gateway
			assert.Equal(t, tc.err, c.ValidateGateway() != nil)
		})
	}
}
