package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		wantHost    string
		wantPort    int
	}{
		{name: "localhost", input: "localhost:8080", wantHost: "localhost", wantPort: 8080},
		{name: "ip", input: "127.0.0.1:9090", wantHost: "127.0.0.1", wantPort: 9090},
		{name: "all interfaces", input: ":8080", wantHost: "", wantPort: 8080},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "port not a number", input: "localhost:abc", expectError: true},
		{name: "port zero", input: "localhost:0", expectError: true},
		{name: "port too large", input: "localhost:70000", expectError: true},
		{name: "bad host", input: "not-an-ip:8080", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, a.Host)
			assert.Equal(t, tt.wantPort, a.Port)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:9000",
		"-driver", "postgres",
		"-d", "postgres://localhost/energy",
		"-redis-address", "localhost:6379",
		"-redis-password", "pw",
		"-redis-db", "3",
		"-config", "/etc/energy.json",
		"-request-timeout", "12s",
		"-session-timeout", "2s",
		"-server", "http://api:8080",
		"-log-level", "debug",
		"-log-file", "client.log",
		"whoami", "extra",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/energy", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, "pw", cfg.Storage.Redis.Password)
	assert.Equal(t, 3, cfg.Storage.Redis.DB)
	assert.Equal(t, "/etc/energy.json", cfg.JSONFilePath)
	assert.Equal(t, 12*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 12*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.App.SessionRestoreTimeout)
	assert.Equal(t, "http://api:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "client.log", cfg.Log.File)
	assert.Equal(t, []string{"whoami", "extra"}, cfg.Args())
}

func TestParseFlags_NoFlags(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Empty(t, cfg.Storage.Driver)
	assert.Empty(t, cfg.Args())
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, err := parseFlags([]string{"-nope"})
	assert.Error(t, err)
}

func TestParseFlags_BadAddress(t *testing.T) {
	_, err := parseFlags([]string{"-a", "nowhere"})
	assert.Error(t, err)
}
