package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// configs win while zero fields keep earlier values.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{Driver: DriverSQLite, DB: DB{DSN: "a.db"}}},
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "b.db"}}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "b.db", cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultSessionRestoreTimeout, cfg.App.SessionRestoreTimeout)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoPath verifies that no JSON config is added without a path.
func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

// TestWithJSON_OverridesFlags verifies that the JSON file is merged last.
func TestWithJSON_OverridesFlags(t *testing.T) {
	clearEnvVars(t)
	path := writeTempJSONConfig(t, map[string]any{
		"storage": map[string]any{"driver": "sqlite", "db": map[string]any{"dsn": "from-json.db"}},
	})

	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-c", path, "-d", "from-flags.db"}).
		withJSON().
		build()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "from-json.db", cfg.Storage.DB.DSN)
}

// TestWithJSON_MissingFile verifies that a broken path is reported by build.
func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/definitely/missing.json"})

	_, err := b.withJSON().build()
	assert.Error(t, err)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_KeepsPositionalArgs verifies that positional arguments
// survive the merge.
func TestWithFlags_KeepsPositionalArgs(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().withFlags([]string{"-log-level", "debug", "login"}).build()
	require.NoError(t, err)
	assert.Equal(t, []string{"login"}, cfg.Args())
	assert.Equal(t, "debug", cfg.Log.Level)
}

// TestWithFlags_InvalidFlag verifies that parse failures are collected.
func TestWithFlags_InvalidFlag(t *testing.T) {
	_, err := newConfigBuilder().withFlags([]string{"-session-timeout", "forever"}).build()
	assert.Error(t, err)
}

// ── GetStructuredConfig / GetClientConfig ─────────────────────────────────────

// TestGetStructuredConfig_Defaults verifies that an empty environment yields
// a valid in-memory configuration.
func TestGetStructuredConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetStructuredConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 5*time.Second, cfg.App.SessionRestoreTimeout)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
}

// TestGetStructuredConfig_EnvThenFlags verifies that flags override env.
func TestGetStructuredConfig_EnvThenFlags(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_DRIVER":          "sqlite",
		"STORAGE_DB_DATABASE_URI": "env.db",
	})

	cfg, err := GetStructuredConfig([]string{"-d", "flag.db"})
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "flag.db", cfg.Storage.DB.DSN)
}

// TestGetStructuredConfig_InvalidDriver verifies that validation runs on
// the merged result.
func TestGetStructuredConfig_InvalidDriver(t *testing.T) {
	setEnvVars(t, map[string]string{"STORAGE_DRIVER": "mongo"})

	_, err := GetStructuredConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestGetClientConfig_Command verifies the client view and its sub-command.
func TestGetClientConfig_Command(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetClientConfig([]string{"-server", "http://127.0.0.1:9999", "register", "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.BaseURL)
	assert.Equal(t, DefaultAdapterTimeout, cfg.RequestTimeout)
	assert.Equal(t, []string{"register", "a@x.com"}, cfg.Command)
}
