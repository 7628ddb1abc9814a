package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.StockLength = 6
	cfg.Unit = "mm"
	cfg.MaxSubsetSize = 8
	cfg.PricePerBar = 42.5
	cfg.Server.Addr = "127.0.0.1:9000"
	cfg.Server.RequestTimeout = 45 * time.Second
	cfg.Log.Format = "json"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveWritesFlatSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "stock_length: 12\n")
	assert.Contains(t, text, "server:\n")
	assert.Contains(t, text, "request_timeout: 30s")
	assert.NotContains(t, text, "settings:")
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDefaultPathPresent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".barcut"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".barcut", "config.yaml"), []byte("stock_length: 9\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9.0, cfg.StockLength)
	assert.Equal(t, "m", cfg.Unit)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stock_length: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "unit: mm\nserver:\n  addr: \":9999\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mm", cfg.Unit)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 12.0, cfg.StockLength)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stock_length: 9\n"), 0644))

	t.Setenv("BARCUT_STOCK_LENGTH", "6.5")
	t.Setenv("BARCUT_SERVER_ADDR", ":7070")
	t.Setenv("BARCUT_SERVER_REQUEST_TIMEOUT", "5s")
	t.Setenv("BARCUT_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6.5, cfg.StockLength)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stock_length: -1\nlog:\n  format: xml\n"), 0644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "stock_length")
	assert.Contains(t, err.Error(), "log.format")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero stock", func(c *Config) { c.StockLength = 0 }, "stock_length"},
		{"decimals", func(c *Config) { c.Decimals = 11 }, "decimals"},
		{"subset cap", func(c *Config) { c.MaxSubsetSize = -1 }, "max_subset_size"},
		{"offcut", func(c *Config) { c.MinOffcutLength = -0.1 }, "min_offcut_length"},
		{"price", func(c *Config) { c.PricePerBar = -1 }, "price_per_bar"},
		{"waste", func(c *Config) { c.WastePercent = -5 }, "waste_percent"},
		{"timeout", func(c *Config) { c.Server.RequestTimeout = -time.Second }, "request_timeout"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	assert.NoError(t, Validate(Default()))
}

func TestSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.yaml")

	require.NoError(t, Save(path, Default()))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".barcut"), DefaultConfigDir())
	assert.Equal(t, filepath.Join(home, ".barcut", "config.yaml"), DefaultConfigPath())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogConfig{Level: "warn", Format: "json"})

	logger.Info("hidden")
	logger.Warn("shown", "bars", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, float64(3), entry["bars"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogConfig{Level: "info", Format: "text"})

	logger.Info("plan ready", "patterns", 2)
	assert.Contains(t, buf.String(), "msg=\"plan ready\" patterns=2")
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	backup, err := Backup(path)
	require.NoError(t, err)
	assert.Empty(t, backup, "missing file has nothing to back up")

	require.NoError(t, os.WriteFile(path, []byte("unit: mm\n"), 0644))
	backup, err = Backup(path)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "unit: mm\n", string(data))
}
