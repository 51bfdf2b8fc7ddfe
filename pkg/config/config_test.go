package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "catalog:\n  path: /etc/mosaic/catalogs\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Session.TTL.Std() != DefaultSessionTTL {
		t.Errorf("TTL = %v, want %v", cfg.Session.TTL, DefaultSessionTTL)
	}
	if cfg.Session.SweepSchedule != DefaultSweepSchedule {
		t.Errorf("SweepSchedule = %q", cfg.Session.SweepSchedule)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: ./catalogs
  watch: true
  watchDebounce: 250ms
store:
  backend: sqlite
  path: /var/lib/mosaic/sessions.db
session:
  ttl: 2h
  sweepSchedule: "0 * * * *"
log:
  level: debug
  format: json
metrics:
  enabled: true
  addr: ":9999"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Catalog.Watch || cfg.Catalog.WatchDebounce.Std() != 250*time.Millisecond {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.Path == "" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Session.TTL.Std() != 2*time.Hour {
		t.Errorf("TTL = %v", cfg.Session.TTL)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Addr != ":9999" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "missing catalog path",
			mutate: func(c *Config) { c.Catalog.Path = "" },
			want:   "catalog.path",
		},
		{
			name:   "unknown backend",
			mutate: func(c *Config) { c.Store.Backend = "redis" },
			want:   "store backend",
		},
		{
			name:   "sqlite without path",
			mutate: func(c *Config) { c.Store.Backend = "sqlite" },
			want:   "store.path",
		},
		{
			name:   "non-positive ttl",
			mutate: func(c *Config) { c.Session.TTL = 0 },
			want:   "session.ttl",
		},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Log.Level = "loud" },
			want:   "log level",
		},
		{
			name:   "unknown log format",
			mutate: func(c *Config) { c.Log.Format = "xml" },
			want:   "log format",
		},
		{
			name: "metrics without addr",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Addr = ""
			},
			want: "metrics.addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Catalog.Path = "./catalogs"
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := (&LogConfig{Level: "debug", Format: "json"}).NewLogger(&buf)
	logger.Debug("hello", "k", "v")

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("log output = %q", out)
	}

	buf.Reset()
	logger = (&LogConfig{Level: "warn", Format: "text"}).NewLogger(&buf)
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info line should be filtered at warn level: %q", buf.String())
	}
}
