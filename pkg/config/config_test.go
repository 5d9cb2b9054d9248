package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/store"
)

func env(vars map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chartkit.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Store.S3.Bucket != "gnocai3data" || cfg.Store.S3.Region != "us-west-2" {
		t.Errorf("s3 defaults = %+v", cfg.Store.S3)
	}
	if cfg.Store.TTL != time.Hour || cfg.Server.Listen != ":8080" {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[server]
listen = ":9090"

[log]
level = "debug"
format = "json"

[store]
backend = "file"
ttl = "15m"

[store.file]
dir = "/var/lib/chartkit"

[signing]
secret = "s3cret"
base_url = "https://charts.example.com"

[cache]
backend = "redis"

[cache.redis]
addr = "redis:6379"
db = 2
`)
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	if cfg.Server.Listen != ":9090" || cfg.Store.Backend != "file" || cfg.Store.TTL != 15*time.Minute {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Store.File.Dir != "/var/lib/chartkit" || cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("nested = %+v %+v", cfg.Store.File, cfg.Cache.Redis)
	}
	if cfg.Store.S3.Bucket != "gnocai3data" {
		t.Error("file wiped untouched defaults")
	}
	if lvl, _ := cfg.Log.ParsedLevel(); lvl != log.DebugLevel {
		t.Errorf("level = %v", lvl)
	}
	if cfg.Log.Formatter() != log.JSONFormatter {
		t.Error("formatter is not JSON")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[server\nlisten = 1"},
		{"unknown key", "[server]\nport = 8080"},
		{"bad duration", "[store]\nttl = \"soon\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.loadFile(writeConfig(t, tt.body)); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("loadFile() = %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(env(map[string]string{
		"bucket_name":        "legacy-bucket",
		"region":             "eu-central-1",
		"CHARTKIT_S3_REGION": "ap-south-1",
		"CHARTKIT_STORE_TTL": "30m",
		"CHARTKIT_REDIS_DB":  "3",
		"CHARTKIT_LISTEN":    "",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Store.S3.Bucket != "legacy-bucket" {
		t.Errorf("bucket = %q", cfg.Store.S3.Bucket)
	}
	if cfg.Store.S3.Region != "ap-south-1" {
		t.Errorf("region = %q, CHARTKIT_ variable should win", cfg.Store.S3.Region)
	}
	if cfg.Store.TTL != 30*time.Minute || cfg.Cache.Redis.DB != 3 {
		t.Errorf("ttl = %v db = %d", cfg.Store.TTL, cfg.Cache.Redis.DB)
	}
	if cfg.Server.Listen != ":8080" {
		t.Error("empty variable overrode listen")
	}

	for _, bad := range []map[string]string{{"CHARTKIT_STORE_TTL": "x"}, {"CHARTKIT_REDIS_DB": "two"}} {
		cfg := Default()
		if err := cfg.ApplyEnv(env(bad)); err == nil {
			t.Errorf("ApplyEnv(%v) succeeded", bad)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"unknown store", func(c *Config) { c.Store.Backend = "gcs" }, false},
		{"file without secret", func(c *Config) { c.Store.Backend = StoreFile }, false},
		{"file with secret", func(c *Config) { c.Store.Backend = StoreFile; c.Signing.Secret = "x" }, true},
		{"bad base url", func(c *Config) {
			c.Store.Backend = StoreMongo
			c.Signing.Secret = "x"
			c.Signing.BaseURL = "charts.example.com"
		}, false},
		{"empty bucket", func(c *Config) { c.Store.S3.Bucket = "" }, false},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, ok %v", err, tt.ok)
			}
		})
	}
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	cfg := Default()
	cfg.Store.Backend = StoreFile
	cfg.Store.File.Dir = t.TempDir()
	cfg.Signing.Secret = "x"
	cfg.Cache.Backend = CacheFile
	cfg.Cache.Dir = t.TempDir()

	st, err := cfg.OpenStore(ctx)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if _, ok := st.(*store.FileStore); !ok {
		t.Errorf("store = %T", st)
	}

	c, err := cfg.OpenCache(ctx)
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("cache = %T", c)
	}

	cfg.Store.Backend = StoreMemory
	if st, _ := cfg.OpenStore(ctx); st == nil {
		t.Error("memory store not opened")
	}
	cfg.Cache.Backend = CacheNone
	if c, _ := cfg.OpenCache(ctx); c == nil {
		t.Error("null cache not opened")
	}
}

func TestKeyer(t *testing.T) {
	cfg := Default()
	opts := cache.ArtifactKeyOpts{Format: "svg"}
	plain := cfg.Keyer().ArtifactKey("h", opts)
	cfg.Cache.Prefix = "prod:"
	if got := cfg.Keyer().ArtifactKey("h", opts); got != "prod:"+plain {
		t.Errorf("scoped key = %q", got)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultCacheDir()
	if err != nil || dir != filepath.Join("/tmp/xdg", "chartkit") {
		t.Errorf("DefaultCacheDir() = %q, %v", dir, err)
	}
}
