// Package config loads chartkit configuration from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the TOML file, environment
// variables. Durations are written as strings:
//
//	[server]
//	listen = ":8080"
//
//	[store]
//	backend = "s3"
//	ttl = "1h"
//
//	[store.s3]
//	bucket = "gnocai3data"
//	region = "us-west-2"
//
//	[cache]
//	backend = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/store"
)

// Store backends.
const (
	StoreS3     = "s3"
	StoreMongo  = "mongo"
	StoreFile   = "file"
	StoreMemory = "memory"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the complete configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Store   StoreConfig   `toml:"store"`
	Signing SigningConfig `toml:"signing"`
	Cache   CacheConfig   `toml:"cache"`
}

type ServerConfig struct {
	Listen       string        `toml:"listen"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text, json or logfmt
}

type StoreConfig struct {
	Backend string        `toml:"backend"`
	TTL     time.Duration `toml:"ttl"` // lifetime of signed URLs
	S3      S3Config      `toml:"s3"`
	Mongo   MongoConfig   `toml:"mongo"`
	File    FileConfig    `toml:"file"`
}

type S3Config struct {
	Bucket   string `toml:"bucket"`
	Region   string `toml:"region"`
	Endpoint string `toml:"endpoint"`
}

type MongoConfig struct {
	URI        string        `toml:"uri"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
	Retention  time.Duration `toml:"retention"`
}

type FileConfig struct {
	Dir string `toml:"dir"`
}

// SigningConfig configures URLs for backends served by chartkit itself.
type SigningConfig struct {
	Secret  string `toml:"secret"`
	BaseURL string `toml:"base_url"`
}

type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Prefix  string      `toml:"prefix"`
	Redis   RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:       ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Store: StoreConfig{
			Backend: StoreS3,
			TTL:     store.DefaultTTL,
			S3:      S3Config{Bucket: store.DefaultBucket, Region: store.DefaultRegion},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017", Database: "chartkit", Collection: "artifacts"},
			File:    FileConfig{Dir: "artifacts"},
		},
		Signing: SigningConfig{BaseURL: "http://localhost:8080"},
		Cache: CacheConfig{
			Backend: CacheNone,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
	}
}

// Load reads path (skipped when empty), applies the environment and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from environment variables. The Lambda
// variables bucket_name and region are honoured below their CHARTKIT_
// equivalents.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}
	var err error
	dur := func(dst *time.Duration, key string) {
		if v, ok := lookup(key); ok && v != "" && err == nil {
			d, perr := time.ParseDuration(v)
			if perr != nil {
				err = errors.Wrap(errors.ErrCodeInvalidInput, perr, "%s", key)
				return
			}
			*dst = d
		}
	}

	str(&c.Server.Listen, "CHARTKIT_LISTEN")
	str(&c.Log.Level, "CHARTKIT_LOG_LEVEL")
	str(&c.Log.Format, "CHARTKIT_LOG_FORMAT")
	str(&c.Store.Backend, "CHARTKIT_STORE_BACKEND")
	dur(&c.Store.TTL, "CHARTKIT_STORE_TTL")
	str(&c.Store.S3.Bucket, "CHARTKIT_S3_BUCKET", "bucket_name")
	str(&c.Store.S3.Region, "CHARTKIT_S3_REGION", "region")
	str(&c.Store.S3.Endpoint, "CHARTKIT_S3_ENDPOINT")
	str(&c.Store.Mongo.URI, "CHARTKIT_MONGO_URI")
	str(&c.Store.Mongo.Database, "CHARTKIT_MONGO_DATABASE")
	str(&c.Store.File.Dir, "CHARTKIT_FILE_DIR")
	str(&c.Signing.Secret, "CHARTKIT_SIGNING_SECRET")
	str(&c.Signing.BaseURL, "CHARTKIT_BASE_URL")
	str(&c.Cache.Backend, "CHARTKIT_CACHE_BACKEND")
	str(&c.Cache.Dir, "CHARTKIT_CACHE_DIR")
	str(&c.Cache.Prefix, "CHARTKIT_CACHE_PREFIX")
	str(&c.Cache.Redis.Addr, "CHARTKIT_REDIS_ADDR")
	str(&c.Cache.Redis.Password, "CHARTKIT_REDIS_PASSWORD")
	if v, ok := lookup("CHARTKIT_REDIS_DB"); ok && v != "" {
		db, perr := strconv.Atoi(v)
		if perr != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, perr, "CHARTKIT_REDIS_DB")
		}
		c.Cache.Redis.DB = db
	}
	return err
}

// Validate checks backend names and the settings each backend needs.
func (c Config) Validate() error {
	if _, err := c.Log.ParsedLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json", "logfmt":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown log format %q", c.Log.Format)
	}

	switch c.Store.Backend {
	case StoreS3:
		if c.Store.S3.Bucket == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store.s3.bucket is required")
		}
	case StoreMongo, StoreFile, StoreMemory:
		if c.Signing.Secret == "" {
			return errors.New(errors.ErrCodeInvalidInput, "signing.secret is required for the %s store", c.Store.Backend)
		}
		if err := errors.ValidateURL(c.Signing.BaseURL); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case "", CacheNone, CacheFile, CacheRedis:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// ParsedLevel returns the charmbracelet/log level.
func (l LogConfig) ParsedLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(l.Level)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "log level")
	}
	return lvl, nil
}

// Formatter returns the charmbracelet/log formatter.
func (l LogConfig) Formatter() log.Formatter {
	switch l.Format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	}
	return log.TextFormatter
}
