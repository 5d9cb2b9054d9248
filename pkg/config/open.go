package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/store"
)

// OpenStore builds the configured artifact store.
func (c Config) OpenStore(ctx context.Context) (store.Store, error) {
	if c.Store.Backend == StoreS3 {
		s3, err := store.NewS3Store(ctx, store.S3Config{
			Bucket:   c.Store.S3.Bucket,
			Region:   c.Store.S3.Region,
			Endpoint: c.Store.S3.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	}

	signer, err := store.NewURLSigner(c.Signing.Secret, c.Signing.BaseURL)
	if err != nil {
		return nil, err
	}
	switch c.Store.Backend {
	case StoreMongo:
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:        c.Store.Mongo.URI,
			Database:   c.Store.Mongo.Database,
			Collection: c.Store.Mongo.Collection,
			Retention:  c.Store.Mongo.Retention,
		}, signer)
		if err != nil {
			return nil, err
		}
		return ms, nil
	case StoreFile:
		fs, err := store.NewFileStore(c.Store.File.Dir, signer)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case StoreMemory:
		return store.NewMemoryStore(signer), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
}

// OpenCache builds the configured artifact cache.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case "", CacheNone:
		return cache.NewNullCache(), nil
	case CacheFile:
		dir := c.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultCacheDir(); err != nil {
				return nil, err
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
}

// Keyer returns the cache keyer, scoped by the configured prefix.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}

// DefaultCacheDir follows XDG: $XDG_CACHE_HOME/chartkit or ~/.cache/chartkit.
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "chartkit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "chartkit"), nil
}
