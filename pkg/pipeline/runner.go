package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/store"
)

// Runner executes compilations with caching and publishes their output.
//
// A Runner holds no per-request state; one instance may serve concurrent
// requests.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Store   store.Store // nil disables Publish
	Logger  *log.Logger
	Backoff cache.Backoff
	SignTTL time.Duration
	Convert Converter
}

// NewRunner returns a runner with defaults for nil arguments: a NullCache, a
// DefaultKeyer and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Store:   st,
		Logger:  logger,
		Backoff: cache.DefaultBackoff,
		SignTTL: store.DefaultTTL,
		Convert: RSVGConverter,
	}
}

// Compile compiles spec to format using the cache.
func (r *Runner) Compile(ctx context.Context, spec *chart.Spec, format string) (Artifact, error) {
	return r.Execute(ctx, spec, Options{Format: format})
}

// Execute compiles spec with the given options. Cache failures are logged
// and otherwise ignored.
func (r *Runner) Execute(ctx context.Context, spec *chart.Spec, opts Options) (Artifact, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Artifact{}, err
	}
	if spec == nil {
		return Artifact{}, errors.New(errors.ErrCodeInvalidInput, "chart specification is required")
	}
	if err := spec.Validate(); err != nil {
		return Artifact{}, err
	}

	start := time.Now()
	hash, err := cache.HashJSON(spec)
	if err != nil {
		return Artifact{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "hash chart specification")
	}
	art := Artifact{
		Format:      opts.Format,
		ContentType: ContentType(opts.Format),
		SpecHash:    hash,
	}
	key := r.Keyer.ArtifactKey(hash, opts.keyOpts())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("artifact cache read failed", "error", err)
		case hit:
			observability.Cache().OnCacheHit(ctx, "artifact")
			art.Data, art.CacheHit, art.Duration = data, true, time.Since(start)
			r.Logger.Debug("artifact cache hit", "kind", spec.Kind, "format", opts.Format, "hash", short(hash))
			return art, nil
		default:
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
	}

	data, err := compile(ctx, spec, opts, r.convert())
	if err != nil {
		return Artifact{}, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		r.Logger.Warn("artifact cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	art.Data, art.Duration = data, time.Since(start)
	r.Logger.Info("compiled chart",
		"kind", spec.Kind,
		"format", opts.Format,
		"bytes", len(data),
		"duration", art.Duration)
	return art, nil
}

// Publish compiles spec, uploads the artifact and returns a signed URL. An
// artifact already published for the same spec and format is re-signed
// instead of uploaded again.
func (r *Runner) Publish(ctx context.Context, spec *chart.Spec, format string) (Published, error) {
	if r.Store == nil {
		return Published{}, errors.New(errors.ErrCodeInternal, "no artifact store configured")
	}
	art, err := r.Compile(ctx, spec, format)
	if err != nil {
		return Published{}, err
	}
	pub := Published{Artifact: art}
	pubKey := r.Keyer.PublishedKey(art.SpecHash, cache.ArtifactKeyOpts{Format: art.Format})

	if cached, hit, _ := r.Cache.Get(ctx, pubKey); hit {
		pub.Key = string(cached)
	} else {
		start := time.Now()
		err := r.Backoff.Retry(ctx, func() error {
			key, err := r.Store.Put(ctx, art.Data, art.ContentType)
			pub.Key = key
			return err
		})
		observability.Pipeline().OnPublish(ctx, pub.Key, len(art.Data), time.Since(start), err)
		if err != nil {
			return Published{}, storeError(err, "upload artifact")
		}
		_ = r.Cache.Set(ctx, pubKey, []byte(pub.Key), cache.PublishedTTL)
	}

	ttl := r.signTTL()
	err = r.Backoff.Retry(ctx, func() error {
		url, err := r.Store.SignedGet(ctx, pub.Key, ttl)
		pub.URL = url
		return err
	})
	if err != nil {
		return Published{}, storeError(err, "sign artifact URL")
	}
	pub.ExpiresAt = time.Now().Add(ttl)

	r.Logger.Info("published chart", "key", pub.Key, "expires", pub.ExpiresAt.Format(time.RFC3339))
	return pub, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) convert() Converter {
	if r.Convert == nil {
		return RSVGConverter
	}
	return r.Convert
}

func (r *Runner) signTTL() time.Duration {
	if r.SignTTL <= 0 {
		return store.DefaultTTL
	}
	return r.SignTTL
}

func storeError(err error, msg string) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeStore, err, "%s", msg)
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
