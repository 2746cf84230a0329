package stability

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rorostab/pkg/cache"
	"github.com/matzehuels/rorostab/pkg/displacement"
)

// DefaultResultTTL is how long a cached assessment stays valid.
const DefaultResultTTL = 7 * 24 * time.Hour

// Runner evaluates loading conditions with result caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different inputs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Cache hooks are reported by the backend, not the runner.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	if c == nil {
		c = cache.NewNullCache(logger)
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultResultTTL,
	}
}

// Input is one loading condition to evaluate.
type Input struct {
	Items []displacement.WeightItem
	Hydro Hydrostatics

	// TablesHash identifies the hydrostatic and KN tables behind Hydro.
	// An empty hash disables caching for this input.
	TablesHash string

	// Refresh skips the cache lookup but still stores the new result.
	Refresh bool
}

// Evaluate returns the assessment for in, from the cache when possible.
// The boolean reports a cache hit.
func (r *Runner) Evaluate(ctx context.Context, in Input, opts Options) (*Assessment, bool, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	key := r.resultKey(in, opts)

	if key != "" && !in.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		} else if hit {
			var a Assessment
			if err := json.Unmarshal(data, &a); err == nil && a.Result != nil && a.Compliance != nil {
				r.Logger.Debug("assessment from cache", "key", key)
				return &a, true, nil
			}
			r.Logger.Debug("discarding unreadable cache entry", "key", key)
		}
	}

	a, err := Evaluate(ctx, in.Items, in.Hydro, opts)
	if err != nil {
		return nil, false, err
	}

	if key != "" {
		if data, err := json.Marshal(a); err == nil {
			if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
				r.Logger.Warn("cache write failed", "err", err)
			}
		}
	}
	return a, false, nil
}

func (r *Runner) resultKey(in Input, opts Options) string {
	if in.TablesHash == "" {
		return ""
	}
	itemsHash, err := cache.HashJSON(in.Items)
	if err != nil {
		r.Logger.Debug("items not hashable, caching disabled", "err", err)
		return ""
	}
	return r.Keyer.ResultKey(in.TablesHash, itemsHash, opts.ResultKeyOpts())
}
