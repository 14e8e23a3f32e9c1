package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/shatter/pkg/cache"
	"github.com/matzehuels/shatter/pkg/effect"
	"github.com/matzehuels/shatter/pkg/effect/shatter"
	"github.com/matzehuels/shatter/pkg/errors"
	"github.com/matzehuels/shatter/pkg/export"
	"github.com/matzehuels/shatter/pkg/observability"
	"github.com/matzehuels/shatter/pkg/source"
)

// Runner encapsulates export execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store export results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	now func() time.Time
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		now:    time.Now,
	}
}

// Export decodes input, renders the configured effect over it and encodes
// the animation. onProgress, if non-nil, receives percentages from 0 to 100.
//
// A zero seed is replaced by a fresh one, reported in Result.Seed.
func (r *Runner) Export(ctx context.Context, input []byte, opts Options, onProgress export.ProgressFunc) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = observability.WithRunID(ctx, runID)
	logger := opts.Logger.With("run", runID[:8])
	opts.Logger = logger

	decodeStart := time.Now()
	img, err := source.Decode(input)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	logger.Debug("decoded source", "format", img.Format, "width", b.Dx(), "height", b.Dy())

	cacheable := opts.Cacheable()
	if opts.Shatter.Seed == 0 {
		opts.Shatter.Seed = shatter.NewSeed()
	}

	result := &Result{
		Format:   opts.Format,
		Seed:     opts.Shatter.Seed,
		Filename: export.Filename(opts.Animation.OutputSize, opts.Format, r.now()),
		Stats: Stats{
			RunID:      runID,
			SourceSize: max(b.Dx(), b.Dy()),
			Frames:     opts.Animation.FrameCount,
			DecodeTime: time.Since(decodeStart),
		},
	}

	var cacheKey string
	if cacheable {
		cacheKey = r.Keyer.ArtifactKey(cache.Hash(input), opts.ArtifactKeyOpts())
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			logger.Info("cache hit", "format", opts.Format, "bytes", len(data))
			result.Data = data
			result.Stats.Bytes = len(data)
			result.CacheHit = true
			if onProgress != nil {
				onProgress(100)
			}
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	renderStart := time.Now()
	observability.Export().OnExportStart(ctx, opts.Effect, string(opts.Format), opts.Animation.FrameCount)
	data, err := r.render(ctx, img.RGBA, opts, onProgress)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Export().OnExportComplete(ctx, string(opts.Format), len(data), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Data = data
	result.Stats.Bytes = len(data)

	logger.Info("exported animation",
		"format", opts.Format,
		"seed", opts.Shatter.Seed,
		"bytes", len(data),
		"duration", result.Stats.RenderTime)

	if cacheable {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return result, nil
}

func (r *Runner) render(ctx context.Context, img image.Image, opts Options, onProgress export.ProgressFunc) ([]byte, error) {
	switch opts.Effect {
	case shatter.Name:
		return encode(ctx, img, shatter.New(), opts.Shatter, opts, onProgress)
	default:
		return nil, errors.New(errors.ErrCodeInvalidOption, "unsupported effect: %q", opts.Effect)
	}
}

// encode runs the exporter for opts.Format with renderer-specific options.
func encode[O any, C effect.Context](
	ctx context.Context,
	img image.Image,
	rr effect.Renderer[O, C],
	effectOpts O,
	opts Options,
	onProgress export.ProgressFunc,
) ([]byte, error) {
	if opts.Format == export.FormatGIF {
		return export.Palette(ctx, img, rr, effectOpts, opts.Animation, onProgress, opts.ExportOptions()...)
	}
	return export.Lossless(ctx, img, rr, effectOpts, opts.Animation, onProgress, opts.ExportOptions()...)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
