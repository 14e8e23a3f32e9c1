// Package pipeline provides the decode → render → encode export pipeline
// for shatter.
//
// This package is the one place the CLI (and any other caller) turns
// user-facing settings into an animated image. By centralizing it, the
// export and preview commands validate options the same way and share the
// artifact cache.
//
// # Architecture
//
// An export runs in three stages:
//
//  1. Decode: validate and decode the uploaded image bytes
//  2. Render: letterbox the image and drive the effect frame by frame
//  3. Encode: write the frames as an APNG or a GIF
//
// Runs with an explicit seed are deterministic, so their encoded output is
// cached by source hash and options. Runs without a seed get a fresh one and
// are never cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Format = export.FormatGIF
//	result, err := runner.Export(ctx, data, opts, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Data, 0o644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shatter/pkg/cache"
	"github.com/matzehuels/shatter/pkg/effect/shatter"
	"github.com/matzehuels/shatter/pkg/errors"
	"github.com/matzehuels/shatter/pkg/export"
	"github.com/matzehuels/shatter/pkg/sink"
	"github.com/matzehuels/shatter/pkg/source"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI and Config File
// =============================================================================

const (
	// DefaultEffect is the only effect shatter ships.
	DefaultEffect = shatter.Name

	// DefaultFormat is the default output container.
	DefaultFormat = export.FormatAPNG

	// DefaultWorkers is the default GIF quantization pool size.
	DefaultWorkers = sink.DefaultGIFWorkers

	// MaxWorkers bounds the GIF quantization pool.
	MaxWorkers = 32
)

// ValidEffects is the set of supported effects.
var ValidEffects = map[string]bool{
	shatter.Name: true,
}

// =============================================================================
// Options - Export Configuration
// =============================================================================

// Options contains all configuration for one export.
//
// Zero values of PieceCount, Gravity, BackgroundColor and the animation
// fields are replaced by defaults. SpreadDirection and Transparent are taken
// as given, since zero and false are meaningful for them; start from
// DefaultOptions to get their defaults.
type Options struct {
	Effect    string          `json:"effect,omitempty"`
	Format    export.Format   `json:"format,omitempty"`
	Shatter   shatter.Options `json:"shatter"`
	Animation export.Config   `json:"animation"`

	// Encoder options
	Workers   int            `json:"workers,omitempty"`
	Quantizer sink.Quantizer `json:"quantizer,omitempty"`
	Resample  source.Kernel  `json:"resample,omitempty"`

	// NoCache skips both the cache lookup and the cache write.
	NoCache bool `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// DefaultOptions returns options with every field at its default.
func DefaultOptions() Options {
	return Options{
		Effect:    DefaultEffect,
		Format:    DefaultFormat,
		Shatter:   shatter.DefaultOptions(),
		Animation: export.DefaultConfig(),
		Workers:   DefaultWorkers,
		Quantizer: sink.QuantizeMedianCut,
		Resample:  source.DefaultKernel,
	}
}

// Result contains the outputs of an export run.
type Result struct {
	// Format is the container of Data.
	Format export.Format

	// Data is the encoded animation.
	Data []byte

	// Seed is the seed the geometry was generated from. Passing it back in
	// Options reproduces the same animation.
	Seed uint64

	// Filename is the suggested download name for Data.
	Filename string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Data came from the artifact cache.
	CacheHit bool
}

// Stats contains export execution statistics.
type Stats struct {
	RunID      string
	SourceSize int // source width or height, whichever is larger
	Frames     int
	Bytes      int
	DecodeTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every option.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if !ValidEffects[o.Effect] {
		return errors.New(errors.ErrCodeInvalidOption, "unsupported effect: %q (must be one of: %s)", o.Effect, shatter.Name)
	}
	format, err := export.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = format
	if o.Quantizer, err = sink.ParseQuantizer(string(o.Quantizer)); err != nil {
		return err
	}
	if o.Resample, err = source.ParseKernel(string(o.Resample)); err != nil {
		return err
	}
	if err := errors.ValidateRange("workers", o.Workers, 1, MaxWorkers); err != nil {
		return err
	}
	if err := o.Shatter.Validate(); err != nil {
		return err
	}
	if err := o.Animation.Validate(); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// SetDefaults fills zero-valued fields that have no meaningful zero.
func (o *Options) SetDefaults() {
	if o.Effect == "" {
		o.Effect = DefaultEffect
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Shatter.PieceCount == 0 {
		o.Shatter.PieceCount = shatter.DefaultPieceCount
	}
	if o.Shatter.Gravity == 0 {
		o.Shatter.Gravity = shatter.DefaultGravity
	}
	if o.Shatter.BackgroundColor == "" {
		o.Shatter.BackgroundColor = shatter.DefaultBackgroundColor
	}
	if o.Animation.FrameCount == 0 {
		o.Animation.FrameCount = export.DefaultFrameCount
	}
	if o.Animation.FPS == 0 {
		o.Animation.FPS = export.DefaultFPS
	}
	if o.Animation.OutputSize == 0 {
		o.Animation.OutputSize = export.DefaultOutputSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Cacheable reports whether the export is deterministic and may use the
// artifact cache. Only runs with an explicit seed are.
func (o *Options) Cacheable() bool {
	return !o.NoCache && o.Shatter.Seed != 0
}

// ArtifactKeyOpts returns cache key options for the encoded artifact.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	params := o.Shatter
	params.Seed = 0
	opts := cache.ArtifactKeyOpts{
		Effect:     o.Effect,
		Format:     string(o.Format),
		Seed:       o.Shatter.Seed,
		Params:     params,
		FrameCount: o.Animation.FrameCount,
		FPS:        o.Animation.FPS,
		Size:       o.Animation.OutputSize,
		Resample:   string(o.Resample),
		Workers:    o.Workers,
	}
	if o.Format == export.FormatGIF {
		opts.Quantizer = string(o.Quantizer)
	}
	return opts
}

// ExportOptions returns the exporter options matching o.
func (o *Options) ExportOptions() []export.Option {
	return []export.Option{
		export.WithLogger(o.Logger),
		export.WithKernel(o.Resample),
		export.WithWorkers(o.Workers),
		export.WithQuantizer(o.Quantizer),
	}
}
