package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/shatter/pkg/config"
	"github.com/matzehuels/shatter/pkg/export"
	"github.com/matzehuels/shatter/pkg/pipeline"
	"github.com/matzehuels/shatter/pkg/sink"
	"github.com/matzehuels/shatter/pkg/source"
)

// effectFlags holds the command-line flags shared by export and preview.
// Flags the user did not set fall back to the config file.
type effectFlags struct {
	pieces      int     // triangulation piece count (30-200, step 10)
	gravity     float64 // downward acceleration per frame (0.5-3.0)
	spread      float64 // outward burst strength (0-100, step 5)
	background  string  // "#rrggbb" fill when not transparent
	transparent bool    // keep the background transparent
	frames      int     // frames per loop
	fps         int     // playback rate
	size        int     // square output edge: 64, 128 or 256
	seed        uint64  // geometry seed, 0 for a fresh one
	resample    string  // letterbox kernel
}

// register adds the effect flags to cmd with the built-in defaults shown
// in the help text.
func (f *effectFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()
	fs.IntVar(&f.pieces, "pieces", d.Shatter.PieceCount, "number of shards (30-200, step 10)")
	fs.Float64Var(&f.gravity, "gravity", d.Shatter.Gravity, "gravity per frame (0.5-3.0)")
	fs.Float64Var(&f.spread, "spread", d.Shatter.SpreadDirection, "outward burst strength (0-100, step 5)")
	fs.StringVar(&f.background, "background", d.Shatter.BackgroundColor, "background color when not transparent")
	fs.BoolVar(&f.transparent, "transparent", d.Shatter.Transparent, "transparent background")
	fs.IntVar(&f.frames, "frames", d.Animation.FrameCount, "frames per loop")
	fs.IntVar(&f.fps, "fps", d.Animation.FPS, "frames per second")
	fs.IntVar(&f.size, "size", d.Animation.OutputSize, "output size in pixels: 64, 128, 256")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (0 picks a new one)")
	fs.StringVar(&f.resample, "resample", d.Output.Resample, "resampling kernel: nearest, bilinear, catmullrom")
}

// apply overlays every flag the user set on opts.
func (f *effectFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	set := func(name string, assign func()) {
		if fs.Changed(name) {
			assign()
		}
	}
	set("pieces", func() { opts.Shatter.PieceCount = f.pieces })
	set("gravity", func() { opts.Shatter.Gravity = f.gravity })
	set("spread", func() { opts.Shatter.SpreadDirection = f.spread })
	set("background", func() { opts.Shatter.BackgroundColor = f.background })
	set("transparent", func() { opts.Shatter.Transparent = f.transparent })
	set("frames", func() { opts.Animation.FrameCount = f.frames })
	set("fps", func() { opts.Animation.FPS = f.fps })
	set("size", func() { opts.Animation.OutputSize = f.size })
	set("resample", func() { opts.Resample = source.Kernel(f.resample) })
	opts.Shatter.Seed = f.seed
}

// outputFlags holds the encoder flags of the export command.
type outputFlags struct {
	output    string
	format    string
	workers   int
	quantizer string
	noCache   bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: animated-effect-{size}x{size}-{time}.{ext})")
	fs.StringVarP(&f.format, "format", "f", d.Output.Format, "output format: apng, gif")
	fs.IntVar(&f.workers, "workers", d.Output.Workers, "GIF quantization workers")
	fs.StringVar(&f.quantizer, "quantizer", d.Output.Quantizer, "GIF palette: mediancut, plan9")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
}

func (f *outputFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("format") {
		opts.Format = export.Format(f.format)
	}
	if fs.Changed("workers") {
		opts.Workers = f.workers
	}
	if fs.Changed("quantizer") {
		opts.Quantizer = sink.Quantizer(f.quantizer)
	}
	opts.NoCache = f.noCache
}
