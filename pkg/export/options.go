package export

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shatter/pkg/sink"
	"github.com/matzehuels/shatter/pkg/source"
)

// Option configures an export run.
type Option func(*options)

type options struct {
	logger    *log.Logger
	kernel    source.Kernel
	workers   int
	quantizer sink.Quantizer
}

func newOptions(opts []Option) options {
	o := options{
		logger:    log.New(io.Discard),
		kernel:    source.DefaultKernel,
		workers:   sink.DefaultGIFWorkers,
		quantizer: sink.QuantizeMedianCut,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger for diagnostic lines. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithKernel sets the resampling kernel used to letterbox the source.
func WithKernel(k source.Kernel) Option {
	return func(o *options) { o.kernel = k }
}

// WithWorkers sets the GIF quantization pool size.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithQuantizer sets the GIF palette strategy.
func WithQuantizer(q sink.Quantizer) Option {
	return func(o *options) { o.quantizer = q }
}
