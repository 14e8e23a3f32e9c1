package shatter

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/shatter/pkg/errors"
)

// Default option values.
const (
	DefaultPieceCount      = 80
	DefaultGravity         = 0.8
	DefaultSpreadDirection = 50.0
	DefaultBackgroundColor = "#000000"
	DefaultTransparent     = true
)

// Accepted option ranges.
const (
	MinPieceCount  = 30
	MaxPieceCount  = 200
	PieceCountStep = 10

	MinGravity  = 0.5
	MaxGravity  = 3.0
	GravityStep = 0.1

	MinSpread  = 0.0
	MaxSpread  = 100.0
	SpreadStep = 5.0
)

// Options configures the shatter effect.
type Options struct {
	// PieceCount drives the number of triangulation points, and so the
	// number of pieces.
	PieceCount int `json:"piece_count" toml:"pieces"`

	// Gravity is added to each piece's vertical velocity every frame.
	Gravity float64 `json:"gravity" toml:"gravity"`

	// SpreadDirection (0-100) scales the outward burst from the center.
	SpreadDirection float64 `json:"spread_direction" toml:"spread"`

	// BackgroundColor is a "#rrggbb" fill used when Transparent is false.
	BackgroundColor string `json:"background_color" toml:"background"`

	Transparent bool `json:"transparent" toml:"transparent"`

	// Seed fixes the random geometry and velocities. Zero picks a fresh
	// seed when a context is created.
	Seed uint64 `json:"seed" toml:"-"`
}

// DefaultOptions returns the default effect options.
func DefaultOptions() Options {
	return Options{
		PieceCount:      DefaultPieceCount,
		Gravity:         DefaultGravity,
		SpreadDirection: DefaultSpreadDirection,
		BackgroundColor: DefaultBackgroundColor,
		Transparent:     DefaultTransparent,
	}
}

// IsTransparent implements effect.Transparency.
func (o Options) IsTransparent() bool { return o.Transparent }

// Validate checks every option against its accepted range.
func (o Options) Validate() error {
	if err := errors.ValidateRange("piece count", o.PieceCount, MinPieceCount, MaxPieceCount); err != nil {
		return err
	}
	if err := errors.ValidateStep("piece count", float64(o.PieceCount), MinPieceCount, PieceCountStep); err != nil {
		return err
	}
	if err := errors.ValidateRange("gravity", o.Gravity, MinGravity, MaxGravity); err != nil {
		return err
	}
	if err := errors.ValidateStep("gravity", o.Gravity, MinGravity, GravityStep); err != nil {
		return err
	}
	if err := errors.ValidateRange("spread direction", o.SpreadDirection, MinSpread, MaxSpread); err != nil {
		return err
	}
	if err := errors.ValidateStep("spread direction", o.SpreadDirection, MinSpread, SpreadStep); err != nil {
		return err
	}
	if _, err := ParseColor(o.BackgroundColor); err != nil {
		return err
	}
	return nil
}

// ParseColor parses a "#rrggbb" hex color into an opaque RGBA color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid background color %q", hex)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Background returns the fill color, falling back to black for an
// unparsable color. It implements effect.Backgrounder.
func (o Options) Background() color.RGBA {
	c, err := ParseColor(o.BackgroundColor)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
