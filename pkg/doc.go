// Package pkg provides the core libraries for shatter image animations.
//
// # Overview
//
// Shatter turns a still image into a short animation: the picture is cut into
// triangular shards that fall, spin and fade under gravity, and the result is
// written as an animated PNG or GIF. The pkg directory is organized into
// three areas:
//
//  1. Domain logic ([effect], [effect/shatter], [surface], [source])
//  2. Export ([export], [sink], [preview])
//  3. Infrastructure ([pipeline], [cache], [config], [observability], [errors])
//
// # Architecture
//
// The typical data flow through shatter:
//
//	Uploaded image bytes
//	         ↓
//	    [source] package (validate, decode, letterbox)
//	         ↓
//	    [effect/shatter] package (triangulate, simulate, draw)
//	         ↓
//	    [export] package (frame loop onto a [surface] canvas)
//	         ↓
//	    [sink] package (APNG or GIF container)
//
// # Quick Start
//
// Export an image with the default shatter settings:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/shatter/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	opts := pipeline.DefaultOptions()
//	opts.Shatter.Seed = 42
//	res, err := runner.Export(context.Background(), data, opts, nil)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(res.Filename, res.Data, 0o644)
//
// # Main Packages
//
// [effect] - The Renderer contract every effect implements (context creation
// and per-frame drawing) plus the shared seek helper.
//
// [effect/shatter] - The shatter effect: Delaunay triangulation of the source
// area, per-piece physics and shard drawing.
//
// [export] - Lossless (APNG) and Palette (GIF) exporters. Both run the same
// frame loop and differ only in how transparency reaches the sink.
//
// [sink] - Container encoders. The GIF sink quantizes frames concurrently
// and reserves palette index 0 for the transparent key color.
//
// [preview] - A seekable player used by the terminal preview.
//
// [pipeline] - Decode, render and encode in one call, shared by every
// command. Seeded runs are cached through [cache].
//
// [effect]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/effect
// [effect/shatter]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/effect/shatter
// [surface]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/surface
// [source]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/source
// [export]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/export
// [sink]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/sink
// [preview]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/preview
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/shatter/pkg/errors
package pkg
