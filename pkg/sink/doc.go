// Package sink encodes rendered animation frames into animated image files.
//
// # Overview
//
// A "sink" takes the frame buffers produced by an exporter and multiplexes
// them into a single file:
//
//   - APNG: lossless, true per-pixel alpha ([RenderAPNG])
//   - GIF: 8-bit palette per frame, at most one transparent index ([RenderGIF])
//
// Both take a slice of [Frame] values. Delays are per frame in milliseconds;
// each sink converts them to its container's unit.
//
// # GIF Transparency
//
// GIF has no alpha channel. Callers mark transparent pixels by painting them
// with a key color (see [WithTransparentKey]). The GIF sink reserves palette
// index 0 of every frame for that key, maps exact key pixels to it and
// declares it the transparent index. Without a key, index 0 holds the
// background color given by [WithBackground].
//
// # Concurrency
//
// Palette quantization runs on a fixed pool of workers ([WithWorkers]);
// [WithProgress] reports completed frames from those workers, serialized.
package sink

import "image"

// Frame is one animation frame.
type Frame struct {
	Image   *image.RGBA
	DelayMS int
}
