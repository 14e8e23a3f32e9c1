package source

import (
	"image"
	"image/color"
)

// AlphaCutoff is the alpha below which a pixel counts as transparent when a
// format only supports binary transparency.
const AlphaCutoff = 128

// KeyColor stands in for transparent pixels in palette output. Pure green is
// implausible in real content.
var KeyColor = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}

// ThresholdAlpha makes img binary-transparent in place: pixels with alpha
// below cutoff become transparent black, every other pixel becomes fully
// opaque with its straight (non-premultiplied) color.
func ThresholdAlpha(img *image.RGBA, cutoff uint8) {
	forEachPixel(img, func(px []uint8) {
		if px[3] < cutoff {
			px[0], px[1], px[2], px[3] = 0, 0, 0, 0
			return
		}
		opaque(px)
	})
}

// ChromaKey prepares a rendered frame for a palette encoder in place: pixels
// with alpha below cutoff become key, every other pixel becomes fully opaque.
// The result has no partially or fully transparent pixels.
func ChromaKey(img *image.RGBA, cutoff uint8, key color.RGBA) {
	forEachPixel(img, func(px []uint8) {
		if px[3] < cutoff {
			px[0], px[1], px[2], px[3] = key.R, key.G, key.B, 0xff
			return
		}
		opaque(px)
	})
}

// opaque un-premultiplies px and forces alpha to 255.
func opaque(px []uint8) {
	a := uint32(px[3])
	switch a {
	case 0xff:
	case 0:
		px[3] = 0xff
	default:
		px[0] = uint8((uint32(px[0])*0xff + a/2) / a)
		px[1] = uint8((uint32(px[1])*0xff + a/2) / a)
		px[2] = uint8((uint32(px[2])*0xff + a/2) / a)
		px[3] = 0xff
	}
}

func forEachPixel(img *image.RGBA, fn func(px []uint8)) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			i := row + 4*x
			fn(img.Pix[i : i+4 : i+4])
		}
	}
}
