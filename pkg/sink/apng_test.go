package sink

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/kettek/apng"

	"github.com/matzehuels/shatter/pkg/errors"
)

func solidFrame(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderAPNG(t *testing.T) {
	frames := []Frame{
		{Image: solidFrame(4, 4, color.NRGBA{R: 255, A: 200}), DelayMS: 33},
		{Image: solidFrame(4, 4, color.NRGBA{G: 255, A: 255}), DelayMS: 33},
		{Image: solidFrame(4, 4, color.NRGBA{}), DelayMS: 33},
	}

	data, err := RenderAPNG(frames)
	if err != nil {
		t.Fatalf("RenderAPNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("output is not a PNG stream")
	}

	a, err := apng.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(a.Frames) != len(frames) {
		t.Fatalf("decoded %d frames, want %d", len(a.Frames), len(frames))
	}
	for i, f := range a.Frames {
		if f.DelayNumerator != 33 || f.DelayDenominator != 1000 {
			t.Errorf("frame %d delay = %d/%d, want 33/1000", i, f.DelayNumerator, f.DelayDenominator)
		}
	}

	got := color.NRGBAModel.Convert(a.Frames[0].Image.At(1, 1)).(color.NRGBA)
	if got.A != 200 || got.R != 255 {
		t.Errorf("semi-transparent pixel = %v, want R 255 A 200", got)
	}
	if _, _, _, alpha := a.Frames[2].Image.At(0, 0).RGBA(); alpha != 0 {
		t.Errorf("transparent frame alpha = %d, want 0", alpha)
	}
}

func TestRenderAPNGErrors(t *testing.T) {
	tests := []struct {
		name   string
		frames []Frame
	}{
		{"no frames", nil},
		{"mismatched bounds", []Frame{
			{Image: solidFrame(2, 2, color.Black), DelayMS: 10},
			{Image: solidFrame(3, 3, color.Black), DelayMS: 10},
		}},
		{"negative delay", []Frame{{Image: solidFrame(2, 2, color.Black), DelayMS: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RenderAPNG(tt.frames); !errors.Is(err, errors.ErrCodeEncode) {
				t.Errorf("err = %v, want ENCODE_FAILED", err)
			}
		})
	}
}
