package source

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/shatter/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		code        errors.Code
	}{
		{"png", "image/png", 1024, ""},
		{"jpeg at limit", "image/jpeg", MaxUploadBytes, ""},
		{"too large", "image/png", MaxUploadBytes + 1, errors.ErrCodeFileTooLarge},
		{"text", "text/plain; charset=utf-8", 10, errors.ErrCodeUnsupportedType},
		{"empty type", "", 10, errors.ErrCodeUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.contentType, tt.size)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	data := encodePNG(t, src)

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Format != "png" || img.ContentType != "image/png" {
		t.Errorf("Format/ContentType = %q/%q, want png/image/png", img.Format, img.ContentType)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("Bounds = %v", img.Bounds())
	}

	if _, err := Decode([]byte("hello, not an image")); !errors.Is(err, errors.ErrCodeUnsupportedType) {
		t.Errorf("text input: err = %v, want UNSUPPORTED_TYPE", err)
	}

	truncated := data[:len(data)/2]
	if _, err := Decode(truncated); !errors.Is(err, errors.ErrCodeDecode) {
		t.Errorf("truncated png: err = %v, want DECODE_FAILED", err)
	}
}

// withDimensions rewrites the IHDR chunk of a PNG to declare w×h.
func withDimensions(data []byte, w, h uint32) []byte {
	out := bytes.Clone(data)
	// 8-byte signature, 4-byte length, "IHDR", then width and height.
	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestDecodeDimensionLimit(t *testing.T) {
	data := encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 4, 4)))

	tests := []struct {
		name string
		w, h uint32
		code errors.Code
	}{
		{"too wide", 30000, 4, errors.ErrCodeDecode},
		{"too tall", 4, MaxImageSide + 1, errors.ErrCodeDecode},
		{"huge", 30000, 30000, errors.ErrCodeDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(withDimensions(data, tt.w, tt.h))
			if !errors.Is(err, tt.code) {
				t.Fatalf("Decode() err = %v, want %s", err, tt.code)
			}
			if !strings.Contains(errors.UserMessage(err), "at most") {
				t.Errorf("message %q should name the limit", errors.UserMessage(err))
			}
		})
	}
}

func TestToRGBARebasesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 9, 7))
	src.Set(5, 5, color.RGBA{R: 255, A: 255})
	out := ToRGBA(src)
	if out.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Fatalf("Bounds = %v, want origin-anchored", out.Bounds())
	}
	if got := out.RGBAAt(0, 0); got.R != 255 {
		t.Errorf("pixel moved: %v", got)
	}
}

func TestLetterbox(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	wide := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			wide.SetRGBA(x, y, red)
		}
	}

	out, err := Letterbox(wide, 64, KernelNearest)
	if err != nil {
		t.Fatalf("Letterbox: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Fatalf("Bounds = %v", out.Bounds())
	}
	// 100x50 scales to 64x32, centered vertically at y in [16, 48).
	tests := []struct {
		x, y  int
		alpha uint8
	}{
		{32, 2, 0},
		{32, 61, 0},
		{0, 32, 255},
		{63, 32, 255},
		{32, 20, 255},
	}
	for _, tt := range tests {
		if got := out.RGBAAt(tt.x, tt.y).A; got != tt.alpha {
			t.Errorf("alpha at (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.alpha)
		}
	}

	if _, err := Letterbox(wide, 0, KernelBilinear); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("size 0: err = %v, want INVALID_OPTION", err)
	}
}

func TestParseKernel(t *testing.T) {
	tests := []struct {
		in      string
		want    Kernel
		wantErr bool
	}{
		{"", DefaultKernel, false},
		{"nearest", KernelNearest, false},
		{"CatmullRom", KernelCatmullRom, false},
		{"lanczos", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKernel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKernel(%q) = %q, %v; want %q, err %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

// premul returns the premultiplied RGBA8 form of a straight color.
func premul(r, g, b, a uint8) color.RGBA {
	return color.RGBAModel.Convert(color.NRGBA{R: r, G: g, B: b, A: a}).(color.RGBA)
}

func TestThresholdAlpha(t *testing.T) {
	tests := []struct {
		name string
		in   color.RGBA
		want color.RGBA
	}{
		{"transparent", color.RGBA{}, color.RGBA{}},
		{"just below cutoff", premul(200, 100, 50, 127), color.RGBA{}},
		{"at cutoff", premul(255, 0, 0, 128), color.RGBA{R: 255, A: 255}},
		{"opaque untouched", color.RGBA{R: 10, G: 20, B: 30, A: 255}, color.RGBA{R: 10, G: 20, B: 30, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 1, 1))
			img.SetRGBA(0, 0, tt.in)
			ThresholdAlpha(img, AlphaCutoff)
			if got := img.RGBAAt(0, 0); got != tt.want {
				t.Errorf("ThresholdAlpha(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestChromaKey(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.SetRGBA(0, 0, color.RGBA{})
	img.SetRGBA(1, 0, premul(0, 0, 255, 100))
	img.SetRGBA(2, 0, premul(0, 0, 255, 200))
	img.SetRGBA(3, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	ChromaKey(img, AlphaCutoff, KeyColor)

	want := []color.RGBA{
		KeyColor,
		KeyColor,
		{B: 255, A: 255},
		{R: 1, G: 2, B: 3, A: 255},
	}
	for x, w := range want {
		if got := img.RGBAAt(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("alpha at byte %d = %d, want 255", i, img.Pix[i])
		}
	}
}
