package errors

import (
	"testing"
)

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		wantErr bool
	}{
		{"lower bound", 0.5, false},
		{"upper bound", 3.0, false},
		{"inside", 1.7, false},
		{"below", 0.4, true},
		{"above", 3.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("gravity", tt.v, 0.5, 3.0)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOption) {
				t.Errorf("ValidateRange error code = %v, want %v", GetCode(err), ErrCodeInvalidOption)
			}
		})
	}
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		lo      float64
		step    float64
		wantErr bool
	}{
		{"pieces on step", 80, 30, 10, false},
		{"pieces off step", 85, 30, 10, true},
		{"spread on step", 55, 0, 5, false},
		{"spread off step", 52, 0, 5, true},
		{"fractional step", 0.8, 0.5, 0.1, false},
		{"zero step ignored", 3, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStep("value", tt.v, tt.lo, tt.step)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStep(%v, %v, %v) error = %v, wantErr %v", tt.v, tt.lo, tt.step, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOneOf(t *testing.T) {
	if err := ValidateOneOf("size", 128, 64, 128, 256); err != nil {
		t.Errorf("128 should be allowed: %v", err)
	}
	err := ValidateOneOf("size", 100, 64, 128, 256)
	if err == nil {
		t.Fatal("100 should be rejected")
	}
	want := "invalid size: 100 (must be one of: 64, 128, 256)"
	if UserMessage(err) != want {
		t.Errorf("UserMessage() = %q, want %q", UserMessage(err), want)
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "animated-effect-64x64-1700000000000.png", false},
		{"valid with dir", "out/shatter.gif", false},
		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"control char", "foo\x01.png", true},
		{"newline", "foo\n.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
