// Package colour provides colour quantization and palette generation functionality.
package colour

import (
	"image"
	"image/color"
	"testing"
)

func TestQuantiseConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  QuantiseConfig
		wantErr bool
	}{
		{name: "default", config: DefaultQuantiseConfig(), wantErr: false},
		{name: "minimum", config: QuantiseConfig{Colours: 1, MaxDepth: 1}, wantErr: false},
		{name: "zero colours", config: QuantiseConfig{Colours: 0, MaxDepth: 8}, wantErr: true},
		{name: "too many colours", config: QuantiseConfig{Colours: 300, MaxDepth: 8}, wantErr: true},
		{name: "zero depth", config: QuantiseConfig{Colours: 16, MaxDepth: 0}, wantErr: true},
		{name: "excess depth", config: QuantiseConfig{Colours: 16, MaxDepth: 9}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestQuantiseInvalidInput(t *testing.T) {
	if _, err := Quantise(nil, DefaultQuantiseConfig()); err == nil {
		t.Error("expected error for nil image")
	}

	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := Quantise(empty, DefaultQuantiseConfig()); err == nil {
		t.Error("expected error for empty image")
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if _, err := Quantise(img, QuantiseConfig{Colours: 0, MaxDepth: 8}); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestQuantiseRemapsToPalette(t *testing.T) {
	// 16 distinct shades, quantized down to at most 4.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(16 * (4*y + x))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	result, err := Quantise(img, QuantiseConfig{Colours: 4, MaxDepth: 8})
	if err != nil {
		t.Fatalf("Quantise: %v", err)
	}

	if result.Palette.Len() == 0 || result.Palette.Len() > 4 {
		t.Fatalf("palette size = %d, want 1-4", result.Palette.Len())
	}

	allowed := make(map[RGB]bool)
	for _, c := range result.Palette.Colors {
		allowed[ToRGB(c)] = true
	}
	bounds := result.Image.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			got := ToRGB(result.Image.At(x, y))
			if !allowed[got] {
				t.Errorf("pixel (%d, %d) = %v is not a palette colour", x, y, got)
			}
		}
	}

	if len(result.Indexed.Palette) != result.Palette.Len() {
		t.Errorf("indexed palette size = %d, want %d", len(result.Indexed.Palette), result.Palette.Len())
	}
}

func TestQuantisePreservesAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})

	result, err := Quantise(img, QuantiseConfig{Colours: 16, MaxDepth: 8})
	if err != nil {
		t.Fatalf("Quantise: %v", err)
	}

	if a := result.Image.NRGBAAt(0, 0).A; a != 255 {
		t.Errorf("opaque pixel alpha = %d, want 255", a)
	}
	if a := result.Image.NRGBAAt(1, 0).A; a != 0 {
		t.Errorf("transparent pixel alpha = %d, want 0", a)
	}
}

// TestQuantiseSemiTransparentColours verifies that a half-transparent pixel
// trains and remaps as its stored colour, not the alpha-darkened one.
func TestQuantiseSemiTransparentColours(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})

	result, err := Quantise(img, QuantiseConfig{Colours: 4, MaxDepth: 8})
	if err != nil {
		t.Fatalf("Quantise: %v", err)
	}

	// Both pixels share one leaf, so the palette has a single pure red entry.
	if got := result.Palette.Len(); got != 1 {
		t.Fatalf("palette size = %d, want 1", got)
	}
	want := RGB{R: 255, G: 0, B: 0}
	if got := ToRGB(result.Palette.Colors[0]); got != want {
		t.Errorf("palette entry = %+v, want %+v", got, want)
	}

	got := result.Image.NRGBAAt(0, 0)
	if (RGB{R: got.R, G: got.G, B: got.B}) != want {
		t.Errorf("semi-transparent pixel remapped to %+v, want %+v", got, want)
	}
	if got.A != 128 {
		t.Errorf("semi-transparent pixel alpha = %d, want 128", got.A)
	}
}

func TestQuantiseDeterministic(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(40 * x), G: uint8(40 * y), B: uint8(30 * (x + y)), A: 255,
			})
		}
	}

	first, err := Quantise(img, QuantiseConfig{Colours: 4, MaxDepth: 8})
	if err != nil {
		t.Fatalf("Quantise: %v", err)
	}
	second, err := Quantise(img, QuantiseConfig{Colours: 4, MaxDepth: 8})
	if err != nil {
		t.Fatalf("Quantise: %v", err)
	}

	if first.Palette.Len() != second.Palette.Len() {
		t.Fatalf("palette sizes differ: %d vs %d", first.Palette.Len(), second.Palette.Len())
	}
	for i := range first.Palette.Colors {
		if ToRGB(first.Palette.Colors[i]) != ToRGB(second.Palette.Colors[i]) {
			t.Errorf("palette entry %d differs between runs", i)
		}
	}
	for i := range first.Indexed.Pix {
		if first.Indexed.Pix[i] != second.Indexed.Pix[i] {
			t.Fatalf("indexed pixel %d differs between runs", i)
		}
	}
}
