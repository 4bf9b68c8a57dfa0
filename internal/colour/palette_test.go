// Package colour provides colour quantization and palette generation functionality.
package colour

import (
	"encoding/json"
	"image/color"
	"testing"
)

func TestNewPalette(t *testing.T) {
	colors := []color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
		color.RGBA{R: 0, G: 255, B: 0, A: 255},
		color.RGBA{R: 0, G: 0, B: 255, A: 255},
	}

	palette := NewPalette(colors)

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}

	if palette.Len() != 3 {
		t.Errorf("Expected palette length 3, got %d", palette.Len())
	}
}

func TestNewPaletteWithWeights(t *testing.T) {
	colors := []color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
		color.RGBA{R: 0, G: 255, B: 0, A: 255},
	}

	tests := []struct {
		name        string
		weights     []float64
		wantWeights bool
	}{
		{name: "matching weights", weights: []float64{0.75, 0.25}, wantWeights: true},
		{name: "mismatched weights dropped", weights: []float64{1.0}, wantWeights: false},
		{name: "nil weights", weights: nil, wantWeights: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			palette := NewPaletteWithWeights(colors, tt.weights)
			if tt.wantWeights && len(palette.Weights) != len(colors) {
				t.Errorf("Expected %d weights, got %d", len(colors), len(palette.Weights))
			}
			if !tt.wantWeights && palette.Weights != nil {
				t.Errorf("Expected no weights, got %v", palette.Weights)
			}
		})
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "black",
			color: color.RGBA{R: 0, G: 0, B: 0, A: 255},
			want:  RGB{R: 0, G: 0, B: 0},
		},
		{
			name:  "mid grey",
			color: color.RGBA{R: 128, G: 128, B: 128, A: 255},
			want:  RGB{R: 128, G: 128, B: 128},
		},
		{
			name:  "semi-transparent red keeps stored channels",
			color: color.NRGBA{R: 255, G: 0, B: 0, A: 128},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "premultiplied source is un-premultiplied",
			color: color.RGBA{R: 128, G: 0, B: 0, A: 128},
			want:  RGB{R: 255, G: 0, B: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGB(tt.color)
			if got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: "#ff0000"},
		{name: "black", rgb: RGB{R: 0, G: 0, B: 0}, want: "#000000"},
		{name: "mixed", rgb: RGB{R: 26, G: 43, B: 60}, want: "#1a2b3c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPaletteToHex(t *testing.T) {
	palette := NewPalette([]color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
		color.RGBA{R: 0, G: 0, B: 255, A: 255},
	})

	got := palette.ToHex()
	want := []string{"#ff0000", "#0000ff"}
	if len(got) != len(want) {
		t.Fatalf("ToHex() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToHex()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPaletteToJSON(t *testing.T) {
	palette := NewPaletteWithWeights(
		[]color.Color{
			color.RGBA{R: 255, G: 0, B: 0, A: 255},
			color.RGBA{R: 0, G: 255, B: 0, A: 255},
		},
		[]float64{0.6, 0.4},
	)

	data, err := palette.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if decoded.Count != 2 {
		t.Errorf("Count = %d, want 2", decoded.Count)
	}
	if decoded.Colors[0].Hex != "#ff0000" {
		t.Errorf("Colors[0].Hex = %q, want %q", decoded.Colors[0].Hex, "#ff0000")
	}
	if decoded.Colors[0].Weight != 0.6 {
		t.Errorf("Colors[0].Weight = %f, want 0.6", decoded.Colors[0].Weight)
	}
}

func TestPaletteGet(t *testing.T) {
	palette := NewPalette([]color.Color{
		color.RGBA{R: 255, G: 0, B: 0, A: 255},
	})

	c, err := palette.Get(0)
	if err != nil {
		t.Fatalf("Get(0) error: %v", err)
	}
	if ToRGB(c) != (RGB{R: 255, G: 0, B: 0}) {
		t.Errorf("Get(0) = %v, want red", c)
	}

	if _, err := palette.Get(1); err == nil {
		t.Error("Get(1) expected out-of-bounds error, got nil")
	}
	if _, err := palette.Get(-1); err == nil {
		t.Error("Get(-1) expected out-of-bounds error, got nil")
	}
}
