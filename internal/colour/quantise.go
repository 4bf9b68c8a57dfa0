// Package colour provides colour quantization and palette generation functionality.
package colour

import (
	"fmt"
	"image"
	"image/color"
)

// QuantiseConfig configures a whole-image quantization pass.
type QuantiseConfig struct {
	// Colours is the maximum palette size (1-256).
	Colours int

	// MaxDepth is the octree depth limit (1-8). Deeper trees separate similar
	// colours more finely before reduction.
	MaxDepth int
}

// DefaultQuantiseConfig returns the default quantization configuration:
// 256 colours for 8 bits per pixel output.
func DefaultQuantiseConfig() QuantiseConfig {
	return QuantiseConfig{
		Colours:  256,
		MaxDepth: DefaultMaxDepth,
	}
}

// Validate validates the quantization configuration.
func (c QuantiseConfig) Validate() error {
	if c.Colours < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.Colours)
	}
	if c.Colours > 256 {
		return fmt.Errorf("colour count too large: %d (maximum: 256)", c.Colours)
	}
	if c.MaxDepth < 1 || c.MaxDepth > DefaultMaxDepth {
		return fmt.Errorf("max depth must be between 1 and %d, got %d", DefaultMaxDepth, c.MaxDepth)
	}
	return nil
}

// QuantisedImage is the result of remapping an image onto a reduced palette.
type QuantisedImage struct {
	// Image holds the palette colours with the source alpha channel reattached.
	Image *image.NRGBA

	// Indexed holds the palette-indexed pixels; alpha is discarded.
	Indexed *image.Paletted

	// Palette holds the representative colours with their pixel shares.
	Palette *Palette
}

// Quantise reduces img to at most cfg.Colours representative colours and
// remaps every pixel to its representative. Each source pixel's alpha value
// is carried over to the output unchanged.
func Quantise(img image.Image, cfg QuantiseConfig) (*QuantisedImage, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("no pixels found in image")
	}

	quantizer, err := NewOctreeQuantizer(cfg.MaxDepth)
	if err != nil {
		return nil, err
	}

	// Phase 1: stream every pixel into the tree.
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			quantizer.AddColor(ToRGB(img.At(x, y)))
		}
	}

	// Phase 2: reduce to the palette.
	entries, err := quantizer.BuildPalette(cfg.Colours)
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}
	weights, err := quantizer.PaletteWeights()
	if err != nil {
		return nil, err
	}

	stdPalette := make(color.Palette, len(entries))
	colors := make([]color.Color, len(entries))
	for i, rgb := range entries {
		c := color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
		stdPalette[i] = c
		colors[i] = c
	}

	// Phase 3: look up every pixel and write its representative back.
	out := image.NewNRGBA(bounds)
	indexed := image.NewPaletted(bounds, stdPalette)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			src := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			index, err := quantizer.PaletteIndex(RGB{R: src.R, G: src.G, B: src.B})
			if err != nil {
				return nil, fmt.Errorf("failed to map pixel (%d, %d): %w", x, y, err)
			}
			rgb := entries[index]
			out.SetNRGBA(x, y, color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: src.A})
			indexed.SetColorIndex(x, y, uint8(index))
		}
	}

	return &QuantisedImage{
		Image:   out,
		Indexed: indexed,
		Palette: NewPaletteWithWeights(colors, weights),
	}, nil
}
