// Package colour provides colour quantization and palette generation functionality.
package colour

import (
	"fmt"
	"image"
	"image/color"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image.
	// The count parameter specifies the maximum number of colours to extract.
	Extract(img image.Image, count int) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmOctree uses adaptive octree quantization for colour extraction.
	AlgorithmOctree Algorithm = "octree"

	// AlgorithmMedianCut uses the median cut algorithm for colour extraction.
	// Not yet implemented - placeholder for future.
	AlgorithmMedianCut Algorithm = "mediancut"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmOctree,
		// Future algorithms will be added here
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor based on the specified algorithm.
// Returns an error if the algorithm is not recognized or not yet implemented.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmOctree:
		return NewOctreeExtractor(), nil
	case AlgorithmMedianCut:
		return nil, fmt.Errorf("median cut algorithm not yet implemented")
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmOctree,
		ColorCount: 16,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.ColorCount < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.ColorCount)
	}
	if c.ColorCount > 256 {
		return fmt.Errorf("colour count too large: %d (maximum: 256)", c.ColorCount)
	}
	return nil
}

// OctreeExtractor implements colour extraction backed by the octree quantizer.
// Every pixel contributes to the tree, so the resulting palette reflects the
// full colour distribution of the image.
type OctreeExtractor struct {
	maxDepth int
}

// NewOctreeExtractor creates a new OctreeExtractor with the default tree depth.
func NewOctreeExtractor() *OctreeExtractor {
	return &OctreeExtractor{
		maxDepth: DefaultMaxDepth,
	}
}

// Extract extracts colours from an image using octree quantization.
// Returns colours with their relative weights (pixel shares).
func (e *OctreeExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("colour count too large: %d (maximum: 256)", count)
	}

	quantizer, err := NewOctreeQuantizer(e.maxDepth)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("no pixels found in image")
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			quantizer.AddColor(ToRGB(img.At(x, y)))
		}
	}

	entries, err := quantizer.BuildPalette(count)
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}
	weights, err := quantizer.PaletteWeights()
	if err != nil {
		return nil, err
	}

	colors := make([]color.Color, len(entries))
	for i, rgb := range entries {
		colors[i] = RGBToColor(rgb)
	}

	return NewPaletteWithWeights(colors, weights), nil
}
