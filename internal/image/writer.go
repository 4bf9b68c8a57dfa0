// Package image provides utilities for loading, resizing and saving images.
package image

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// jpegQuality is used for JPEG output.
const jpegQuality = 90

// Save encodes img to path, choosing the encoder from the file extension.
// Supported extensions: .png, .gif, .jpg, .jpeg. For GIF output, pass the
// palette-indexed form of the image as indexed so the palette is stored
// directly; a nil indexed falls back to the stdlib encoder's own quantization.
func Save(path string, img image.Image, indexed *image.Paletted) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	file, err := os.Create(path) // #nosec G304 - User-specified output path, intended to be written
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(file, img)
	case ".gif":
		if indexed != nil {
			err = gif.Encode(file, indexed, nil)
		} else {
			err = gif.Encode(file, img, &gif.Options{NumColors: 256})
		}
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: jpegQuality})
	default:
		return fmt.Errorf("unsupported output format: %s (supported: .png, .gif, .jpg, .jpeg)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FitWithin downscales img so that neither dimension exceeds maxDim,
// preserving the aspect ratio. Images already within the bound, or a
// non-positive maxDim, return img unchanged. Downscaling uses Lanczos
// resampling.
func FitWithin(img image.Image, maxDim int) image.Image {
	if img == nil || maxDim <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}
