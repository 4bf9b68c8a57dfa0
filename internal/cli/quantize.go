// Package cli provides the command-line interface for Ochre.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/ochre/internal/colour"
	"github.com/jmylchreest/ochre/internal/image"
)

// newQuantizeCmd creates the quantize command.
func newQuantizeCmd() *cobra.Command {
	var (
		quantizeColours      int
		quantizeMaxDepth     int
		quantizeMaxDimension int
		quantizeOutput       string
	)

	quantizeCmd := &cobra.Command{
		Use:   "quantize <image>",
		Short: "Quantize an image to a fixed number of colours",
		Long: `Quantize an image down to a bounded palette of representative colours.

Every pixel is remapped to its representative colour; the alpha channel is
preserved from the source. The output format follows the output file
extension (.png, .gif, .jpg); GIF output stores the palette directly.

Examples:
  # Quantize to 256 colours (default)
  ochre quantize photo.png

  # Quantize to 16 colours and write a GIF
  ochre quantize --colours 16 --output small.gif photo.png

  # Downscale large images before quantizing
  ochre quantize --max-dimension 1024 wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuantize(cmd, args[0], quantizeColours, quantizeMaxDepth,
				quantizeMaxDimension, quantizeOutput)
		},
	}

	quantizeCmd.Flags().IntVarP(&quantizeColours, "colours", "c", 256, "number of colours in the output (1-256)")
	quantizeCmd.Flags().IntVarP(&quantizeMaxDepth, "max-depth", "d", colour.DefaultMaxDepth, "octree depth limit (1-8)")
	quantizeCmd.Flags().IntVarP(&quantizeMaxDimension, "max-dimension", "m", 0, "downscale so no side exceeds this many pixels (0 = off)")
	quantizeCmd.Flags().StringVarP(&quantizeOutput, "output", "o", "", "output file (default: <input>_quantized.png)")

	return quantizeCmd
}

// runQuantize executes the quantize command.
func runQuantize(cmd *cobra.Command, imagePath string, colours, maxDepth, maxDimension int, output string) error {
	logger := newLogger(cmd)

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	config := colour.QuantiseConfig{
		Colours:  colours,
		MaxDepth: maxDepth,
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if output == "" {
		output = defaultOutputPath(imagePath)
	}

	logger.Debug("loading image", "path", imagePath)
	loader := image.NewSmartLoader()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	if maxDimension > 0 {
		before := img.Bounds()
		img = image.FitWithin(img, maxDimension)
		after := img.Bounds()
		if after != before {
			logger.Debug("image downscaled",
				"from", fmt.Sprintf("%dx%d", before.Dx(), before.Dy()),
				"to", fmt.Sprintf("%dx%d", after.Dx(), after.Dy()))
		}
	}

	result, err := colour.Quantise(img, config)
	if err != nil {
		return fmt.Errorf("failed to quantize image: %w", err)
	}

	if err := image.Save(output, result.Image, result.Indexed); err != nil {
		return fmt.Errorf("failed to save output image: %w", err)
	}

	bounds := result.Image.Bounds()
	logger.Info("image quantized",
		"path", output,
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"colours", result.Palette.Len())
	return nil
}

// defaultOutputPath derives an output filename from the input path. Remote
// URLs fall back to a fixed name in the working directory.
func defaultOutputPath(imagePath string) string {
	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return "quantized.png"
	}
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + "_quantized.png"
}
