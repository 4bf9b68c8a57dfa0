// Package cli provides the command-line interface for Ochre.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/ochre/internal/colour"
	"github.com/jmylchreest/ochre/internal/image"
)

// newPaletteCmd creates the palette command.
func newPaletteCmd() *cobra.Command {
	var (
		paletteColours    int
		paletteAlgorithm  string
		paletteFormat     string
		paletteSort       string
		paletteOutput     string
		palettePreview    bool
	)

	paletteCmd := &cobra.Command{
		Use:   "palette <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a colour palette from an image using octree quantization.

Every pixel contributes to the palette, so the result reflects the full
colour distribution of the image. The palette can be printed as hex codes,
RGB values, or JSON (including each colour's pixel share).

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 16 colours (default) from an image
  ochre palette wallpaper.jpg

  # Extract 8 colours with terminal swatches
  ochre palette --preview --colours 8 wallpaper.png

  # Extract colours sorted by hue and output as JSON
  ochre palette --sort hue --format json wallpaper.jpg

  # Extract colours from a URL and save to a file
  ochre palette --output palette.txt https://example.com/wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd, args[0], paletteColours, paletteAlgorithm,
				paletteFormat, paletteSort, paletteOutput, palettePreview)
		},
	}

	paletteCmd.Flags().IntVarP(&paletteColours, "colours", "c", 16, "number of colours to extract (1-256)")
	paletteCmd.Flags().StringVarP(&paletteAlgorithm, "algorithm", "a", "octree", "extraction algorithm (octree)")
	paletteCmd.Flags().StringVarP(&paletteFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	paletteCmd.Flags().StringVarP(&paletteSort, "sort", "s", "none", "colour order (none, hue, luminance)")
	paletteCmd.Flags().StringVarP(&paletteOutput, "output", "o", "", "output file (default: stdout)")
	paletteCmd.Flags().BoolVar(&palettePreview, "preview", false, "show colour swatches in terminal output")

	return paletteCmd
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, imagePath string, colours int, algorithm, format, sortOrder, output string, preview bool) error {
	logger := newLogger(cmd)

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	config := colour.ExtractorConfig{
		Algorithm:  colour.Algorithm(algorithm),
		ColorCount: colours,
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("loading image", "path", imagePath)
	loader := image.NewSmartLoader()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	extractor, err := colour.NewExtractor(config.Algorithm)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	palette, err := extractor.Extract(img, colours)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Debug("palette extracted", "colours", palette.Len())

	palette, err = palette.Sorted(colour.SortOrder(sortOrder))
	if err != nil {
		return err
	}

	// Swatches only make sense on a terminal unless output goes to a file.
	swatch := preview && output == "" && term.IsTerminal(int(os.Stdout.Fd()))

	formatted, err := formatPalette(palette, format, swatch)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(formatted), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("palette written", "path", output, "colours", palette.Len())
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), formatted)
	return nil
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showSwatch bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showSwatch), nil
	case "rgb":
		return formatRGB(palette, showSwatch), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}

// formatHex formats the palette as hex colour codes.
func formatHex(palette *colour.Palette, showSwatch bool) string {
	output := ""
	for _, rgb := range palette.ToRGBSlice() {
		if showSwatch {
			output += colour.FormatColourWithPreview(rgb, 8) + "\n"
		} else {
			output += rgb.Hex() + "\n"
		}
	}
	return output
}

// formatRGB formats the palette as RGB values.
func formatRGB(palette *colour.Palette, showSwatch bool) string {
	output := ""
	for _, rgb := range palette.ToRGBSlice() {
		if showSwatch {
			output += colour.FormatColourWithPreview(rgb, 8) + "  " + rgb.String() + "\n"
		} else {
			output += rgb.String() + "\n"
		}
	}
	return output
}
