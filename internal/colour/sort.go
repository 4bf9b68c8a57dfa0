// Package colour provides colour quantization and palette generation functionality.
package colour

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// SortOrder selects how palette colours are ordered for output.
type SortOrder string

const (
	// SortNone preserves the quantizer's leaf enumeration order.
	SortNone SortOrder = "none"

	// SortHue orders colours by HSV hue angle.
	SortHue SortOrder = "hue"

	// SortLuminance orders colours dark to light by CIE lightness.
	SortLuminance SortOrder = "luminance"
)

// ValidSortOrders returns a list of valid sort order names.
func ValidSortOrders() []SortOrder {
	return []SortOrder{SortNone, SortHue, SortLuminance}
}

// Sorted returns a copy of the palette with colours ordered by the given key.
// Weights follow their colours. An empty order is treated as SortNone.
func (p *Palette) Sorted(order SortOrder) (*Palette, error) {
	var key func(colorful.Color) float64
	switch order {
	case SortNone, "":
		key = nil
	case SortHue:
		key = func(c colorful.Color) float64 {
			h, _, _ := c.Hsv()
			return h
		}
	case SortLuminance:
		key = func(c colorful.Color) float64 {
			l, _, _ := c.Lab()
			return l
		}
	default:
		return nil, fmt.Errorf("unknown sort order: %s (valid orders: %v)", order, ValidSortOrders())
	}

	indices := make([]int, len(p.Colors))
	for i := range indices {
		indices[i] = i
	}

	if key != nil {
		keys := make([]float64, len(p.Colors))
		for i, c := range p.Colors {
			cf, ok := colorful.MakeColor(c)
			if !ok {
				// Fully transparent colours have no meaningful position; sort first.
				keys[i] = -1
				continue
			}
			keys[i] = key(cf)
		}
		sort.SliceStable(indices, func(a, b int) bool {
			return keys[indices[a]] < keys[indices[b]]
		})
	}

	sorted := &Palette{
		Colors: make([]color.Color, len(p.Colors)),
	}
	if len(p.Weights) == len(p.Colors) {
		sorted.Weights = make([]float64, len(p.Colors))
	}
	for dst, src := range indices {
		sorted.Colors[dst] = p.Colors[src]
		if sorted.Weights != nil {
			sorted.Weights[dst] = p.Weights[src]
		}
	}
	return sorted, nil
}
