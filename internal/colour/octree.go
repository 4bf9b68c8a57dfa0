// Package colour provides colour quantization and palette generation functionality.
package colour

import "fmt"

// DefaultMaxDepth is the standard octree depth for 8-bit colour channels:
// one tree level per channel bit.
const DefaultMaxDepth = 8

// nodeID indexes a node within the quantizer's arena. The root is always
// index 0; nilNode marks an empty child slot.
type nodeID int32

const nilNode nodeID = -1

// octreeNode accumulates channel sums and a pixel count for the colours routed
// through it. A node is a leaf iff pixels > 0: either it was created at the
// maximum depth and absorbed colours directly, or a reduction folded its
// children's state into it.
type octreeNode struct {
	red, green, blue uint64
	pixels           uint64
	paletteIndex     int
	children         [8]nodeID
}

// OctreeQuantizer summarises a colour distribution in a bounded-depth octree,
// reduces it in place to a bounded number of representative colours, and maps
// arbitrary colours to palette indices by tree descent.
//
// Usage is strictly phased: all AddColor calls first, exactly one BuildPalette
// call next, PaletteIndex lookups last. The quantizer is not safe for
// concurrent use.
type OctreeQuantizer struct {
	maxDepth int
	nodes    []octreeNode

	// levels holds, per depth, every reducible node created at that depth in
	// creation order. Leaves at the maximum depth are never reduced and are
	// not registered. Entries are consumed bottom-up by BuildPalette.
	levels [][]nodeID

	palette       []RGB
	paletteCounts []uint64
	built         bool
}

// NewOctreeQuantizer creates a quantizer with the given tree depth limit.
// The depth must be between 1 and 8; use DefaultMaxDepth for standard 8-bit
// channels.
func NewOctreeQuantizer(maxDepth int) (*OctreeQuantizer, error) {
	if maxDepth < 1 || maxDepth > DefaultMaxDepth {
		return nil, fmt.Errorf("max depth must be between 1 and %d, got %d", DefaultMaxDepth, maxDepth)
	}
	q := &OctreeQuantizer{
		maxDepth: maxDepth,
		nodes:    make([]octreeNode, 0, 64),
		levels:   make([][]nodeID, maxDepth),
	}
	q.newNode(0)
	return q, nil
}

// newNode appends a fresh node to the arena and registers it in the level
// registry for its depth. Nodes at the maximum depth absorb colours directly
// and are never reduced, so they stay unregistered.
func (q *OctreeQuantizer) newNode(level int) nodeID {
	id := nodeID(len(q.nodes))
	n := octreeNode{}
	for i := range n.children {
		n.children[i] = nilNode
	}
	q.nodes = append(q.nodes, n)
	if level < q.maxDepth {
		q.levels[level] = append(q.levels[level], id)
	}
	return id
}

// branchIndex selects the child slot for c at the given depth: one bit from
// each channel, red into bit 2, green into bit 1 and blue into bit 0. Shallow
// levels consume the most significant channel bits, so sibling subtrees near
// the root cover coarse colour regions and deeper levels refine within them.
func branchIndex(c RGB, level int) int {
	mask := uint8(0x80) >> level
	index := 0
	if c.R&mask != 0 {
		index |= 4
	}
	if c.G&mask != 0 {
		index |= 2
	}
	if c.B&mask != 0 {
		index |= 1
	}
	return index
}

// AddColor routes c to its maximum-depth leaf, creating nodes along the path
// as needed, and accumulates the channel values there. Identical colours
// always collapse into the same leaf; similar colours share ancestors
// increasingly deep into the tree.
func (q *OctreeQuantizer) AddColor(c RGB) {
	id := nodeID(0)
	for level := 0; level < q.maxDepth; level++ {
		index := branchIndex(c, level)
		child := q.nodes[id].children[index]
		if child == nilNode {
			child = q.newNode(level + 1)
			q.nodes[id].children[index] = child
		}
		id = child
	}
	leaf := &q.nodes[id]
	leaf.red += uint64(c.R)
	leaf.green += uint64(c.G)
	leaf.blue += uint64(c.B)
	leaf.pixels++
}

// reduce folds every existing child of id into id, turning it into a leaf.
// Returns the net decrease in total leaf count: children folded minus the one
// leaf created.
func (q *OctreeQuantizer) reduce(id nodeID) int {
	folded := 0
	n := &q.nodes[id]
	for _, child := range n.children {
		if child == nilNode {
			continue
		}
		c := &q.nodes[child]
		n.red += c.red
		n.green += c.green
		n.blue += c.blue
		n.pixels += c.pixels
		folded++
	}
	return folded - 1
}

// leafNodes returns the current leaves in deterministic order: children are
// visited in slot order 0..7 and descent stops at the first leaf on each path,
// so a reduced node hides the children it absorbed. A fully collapsed tree
// yields the root as its single leaf.
func (q *OctreeQuantizer) leafNodes() []nodeID {
	if q.nodes[0].pixels > 0 {
		return []nodeID{0}
	}
	var leaves []nodeID
	var walk func(nodeID)
	walk = func(id nodeID) {
		for _, child := range q.nodes[id].children {
			if child == nilNode {
				continue
			}
			if q.nodes[child].pixels > 0 {
				leaves = append(leaves, child)
			} else {
				walk(child)
			}
		}
	}
	walk(0)
	return leaves
}

// averageColor returns the per-channel floor average of every colour folded
// into the leaf.
func (q *OctreeQuantizer) averageColor(id nodeID) (RGB, error) {
	n := q.nodes[id]
	if n.pixels == 0 {
		return RGB{}, fmt.Errorf("octree node has no pixels to average")
	}
	return RGB{
		R: uint8(n.red / n.pixels),
		G: uint8(n.green / n.pixels),
		B: uint8(n.blue / n.pixels),
	}, nil
}

// BuildPalette irreversibly reduces the tree to at most targetCount leaves and
// returns their average colours in leaf enumeration order. Reduction runs
// deepest level first, within a level in node creation order, and stops
// mid-level as soon as the leaf count reaches the target, so coarse merges
// only happen when fine-grained merges were insufficient. Because up to 8
// leaves collapse at once the palette may fall short of targetCount by as
// many as 7 entries.
//
// BuildPalette must be called after all AddColor calls and at most once.
func (q *OctreeQuantizer) BuildPalette(targetCount int) ([]RGB, error) {
	if targetCount <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", targetCount)
	}
	if q.built {
		return nil, fmt.Errorf("palette has already been built")
	}
	leafCount := len(q.leafNodes())
	if leafCount == 0 {
		return nil, fmt.Errorf("no colours have been added")
	}

	for level := q.maxDepth - 1; level >= 0; level-- {
		if len(q.levels[level]) == 0 {
			continue
		}
		for _, id := range q.levels[level] {
			leafCount -= q.reduce(id)
			if leafCount <= targetCount {
				break
			}
		}
		if leafCount <= targetCount {
			break
		}
		q.levels[level] = nil
	}

	palette := make([]RGB, 0, targetCount)
	counts := make([]uint64, 0, targetCount)
	for _, id := range q.leafNodes() {
		if len(palette) >= targetCount {
			break
		}
		avg, err := q.averageColor(id)
		if err != nil {
			return nil, err
		}
		q.nodes[id].paletteIndex = len(palette)
		palette = append(palette, avg)
		counts = append(counts, q.nodes[id].pixels)
	}
	q.palette = palette
	q.paletteCounts = counts
	q.built = true
	return palette, nil
}

// PaletteIndex returns the palette slot for c by descending the reduced tree.
// When c never traversed a branch during ingestion the descent falls back to
// the first existing child slot in index order, an approximation rather than
// a true nearest-colour search.
//
// Valid only after BuildPalette has run.
func (q *OctreeQuantizer) PaletteIndex(c RGB) (int, error) {
	if !q.built {
		return 0, fmt.Errorf("palette has not been built")
	}
	id := nodeID(0)
	for level := 0; ; level++ {
		n := &q.nodes[id]
		if n.pixels > 0 {
			return n.paletteIndex, nil
		}
		next := n.children[branchIndex(c, level)]
		if next == nilNode {
			for _, child := range n.children {
				if child != nilNode {
					next = child
					break
				}
			}
		}
		if next == nilNode {
			return 0, fmt.Errorf("octree node at depth %d has neither pixels nor children", level)
		}
		id = next
	}
}

// PaletteWeights returns each palette entry's share of the pixels it
// represents, normalised to sum to 1 across the palette.
func (q *OctreeQuantizer) PaletteWeights() ([]float64, error) {
	if !q.built {
		return nil, fmt.Errorf("palette has not been built")
	}
	var total uint64
	for _, c := range q.paletteCounts {
		total += c
	}
	weights := make([]float64, len(q.paletteCounts))
	if total == 0 {
		return weights, nil
	}
	for i, c := range q.paletteCounts {
		weights[i] = float64(c) / float64(total)
	}
	return weights, nil
}
