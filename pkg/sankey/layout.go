package sankey

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// collisionEpsilon is the smallest node displacement worth applying during
// collision resolution; anything below it is treated as converged.
const collisionEpsilon = 1e-6

// Layout computes the full diagram geometry for g in place.
//
// On success every node carries final index, value, depth, height, layer and
// x0/x1/y0/y1, with adjacency lists ordered by stacking position, and every
// link carries final index, width, y0 and y1. Repeating the call with the
// same inputs and configuration produces identical coordinates: all derived
// fields are recomputed from scratch and every ordering step is stable.
//
// Configuration and graph referential integrity are validated before any
// field is mutated, so a failed validation leaves g untouched. A cycle is
// only detectable mid-traversal; on ErrCyclicGraph the depth and height
// fields are meaningless and must not be read.
func Layout(g *Graph, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	byID, err := validateGraph(g)
	if err != nil {
		return err
	}
	if len(g.Nodes) == 0 {
		return nil
	}

	l := &layouter{cfg: cfg}
	l.computeNodeLinks(g, byID)
	computeNodeValues(g)
	if err := computeNodeDepths(g); err != nil {
		return err
	}
	if err := computeNodeHeights(g); err != nil {
		return err
	}
	if err := l.computeNodeBreadths(g); err != nil {
		return err
	}
	computeLinkBreadths(g)
	return nil
}

// Update recomputes link vertical offsets from the current node geometry.
// Use it after repositioning nodes by hand (e.g. a drag interaction) to keep
// link endpoints attached without re-running the whole layout.
func Update(g *Graph) {
	computeLinkBreadths(g)
}

// validateGraph checks referential integrity without mutating anything and
// returns the ID lookup used by the linker.
func validateGraph(g *Graph) (map[string]*Node, error) {
	byID := make(map[string]*Node, len(g.Nodes))
	for _, node := range g.Nodes {
		if node.ID == "" {
			return nil, fmt.Errorf("node ID must not be empty: %w", ErrInvalidGraph)
		}
		if _, exists := byID[node.ID]; exists {
			return nil, fmt.Errorf("duplicate node ID %q: %w", node.ID, ErrInvalidGraph)
		}
		byID[node.ID] = node
	}
	for _, link := range g.Links {
		if _, ok := byID[link.Source]; !ok {
			return nil, fmt.Errorf("link source %q not in node set: %w", link.Source, ErrInvalidGraph)
		}
		if _, ok := byID[link.Target]; !ok {
			return nil, fmt.Errorf("link target %q not in node set: %w", link.Target, ErrInvalidGraph)
		}
		if !(link.Value > 0) {
			return nil, fmt.Errorf("link %s→%s value %g must be positive: %w",
				link.Source, link.Target, link.Value, ErrInvalidGraph)
		}
	}
	return byID, nil
}

// layouter threads the per-call configuration and the working padding
// through the pipeline stages.
type layouter struct {
	cfg Config
	py  float64 // node padding after the density clamp
}

// computeNodeLinks assigns stable indices and rebuilds every adjacency list
// from the link list. Any state left over from a previous layout call is
// discarded here.
func (l *layouter) computeNodeLinks(g *Graph, byID map[string]*Node) {
	for i, node := range g.Nodes {
		node.Index = i
		node.SourceLinks = node.SourceLinks[:0]
		node.TargetLinks = node.TargetLinks[:0]
	}
	for i, link := range g.Links {
		link.Index = i
		link.SourceNode = byID[link.Source]
		link.TargetNode = byID[link.Target]
		link.SourceNode.SourceLinks = append(link.SourceNode.SourceLinks, link)
		link.TargetNode.TargetLinks = append(link.TargetNode.TargetLinks, link)
	}
	if l.cfg.LinkSort != nil {
		for _, node := range g.Nodes {
			slices.SortStableFunc(node.SourceLinks, l.cfg.LinkSort)
			slices.SortStableFunc(node.TargetLinks, l.cfg.LinkSort)
		}
	}
}

// computeNodeValues sizes each node by its fixed value, or by the larger of
// its outgoing and incoming flow sums. A pure source has a zero incoming sum
// and is sized by outgoing flow; symmetrically for a pure sink.
func computeNodeValues(g *Graph) {
	for _, node := range g.Nodes {
		if node.FixedValue != nil {
			node.Value = *node.FixedValue
			continue
		}
		var out, in float64
		for _, link := range node.SourceLinks {
			out += link.Value
		}
		for _, link := range node.TargetLinks {
			in += link.Value
		}
		node.Value = math.Max(out, in)
	}
}

// computeNodeDepths assigns each node its forward distance from the sources
// by flooding the whole node set and following outgoing links round by
// round. A round count above the node count means some frontier never
// drains, which only a cycle can cause.
func computeNodeDepths(g *Graph) error {
	n := len(g.Nodes)
	current := slices.Clone(g.Nodes)
	next := make([]*Node, 0, n)
	queued := make([]bool, n)

	for x := 0; len(current) > 0; {
		for _, node := range current {
			node.Depth = x
			for _, link := range node.SourceLinks {
				if t := link.TargetNode; !queued[t.Index] {
					queued[t.Index] = true
					next = append(next, t)
				}
			}
		}
		if x++; x > n {
			return fmt.Errorf("compute node depths: %w", ErrCyclicGraph)
		}
		current, next = next, current[:0]
		for _, node := range current {
			queued[node.Index] = false
		}
	}
	return nil
}

// computeNodeHeights is the mirror image of computeNodeDepths, following
// incoming links to assign each node its distance to the sinks.
func computeNodeHeights(g *Graph) error {
	n := len(g.Nodes)
	current := slices.Clone(g.Nodes)
	next := make([]*Node, 0, n)
	queued := make([]bool, n)

	for x := 0; len(current) > 0; {
		for _, node := range current {
			node.Height = x
			for _, link := range node.TargetLinks {
				if s := link.SourceNode; !queued[s.Index] {
					queued[s.Index] = true
					next = append(next, s)
				}
			}
		}
		if x++; x > n {
			return fmt.Errorf("compute node heights: %w", ErrCyclicGraph)
		}
		current, next = next, current[:0]
		for _, node := range current {
			queued[node.Index] = false
		}
	}
	return nil
}

// alignPosition dispatches to the configured column policy.
func (l *layouter) alignPosition(node *Node, columns int) int {
	switch l.cfg.Align {
	case AlignLeft:
		return node.Depth
	case AlignRight:
		return columns - 1 - node.Height
	case AlignCenter:
		if len(node.TargetLinks) > 0 {
			return node.Depth
		}
		if len(node.SourceLinks) > 0 {
			minDepth := node.SourceLinks[0].TargetNode.Depth
			for _, link := range node.SourceLinks[1:] {
				if d := link.TargetNode.Depth; d < minDepth {
					minDepth = d
				}
			}
			return minDepth - 1
		}
		return 0
	case AlignCustom:
		return l.cfg.AlignFunc(node, columns)
	default: // AlignJustify
		if len(node.SourceLinks) > 0 {
			return node.Depth
		}
		return columns - 1
	}
}

// computeNodeLayers buckets nodes into columns and fixes their horizontal
// extent. With a single column the horizontal spacing degenerates to zero
// and every node sits at the left bound.
func (l *layouter) computeNodeLayers(g *Graph) [][]*Node {
	maxDepth := 0
	for _, node := range g.Nodes {
		maxDepth = max(maxDepth, node.Depth)
	}
	columns := maxDepth + 1

	kx := 0.0
	if columns > 1 {
		kx = (l.cfg.X1 - l.cfg.X0 - l.cfg.NodeWidth) / float64(columns-1)
	}

	buckets := make([][]*Node, columns)
	for _, node := range g.Nodes {
		i := max(0, min(columns-1, l.alignPosition(node, columns)))
		node.Layer = i
		node.X0 = l.cfg.X0 + float64(i)*kx
		node.X1 = node.X0 + l.cfg.NodeWidth
		buckets[i] = append(buckets[i], node)
	}
	if l.cfg.NodeSort != nil {
		for _, column := range buckets {
			slices.SortStableFunc(column, l.cfg.NodeSort)
		}
	}
	return buckets
}

// computeNodeBreadths runs column assignment, the initial vertical stacking
// and the relaxation rounds. The padding clamp happens once, before any
// column is positioned.
func (l *layouter) computeNodeBreadths(g *Graph) error {
	columns := l.computeNodeLayers(g)

	maxCount := 0
	for _, column := range columns {
		maxCount = max(maxCount, len(column))
	}
	l.py = l.cfg.NodePadding
	if maxCount > 1 {
		l.py = math.Min(l.py, (l.cfg.Y1-l.cfg.Y0)/float64(maxCount-1))
	}

	if err := l.initializeNodeBreadths(columns); err != nil {
		return err
	}
	for i := 0; i < l.cfg.Iterations; i++ {
		alpha := math.Pow(0.99, float64(i))
		beta := math.Max(1-alpha, float64(i+1)/float64(l.cfg.Iterations))
		l.relaxRightToLeft(columns, alpha, beta)
		l.relaxLeftToRight(columns, alpha, beta)
	}
	return nil
}

// initializeNodeBreadths computes the shared vertical scale, stacks every
// column top-down, centers each column in its leftover space and establishes
// the initial link stacking order.
func (l *layouter) initializeNodeBreadths(columns [][]*Node) error {
	ky := math.Inf(1)
	for i, column := range columns {
		if len(column) == 0 {
			continue
		}
		var sum float64
		for _, node := range column {
			sum += node.Value
		}
		if !(sum > 0) {
			return fmt.Errorf("column %d has zero total value: %w", i, ErrInvalidConfiguration)
		}
		k := (l.cfg.Y1 - l.cfg.Y0 - float64(len(column)-1)*l.py) / sum
		if k < ky {
			ky = k
		}
	}

	for _, column := range columns {
		if len(column) == 0 {
			continue
		}
		y := l.cfg.Y0
		for _, node := range column {
			node.Y0 = y
			node.Y1 = y + node.Value*ky
			y = node.Y1 + l.py
			for _, link := range node.SourceLinks {
				link.Width = link.Value * ky
			}
		}
		// Spread the leftover space evenly so the column is centered
		// rather than pinned to the top bound.
		pad := (l.cfg.Y1 - y + l.py) / float64(len(column)+1)
		for i, node := range column {
			node.Y0 += pad * float64(i+1)
			node.Y1 += pad * float64(i+1)
		}
		l.reorderLinks(column)
	}
	return nil
}

// relaxRightToLeft nudges each node toward the flow-weighted ideal implied
// by its outgoing links, sweeping columns from second-to-last down to first.
func (l *layouter) relaxRightToLeft(columns [][]*Node, alpha, beta float64) {
	for i := len(columns) - 2; i >= 0; i-- {
		column := columns[i]
		for _, source := range column {
			var y, w float64
			for _, link := range source.SourceLinks {
				v := link.Value * float64(link.TargetNode.Layer-source.Layer)
				y += l.sourceTop(source, link.TargetNode) * v
				w += v
			}
			if !(w > 0) {
				continue
			}
			dy := (y/w - source.Y0) * alpha
			source.Y0 += dy
			source.Y1 += dy
			l.reorderNodeLinks(source)
		}
		if l.cfg.NodeSort == nil {
			slices.SortStableFunc(column, ascendingBreadth)
		}
		l.resolveCollisions(column, beta)
	}
}

// relaxLeftToRight is the mirror sweep, driven by incoming links, for
// columns from second down to last.
func (l *layouter) relaxLeftToRight(columns [][]*Node, alpha, beta float64) {
	for i := 1; i < len(columns); i++ {
		column := columns[i]
		for _, target := range column {
			var y, w float64
			for _, link := range target.TargetLinks {
				v := link.Value * float64(target.Layer-link.SourceNode.Layer)
				y += l.targetTop(link.SourceNode, target) * v
				w += v
			}
			if !(w > 0) {
				continue
			}
			dy := (y/w - target.Y0) * alpha
			target.Y0 += dy
			target.Y1 += dy
			l.reorderNodeLinks(target)
		}
		if l.cfg.NodeSort == nil {
			slices.SortStableFunc(column, ascendingBreadth)
		}
		l.resolveCollisions(column, beta)
	}
}

// resolveCollisions forces a column's nodes apart by at least the working
// padding and back inside the vertical bounds. It works outward from the
// middle node first, then runs one bound-anchored sweep in each direction so
// a full-strength pass leaves the column fully resolved.
func (l *layouter) resolveCollisions(column []*Node, alpha float64) {
	if len(column) == 0 {
		return
	}
	i := len(column) >> 1
	subject := column[i]
	l.resolveCollisionsBottomToTop(column, subject.Y0-l.py, i-1, alpha)
	l.resolveCollisionsTopToBottom(column, subject.Y1+l.py, i+1, alpha)
	l.resolveCollisionsBottomToTop(column, l.cfg.Y1, len(column)-1, alpha)
	l.resolveCollisionsTopToBottom(column, l.cfg.Y0, 0, alpha)
}

// resolveCollisionsTopToBottom pushes overlapping nodes down, starting at
// index i with the running floor y.
func (l *layouter) resolveCollisionsTopToBottom(column []*Node, y float64, i int, alpha float64) {
	for ; i < len(column); i++ {
		node := column[i]
		dy := (y - node.Y0) * alpha
		if dy > collisionEpsilon {
			node.Y0 += dy
			node.Y1 += dy
		}
		y = node.Y1 + l.py
	}
}

// resolveCollisionsBottomToTop pushes overlapping nodes up, starting at
// index i with the running ceiling y.
func (l *layouter) resolveCollisionsBottomToTop(column []*Node, y float64, i int, alpha float64) {
	for ; i >= 0; i-- {
		node := column[i]
		dy := (node.Y1 - y) * alpha
		if dy > collisionEpsilon {
			node.Y0 -= dy
			node.Y1 -= dy
		}
		y = node.Y0 - l.py
	}
}

// targetTop returns the target.Y0 that would line the source→target link up
// with no bend: the source's link stack walked down to the link of interest,
// minus the target's stack above the matching link.
func (l *layouter) targetTop(source, target *Node) float64 {
	y := source.Y0 - float64(len(source.SourceLinks)-1)*l.py/2
	for _, link := range source.SourceLinks {
		if link.TargetNode == target {
			break
		}
		y += link.Width + l.py
	}
	for _, link := range target.TargetLinks {
		if link.SourceNode == source {
			break
		}
		y -= link.Width
	}
	return y
}

// sourceTop is the mirror of targetTop: the source.Y0 that would produce an
// unbent link into target.
func (l *layouter) sourceTop(source, target *Node) float64 {
	y := target.Y0 - float64(len(target.TargetLinks)-1)*l.py/2
	for _, link := range target.TargetLinks {
		if link.SourceNode == source {
			break
		}
		y += link.Width + l.py
	}
	for _, link := range source.SourceLinks {
		if link.TargetNode == target {
			break
		}
		y -= link.Width
	}
	return y
}

// reorderNodeLinks re-stacks the adjacency lists of the node's neighbors
// after the node moved, keeping offset bookkeeping consistent with the
// geometry. A caller-supplied link order is never touched.
func (l *layouter) reorderNodeLinks(node *Node) {
	if l.cfg.LinkSort != nil {
		return
	}
	for _, link := range node.TargetLinks {
		slices.SortStableFunc(link.SourceNode.SourceLinks, ascendingTargetBreadth)
	}
	for _, link := range node.SourceLinks {
		slices.SortStableFunc(link.TargetNode.TargetLinks, ascendingSourceBreadth)
	}
}

// reorderLinks establishes the stacking order of every adjacency list in a
// column by the current position of the link's other endpoint.
func (l *layouter) reorderLinks(column []*Node) {
	if l.cfg.LinkSort != nil {
		return
	}
	for _, node := range column {
		slices.SortStableFunc(node.SourceLinks, ascendingTargetBreadth)
		slices.SortStableFunc(node.TargetLinks, ascendingSourceBreadth)
	}
}

// computeLinkBreadths converts final node positions and link stacking orders
// into per-link vertical endpoints. This is the single source of truth
// consumed by rendering.
func computeLinkBreadths(g *Graph) {
	for _, node := range g.Nodes {
		y0 := node.Y0
		y1 := node.Y0
		for _, link := range node.SourceLinks {
			link.Y0 = y0 + link.Width/2
			y0 += link.Width
		}
		for _, link := range node.TargetLinks {
			link.Y1 = y1 + link.Width/2
			y1 += link.Width
		}
	}
}

func ascendingBreadth(a, b *Node) int {
	return cmp.Compare(a.Y0, b.Y0)
}

func ascendingSourceBreadth(a, b *Link) int {
	if c := ascendingBreadth(a.SourceNode, b.SourceNode); c != 0 {
		return c
	}
	return a.Index - b.Index
}

func ascendingTargetBreadth(a, b *Link) int {
	if c := ascendingBreadth(a.TargetNode, b.TargetNode); c != 0 {
		return c
	}
	return a.Index - b.Index
}
