package model

// Clear-point subdivision limits: give up after four levels or once a
// quadrant drops below 100 px².
const (
	maxClearPointDepth = 4
	minClearPointArea  = 100
)

// CollectBlockers returns the bounds of every node in the forest whose index
// is greater than the target's and whose rect overlaps the target's rect.
//
// Index order is used as a proxy for paint order (higher index = rendered
// later = visually on top). The accessibility service gives no guarantee of
// this, so blocker detection is best-effort. Nodes without bounds are never
// blockers.
func CollectBlockers(target *Node, nodes []Node) []Rect {
	tr, ok := target.Rect()
	if !ok {
		return nil
	}
	var blockers []Rect
	collectBlockers(nodes, target.Index, tr, &blockers)
	return blockers
}

func collectBlockers(nodes []Node, targetIndex int, tr Rect, blockers *[]Rect) {
	for i := range nodes {
		n := &nodes[i]
		if n.Index != targetIndex && n.Index > targetIndex {
			if r, ok := n.Rect(); ok && tr.Intersects(r) {
				*blockers = append(*blockers, r)
			}
		}
		collectBlockers(n.Children, targetIndex, tr, blockers)
	}
}

// FindClearPoint finds a point inside bounds not covered by any blocker,
// using quadrant subdivision. The rect's center is tried first; if blocked,
// each quadrant (top-left, top-right, bottom-left, bottom-right) is tried
// recursively. ok is false when subdivision exhausts without a clear point.
func FindClearPoint(bounds Rect, blockers []Rect) (x, y int, ok bool) {
	return findClearPoint(bounds, blockers, 0)
}

func findClearPoint(bounds Rect, blockers []Rect, depth int) (int, int, bool) {
	cx, cy := bounds.Center()

	blocked := false
	for _, b := range blockers {
		if b.Contains(cx, cy) {
			blocked = true
			break
		}
	}
	if !blocked {
		return cx, cy, true
	}

	if depth >= maxClearPointDepth || bounds.Area() < minClearPointArea {
		return 0, 0, false
	}

	quadrants := [4]Rect{
		{Left: bounds.Left, Top: bounds.Top, Right: cx, Bottom: cy},
		{Left: cx, Top: bounds.Top, Right: bounds.Right, Bottom: cy},
		{Left: bounds.Left, Top: cy, Right: cx, Bottom: bounds.Bottom},
		{Left: cx, Top: cy, Right: bounds.Right, Bottom: bounds.Bottom},
	}
	for _, q := range quadrants {
		if x, y, ok := findClearPoint(q, blockers, depth+1); ok {
			return x, y, true
		}
	}
	return 0, 0, false
}

// TapPoint computes the best point to tap the target element. With a non-nil
// forest it avoids elements rendered above the target; when no clear point
// exists it falls back to the plain center, so point selection never fails
// once the element has bounds. ok is false only when the element has no
// usable bounds.
func TapPoint(target *Node, nodes []Node) (x, y int, ok bool) {
	tr, hasBounds := target.Rect()
	if !hasBounds {
		return 0, 0, false
	}
	cx, cy := tr.Center()

	if nodes == nil {
		return cx, cy, true
	}

	blockers := CollectBlockers(target, nodes)
	if len(blockers) == 0 {
		return cx, cy, true
	}

	if x, y, found := FindClearPoint(tr, blockers); found {
		return x, y, true
	}
	return cx, cy, true
}
