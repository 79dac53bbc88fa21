package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Rect is a screen rectangle in pixels. Right >= Left and Bottom >= Top for
// any rectangle the device reports; a zero-area rect is legal and means the
// element has no visible area.
type Rect struct {
	Left   int `json:"left"   yaml:"left"`
	Top    int `json:"top"    yaml:"top"`
	Right  int `json:"right"  yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// ParseBounds parses the lightweight tree's bounds string
// "left, top, right, bottom" into a Rect.
func ParseBounds(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 4 {
		return Rect{}, fmt.Errorf("invalid bounds %q: expected \"l, t, r, b\"", s)
	}
	vals := make([]int, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Rect{}, fmt.Errorf("invalid bounds %q: %w", s, err)
		}
		vals[i] = v
	}
	return Rect{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, nil
}

// String renders the rect in the same comma-separated form the device uses,
// so ParseBounds(r.String()) round-trips.
func (r Rect) String() string {
	return fmt.Sprintf("%d, %d, %d, %d", r.Left, r.Top, r.Right, r.Bottom)
}

// Center returns the integer midpoint with floor-division semantics, matching
// the device's pixel grid. Elements scrolled partly off-screen carry negative
// coordinates, where truncating division would land one pixel high.
func (r Rect) Center() (x, y int) {
	return floorDiv(r.Left+r.Right, 2), floorDiv(r.Top+r.Bottom, 2)
}

// floorDiv divides rounding toward negative infinity, unlike Go's /.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Size returns width and height.
func (r Rect) Size() (w, h int) {
	return r.Right - r.Left, r.Bottom - r.Top
}

// Area returns the rect's area in square pixels.
func (r Rect) Area() int {
	w, h := r.Size()
	return w * h
}

// Contains reports whether the point lies within the rect, edges inclusive.
func (r Rect) Contains(x, y int) bool {
	return r.Left <= x && x <= r.Right && r.Top <= y && y <= r.Bottom
}

// Intersects reports whether two rects overlap with positive area.
// Edge-adjacent rects do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return !(o.Right <= r.Left || o.Left >= r.Right || o.Bottom <= r.Top || o.Top >= r.Bottom)
}

// Clip returns the rect clipped to the screen rectangle [0,0,w,h].
// The result may be inverted (Right < Left) when fully off-screen.
func (r Rect) Clip(screenW, screenH int) Rect {
	c := r
	if c.Left < 0 {
		c.Left = 0
	}
	if c.Top < 0 {
		c.Top = 0
	}
	if c.Right > screenW {
		c.Right = screenW
	}
	if c.Bottom > screenH {
		c.Bottom = screenH
	}
	return c
}
