package model

import "strings"

// Filter defaults. Callers override these through FilterConfig rather than
// editing the constants.
const (
	DefaultMinElementSize      = 5
	DefaultVisibilityThreshold = 0.1
)

// noiseClasses are layout containers that rarely carry actionable meaning
// on their own.
var noiseClasses = map[string]bool{
	"View":                 true,
	"FrameLayout":          true,
	"LinearLayout":         true,
	"RelativeLayout":       true,
	"ConstraintLayout":     true,
	"CoordinatorLayout":    true,
	"ViewGroup":            true,
	"RecyclerView":         true,
	"ScrollView":           true,
	"HorizontalScrollView": true,
	"NestedScrollView":     true,
	"ViewPager":            true,
	"ViewPager2":           true,
	"ComposeView":          true,
	"AndroidComposeView":   true,
}

// keyboardPrefixes identify resource IDs owned by input-method packages.
var keyboardPrefixes = []string{
	"com.google.android.inputmethod",
	"com.android.inputmethod",
	"com.samsung.android.honeyboard",
}

// FilterConfig controls which checks the combined element filter applies.
// A node passes when none of the enabled checks flag it.
type FilterConfig struct {
	Noise     bool // drop empty layout containers
	Small     bool // drop elements below MinSize
	Keyboard  bool // drop input-method elements
	Invisible bool // drop elements mostly off-screen

	MinSize             int     // minimum width/height in pixels
	VisibilityThreshold float64 // minimum visible-area ratio

	// Screen dimensions for the visibility check. The check is skipped
	// when either is zero.
	ScreenWidth  int
	ScreenHeight int
}

// DefaultFilterConfig enables all checks with the standard thresholds.
func DefaultFilterConfig(screenW, screenH int) FilterConfig {
	return FilterConfig{
		Noise:               true,
		Small:               true,
		Keyboard:            true,
		Invisible:           true,
		MinSize:             DefaultMinElementSize,
		VisibilityThreshold: DefaultVisibilityThreshold,
		ScreenWidth:         screenW,
		ScreenHeight:        screenH,
	}
}

// IsNoise reports whether the node is a layout container with no meaningful
// text. Obfuscated builds leak placeholder text equal to internal resource
// identifiers, which counts as no meaningful text.
func IsNoise(n *Node) bool {
	short := ShortClassName(n.ClassName)
	if !noiseClasses[short] {
		return false
	}
	text := n.Text
	if text == "" || text == short || text == n.ClassName {
		return true
	}
	if strings.Contains(text, "resource_name_obfuscated") || strings.Contains(text, "0_resource") {
		return true
	}
	return false
}

// IsTooSmall reports whether either dimension is below minSize. Nodes without
// bounds are never too small.
func IsTooSmall(n *Node, minSize int) bool {
	r, ok := n.Rect()
	if !ok {
		return false
	}
	w, h := r.Size()
	return w < minSize || h < minSize
}

// IsKeyboardElement reports whether the node's resource ID belongs to a known
// input-method package.
func IsKeyboardElement(n *Node) bool {
	for _, p := range keyboardPrefixes {
		if strings.HasPrefix(n.ResourceID, p) {
			return true
		}
	}
	return false
}

// IsVisible reports whether at least threshold of the node's area lies within
// the [0,0,screenW,screenH] rectangle. Nodes without bounds cannot be
// evaluated and default to visible; zero-area nodes are not visible.
func IsVisible(n *Node, screenW, screenH int, threshold float64) bool {
	r, ok := n.Rect()
	if !ok {
		return true
	}

	c := r.Clip(screenW, screenH)
	if c.Right <= c.Left || c.Bottom <= c.Top {
		return false
	}

	total := r.Area()
	if total == 0 {
		return false
	}
	return float64(c.Area())/float64(total) >= threshold
}

// ShouldFilter reports whether the node fails the combined filter.
func ShouldFilter(n *Node, cfg FilterConfig) bool {
	if cfg.Noise && IsNoise(n) {
		return true
	}
	if cfg.Small && IsTooSmall(n, cfg.MinSize) {
		return true
	}
	if cfg.Keyboard && IsKeyboardElement(n) {
		return true
	}
	if cfg.Invisible && cfg.ScreenWidth > 0 && cfg.ScreenHeight > 0 {
		if !IsVisible(n, cfg.ScreenWidth, cfg.ScreenHeight, cfg.VisibilityThreshold) {
			return true
		}
	}
	return false
}
