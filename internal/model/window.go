package model

import (
	"regexp"
	"strconv"
	"strings"
)

// Window is a visible window parsed from `dumpsys window windows`. System
// overlays (bubbles, picture-in-picture) live here but not in the
// accessibility tree, so window-targeting commands go through this model.
type Window struct {
	Name            string `json:"name"             yaml:"name"`
	Hash            string `json:"hash"             yaml:"hash"`
	Frame           Rect   `json:"frame"            yaml:"frame"`
	TouchableRegion Rect   `json:"touchable_region" yaml:"touchable_region"`
	Center          [2]int `json:"center"           yaml:"center"`
}

// Window entries appear as:
//
//	, 4f2a1b0 NotificationShade, frame=[Rect(0, 0 - 1080, 2400)], touchableRegion=SkRegion((0,0,1080,2400)), ...
var windowPattern = regexp.MustCompile(
	`(?:[\[,]\s*)([a-f0-9]+)\s+([^,]+),\s*` +
		`frame=\[Rect\((\d+),\s*(\d+)\s*-\s*(\d+),\s*(\d+)\)\],\s*` +
		`touchableRegion=(SkRegion\(\([^)]+\)\))`)

var regionPattern = regexp.MustCompile(`\((-?\d+),(-?\d+),(-?\d+),(-?\d+)\)`)

// ParseRegion extracts the bounds from an SkRegion descriptor like
// "SkRegion((-39,1439,183,1661))".
func ParseRegion(s string) (Rect, bool) {
	m := regionPattern.FindStringSubmatch(s)
	if m == nil {
		return Rect{}, false
	}
	vals := make([]int, 4)
	for i := 0; i < 4; i++ {
		vals[i], _ = strconv.Atoi(m[i+1])
	}
	return Rect{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, true
}

// ParseWindows parses a window dump into the visible touchable windows.
// The same window appears in multiple dump sections; duplicates are
// coalesced by hash, first occurrence winning.
func ParseWindows(dump string) []Window {
	var windows []Window
	seen := make(map[string]bool)

	for _, m := range windowPattern.FindAllStringSubmatch(dump, -1) {
		hash := m[1]
		if seen[hash] {
			continue
		}
		seen[hash] = true

		frame := Rect{}
		frame.Left, _ = strconv.Atoi(m[3])
		frame.Top, _ = strconv.Atoi(m[4])
		frame.Right, _ = strconv.Atoi(m[5])
		frame.Bottom, _ = strconv.Atoi(m[6])

		region, ok := ParseRegion(m[7])
		if !ok {
			continue
		}
		cx, cy := region.Center()

		windows = append(windows, Window{
			Name:            strings.TrimSpace(m[2]),
			Hash:            hash,
			Frame:           frame,
			TouchableRegion: region,
			Center:          [2]int{cx, cy},
		})
	}
	return windows
}

// overlayPatterns name window types that are likely user-interactive
// overlays.
var overlayPatterns = []string{
	"Bubbles",
	"PictureInPicture",
	"pip",
	"SystemUI",
	"Floating",
	"Overlay",
}

// excludePatterns name system chrome windows that are never tap targets.
var excludePatterns = []string{
	"StatusBar",
	"NavigationBar",
	"ScreenDecor",
	"InputMethod",
	"NotificationShade",
	"com.droidrun.portal",
}

// smallRegionArea treats windows below 500x500 px as potential overlays.
const smallRegionArea = 500 * 500

// FilterOverlayWindows returns the windows that look like interactive
// overlays: known overlay name patterns, or small touchable regions.
func FilterOverlayWindows(windows []Window) []Window {
	var overlays []Window
	for _, w := range windows {
		if isExcludedWindow(w.Name) {
			continue
		}
		if isOverlayName(w.Name) || w.TouchableRegion.Area() < smallRegionArea {
			overlays = append(overlays, w)
		}
	}
	return overlays
}

func isExcludedWindow(name string) bool {
	for _, p := range excludePatterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func isOverlayName(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range overlayPatterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// FindWindow returns the first window whose name contains the filter,
// case-insensitively.
func FindWindow(windows []Window, nameFilter string) *Window {
	lower := strings.ToLower(nameFilter)
	for i := range windows {
		if strings.Contains(strings.ToLower(windows[i].Name), lower) {
			return &windows[i]
		}
	}
	return nil
}
