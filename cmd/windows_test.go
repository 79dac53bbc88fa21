package cmd

import (
	"testing"

	"github.com/droidrun/droid-cli/internal/model"
)

func sampleWindows() []model.Window {
	return []model.Window{
		{
			Name:            "com.android.chrome/org.chromium.MainActivity",
			TouchableRegion: model.Rect{Left: 0, Top: 0, Right: 1080, Bottom: 1920},
			Center:          [2]int{540, 960},
		},
		{
			Name:            "Bubbles",
			TouchableRegion: model.Rect{Left: 900, Top: 1400, Right: 1044, Bottom: 1700},
			Center:          [2]int{972, 1550},
		},
	}
}

func TestSelectWindowsDefaultsToOverlays(t *testing.T) {
	got := selectWindows(sampleWindows(), false, "")
	if len(got) != 1 || got[0].Name != "Bubbles" {
		t.Errorf("got %+v, want only Bubbles", got)
	}
}

func TestSelectWindowsAll(t *testing.T) {
	got := selectWindows(sampleWindows(), true, "")
	if len(got) != 2 {
		t.Errorf("got %d windows, want 2", len(got))
	}
}

func TestSelectWindowsFilterSearchesNonOverlays(t *testing.T) {
	// A name filter must reach full-screen app windows without --all.
	got := selectWindows(sampleWindows(), false, "chrome")
	if len(got) != 1 || got[0].Name != "com.android.chrome/org.chromium.MainActivity" {
		t.Errorf("got %+v, want the Chrome window", got)
	}

	if got := selectWindows(sampleWindows(), false, "nope"); len(got) != 0 {
		t.Errorf("unmatched filter should return nothing, got %+v", got)
	}
}
