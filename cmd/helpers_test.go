package cmd

import (
	"testing"

	"github.com/droidrun/droid-cli/internal/model"
)

func sampleTree() []model.Node {
	return []model.Node{
		{
			Index:     1,
			ClassName: "android.widget.FrameLayout",
			Bounds:    "0, 0, 1080, 1920",
			Children: []model.Node{
				{Index: 2, Text: "Login", ClassName: "android.widget.Button", Bounds: "100, 100, 300, 160"},
				{Index: 3, Text: "Cancel", ClassName: "android.widget.Button", Bounds: "100, 200, 300, 260"},
			},
		},
	}
}

func TestResolveTargetByIndex(t *testing.T) {
	tree := sampleTree()
	n, err := resolveTarget(tree, "", false, 3)
	if err != nil {
		t.Fatal(err)
	}
	if n.Text != "Cancel" {
		t.Errorf("got %q, want Cancel", n.Text)
	}

	if _, err := resolveTarget(tree, "", false, 99); err == nil {
		t.Error("missing index should error")
	}
}

func TestResolveTargetByText(t *testing.T) {
	tree := sampleTree()
	n, err := resolveTarget(tree, "login", false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n.Index != 2 {
		t.Errorf("got index %d, want 2", n.Index)
	}

	if _, err := resolveTarget(tree, "login", true, 0); err == nil {
		t.Error("exact match should be case-sensitive and fail")
	}
	if _, err := resolveTarget(tree, "", false, 0); err == nil {
		t.Error("empty text and no index should error")
	}
	if _, err := resolveTarget(tree, "Missing", false, 0); err == nil {
		t.Error("unmatched text should error")
	}
}

func TestTargetPoint(t *testing.T) {
	tree := sampleTree()
	target := model.FindByIndex(tree, 2)

	x, y, err := targetPoint(target, tree, false)
	if err != nil {
		t.Fatal(err)
	}
	if x != 200 || y != 130 {
		t.Errorf("center = (%d, %d), want (200, 130)", x, y)
	}

	// No blockers above the target, so the occlusion-aware point is the
	// center too.
	x, y, err = targetPoint(target, tree, true)
	if err != nil {
		t.Fatal(err)
	}
	if x != 200 || y != 130 {
		t.Errorf("tap point = (%d, %d), want (200, 130)", x, y)
	}

	noBounds := &model.Node{Index: 9}
	if _, _, err := targetPoint(noBounds, tree, true); err == nil {
		t.Error("element without bounds should error")
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"text":  "OK",
		"index": float64(4),
		"exact": true,
		"scale": 0.25,
	}
	if got := stringParam(params, "text", ""); got != "OK" {
		t.Errorf("stringParam = %q", got)
	}
	if got := stringParam(params, "missing", "def"); got != "def" {
		t.Errorf("stringParam default = %q", got)
	}
	if got := intParam(params, "index", 0); got != 4 {
		t.Errorf("intParam = %d", got)
	}
	if got := intParam(params, "text", 7); got != 7 {
		t.Errorf("intParam wrong type should default, got %d", got)
	}
	if !boolParam(params, "exact", false) {
		t.Error("boolParam should be true")
	}
	if got := floatParam(params, "scale", 0.5); got != 0.25 {
		t.Errorf("floatParam = %v", got)
	}
}
