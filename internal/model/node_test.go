package model

import (
	"encoding/json"
	"testing"
)

const lightweightJSON = `[
  {"index": 1, "className": "android.widget.FrameLayout", "bounds": "0, 0, 1080, 1920",
   "children": [
     {"index": 2, "text": "OK", "className": "android.widget.Button",
      "resourceId": "com.example:id/ok", "bounds": "10, 10, 50, 30"}
   ]}
]`

const fullJSON = `{
  "className": "android.widget.FrameLayout",
  "boundsInScreen": {"left": 0, "top": 0, "right": 1080, "bottom": 1920},
  "children": [
    {"className": "android.widget.Switch", "contentDescription": "Wi-Fi",
     "boundsInScreen": {"left": 10, "top": 10, "right": 50, "bottom": 30},
     "isCheckable": true, "isChecked": true, "isEnabled": true}
  ]}`

func TestUnmarshalLightweightVariant(t *testing.T) {
	var tree []Node
	if err := json.Unmarshal([]byte(lightweightJSON), &tree); err != nil {
		t.Fatal(err)
	}
	if len(tree) != 1 || len(tree[0].Children) != 1 {
		t.Fatalf("unexpected tree shape: %+v", tree)
	}
	btn := &tree[0].Children[0]
	if btn.Index != 2 || btn.Text != "OK" {
		t.Errorf("button = %+v", btn)
	}
	r, ok := btn.Rect()
	if !ok || r != (Rect{10, 10, 50, 30}) {
		t.Errorf("Rect() = %v, %v", r, ok)
	}
	if btn.Checked() != nil {
		t.Error("lightweight variant should have no state flags")
	}
}

func TestUnmarshalFullVariant(t *testing.T) {
	var root Node
	if err := json.Unmarshal([]byte(fullJSON), &root); err != nil {
		t.Fatal(err)
	}
	tree := []Node{root}
	AssignIndices(tree)

	if tree[0].Index != 1 || tree[0].Children[0].Index != 2 {
		t.Errorf("indices = %d, %d; want 1, 2", tree[0].Index, tree[0].Children[0].Index)
	}

	sw := &tree[0].Children[0]
	if sw.Label() != "Wi-Fi" {
		t.Errorf("Label() = %q, want Wi-Fi", sw.Label())
	}
	r, ok := sw.Rect()
	if !ok || r != (Rect{10, 10, 50, 30}) {
		t.Errorf("Rect() = %v, %v", r, ok)
	}
	if sw.BoundsString() != "10, 10, 50, 30" {
		t.Errorf("BoundsString() = %q", sw.BoundsString())
	}
	if c := sw.Checked(); c == nil || !*c {
		t.Errorf("Checked() = %v, want true", c)
	}
}

func TestStateAccessorsMergeSpellings(t *testing.T) {
	full := Node{IsChecked: boolPtr(true)}
	light := Node{CheckedAlt: boolPtr(false)}
	neither := Node{}

	if c := full.Checked(); c == nil || !*c {
		t.Errorf("full-variant Checked() = %v", c)
	}
	if c := light.Checked(); c == nil || *c {
		t.Errorf("alt-spelling Checked() = %v", c)
	}
	if neither.Checked() != nil {
		t.Error("absent flag should be nil")
	}

	// The canonical spelling wins when both are present.
	both := Node{IsEnabled: boolPtr(false), EnabledAlt: boolPtr(true)}
	if e := both.Enabled(); e == nil || *e {
		t.Errorf("Enabled() = %v, want false", e)
	}
}

func TestShortClassName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"android.widget.FrameLayout", "FrameLayout"},
		{"Button", "Button"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortClassName(tt.in); got != tt.want {
			t.Errorf("ShortClassName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortResourceID(t *testing.T) {
	tests := []struct{ in, want string }{
		{"com.example:id/submit", "submit"},
		{"plain_id", "plain_id"},
		{"com.app:id/obfuscated_0x7f", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortResourceID(tt.in); got != tt.want {
			t.Errorf("ShortResourceID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRectWithMalformedBoundsString(t *testing.T) {
	n := Node{Bounds: "not, valid"}
	if _, ok := n.Rect(); ok {
		t.Error("malformed bounds string should yield no rect")
	}
}
