package model

import (
	"fmt"
	"strings"
)

// FormatLine renders a node as the one-line human-readable form produced by
// `observe`, e.g.:
//
//	[12] "Submit" center=(540,980) bounds=(360,920,720,1040) class=Button id=submit [checked=true]
//
// Field order and presence rules are stable; downstream tooling greps this
// output.
func FormatLine(n *Node, includeState bool) string {
	parts := []string{fmt.Sprintf("[%d]", n.Index)}

	if label := n.Label(); label != "" {
		parts = append(parts, fmt.Sprintf("%q", label))
	}
	if r, ok := n.Rect(); ok {
		cx, cy := r.Center()
		parts = append(parts, fmt.Sprintf("center=(%d,%d)", cx, cy))
		parts = append(parts, fmt.Sprintf("bounds=(%d,%d,%d,%d)", r.Left, r.Top, r.Right, r.Bottom))
	}
	parts = append(parts, "class="+ShortClassName(n.ClassName))
	if id := ShortResourceID(n.ResourceID); id != "" {
		parts = append(parts, "id="+id)
	}

	if includeState {
		if states := stateFlags(n); len(states) > 0 {
			parts = append(parts, "["+strings.Join(states, ", ")+"]")
		}
	}

	return strings.Join(parts, " ")
}

// stateFlags renders the state flags worth surfacing: checked whenever
// reported on a checkable element, enabled only when explicitly disabled,
// selected and focused only when true.
func stateFlags(n *Node) []string {
	var states []string

	checked := n.Checked()
	if n.Checkable() != nil || checked != nil {
		if checked != nil {
			states = append(states, fmt.Sprintf("checked=%t", *checked))
		}
	}
	if enabled := n.Enabled(); enabled != nil && !*enabled {
		states = append(states, "enabled=false")
	}
	if selected := n.Selected(); selected != nil && *selected {
		states = append(states, "selected=true")
	}
	if focused := n.Focused(); focused != nil && *focused {
		states = append(states, "focused=true")
	}
	return states
}

// Record is the machine-readable rendering of a node. State flags a snapshot
// variant did not report serialize as null, not false.
type Record struct {
	Index      int     `json:"index"      yaml:"index"`
	Text       string  `json:"text"       yaml:"text"`
	ClassName  string  `json:"className"  yaml:"className"`
	Bounds     string  `json:"bounds"     yaml:"bounds"`
	Center     *[2]int `json:"center"     yaml:"center"`
	ResourceID string  `json:"resourceId" yaml:"resourceId"`
	Checked    *bool   `json:"checked"    yaml:"checked"`
	Enabled    *bool   `json:"enabled"    yaml:"enabled"`
	Selected   *bool   `json:"selected"   yaml:"selected"`
	Focused    *bool   `json:"focused"    yaml:"focused"`
	Clickable  *bool   `json:"clickable"  yaml:"clickable"`
}

// FormatRecord converts a node into its Record form.
func FormatRecord(n *Node) Record {
	rec := Record{
		Index:      n.Index,
		Text:       n.Label(),
		ClassName:  ShortClassName(n.ClassName),
		Bounds:     n.BoundsString(),
		ResourceID: ShortResourceID(n.ResourceID),
		Checked:    n.Checked(),
		Enabled:    n.Enabled(),
		Selected:   n.Selected(),
		Focused:    n.Focused(),
		Clickable:  n.Clickable(),
	}
	if r, ok := n.Rect(); ok {
		cx, cy := r.Center()
		rec.Center = &[2]int{cx, cy}
	}
	return rec
}
