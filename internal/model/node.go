package model

import "strings"

// Node is a single accessibility-tree element. The portal exposes two snapshot
// variants that decode into the same shape:
//
//   - a11y_tree: text + string-form "bounds", indices pre-assigned
//   - a11y_tree_full: state flags, record-form "boundsInScreen", single root
//     object with no indices (callers run AssignIndices after parsing)
//
// State flags appear under different keys per variant (isChecked vs checked);
// the accessor methods merge them. A nil flag means the snapshot variant did
// not report that state.
type Node struct {
	Index       int    `json:"index"`
	Text        string `json:"text,omitempty"`
	ContentDesc string `json:"contentDescription,omitempty"`
	ClassName   string `json:"className,omitempty"`
	ResourceID  string `json:"resourceId,omitempty"`

	// Bounds is the lightweight variant's "l, t, r, b" string.
	Bounds string `json:"bounds,omitempty"`
	// BoundsInScreen is the full variant's record form.
	BoundsInScreen *Rect `json:"boundsInScreen,omitempty"`

	IsCheckable *bool `json:"isCheckable,omitempty"`
	IsChecked   *bool `json:"isChecked,omitempty"`
	IsEnabled   *bool `json:"isEnabled,omitempty"`
	IsSelected  *bool `json:"isSelected,omitempty"`
	IsFocused   *bool `json:"isFocused,omitempty"`
	IsClickable *bool `json:"isClickable,omitempty"`

	// Alternate key spellings seen in lightweight payloads.
	CheckedAlt   *bool `json:"checked,omitempty"`
	EnabledAlt   *bool `json:"enabled,omitempty"`
	SelectedAlt  *bool `json:"selected,omitempty"`
	FocusedAlt   *bool `json:"focused,omitempty"`
	ClickableAlt *bool `json:"clickable,omitempty"`

	Children []Node `json:"children,omitempty"`
}

// Label returns the node's display text, falling back to the content
// description when text is empty.
func (n *Node) Label() string {
	if n.Text != "" {
		return n.Text
	}
	return n.ContentDesc
}

// Rect returns the node's bounds in normalized form, preferring the
// lightweight string field. ok is false when the node carries no bounds at
// all or the string form is malformed.
func (n *Node) Rect() (Rect, bool) {
	if n.Bounds != "" {
		r, err := ParseBounds(n.Bounds)
		if err != nil {
			return Rect{}, false
		}
		return r, true
	}
	if n.BoundsInScreen != nil {
		return *n.BoundsInScreen, true
	}
	return Rect{}, false
}

// BoundsString returns the bounds in the lightweight string form regardless
// of which variant supplied them, or "" when absent.
func (n *Node) BoundsString() string {
	if n.Bounds != "" {
		return n.Bounds
	}
	if n.BoundsInScreen != nil {
		return n.BoundsInScreen.String()
	}
	return ""
}

func firstFlag(a, b *bool) *bool {
	if a != nil {
		return a
	}
	return b
}

// Checkable merges the variant spellings of the checkable flag.
func (n *Node) Checkable() *bool { return firstFlag(n.IsCheckable, nil) }

// Checked merges the variant spellings of the checked flag.
func (n *Node) Checked() *bool { return firstFlag(n.IsChecked, n.CheckedAlt) }

// Enabled merges the variant spellings of the enabled flag.
func (n *Node) Enabled() *bool { return firstFlag(n.IsEnabled, n.EnabledAlt) }

// Selected merges the variant spellings of the selected flag.
func (n *Node) Selected() *bool { return firstFlag(n.IsSelected, n.SelectedAlt) }

// Focused merges the variant spellings of the focused flag.
func (n *Node) Focused() *bool { return firstFlag(n.IsFocused, n.FocusedAlt) }

// Clickable merges the variant spellings of the clickable flag.
func (n *Node) Clickable() *bool { return firstFlag(n.IsClickable, n.ClickableAlt) }

// ShortClassName strips the package prefix from a fully qualified class name:
// android.widget.FrameLayout -> FrameLayout.
func ShortClassName(className string) string {
	if i := strings.LastIndex(className, "."); i >= 0 {
		return className[i+1:]
	}
	return className
}

// ShortResourceID strips the package prefix from a resource identifier
// (com.app:id/submit -> submit). Obfuscated placeholders render as "".
func ShortResourceID(resourceID string) string {
	if resourceID == "" || strings.Contains(resourceID, "obfuscated") {
		return ""
	}
	if i := strings.LastIndex(resourceID, "/"); i >= 0 {
		return resourceID[i+1:]
	}
	return resourceID
}

// AssignIndices numbers every node in pre-order starting at 1. The full tree
// variant arrives without indices; the lightweight variant arrives with them
// already assigned by the device.
func AssignIndices(nodes []Node) {
	next := 1
	assignIndices(nodes, &next)
}

func assignIndices(nodes []Node, next *int) {
	for i := range nodes {
		nodes[i].Index = *next
		*next++
		assignIndices(nodes[i].Children, next)
	}
}
