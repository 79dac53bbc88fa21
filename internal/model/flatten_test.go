package model

import "testing"

func TestFlattenFiltersContainerButKeepsChildren(t *testing.T) {
	tree := []Node{
		{
			Index:     1,
			ClassName: "android.widget.FrameLayout",
			Bounds:    "0, 0, 1080, 1920",
			Children: []Node{
				{Index: 2, ClassName: "android.widget.Button", Text: "OK", Bounds: "10, 10, 50, 30"},
			},
		},
	}

	cfg := DefaultFilterConfig(1080, 1920)
	flat := Flatten(tree, cfg)

	if len(flat) != 1 {
		t.Fatalf("expected 1 element after filtering, got %d", len(flat))
	}
	if flat[0].Text != "OK" {
		t.Errorf("expected the Button to survive, got %q", flat[0].Text)
	}

	line := FormatLine(flat[0], true)
	want := `[2] "OK" center=(30,20) bounds=(10,10,50,30) class=Button`
	if line != want {
		t.Errorf("FormatLine = %q, want %q", line, want)
	}
}

func TestFlattenPreservesTraversalOrder(t *testing.T) {
	tree := []Node{
		{Index: 1, ClassName: "android.widget.Button", Text: "A", Bounds: "0, 0, 100, 100"},
		{
			Index: 2, ClassName: "android.widget.LinearLayout", Bounds: "0, 100, 1080, 500",
			Children: []Node{
				{Index: 3, ClassName: "android.widget.Button", Text: "B", Bounds: "0, 100, 100, 200"},
			},
		},
		{Index: 4, ClassName: "android.widget.Button", Text: "C", Bounds: "0, 500, 100, 600"},
	}
	flat := Flatten(tree, DefaultFilterConfig(1080, 1920))
	var texts []string
	for _, n := range flat {
		texts = append(texts, n.Text)
	}
	want := []string{"A", "B", "C"}
	if len(texts) != len(want) {
		t.Fatalf("expected %d elements, got %d (%v)", len(want), len(texts), texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestFlattenAll(t *testing.T) {
	tree := []Node{
		{Index: 1, ClassName: "android.widget.FrameLayout",
			Children: []Node{{Index: 2, ClassName: "android.widget.Button", Text: "OK"}}},
	}
	all := FlattenAll(tree)
	if len(all) != 2 {
		t.Errorf("FlattenAll should include noise nodes, got %d elements", len(all))
	}
}

func TestBuildIndex(t *testing.T) {
	tree := []Node{
		{Index: 1, Text: "one"},
		{Index: 2, Text: "two", Children: []Node{
			{Index: 4, Text: "four"},
			{Index: 5, Text: "five"},
		}},
		{Index: 3, Text: "three"},
	}

	index := BuildIndex(tree)
	if len(index) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(index))
	}
	for idx, wantText := range map[int]string{1: "one", 2: "two", 3: "three", 4: "four", 5: "five"} {
		n, ok := index[idx]
		if !ok {
			t.Fatalf("index %d missing", idx)
		}
		if n.Text != wantText {
			t.Errorf("index %d: got %q, want %q", idx, n.Text, wantText)
		}
	}
}

func TestFindByIndex(t *testing.T) {
	tree := []Node{{Index: 1, Children: []Node{{Index: 2, Text: "nested"}}}}
	if n := FindByIndex(tree, 2); n == nil || n.Text != "nested" {
		t.Errorf("FindByIndex(2) = %v, want nested node", n)
	}
	if n := FindByIndex(tree, 99); n != nil {
		t.Errorf("FindByIndex(99) = %v, want nil", n)
	}
}

func TestFindByText(t *testing.T) {
	tree := []Node{
		{Index: 1, Text: "", Children: []Node{
			{Index: 2, Text: "Login Button"},
			{Index: 3, Text: "login"},
		}},
		{Index: 4, Text: "Logout"},
	}

	tests := []struct {
		name      string
		query     string
		exact     bool
		wantIndex int // 0 = expect nil
	}{
		{"substring_case_insensitive", "LOGIN", false, 2},
		{"first_match_in_preorder", "log", false, 2},
		{"exact_no_substring", "Login", true, 0},
		{"exact_hit", "login", true, 3},
		{"no_match", "Settings", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindByText(tree, tt.query, tt.exact)
			if tt.wantIndex == 0 {
				if got != nil {
					t.Errorf("FindByText(%q) = node %d, want nil", tt.query, got.Index)
				}
				return
			}
			if got == nil || got.Index != tt.wantIndex {
				t.Errorf("FindByText(%q) = %v, want node %d", tt.query, got, tt.wantIndex)
			}
		})
	}
}

func TestFindByTextEmptyTextNeverMatches(t *testing.T) {
	tree := []Node{{Index: 1, Text: ""}}
	if got := FindByText(tree, "", false); got != nil {
		t.Errorf("empty-text node matched empty query: %v", got)
	}
}

func TestAssignIndices(t *testing.T) {
	tree := []Node{
		{Children: []Node{
			{},
			{Children: []Node{{}}},
		}},
		{},
	}
	AssignIndices(tree)

	if tree[0].Index != 1 {
		t.Errorf("root index = %d, want 1", tree[0].Index)
	}
	if tree[0].Children[0].Index != 2 {
		t.Errorf("first child index = %d, want 2", tree[0].Children[0].Index)
	}
	if tree[0].Children[1].Index != 3 {
		t.Errorf("second child index = %d, want 3", tree[0].Children[1].Index)
	}
	if tree[0].Children[1].Children[0].Index != 4 {
		t.Errorf("grandchild index = %d, want 4", tree[0].Children[1].Children[0].Index)
	}
	if tree[1].Index != 5 {
		t.Errorf("second root index = %d, want 5", tree[1].Index)
	}
}
