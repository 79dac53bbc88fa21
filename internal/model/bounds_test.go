package model

import "testing"

func TestParseBounds(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Rect
		wantErr bool
	}{
		{"plain", "10, 10, 50, 30", Rect{10, 10, 50, 30}, false},
		{"no_spaces", "0,0,1080,2400", Rect{0, 0, 1080, 2400}, false},
		{"negative", "-39, 1439, 183, 1661", Rect{-39, 1439, 183, 1661}, false},
		{"too_few_fields", "10, 20, 30", Rect{}, true},
		{"non_numeric", "a, b, c, d", Rect{}, true},
		{"empty", "", Rect{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBounds(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBounds(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBounds(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBoundsRoundTrip(t *testing.T) {
	r := Rect{Left: 5, Top: 10, Right: 105, Bottom: 210}
	got, err := ParseBounds(r.String())
	if err != nil {
		t.Fatalf("ParseBounds(%q) error: %v", r.String(), err)
	}
	if got != r {
		t.Errorf("round-trip = %v, want %v", got, r)
	}
}

func TestCenterWithinBounds(t *testing.T) {
	rects := []Rect{
		{0, 0, 100, 100},
		{10, 10, 50, 30},
		{7, 3, 8, 4}, // 1x1
		{5, 5, 5, 5}, // zero-area
	}
	for _, r := range rects {
		cx, cy := r.Center()
		if cx < r.Left || cx > r.Right || cy < r.Top || cy > r.Bottom {
			t.Errorf("center (%d,%d) outside %v", cx, cy, r)
		}
	}
}

func TestCenterFloorDivision(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		cx, cy int
	}{
		{"odd_sum", Rect{Left: 0, Top: 0, Right: 5, Bottom: 3}, 2, 1},
		{"negative_odd_sum", Rect{Left: -51, Top: 0, Right: 30, Bottom: 10}, -11, 5},
		{"fully_negative", Rect{Left: -7, Top: -5, Right: -2, Bottom: -2}, -5, -4},
		{"negative_even_sum", Rect{Left: -10, Top: -4, Right: 6, Bottom: 4}, -2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := tt.r.Center()
			if cx != tt.cx || cy != tt.cy {
				t.Errorf("Center() = (%d,%d), want (%d,%d)", cx, cy, tt.cx, tt.cy)
			}
		})
	}
}

func TestSize(t *testing.T) {
	r := Rect{Left: 10, Top: 10, Right: 50, Bottom: 30}
	w, h := r.Size()
	if w != 40 || h != 20 {
		t.Errorf("Size() = (%d,%d), want (40,20)", w, h)
	}
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlapping", Rect{0, 0, 100, 100}, Rect{50, 50, 150, 150}, true},
		{"edge_adjacent", Rect{0, 0, 100, 100}, Rect{100, 0, 200, 100}, false},
		{"contained", Rect{0, 0, 200, 200}, Rect{50, 50, 60, 60}, true},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 30, 30}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("%v.Intersects(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("%v.Intersects(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestContainsInclusive(t *testing.T) {
	r := Rect{Left: 10, Top: 10, Right: 20, Bottom: 20}
	if !r.Contains(10, 10) || !r.Contains(20, 20) {
		t.Error("edges should be inclusive")
	}
	if r.Contains(9, 15) || r.Contains(15, 21) {
		t.Error("points outside the rect should not be contained")
	}
}

func TestClip(t *testing.T) {
	r := Rect{Left: -10, Top: 50, Right: 120, Bottom: 250}
	got := r.Clip(100, 200)
	want := Rect{Left: 0, Top: 50, Right: 100, Bottom: 200}
	if got != want {
		t.Errorf("Clip = %v, want %v", got, want)
	}
}
