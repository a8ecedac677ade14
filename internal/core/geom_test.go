package core

import "testing"

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlap", Box{0, 0, 30, 30}, Box{20, 20, 100, 20}, true},
		{"touching edges", Box{0, 0, 30, 30}, Box{30, 0, 10, 10}, false},
		{"touching top", Box{0, 0, 30, 30}, Box{0, 30, 100, 20}, false},
		{"apart", Box{0, 0, 10, 10}, Box{50, 50, 10, 10}, false},
		{"fractional overlap", Box{0, 0, 10, 10.5}, Box{0, 10.25, 10, 10}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 30, H: 40}
	if b.Right() != 40 || b.Bottom() != 60 || b.CenterX() != 25 {
		t.Errorf("unexpected edges: right=%f bottom=%f center=%f", b.Right(), b.Bottom(), b.CenterX())
	}
}

func TestBoxProject(t *testing.T) {
	b := Box{X: 100, Y: 480, W: 120, H: 20}
	r := b.Project(0.2, 0.04, 0, 0)

	if r.X != 20 || r.Y != 19 || r.W != 24 {
		t.Errorf("Project() = %+v", r)
	}
	// 20 * 0.04 rounds to 1
	if r.H != 1 {
		t.Errorf("Project() height = %d, expected 1", r.H)
	}

	tiny := Box{X: 0, Y: 0, W: 1, H: 1}.Project(0.1, 0.1, 0, 0)
	if tiny.W != 1 || tiny.H != 1 {
		t.Errorf("non-empty boxes must cover a cell, got %+v", tiny)
	}
}
