package thermal

import "testing"

func TestCurve_At(t *testing.T) {
	c := PLGAHeatFlow()
	tests := []struct {
		T    float64
		want float64
	}{
		{0, 0},
		{49.9, 0},
		{50, 0.1},
		{169.4, 0.1},
		{169.5, 0},
		{400, 0},
	}
	for _, tt := range tests {
		if got := c.At(tt.T); got != tt.want {
			t.Errorf("At(%v) = %v, want %v", tt.T, got, tt.want)
		}
	}
}

func TestCurve_ProfileMatchesAt(t *testing.T) {
	grid := Grid(100)
	for _, c := range []Curve{PLGAHeatFlow(), ParacetamolHeatFlow(), ParacetamolWeightLoss(), PLGAWeightLoss()} {
		p := c.Profile(grid)
		if len(p) != len(grid) {
			t.Fatalf("%s: profile length %d, want %d", c.Name, len(p), len(grid))
		}
		for i, T := range grid {
			if p[i] != c.At(T) {
				t.Errorf("%s: Profile[%d]=%v, At(%v)=%v", c.Name, i, p[i], T, c.At(T))
			}
		}
	}
}

func TestCurve_UnsortedTransitions(t *testing.T) {
	c := Curve{Transitions: []Transition{{Onset: 300, Level: 1}, {Onset: 100, Level: 0.5}}}
	if got := c.At(200); got != 0.5 {
		t.Errorf("At(200) = %v, want 0.5", got)
	}
	if got := c.At(350); got != 1 {
		t.Errorf("At(350) = %v, want 1", got)
	}
}

func TestWeightLoss_Monotone(t *testing.T) {
	for _, c := range []Curve{ParacetamolWeightLoss(), PLGAWeightLoss()} {
		p := c.Profile(Grid(200))
		for i := 1; i < len(p); i++ {
			if p[i] < p[i-1] {
				t.Fatalf("%s: mass loss decreased at %d", c.Name, i)
			}
		}
	}
}
