package trace

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSynthesize_Empty(t *testing.T) {
	for _, mode := range DefaultProfiles().Modes() {
		p, err := LookupProfile(mode)
		if err != nil {
			t.Fatalf("lookup %s: %v", mode, err)
		}

		got := Synthesize(nil, p)
		if diff := cmp.Diff([]Sample{{Time: 0, Altitude: 0}}, got); diff != "" {
			t.Errorf("%s: samples mismatch (-want +got):\n%s", mode, diff)
		}
	}
}

func TestSynthesize_AltitudeScaling(t *testing.T) {
	p := Profile{PAInterval: 18, FastRate: 8, SlowInterval: 1, FastPhaseCount: 80}
	if p.FeetPerUnit() != 5.0 {
		t.Fatalf("expected 5 feet per unit, got %v", p.FeetPerUnit())
	}

	got := Synthesize([]int{2}, p)
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[1].Altitude != 10.0 {
		t.Errorf("expected altitude 10, got %v", got[1].Altitude)
	}
	if got[1].Time != 0.125 {
		t.Errorf("expected time 0.125, got %v", got[1].Time)
	}
}

func TestSynthesize_PhaseBoundary(t *testing.T) {
	p := Profile{PAInterval: 3.6, FastRate: 4, SlowInterval: 3, FastPhaseCount: 2}

	got := Synthesize([]int{1, 1, 1, 1}, p)
	want := []Sample{
		{Time: 0, Altitude: 0},
		{Time: 0.25, Altitude: 1},
		{Time: 0.5, Altitude: 2},
		{Time: 3.5, Altitude: 3},
		{Time: 6.5, Altitude: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}

	for i := 1; i < len(got); i++ {
		if step := got[i].Time - got[i-1].Time; step != p.Interval(i) {
			t.Errorf("sample %d: expected step %v, got %v", i, p.Interval(i), step)
		}
	}
}

func TestSynthesize_ZeroFastPhase(t *testing.T) {
	p := Profile{PAInterval: 3.6, FastRate: 2, SlowInterval: 1, FastPhaseCount: 0}

	got := Synthesize([]int{0, 0}, p)
	if got[1].Time != 1 || got[2].Time != 2 {
		t.Errorf("expected slow steps only, got %+v", got)
	}
}

func TestSynthesize_MonotonicTime(t *testing.T) {
	deltas := make([]int, 400)
	for i := range deltas {
		deltas[i] = i%7 - 3
	}

	for _, mode := range DefaultProfiles().Modes() {
		t.Run(mode, func(t *testing.T) {
			p, err := LookupProfile(mode)
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}

			samples := Synthesize(deltas, p)
			if len(samples) != len(deltas)+1 {
				t.Fatalf("expected %d samples, got %d", len(deltas)+1, len(samples))
			}

			for i := 1; i < len(samples); i++ {
				step := samples[i].Time - samples[i-1].Time
				if step <= 0 {
					t.Fatalf("sample %d: time does not increase (%v -> %v)", i, samples[i-1].Time, samples[i].Time)
				}
				if !approxEqual(step, p.FastInterval()) && !approxEqual(step, p.SlowInterval) {
					t.Fatalf("sample %d: unexpected step %v", i, step)
				}
				if !approxEqual(step, p.Interval(i)) {
					t.Fatalf("sample %d: expected step %v, got %v", i, p.Interval(i), step)
				}
			}
		})
	}
}

func TestProfile_Interval(t *testing.T) {
	p := Profile{FastRate: 10, SlowInterval: 1, FastPhaseCount: 2}

	testCases := []struct {
		index int
		want  float64
	}{
		{0, 0},
		{1, 0.1},
		{2, 0.1},
		{3, 1},
		{100, 1},
	}
	for _, tc := range testCases {
		if got := p.Interval(tc.index); got != tc.want {
			t.Errorf("index %d: expected %v, got %v", tc.index, tc.want, got)
		}
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
