package export

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/roman-kulish/altimeter/internal/deltacode"
	"github.com/roman-kulish/altimeter/internal/trace"
)

func TestWriteCSV(t *testing.T) {
	samples := []trace.Sample{
		{Time: 0, Altitude: 0},
		{Time: 0.125, Altitude: 10},
		{Time: 0.25, Altitude: 12.5},
		{Time: 1.25, Altitude: 2.4},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, samples); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "time,altitude,speed\n" +
		"0.000000,0,0\n" +
		"0.125000,10,80\n" +
		"0.250000,13,20\n" +
		"1.250000,2,-10\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV_ZeroInterval(t *testing.T) {
	samples := []trace.Sample{{Time: 0, Altitude: 0}, {Time: 0, Altitude: 5}}

	var buf bytes.Buffer
	err := WriteCSV(&buf, samples)
	if !errors.Is(err, ErrZeroInterval) {
		t.Fatalf("expected ErrZeroInterval, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %q", buf.String())
	}
}

func TestRows_EndToEnd(t *testing.T) {
	p, err := trace.LookupProfile(trace.ModeRocket)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	// +2, +2, -1 units of 5 feet at 8Hz
	samples := trace.Synthesize(deltacode.Decode([]byte{0x77, 0x04}), p)

	rows, err := Rows(samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Row{
		{Time: 0, Altitude: 0, Speed: 0},
		{Time: 0.125, Altitude: 10, Speed: 80},
		{Time: 0.25, Altitude: 20, Speed: 80},
		{Time: 0.375, Altitude: 15, Speed: -40},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestPlotPoints(t *testing.T) {
	testCases := []struct {
		name    string
		samples []trace.Sample
		want    []trace.Sample
	}{
		{"empty", nil, nil},
		{"initial only", []trace.Sample{{}}, []trace.Sample{{}}},
		{
			name:    "drops repeated altitudes",
			samples: []trace.Sample{{Time: 0, Altitude: 0}, {Time: 1, Altitude: 0}, {Time: 2, Altitude: 5}, {Time: 3, Altitude: 5}, {Time: 4, Altitude: 5}, {Time: 5, Altitude: 0}},
			want:    []trace.Sample{{Time: 0, Altitude: 0}, {Time: 2, Altitude: 5}, {Time: 5, Altitude: 0}},
		},
		{
			name:    "keeps non consecutive repeats",
			samples: []trace.Sample{{Time: 0, Altitude: 0}, {Time: 1, Altitude: 5}, {Time: 2, Altitude: 0}, {Time: 3, Altitude: 5}},
			want:    []trace.Sample{{Time: 0, Altitude: 0}, {Time: 1, Altitude: 5}, {Time: 2, Altitude: 0}, {Time: 3, Altitude: 5}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, PlotPoints(tc.samples)); diff != "" {
				t.Errorf("points mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	samples := []trace.Sample{
		{Time: 0, Altitude: 0},
		{Time: 0.5, Altitude: 50},
		{Time: 1, Altitude: 1234},
		{Time: 2, Altitude: 1200},
		{Time: 3, Altitude: 1000},
	}

	got := Summarize(samples)
	want := Summary{
		Samples:        5,
		Duration:       3,
		Apogee:         1234,
		ApogeeTime:     1,
		Final:          1000,
		MaxClimbRate:   2368,
		MaxDescentRate: 200,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
	if s := Summarize([]trace.Sample{{}}); s.Apogee != 0 || math.IsInf(s.Apogee, 0) {
		t.Errorf("expected apogee 0 for the initial sample, got %v", s.Apogee)
	}
}

func TestWriteSummary(t *testing.T) {
	s := Summary{Samples: 1500, Duration: 2.5, Apogee: 1234.4, ApogeeTime: 1, MaxClimbRate: 80}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, s, 2048); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"1,500", "2.5s", "1,234 ft at 1s", "80.0 ft/s", "2.0 KiB"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteSummary(&buf, s, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "raw data") {
		t.Errorf("expected no raw data line:\n%s", buf.String())
	}
}

func TestWriteProfile(t *testing.T) {
	p, _ := trace.LookupProfile(trace.ModeRocket)

	var buf bytes.Buffer
	if err := WriteProfile(&buf, trace.ModeRocket, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"mode: rocket",
		"pa_interval: 18",
		"fast_rate: 8",
		"slow_interval_secs: 1",
		"fast_phase_count: 80",
		"fast_interval_secs: 0.125",
		"feet_per_unit: 5",
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("profile report mismatch (-want +got):\n%s", diff)
	}
}
