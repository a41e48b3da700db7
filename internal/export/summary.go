package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/altimeter/internal/trace"
)

// Summary holds the headline numbers of a flight.
type Summary struct {
	Samples        int
	Duration       float64 // Seconds
	Apogee         float64 // Feet
	ApogeeTime     float64 // Seconds
	Final          float64 // Altitude of the last sample, feet
	MaxClimbRate   float64 // Feet per second
	MaxDescentRate float64 // Feet per second, positive
}

// Summarize computes the summary of samples. Pairs of samples sharing a
// timestamp are ignored for the rates.
func Summarize(samples []trace.Sample) Summary {
	var s Summary
	s.Samples = len(samples)
	if len(samples) == 0 {
		return s
	}

	s.Apogee = math.Inf(-1)
	for i, sample := range samples {
		if sample.Altitude > s.Apogee {
			s.Apogee = sample.Altitude
			s.ApogeeTime = sample.Time
		}
		if i == 0 {
			continue
		}

		prev := samples[i-1]
		dt := sample.Time - prev.Time
		if dt == 0 {
			continue
		}
		rate := (sample.Altitude - prev.Altitude) / dt
		s.MaxClimbRate = max(s.MaxClimbRate, rate)
		s.MaxDescentRate = max(s.MaxDescentRate, -rate)
	}

	last := samples[len(samples)-1]
	s.Duration = last.Time - samples[0].Time
	s.Final = last.Altitude
	return s
}

// WriteSummary writes a human readable report of s. rawBytes is the length of
// the decoded byte stream; pass a negative value to omit it.
func WriteSummary(w io.Writer, s Summary, rawBytes int) error {
	lines := []string{
		fmt.Sprintf("samples:          %s", humanize.Comma(int64(s.Samples))),
		fmt.Sprintf("duration:         %s", formatSeconds(s.Duration)),
		fmt.Sprintf("apogee:           %s ft at %s", humanize.Comma(int64(math.Round(s.Apogee))), formatSeconds(s.ApogeeTime)),
		fmt.Sprintf("final altitude:   %s ft", humanize.Comma(int64(math.Round(s.Final)))),
		fmt.Sprintf("max climb rate:   %s ft/s", humanize.FormatFloat("#,###.#", s.MaxClimbRate)),
		fmt.Sprintf("max descent rate: %s ft/s", humanize.FormatFloat("#,###.#", s.MaxDescentRate)),
	}
	if rawBytes >= 0 {
		lines = append(lines, fmt.Sprintf("raw data:         %s", humanize.IBytes(uint64(rawBytes))))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatSeconds(secs float64) string {
	return time.Duration(secs * float64(time.Second)).Round(time.Millisecond).String()
}

type profileReport struct {
	Mode           string  `yaml:"mode"`
	PAInterval     float64 `yaml:"pa_interval"`
	FastRate       float64 `yaml:"fast_rate"`
	SlowInterval   float64 `yaml:"slow_interval_secs"`
	FastPhaseCount int     `yaml:"fast_phase_count"`
	FastInterval   float64 `yaml:"fast_interval_secs"`
	FeetPerUnit    float64 `yaml:"feet_per_unit"`
}

// WriteProfile records the scalars of the active profile, and the constants
// derived from them, as plain text.
func WriteProfile(w io.Writer, mode string, p trace.Profile) error {
	enc := yaml.NewEncoder(w)
	err := enc.Encode(profileReport{
		Mode:           mode,
		PAInterval:     p.PAInterval,
		FastRate:       p.FastRate,
		SlowInterval:   p.SlowInterval,
		FastPhaseCount: p.FastPhaseCount,
		FastInterval:   p.FastInterval(),
		FeetPerUnit:    p.FeetPerUnit(),
	})
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return enc.Close()
}
