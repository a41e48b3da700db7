package export

import "github.com/roman-kulish/altimeter/internal/trace"

// PlotPoints returns the samples worth plotting: a sample is dropped when its
// altitude equals the altitude of the last kept sample. The first sample is
// always kept.
func PlotPoints(samples []trace.Sample) []trace.Sample {
	if len(samples) == 0 {
		return nil
	}

	points := make([]trace.Sample, 1, len(samples))
	points[0] = samples[0]
	for _, s := range samples[1:] {
		if s.Altitude == points[len(points)-1].Altitude {
			continue
		}
		points = append(points, s)
	}
	return points
}
