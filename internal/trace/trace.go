// Package trace reconstructs the altitude time series from decoded deltas.
// The recorder does not transmit timestamps; they are synthesized from the
// profile, which switches from a fast to a slow sampling interval once a
// fixed number of samples has been produced.
package trace

// Sample is one point of the reconstructed altitude trace.
type Sample struct {
	Time     float64 `json:"time"`     // Seconds elapsed since the first sample
	Altitude float64 `json:"altitude"` // Feet above the first sample
}

// Synthesize integrates deltas into a sequence of samples. The result always
// starts with the implicit (0, 0) sample and holds len(deltas)+1 entries.
func Synthesize(deltas []int, p Profile) []Sample {
	fast, slow := p.FastInterval(), p.SlowInterval
	feetPerUnit := p.FeetPerUnit()

	samples := make([]Sample, 1, len(deltas)+1)
	for _, d := range deltas {
		last := samples[len(samples)-1]

		step := fast
		if len(samples) > p.FastPhaseCount {
			step = slow
		}

		samples = append(samples, Sample{
			Time:     last.Time + step,
			Altitude: last.Altitude + float64(d)*feetPerUnit,
		})
	}
	return samples
}

// Interval returns the time step used to produce the sample at index i, or 0
// for the initial sample.
func (p Profile) Interval(i int) float64 {
	switch {
	case i <= 0:
		return 0
	case i > p.FastPhaseCount:
		return p.SlowInterval
	default:
		return p.FastInterval()
	}
}
