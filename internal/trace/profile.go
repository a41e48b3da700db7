package trace

import (
	"fmt"
	"maps"
	"slices"
)

const (
	ModeRocket   = "rocket"
	ModeThrow    = "throw"
	ModeElectric = "electric"
	ModeKite     = "kite"
)

// paUnitsPerFoot is the number of pressure altitude units per foot of the
// profile's PA interval.
const paUnitsPerFoot = 3.6

// Profile bundles the constants that govern unit scaling and phase timing
// for one kind of flight.
type Profile struct {
	PAInterval     float64 `yaml:"paInterval" json:"paInterval"`         // Pressure altitude unit step
	FastRate       float64 `yaml:"fastRate" json:"fastRate"`             // Samples per second during the fast phase
	SlowInterval   float64 `yaml:"slowInterval" json:"slowInterval"`     // Seconds per sample during the slow phase
	FastPhaseCount int     `yaml:"fastPhaseCount" json:"fastPhaseCount"` // Number of samples treated as fast
}

// FastInterval returns the seconds per sample during the fast phase.
func (p Profile) FastInterval() float64 {
	return 1 / p.FastRate
}

// FeetPerUnit returns the altitude in feet represented by one delta unit.
func (p Profile) FeetPerUnit() float64 {
	return p.PAInterval / paUnitsPerFoot
}

// Validate reports whether the profile can drive the synthesizer.
func (p Profile) Validate() error {
	switch {
	case p.PAInterval <= 0:
		return fmt.Errorf("paInterval must be > 0, got %g", p.PAInterval)
	case p.FastRate <= 0:
		return fmt.Errorf("fastRate must be > 0, got %g", p.FastRate)
	case p.SlowInterval <= 0:
		return fmt.Errorf("slowInterval must be > 0, got %g", p.SlowInterval)
	case p.FastPhaseCount < 0:
		return fmt.Errorf("fastPhaseCount must be >= 0, got %d", p.FastPhaseCount)
	}
	return nil
}

var builtinProfiles = map[string]Profile{
	ModeRocket:   {PAInterval: 18, FastRate: 8, SlowInterval: 1, FastPhaseCount: 80},
	ModeThrow:    {PAInterval: 5, FastRate: 10, SlowInterval: 1, FastPhaseCount: 200},
	ModeElectric: {PAInterval: 17, FastRate: 4, SlowInterval: 1, FastPhaseCount: 40},
	ModeKite:     {PAInterval: 11, FastRate: 2, SlowInterval: 1, FastPhaseCount: 256},
}

// Profiles is an immutable mode name to profile mapping.
type Profiles struct {
	byMode map[string]Profile
}

// DefaultProfiles returns the profiles built into the recorder firmware.
func DefaultProfiles() *Profiles {
	return &Profiles{byMode: maps.Clone(builtinProfiles)}
}

// Lookup returns the profile registered for mode. Unknown modes yield a
// *ConfigError wrapping ErrUnknownMode.
func (ps *Profiles) Lookup(mode string) (Profile, error) {
	p, ok := ps.byMode[mode]
	if !ok {
		return Profile{}, NewConfigError(fmt.Sprintf("mode '%s' (known: %v)", mode, ps.Modes()), ErrUnknownMode)
	}
	return p, nil
}

// Modes returns the registered mode names in sorted order.
func (ps *Profiles) Modes() []string {
	return slices.Sorted(maps.Keys(ps.byMode))
}

// LookupProfile looks mode up in the default profiles.
func LookupProfile(mode string) (Profile, error) {
	return DefaultProfiles().Lookup(mode)
}
