package trace

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookupProfile(t *testing.T) {
	testCases := []struct {
		mode string
		want Profile
	}{
		{ModeRocket, Profile{PAInterval: 18, FastRate: 8, SlowInterval: 1, FastPhaseCount: 80}},
		{ModeThrow, Profile{PAInterval: 5, FastRate: 10, SlowInterval: 1, FastPhaseCount: 200}},
		{ModeElectric, Profile{PAInterval: 17, FastRate: 4, SlowInterval: 1, FastPhaseCount: 40}},
		{ModeKite, Profile{PAInterval: 11, FastRate: 2, SlowInterval: 1, FastPhaseCount: 256}},
	}

	for _, tc := range testCases {
		t.Run(tc.mode, func(t *testing.T) {
			got, err := LookupProfile(tc.mode)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("profile mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookupProfile_UnknownMode(t *testing.T) {
	_, err := LookupProfile("glider")
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected *ConfigError, got %T", err)
	}
	if !strings.Contains(err.Error(), "glider") {
		t.Errorf("expected mode name in error, got %q", err.Error())
	}
}

func TestProfile_Derived(t *testing.T) {
	p, _ := LookupProfile(ModeThrow)
	if p.FastInterval() != 0.1 {
		t.Errorf("expected fast interval 0.1, got %v", p.FastInterval())
	}
	if !approxEqual(p.FeetPerUnit(), 5/3.6) {
		t.Errorf("expected %v feet per unit, got %v", 5/3.6, p.FeetPerUnit())
	}
}

func TestDefaultProfiles_Isolated(t *testing.T) {
	a := DefaultProfiles()
	a.byMode[ModeRocket] = Profile{}

	p, err := DefaultProfiles().Lookup(ModeRocket)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PAInterval != 18 {
		t.Errorf("default profiles were mutated: %+v", p)
	}
}

func TestLoadProfiles(t *testing.T) {
	doc := `
profiles:
  rocket:
    paInterval: 20
    fastRate: 16
    slowInterval: 0.5
    fastPhaseCount: 160
  balloon:
    paInterval: 36
    fastRate: 1
    slowInterval: 10
    fastPhaseCount: 0
`
	ps, err := LoadProfiles(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"balloon", ModeElectric, ModeKite, ModeRocket, ModeThrow}
	if diff := cmp.Diff(want, ps.Modes()); diff != "" {
		t.Errorf("modes mismatch (-want +got):\n%s", diff)
	}

	rocket, _ := ps.Lookup(ModeRocket)
	if diff := cmp.Diff(Profile{PAInterval: 20, FastRate: 16, SlowInterval: 0.5, FastPhaseCount: 160}, rocket); diff != "" {
		t.Errorf("rocket mismatch (-want +got):\n%s", diff)
	}

	kite, _ := ps.Lookup(ModeKite)
	if kite.PAInterval != 11 {
		t.Errorf("expected built-in kite profile, got %+v", kite)
	}
}

func TestLoadProfiles_Empty(t *testing.T) {
	ps, err := LoadProfiles(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ps.Modes()) != 4 {
		t.Errorf("expected 4 modes, got %v", ps.Modes())
	}
}

func TestLoadProfiles_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"zero fast rate", "profiles:\n  x:\n    paInterval: 1\n    fastRate: 0\n    slowInterval: 1\n"},
		{"negative slow interval", "profiles:\n  x:\n    paInterval: 1\n    fastRate: 1\n    slowInterval: -1\n"},
		{"zero pa interval", "profiles:\n  x:\n    fastRate: 1\n    slowInterval: 1\n"},
		{"negative fast phase", "profiles:\n  x:\n    paInterval: 1\n    fastRate: 1\n    slowInterval: 1\n    fastPhaseCount: -1\n"},
		{"unknown field", "profiles:\n  x:\n    paInterval: 1\n    fastRate: 1\n    slowInterval: 1\n    speed: 3\n"},
		{"malformed", "profiles: [1, 2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadProfiles(strings.NewReader(tc.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected *ConfigError, got %T", err)
			}
		})
	}
}
