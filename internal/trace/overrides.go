package trace

import (
	"fmt"
	"io"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

type profilesFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// LoadProfiles reads a YAML document of the form
//
//	profiles:
//	  rocket:
//	    paInterval: 18
//	    fastRate: 8
//	    slowInterval: 1
//	    fastPhaseCount: 80
//
// and merges it over the default profiles. Entries replace a built-in profile
// as a whole.
func LoadProfiles(r io.Reader) (*Profiles, error) {
	var f profilesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, NewConfigError("decoding profiles", err)
	}

	ps := DefaultProfiles()
	for mode, p := range f.Profiles {
		if mode == "" {
			return nil, NewConfigError("profile with empty mode name", nil)
		}
		if err := p.Validate(); err != nil {
			return nil, NewConfigError(fmt.Sprintf("profile '%s'", mode), err)
		}
		ps.byMode[mode] = p
	}
	return ps, nil
}

// LoadProfilesFile is LoadProfiles reading from the file at path.
func LoadProfilesFile(path string) (ps *Profiles, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening profiles file: %w", err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing profiles file: %w", cErr)
		}
	}()

	return LoadProfiles(f)
}

// MarshalYAML writes the profiles in the format LoadProfiles reads.
func (ps *Profiles) MarshalYAML() (interface{}, error) {
	return profilesFile{Profiles: maps.Clone(ps.byMode)}, nil
}
