package app

import (
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/roman-kulish/altimeter/internal/source"
)

type Config struct {
	Input        string
	Mode         string
	ProfilesFile string
	OutputFile   string
	PlotFile     string
	ProfileFile  string
	SummaryFile  string
	DBPath       string
	Strict       bool
	Verbose      bool
}

func NewConfig() *Config {
	return &Config{
		Input:      source.Stdin,
		OutputFile: "-",
	}
}

// NewConfigFromCLI parses the process arguments.
func NewConfigFromCLI() (*Config, error) {
	return parseConfig(flag.CommandLine, os.Args[1:])
}

func parseConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	c := NewConfig()

	fs.StringVar(&c.Input, "i", source.Stdin, "Path to the raw recorder dump, '-' for standard input")
	fs.StringVar(&c.Mode, "m", "", "Flight mode selecting the profile [rocket, throw, electric, kite]")
	fs.StringVar(&c.ProfilesFile, "profiles", "", "Path to a YAML file overriding or adding profiles")
	fs.StringVar(&c.OutputFile, "o", "-", "Path to the output CSV file, '-' for standard output")
	fs.StringVar(&c.PlotFile, "plot", "", "Path to write de-duplicated plot points as CSV")
	fs.StringVar(&c.ProfileFile, "profile-out", "", "Path to write the active profile values")
	fs.StringVar(&c.SummaryFile, "summary", "", "Path to write the flight summary, '-' for standard output")
	fs.StringVar(&c.DBPath, "db", "", "Path to a database file to store the flight in")
	fs.BoolVar(&c.Strict, "strict", false, "Fail when the dump ends inside an escape run")
	fs.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))

	var err error
	if c.Mode == "" {
		err = errors.New("mode is required")
	} else if c.OutputFile == "" {
		err = errors.New("output file is required")
	} else if c.Input != source.Stdin && c.Input == c.OutputFile {
		err = errors.New("input and output must differ")
	}

	if err != nil {
		fs.Usage()
		return nil, err
	}
	return c, nil
}
