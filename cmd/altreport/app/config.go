package app

import (
	"errors"
	"flag"
	"os"
)

type Config struct {
	DBPath      string
	FlightID    int64
	OutputFile  string
	SummaryFile string
	StartTime   *float64
	EndTime     *float64
	List        bool
	Verbose     bool
}

func NewConfig() *Config {
	return &Config{
		OutputFile: "-",
	}
}

// NewConfigFromCLI parses the process arguments.
func NewConfigFromCLI() (*Config, error) {
	return parseConfig(flag.CommandLine, os.Args[1:])
}

func parseConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	c := NewConfig()

	var startTime, endTime float64
	fs.StringVar(&c.DBPath, "db", "", "Path to the database file")
	fs.Int64Var(&c.FlightID, "f", 0, "Flight ID")
	fs.StringVar(&c.OutputFile, "o", "-", "Path to the output CSV file, '-' for standard output")
	fs.StringVar(&c.SummaryFile, "summary", "", "Path to write the flight summary, '-' for standard output")
	fs.Float64Var(&startTime, "start", 0, "Skip samples before this elapsed time in seconds (format nn.n)")
	fs.Float64Var(&endTime, "end", 0, "Skip samples after this elapsed time in seconds (format nn.n)")
	fs.BoolVar(&c.List, "list", false, "List stored flights and exit")
	fs.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "start" {
			c.StartTime = &startTime
		}
		if f.Name == "end" {
			c.EndTime = &endTime
		}
	})

	var err error
	if c.DBPath == "" {
		err = errors.New("db path is required")
	} else if c.List {
		return c, nil
	} else if c.FlightID <= 0 {
		err = errors.New("flight id is required")
	} else if c.OutputFile == "" {
		err = errors.New("output file is required")
	} else if c.StartTime != nil && c.EndTime != nil && *c.StartTime > *c.EndTime {
		err = errors.New("start time must not be after end time")
	}

	if err != nil {
		fs.Usage()
		return nil, err
	}
	return c, nil
}
