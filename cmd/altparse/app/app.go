package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roman-kulish/altimeter/internal/deltacode"
	"github.com/roman-kulish/altimeter/internal/export"
	"github.com/roman-kulish/altimeter/internal/source"
	"github.com/roman-kulish/altimeter/internal/storage"
	"github.com/roman-kulish/altimeter/internal/trace"
)

// Run decodes the dump selected by config and writes every requested output.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	profiles, err := loadProfiles(config.ProfilesFile)
	if err != nil {
		return err
	}

	profile, err := profiles.Lookup(config.Mode)
	if err != nil {
		return err
	}

	data, label, err := source.ReadNamed(config.Input)
	if err != nil {
		return err
	}

	logger.Debug("input read", slog.String("source", label), slog.Int("bytes", len(data)))

	deltas, err := decode(data, config.Strict, logger)
	if err != nil {
		return err
	}

	samples := trace.Synthesize(deltas, profile)

	logger.Info("trace synthesized",
		slog.String("mode", config.Mode),
		slog.Int("deltas", len(deltas)),
		slog.Int("samples", len(samples)))

	outputs := []struct {
		msg  string
		path string
		fn   func(io.Writer) error
	}{
		{"writing CSV", config.OutputFile, func(w io.Writer) error {
			return export.WriteCSV(w, samples)
		}},
		{"writing plot points", config.PlotFile, func(w io.Writer) error {
			return export.WriteCSV(w, export.PlotPoints(samples))
		}},
		{"writing profile", config.ProfileFile, func(w io.Writer) error {
			return export.WriteProfile(w, config.Mode, profile)
		}},
		{"writing summary", config.SummaryFile, func(w io.Writer) error {
			return export.WriteSummary(w, export.Summarize(samples), len(data))
		}},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err = writeOutput(o.path, o.fn); err != nil {
			return fmt.Errorf("%s: %w", o.msg, err)
		}
	}

	if config.DBPath != "" {
		flightID, err := storeFlight(ctx, config.DBPath, config.Mode, label, len(data), profile, samples)
		if err != nil {
			return fmt.Errorf("storing flight: %w", err)
		}
		logger.Info("flight stored", slog.String("db", config.DBPath), slog.Int64("flightID", flightID))
	}

	return nil
}

func loadProfiles(path string) (*trace.Profiles, error) {
	if path == "" {
		return trace.DefaultProfiles(), nil
	}
	return trace.LoadProfilesFile(path)
}

func decode(data []byte, strict bool, logger *slog.Logger) ([]int, error) {
	deltas, err := deltacode.DecodeStrict(data)

	var carryErr *deltacode.CarryError
	if errors.As(err, &carryErr) {
		if strict {
			return nil, fmt.Errorf("decoding dump: %w", err)
		}
		logger.Debug("dropped trailing escape run", slog.Int("carry", carryErr.Carry), slog.Int("offset", carryErr.Offset))
	}
	return deltas, nil
}

// writeOutput opens path, or standard output for "-", and hands it to fn.
func writeOutput(path string, fn func(io.Writer) error) (err error) {
	if path == "-" {
		return fn(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()

	return fn(f)
}

func storeFlight(ctx context.Context, dbPath, mode, label string, rawBytes int, profile trace.Profile, samples []trace.Sample) (flightID int64, err error) {
	store := storage.NewSqliteStore(dbPath)
	defer func() {
		if cErr := store.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cErr)
		}
	}()

	if flightID, err = store.CreateFlight(ctx, mode, label, rawBytes, profile); err != nil {
		return
	}
	err = store.StoreSamples(ctx, flightID, samples)
	return
}
