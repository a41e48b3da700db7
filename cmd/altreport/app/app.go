package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/roman-kulish/altimeter/internal/export"
	"github.com/roman-kulish/altimeter/internal/storage"
)

// Run lists the stored flights or exports the samples of one of them.
func Run(ctx context.Context, config *Config, stdout io.Writer, logger *slog.Logger) (err error) {
	if _, err = os.Stat(config.DBPath); err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	store := storage.NewSqliteStore(config.DBPath)
	defer func() {
		if cErr := store.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cErr)
		}
	}()

	if config.List {
		return listFlights(ctx, store, stdout)
	}

	var opts []storage.ReaderOption
	if config.StartTime != nil {
		opts = append(opts, storage.WithStartTime(*config.StartTime))
	}
	if config.EndTime != nil {
		opts = append(opts, storage.WithEndTime(*config.EndTime))
	}

	reader, err := store.ReadSamples(ctx, config.FlightID, opts...)
	if err != nil {
		return fmt.Errorf("reading flight %d: %w", config.FlightID, err)
	}
	defer reader.Close()

	samples, err := storage.ReadAll(ctx, reader)
	if err != nil {
		return fmt.Errorf("reading samples: %w", err)
	}

	f := reader.Flight()
	logger.Info("flight loaded",
		slog.Int64("flightID", f.ID),
		slog.String("mode", f.Mode),
		slog.Int("samples", len(samples)))

	if err = writeOutput(config.OutputFile, stdout, func(w io.Writer) error {
		return export.WriteCSV(w, samples)
	}); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}

	if config.SummaryFile != "" {
		rawBytes := f.RawBytes
		if config.StartTime != nil || config.EndTime != nil {
			rawBytes = -1
		}
		if err = writeOutput(config.SummaryFile, stdout, func(w io.Writer) error {
			return export.WriteSummary(w, export.Summarize(samples), rawBytes)
		}); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	return nil
}

func listFlights(ctx context.Context, store storage.Store, w io.Writer) error {
	flights, err := store.Flights(ctx)
	if err != nil {
		return fmt.Errorf("listing flights: %w", err)
	}

	for _, f := range flights {
		_, err = fmt.Fprintf(w, "%d\t%-8s\t%-10s\t%s\t%s\n",
			f.ID, f.Mode, humanize.IBytes(uint64(f.RawBytes)), humanize.Time(f.CreatedAt), f.Source)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeOutput opens path, or stdout for "-", and hands it to fn.
func writeOutput(path string, stdout io.Writer, fn func(io.Writer) error) (err error) {
	if path == "-" {
		return fn(stdout)
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
