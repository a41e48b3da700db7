package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roman-kulish/altimeter/internal/deltacode"
	"github.com/roman-kulish/altimeter/internal/export"
	"github.com/roman-kulish/altimeter/internal/source"
	"github.com/roman-kulish/altimeter/internal/storage"
	"github.com/roman-kulish/altimeter/internal/trace"
)

// Run collects one dump from the recorder and stores the decoded flight.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	return run(ctx, config, logger, source.OpenSerialPort)
}

func run(ctx context.Context, config *Config, logger *slog.Logger, opener source.PortOpener) error {
	profile, err := loadProfile(&config.Recording)
	if err != nil {
		return err
	}

	dataDir, err := dataDirectory(&config.Storage)
	if err != nil {
		return err
	}

	reader := source.NewSerialReader(config.Serial.Port,
		source.WithLogger(logger),
		source.WithBaudRate(config.Serial.BaudRate),
		source.WithIdleTimeout(time.Duration(config.Serial.IdleTimeout)),
		source.WithMaxBytes(config.Serial.MaxBytes),
		source.WithPortOpener(opener))

	data, err := reader.ReadDump(ctx)
	switch {
	case errors.Is(err, context.Canceled) && len(data) > 0:
		logger.Warn("dump interrupted, keeping partial data", slog.Int("bytes", len(data)))

	case errors.Is(err, context.Canceled):
		logger.Info("stopped before any data was received")
		return nil

	case err != nil:
		return fmt.Errorf("reading dump: %w", err)

	case len(data) == 0:
		return fmt.Errorf("no data received from %s", config.Serial.Port)
	}

	// the dump is already off the device; finish storing it even if interrupted
	ctx = context.WithoutCancel(ctx)
	startedAt := time.Now().UTC()

	if config.Storage.KeepRaw {
		rawPath := filepath.Join(dataDir, fmt.Sprintf("dump_%s.bin", startedAt.Format("20060102_150405")))
		if err = os.WriteFile(rawPath, data, 0o644); err != nil {
			return fmt.Errorf("writing raw dump: %w", err)
		}
		logger.Info("raw dump saved", slog.String("path", rawPath))
	}

	deltas, err := deltacode.DecodeStrict(data)
	if err != nil {
		if config.Recording.Strict {
			return fmt.Errorf("decoding dump: %w", err)
		}
		logger.Warn("dropped trailing escape run", slog.String("error", err.Error()))
	}

	samples := trace.Synthesize(deltas, profile)

	store := storage.NewSqliteStore(filepath.Join(dataDir, config.Storage.Database),
		storage.WithMaxBatchSize(config.Storage.MaxBatchSize))
	defer store.Close()

	flightID, err := store.CreateFlight(ctx, config.Recording.Mode, config.Serial.Port, len(data), profile)
	if err != nil {
		return fmt.Errorf("creating flight: %w", err)
	}
	if err = store.StoreSamples(ctx, flightID, samples); err != nil {
		return fmt.Errorf("storing samples: %w", err)
	}

	summary := export.Summarize(samples)
	logger.Info("flight stored",
		slog.Int64("flightID", flightID),
		slog.Group("flight",
			slog.String("mode", config.Recording.Mode),
			slog.Int("samples", summary.Samples),
			slog.String("duration", fmt.Sprintf("%0.1fs", summary.Duration)),
			slog.String("apogee", fmt.Sprintf("%0.0fft", summary.Apogee)),
		))

	return store.Close()
}

func loadProfile(config *RecordingConfig) (trace.Profile, error) {
	profiles := trace.DefaultProfiles()
	if config.ProfilesFile != "" {
		var err error
		if profiles, err = trace.LoadProfilesFile(config.ProfilesFile); err != nil {
			return trace.Profile{}, err
		}
	}
	return profiles.Lookup(config.Mode)
}

func dataDirectory(config *StorageConfig) (string, error) {
	dir := config.DataDirectory
	if !filepath.IsAbs(dir) {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
		dir = filepath.Join(wd, dir)
	}

	stat, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("storage directory '%s' does not exist: %w", dir, err)
		}
		return "", fmt.Errorf("checking storage directory '%s': %w", dir, err)
	}
	if !stat.IsDir() {
		return "", fmt.Errorf("invalid storage directory '%s'", dir)
	}
	return dir, nil
}
