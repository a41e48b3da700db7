package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/altimeter/internal/source"
	"github.com/roman-kulish/altimeter/internal/storage"
)

const (
	defaultDataDirectory = "data"
	defaultDatabaseFile  = "flights.sqlite"
)

// Config represents the main application configuration
type Config struct {
	Settings  Settings        `yaml:"settings"`
	Serial    SerialConfig    `yaml:"serial"`
	Recording RecordingConfig `yaml:"recording"`
	Storage   StorageConfig   `yaml:"storage"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// Level returns the slog level named by LogLevel, defaulting to info.
func (s Settings) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// SerialConfig represents the serial link to the recorder
type SerialConfig struct {
	Port        string   `yaml:"port"`
	BaudRate    int      `yaml:"baudRate"`
	IdleTimeout Duration `yaml:"idleTimeout"`
	MaxBytes    int      `yaml:"maxBytes"`
}

// RecordingConfig selects how the dump is turned into a trace
type RecordingConfig struct {
	Mode         string `yaml:"mode"`
	ProfilesFile string `yaml:"profilesFile"`
	Strict       bool   `yaml:"strict"`
}

// StorageConfig represents storage settings
type StorageConfig struct {
	DataDirectory string `yaml:"dataDirectory"`
	Database      string `yaml:"database"`
	MaxBatchSize  int    `yaml:"maxBatchSize"`
	KeepRaw       bool   `yaml:"keepRaw"`
}

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	duration, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("app.Duration: failed to parse: %s", err)
	}

	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// LoadConfig reads the YAML configuration at path, applies defaults and
// validates it.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(b)
}

func parseConfig(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	if cfg.Serial.Port == "" {
		return nil, fmt.Errorf("serial.port is required")
	}
	if cfg.Serial.BaudRate == 0 {
		cfg.Serial.BaudRate = source.DefaultBaudRate
	}
	if cfg.Serial.BaudRate < 0 {
		return nil, fmt.Errorf("serial.baudRate must be > 0")
	}
	if cfg.Serial.IdleTimeout == 0 {
		cfg.Serial.IdleTimeout = Duration(source.DefaultIdleTimeout)
	}
	if cfg.Serial.IdleTimeout < 0 {
		return nil, fmt.Errorf("serial.idleTimeout must be > 0")
	}
	if cfg.Serial.MaxBytes == 0 {
		cfg.Serial.MaxBytes = source.DefaultMaxBytes
	}
	if cfg.Serial.MaxBytes < 0 {
		return nil, fmt.Errorf("serial.maxBytes must be > 0")
	}

	cfg.Recording.Mode = strings.ToLower(strings.TrimSpace(cfg.Recording.Mode))
	if cfg.Recording.Mode == "" {
		return nil, fmt.Errorf("recording.mode is required")
	}

	if cfg.Storage.DataDirectory == "" {
		cfg.Storage.DataDirectory = defaultDataDirectory
	}
	if cfg.Storage.Database == "" {
		cfg.Storage.Database = defaultDatabaseFile
	}
	if cfg.Storage.MaxBatchSize == 0 {
		cfg.Storage.MaxBatchSize = storage.DefaultMaxBatchSize
	}
	if cfg.Storage.MaxBatchSize < 0 {
		return nil, fmt.Errorf("storage.maxBatchSize must be > 0")
	}

	return &cfg, nil
}
