// Package config loads zsynth settings from a YAML file, an optional .env
// file and ZSYNTH_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/zarlcorp/zsynth/internal/record"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Config holds every tunable setting.
type Config struct {
	DataDir       string        `yaml:"data_dir" validate:"required"`
	Kind          string        `yaml:"kind" validate:"oneof=employee student"`
	Count         int           `yaml:"count" validate:"gte=1,lte=100000"`
	Seed          uint64        `yaml:"seed"`
	ReferenceDate string        `yaml:"reference_date" validate:"omitempty,datetime=2006-01-02"`
	Debug         bool          `yaml:"debug"`
	Ranges        record.Ranges `yaml:"ranges"`
}

// Default returns the built-in settings. Seed 0 means "pick one at random".
func Default() Config {
	return Config{
		DataDir: DataDir(),
		Kind:    string(record.KindEmployee),
		Count:   1,
		Ranges:  record.DefaultRanges(),
	}
}

// DataDir returns the default data directory for zsynth.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zsynth"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zsynth"
	}
	return home + "/.local/share/zsynth"
}

// Path returns the config file location: ZSYNTH_CONFIG if set, otherwise
// config.yaml inside the data directory.
func Path() string {
	if p := strings.TrimSpace(os.Getenv("ZSYNTH_CONFIG")); p != "" {
		return p
	}
	return filepath.Join(DataDir(), fileName)
}

// Load reads the config at path, then applies .env and environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load config: .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("load config: parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("load config: read %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings and the record ranges they carry.
func (c Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Reference returns the configured reference date, or today (UTC) when unset.
func (c Config) Reference() time.Time {
	if c.ReferenceDate != "" {
		if t, err := time.Parse(time.DateOnly, c.ReferenceDate); err == nil {
			return t
		}
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func applyEnv(cfg *Config) error {
	cfg.DataDir = getenv("ZSYNTH_DATA_DIR", cfg.DataDir)
	cfg.Kind = strings.ToLower(getenv("ZSYNTH_KIND", cfg.Kind))
	cfg.ReferenceDate = getenv("ZSYNTH_REFERENCE_DATE", cfg.ReferenceDate)
	cfg.Debug = getenvBool("ZSYNTH_DEBUG", cfg.Debug)

	if v := getenv("ZSYNTH_COUNT", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ZSYNTH_COUNT: %w", err)
		}
		cfg.Count = n
	}

	if v := getenv("ZSYNTH_SEED", ""); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ZSYNTH_SEED: %w", err)
		}
		cfg.Seed = n
	}

	return nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		switch strings.TrimSpace(strings.ToLower(v)) {
		case "1", "true", "yes":
			return true
		case "0", "false", "no":
			return false
		}
	}
	return fallback
}
