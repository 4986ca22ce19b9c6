package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment override, e.g. VP9BATCH_VP9_CRF.
const EnvPrefix = "VP9BATCH"

// Load layers the TOML file and environment onto defaults, then re-applies
// any flag the user set explicitly on flags, so precedence is
// CLI > env > file > defaults. flags may be nil.
//
// A missing config file is only an error when --config was given explicitly.
func Load(cfg *Config, flags *pflag.FlagSet) error {
	changed := make(map[string]string)
	if flags != nil {
		flags.Visit(func(f *pflag.Flag) {
			changed[f.Name] = f.Value.String()
		})
	}
	_, explicitFile := changed["config"]

	loaded := DefaultConfig()
	if err := loadFile(&loaded, cfg.ConfigFile, explicitFile); err != nil {
		return err
	}
	if err := envconfig.Process(EnvPrefix, &loaded); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	loaded.ConfigFile = cfg.ConfigFile
	loaded.InputDir = cfg.InputDir
	*cfg = loaded

	for name, value := range changed {
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
	}
	return nil
}

// loadFile decodes path onto cfg. Unknown keys are rejected so typos in the
// file surface instead of silently falling back to defaults.
func loadFile(cfg *Config, path string, required bool) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("config %s: %s", path, strict.String())
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}
