// Package config provides the configuration loader for talon.
package config

import (
	"os"
	"path/filepath"

	"github.com/talon-mods/talon/internal/core/domain"
	"github.com/talon-mods/talon/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the conventional config file name.
const FileName = "talon.yaml"

// EnvConfigPath overrides discovery when set.
const EnvConfigPath = "TALON_CONFIG"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	log ports.Logger
}

// NewLoader creates a new config Loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{log: log}
}

// Load reads the config file at path, or discovers one when path is empty.
// A missing file is not an error: the tool runs on defaults and commands
// that need a configured game directory fail individually.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		path = discover()
	}
	if path == "" {
		return withDefaults(&domain.Config{}), nil
	}

	//nolint:gosec // Path is provided by the user.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return withDefaults(&domain.Config{}), nil
		}
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file talonFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	l.log.Info("loaded config from " + path)
	return withDefaults(&domain.Config{
		GameDir:    file.GameDir,
		ModsDir:    file.ModsDir,
		CacheDir:   file.CacheDir,
		RuntimeDir: file.RuntimeDir,
		IndexURL:   file.IndexURL,
	}), nil
}

// discover returns the first config path that applies: the environment
// override, the working directory, then the user config directory.
func discover() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "talon", FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func withDefaults(c *domain.Config) *domain.Config {
	if c.ModsDir == "" && c.GameDir != "" {
		c.ModsDir = domain.DefaultModsDir(c.GameDir)
	}
	if c.CacheDir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			c.CacheDir = filepath.Join(dir, "talon")
		}
	}
	return c
}
