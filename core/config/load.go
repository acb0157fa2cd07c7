package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	path, err := configDir(path)
	if err != nil {
		return nil, err
	}

	configFs := afero.NewBasePathFs(afero.NewOsFs(), path)
	configContents, err := afero.ReadFile(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	out := defaultConfig()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(path, ConfigurationName), err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(path, ConfigurationName), err)
	}

	out.configFs = configFs
	out.configurationDir = path
	return out, nil
}

// LoadOrDefault loads the configuration from the directory, falling back to
// the built-in defaults rooted at the directory if there's no configuration
// file.
func LoadOrDefault(path string) (*Configuration, error) {
	cfg, err := Load(path)
	if !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	path, err = configDir(path)
	if err != nil {
		return nil, err
	}

	out := defaultConfig()
	out.configFs = afero.NewBasePathFs(afero.NewOsFs(), path)
	out.configurationDir = path
	return out, nil
}

// configDir returns the absolute directory holding the configuration.
func configDir(path string) (string, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}
	return filepath.Abs(path)
}
