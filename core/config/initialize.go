package config

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir, leaving any
// existing configuration alone, and then loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	dir, err := configDir(dir)
	if err != nil {
		return nil, err
	}

	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	configFs := afero.NewBasePathFs(osFs, dir)
	configPath := filepath.Join(dir, ConfigurationName)

	_, err = configFs.Stat(ConfigurationName)
	switch {
	case err == nil:
		logger.Printf("%s already exists, skipping", configPath)
	case errors.Is(err, fs.ErrNotExist):
		logger.Printf("writing %s", configPath)
		if err := afero.WriteFile(configFs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return Load(dir)
}
