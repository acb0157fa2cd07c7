package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	DirName           = "techsh"
)

type Configuration struct {
	configFs         afero.Fs
	configurationDir string

	Prompt       string `json:"prompt"`
	ColorPrompt  bool   `json:"color_prompt"`
	HistoryFile  string `json:"history_file"`
	HistoryLimit int    `json:"history_limit" validate:"gte=0"`
	AppLog       string `json:"app_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Dir is the directory the configuration was loaded from, empty for the
// built-in defaults.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

// HistoryPath returns the host path of the readline history file, empty if
// history isn't persisted.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" || c.configurationDir == "" {
		return ""
	}
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(c.configurationDir, c.HistoryFile)
}

// ErrAppLogDisabled is returned when reading the application log while
// app_log isn't set.
var ErrAppLogDisabled = errors.New("app_log is not set in the configuration")

func (c *Configuration) appLogFs() (afero.Fs, string) {
	if filepath.IsAbs(c.AppLog) {
		return afero.NewOsFs(), c.AppLog
	}
	return c.fs(), c.AppLog
}

// OpenAppLog opens the application log in an append only state, returning
// nil if it's disabled.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	if c.AppLog == "" {
		return nil, nil
	}

	fs, name := c.appLogFs()
	if err := fs.MkdirAll(filepath.Dir(name), 0700); err != nil {
		return nil, err
	}
	return fs.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	if c.AppLog == "" {
		return nil, ErrAppLogDisabled
	}

	fs, name := c.appLogFs()
	return fs.OpenFile(name, os.O_RDONLY, 0600)
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

// Default returns the built-in configuration.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
