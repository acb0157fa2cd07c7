package vos

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// VEnv represents a virtual environment.
type VEnv interface {
	// UserHomeDir returns the current user's home directory.
	UserHomeDir() (string, error)

	// Setenv sets the value of the environment variable named by the key.
	Setenv(key, value string) error

	// Unsetenv unsets a single environment variable.
	Unsetenv(key string) error

	// LookupEnv retrieves the value of the environment variable named by the key.
	// The boolean is false if the variable is not present.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the environment variable named by the key,
	// empty if it is not present.
	Getenv(key string) string

	// Environ returns a copy of strings representing the environment, in the
	// form "key=value".
	Environ() []string
}

// CopyEnv copies all the "key=value" entries in src to dst.
func CopyEnv(dst VEnv, src []string) error {
	for _, e := range src {
		key, value := splitEnvEntry(e)
		if err := dst.Setenv(key, value); err != nil {
			return err
		}
	}

	return nil
}

func splitEnvEntry(e string) (key, value string) {
	split := strings.SplitN(e, "=", 2)
	key = split[0]
	if len(split) > 1 {
		value = split[1]
	}
	return
}

// NewMapEnv creates a new environment backed by a map.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFromEnvList creates a new environment from "key=value" entries.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{}

	// Ignore error, it will never be set for MapEnv.
	_ = CopyEnv(out, environ)

	return out
}

// MapEnv implemnts an in-memory VEnv.
type MapEnv struct {
	rw  sync.RWMutex
	env map[string]string
}

var _ VEnv = (*MapEnv)(nil)

// UserHomeDir implements VEnv.UserHomeDir.
func (m *MapEnv) UserHomeDir() (string, error) {
	if home := m.Getenv("HOME"); home != "" {
		return home, nil
	}
	return "", fmt.Errorf("$HOME is not defined")
}

// Unsetenv implements VEnv.Unsetenv.
func (m *MapEnv) Unsetenv(key string) error {
	m.rw.Lock()
	defer m.rw.Unlock()
	if m.env != nil {
		delete(m.env, key)
	}
	return nil
}

// Setenv implements VEnv.Setenv.
func (m *MapEnv) Setenv(key, value string) error {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
	return nil
}

// LookupEnv implements VEnv.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv implements VEnv.Getenv.
func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ implements VEnv.Environ, entries are sorted by key.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	var env []string
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)

	return env
}

// hostEnv is the environment of the running process.
type hostEnv struct{}

var _ VEnv = hostEnv{}

func (hostEnv) UserHomeDir() (string, error)        { return os.UserHomeDir() }
func (hostEnv) Setenv(key, value string) error      { return os.Setenv(key, value) }
func (hostEnv) Unsetenv(key string) error           { return os.Unsetenv(key) }
func (hostEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (hostEnv) Getenv(key string) string            { return os.Getenv(key) }
func (hostEnv) Environ() []string                   { return os.Environ() }
