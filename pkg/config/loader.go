package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)

	defaultEnvOnce sync.Once
)

// LoadEnv loads the given .env files into the process environment; with no
// arguments it loads ".env" from the working directory. Variables already
// set in the environment are not overridden.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

// Load populates v from the environment using `env` struct tags. The first
// call also loads an optional ".env" file. Results are cached per type, so
// later calls for the same T return the first parsed value.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvOnce.Do(func() { _ = godotenv.Load() })

	key := reflect.TypeFor[T]()
	if key.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a struct", ErrInvalidConfigType, key)
	}

	cacheMu.RLock()
	cached, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	parsed, err := Parse[T]("")
	if err != nil {
		return err
	}
	cache[key] = parsed
	*v = parsed
	return nil
}

// MustLoad is Load that panics on failure. Use it for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse reads a fresh T from the environment without touching the cache.
// A non-empty prefix is prepended to every variable name, which allows
// several instances of one config type (e.g. two Graph apps).
func Parse[T any](prefix string) (T, error) {
	var v T
	if err := env.ParseWithOptions(&v, env.Options{Prefix: prefix}); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	cacheMu.Lock()
	cache = make(map[reflect.Type]any)
	cacheMu.Unlock()
}
