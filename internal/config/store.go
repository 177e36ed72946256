// Package config persists the CLI's region/environment/store selection
// in the user's home directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/ciamctl/internal/endpoints"
)

// ErrNotConfigured is returned when a command needs a region and
// environment but none have been selected yet.
var ErrNotConfigured = errors.New("region and environment must be configured")

// Settings is the persisted CLI selection.
type Settings struct {
	Region  string `json:"region,omitempty"`
	Env     string `json:"env,omitempty"`
	StoreID string `json:"store_id,omitempty"`
}

// Store reads and writes the settings file.
type Store struct {
	path string
}

// NewStore creates a settings store. If path is empty it uses
// ~/.ciamctl/config.json, creating the directory with 0700 permissions.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		dir := filepath.Join(home, ".ciamctl")
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		path = filepath.Join(dir, "config.json")
	}

	return &Store{path: path}, nil
}

// Load reads the settings. A missing or unreadable file yields empty
// settings rather than an error, matching first-run behavior.
func (s *Store) Load() Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Settings{}
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Debug().Err(err).Str("path", s.path).Msg("ignoring unparseable config")
		return Settings{}
	}

	return settings
}

// Set validates and persists the provided values. Empty arguments leave
// the existing value untouched.
func (s *Store) Set(region, env, storeID string) (Settings, error) {
	settings := s.Load()

	if region != "" {
		r, err := endpoints.ParseRegion(region)
		if err != nil {
			return Settings{}, err
		}
		settings.Region = string(r)
	}

	if env != "" {
		e, err := endpoints.ParseEnvironment(env)
		if err != nil {
			return Settings{}, err
		}
		settings.Env = string(e)
	}

	if storeID != "" {
		settings.StoreID = storeID
	}

	if err := s.save(settings); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// RequireRegionEnv returns the configured region and environment, or
// ErrNotConfigured when either is missing.
func (s *Store) RequireRegionEnv() (endpoints.Region, endpoints.Environment, error) {
	settings := s.Load()
	if settings.Region == "" || settings.Env == "" {
		return "", "", fmt.Errorf("%w: run 'ciamctl config use --region <region> --env <env>'", ErrNotConfigured)
	}

	region, err := endpoints.ParseRegion(settings.Region)
	if err != nil {
		return "", "", err
	}

	env, err := endpoints.ParseEnvironment(settings.Env)
	if err != nil {
		return "", "", err
	}

	return region, env, nil
}

// save writes the settings file atomically.
func (s *Store) save(settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}
