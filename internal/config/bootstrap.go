package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// EnsureUserConfig copies the shipped default config into the data dir on
// first run; after that the user copy wins.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No shipped default (bare checkout); write built-in defaults
			// instead of failing startup.
			if werr := SaveAtomic(userPath, Defaults()); werr != nil {
				return "", werr
			}
			return userPath, nil
		}
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}

func Defaults() Config {
	var cfg Config
	cfg.App.Port = 38562
	cfg.App.DataDir = "."
	cfg.Backend.BaseURL = "http://127.0.0.1:5000/api"
	cfg.Backend.KeyAccount = "default"
	cfg.Backend.TimeoutSeconds = 30
	cfg.Backend.RequestsPerSec = 5
	cfg.Polling.RefreshSeconds = 30
	return cfg
}
