package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Backend struct {
		BaseURL string `yaml:"base_url" json:"base_url"`
		// API key lives in the OS keychain (see internal/secrets); this is
		// the keyring account label, not the key itself.
		KeyAccount     string  `yaml:"key_account" json:"key_account"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		RequestsPerSec float64 `yaml:"requests_per_sec" json:"requests_per_sec"`
	} `yaml:"backend" json:"backend"`

	Polling struct {
		RefreshSeconds int `yaml:"refresh_seconds" json:"refresh_seconds"`
	} `yaml:"polling" json:"polling"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
