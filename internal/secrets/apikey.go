package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"hirewatch-engine/internal/config"
)

const (
	// "Service" groups the app's secrets in the OS keychain.
	KeyringService = "hirewatch"

	envAPIKey = "HIREWATCH_API_KEY"
)

// GetAPIKey resolves the backend API key: keychain first, then the
// HIREWATCH_API_KEY env var for headless setups.
func GetAPIKey(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		key, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(key) != "" {
			return key, nil
		}
	}

	if key := strings.TrimSpace(os.Getenv(envAPIKey)); key != "" {
		return key, nil
	}

	return "", errors.New("backend API key not found (set it in the keychain or via " + envAPIKey + ")")
}

func SetAPIKey(keyringAccount string, key string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

func DeleteAPIKey(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

func APIKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf("hirewatch:backend:%s", cfg.Backend.KeyAccount)
}
