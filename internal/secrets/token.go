package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "mobil-monitor"

// EnvBotToken is the fallback for headless hosts without a keychain.
const EnvBotToken = "TELEGRAM_BOT_TOKEN"

// GetBotToken resolves the Telegram bot token: keychain first (under
// the configured account), then the environment.
func GetBotToken(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		tok, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(tok) != "" {
			return tok, nil
		}
	}

	if tok := strings.TrimSpace(os.Getenv(EnvBotToken)); tok != "" {
		return tok, nil
	}

	return "", errors.New("telegram bot token not found (set it in the keychain or via " + EnvBotToken + ")")
}

// SetBotToken stores the token in the keychain.
func SetBotToken(keyringAccount, token string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, token)
}

// DeleteBotToken removes the token from the keychain.
func DeleteBotToken(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}
