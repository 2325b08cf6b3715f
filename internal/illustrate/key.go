package illustrate

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// KeyVariable names the environment variable holding the API key
const KeyVariable = "GEMINI_API_KEY"

// ErrMissingKey is returned when no API key can be found
var ErrMissingKey = errors.New(KeyVariable + " is not set")

// LoadKey returns the API key from the environment, falling back to the
// dotenv file at envFile when it exists.
func LoadKey(envFile string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(KeyVariable)); key != "" {
		return key, nil
	}
	if envFile == "" {
		return "", ErrMissingKey
	}

	env, err := godotenv.Read(envFile)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrMissingKey
	}
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", envFile, err)
	}
	if key := strings.TrimSpace(env[KeyVariable]); key != "" {
		return key, nil
	}
	return "", ErrMissingKey
}
