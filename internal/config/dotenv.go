package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv reads a .env file and sets environment variables that are not already defined.
// Missing file is silently ignored. Existing env vars are never overridden.
func LoadDotenv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat dotenv: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}
