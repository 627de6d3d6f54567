package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are tried in order; every file that exists is loaded. Variables
// already present in the process environment are never overwritten.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles returns the files that were loaded.
func loadEnvFiles() ([]string, error) {
	var loaded []string
	for _, p := range envFiles {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return loaded, err
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}
