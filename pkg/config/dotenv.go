package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFileName is the file searched for by FindEnvFile.
const EnvFileName = ".env"

// ErrEnvFileNotFound is returned when no .env file is found.
var ErrEnvFileNotFound = errors.New(".env file not found")

// FindEnvFile returns explicitPath if set, otherwise walks up from startDir
// to the filesystem root looking for a .env file.
func FindEnvFile(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("env file not found: %w", err)
		}
		return explicitPath, nil
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		envPath := filepath.Join(currentDir, EnvFileName)
		if info, err := os.Stat(envPath); err == nil && !info.IsDir() {
			return envPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", ErrEnvFileNotFound
}

// ReadEnvFile parses path without touching the process environment.
func ReadEnvFile(path string) (MapEnv, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return MapEnv(vars), nil
}
