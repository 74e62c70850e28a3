package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/caarlos0/env/v11"
)

func parseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// DefaultDataDir resolves the OS shared application-data directory.
func DefaultDataDir() string {
	return dataDirFor(runtime.GOOS, os.Getenv(envProgramData))
}

func dataDirFor(goos, programData string) string {
	if goos != "windows" {
		return defaultUnixDataDir
	}
	if programData != "" {
		return programData
	}
	return defaultWindowsDataDir
}
