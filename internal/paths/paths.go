// Package paths resolves configuration and output directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultOutputDirName is the CWD-relative output directory used when no
// override is active.
const DefaultOutputDirName = "converted"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "MDBCONV_CONFIG_DIR"
	EnvOutputDir = "MDBCONV_OUTPUT_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/mdbconv (fallback ~/.config/mdbconv)
// macOS:   ~/Library/Application Support/mdbconv
// Windows: %APPDATA%/mdbconv
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "mdbconv"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "mdbconv"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "mdbconv"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > MDBCONV_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveOutputDir returns the artifact output directory following the
// precedence chain: flag > configYAMLValue > MDBCONV_OUTPUT_DIR env >
// $(CWD)/converted. The CWD-relative default keeps artifacts next to the
// source files being migrated.
func ResolveOutputDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvOutputDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultOutputDirName), nil
}
