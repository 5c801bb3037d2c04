// conf/utils.go various util functions for the configuration package
package conf

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/wildsight/wildsight-go/internal/errors"
)

// GetDefaultConfigPaths returns a list of default configuration paths for the
// current operating system, based on standard conventions for storing
// application configuration files.
func GetDefaultConfigPaths() ([]string, error) {
	var configPaths []string

	// Fetch the directory of the executable.
	exePath, err := os.Executable()
	if err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategorySystem).
			Context("operation", "get-executable-path").
			Build()
	}
	exeDir := filepath.Dir(exePath)

	// Fetch the user's home directory.
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategorySystem).
			Context("operation", "get-home-directory").
			Build()
	}

	switch runtime.GOOS {
	case "windows":
		configPaths = []string{
			exeDir,
			filepath.Join(homeDir, "AppData", "Roaming", "wildsight-go"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "wildsight-go"),
			exeDir,
		}
	}

	return configPaths, nil
}

// FindConfigFile returns the path of the first existing config.yaml among the
// default configuration paths.
func FindConfigFile() (string, error) {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range configPaths {
		configPath := filepath.Join(path, "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", errors.Newf("config file not found in default paths").
		Component("conf").
		Category(errors.CategoryConfiguration).
		Build()
}
