package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cmtos "github.com/cometbft/cometbft/libs/os"

	"github.com/cbrit/withdraw-commission/log"
)

// ResolveConfigFile expands a short path (ex. ~/.withdraw-commission/config.yaml) and checks that the file exists.
func ResolveConfigFile(configFile string) (string, error) {
	expandedConfigFile := ExpandHomeDir(configFile)
	if !cmtos.FileExists(expandedConfigFile) {
		return "", fmt.Errorf("failed to load config file at: %s", configFile)
	}
	return expandedConfigFile, nil
}

func CreateDirectoryIfNeeded(configurationDirectory string, logger *log.Logger) error {
	expanded := ExpandHomeDir(configurationDirectory)
	exists, err := folderExists(expanded)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	if err := os.MkdirAll(expanded, 0o755); err != nil {
		return err
	}
	logger.Info("created configuration directory", "configuration_dir", configurationDirectory)

	return nil
}

// SafeWrite writes the file unless something already exists at the path. It reports whether the file was written.
func SafeWrite(file string, contents []byte, logger *log.Logger) (bool, error) {
	expanded := ExpandHomeDir(file)
	if cmtos.FileExists(expanded) {
		logger.Warn("skipping overwriting existing file", "file", expanded)
		return false, nil
	}

	if err := CreateDirectoryIfNeeded(filepath.Dir(expanded), logger); err != nil {
		return false, err
	}

	if err := os.WriteFile(expanded, contents, 0o600); err != nil {
		return false, err
	}
	logger.Info("wrote file", "file", expanded)
	return true, nil
}

// ExpandHomeDir replaces a leading ~ with the user's home directory. Paths are returned unchanged if the home
// directory can't be determined.
func ExpandHomeDir(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func folderExists(folderPath string) (bool, error) {
	fileInfo, err := os.Stat(folderPath)
	if err != nil {
		if os.IsNotExist(err) {
			// The folder does not exist
			return false, nil
		}
		// Some other error occurred when trying to access the folder
		return false, err
	}
	// Check if the path is indeed a folder/directory
	return fileInfo.IsDir(), nil
}
