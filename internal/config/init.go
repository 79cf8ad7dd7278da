package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/changetree/internal/utils"
)

// ErrConfigurationExists is returned when init would overwrite a file without force.
var ErrConfigurationExists = errors.New("configuration file already exists")

// ErrUnsupportedInitTarget is returned for an InitTarget other than local or global.
var ErrUnsupportedInitTarget = errors.New("unsupported init target")

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	configurationFileMode      = 0o600
	configurationDirectoryMode = 0o755

	defaultConfigurationTemplate = `tree:
  # raw, json, xml or yaml
  format: raw
  # all, staged, changed or conflicted
  source: all
  # location of the repository inside the vault
  base_path: ""
  copy: false
  vault_paths: false
`
)

// ConfigurationPath returns the file written for the target. An empty
// target is local; an empty workingDirectory is the current directory.
func (target InitTarget) ConfigurationPath(workingDirectory string) (string, error) {
	switch target {
	case InitTargetLocal, "":
		if workingDirectory == "" {
			currentDirectory, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = currentDirectory
		}
		return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
	case InitTargetGlobal:
		return globalConfigurationPath()
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedInitTarget, target)
	}
}

func globalConfigurationPath() (string, error) {
	homeDirectory, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory for configuration: %w", err)
	}
	return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName), nil
}

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested
// target and returns its path. Without Force an existing file is left intact.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, pathErr := options.Target.ConfigurationPath(options.WorkingDirectory)
	if pathErr != nil {
		return "", pathErr
	}
	if err := os.MkdirAll(filepath.Dir(destinationPath), configurationDirectoryMode); err != nil {
		return "", fmt.Errorf("create configuration directory for %s: %w", destinationPath, err)
	}

	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !options.Force {
		openFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	file, openErr := os.OpenFile(destinationPath, openFlags, configurationFileMode)
	if openErr != nil {
		if errors.Is(openErr, fs.ErrExist) {
			return "", fmt.Errorf("%w at %s", ErrConfigurationExists, destinationPath)
		}
		return "", fmt.Errorf("open configuration %s: %w", destinationPath, openErr)
	}
	if _, writeErr := file.WriteString(defaultConfigurationTemplate); writeErr != nil {
		_ = file.Close()
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, writeErr)
	}
	if closeErr := file.Close(); closeErr != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, closeErr)
	}
	return destinationPath, nil
}
