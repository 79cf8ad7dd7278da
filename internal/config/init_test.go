package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/changetree/internal/utils"
)

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	workingDirectory := t.TempDir()
	options := InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal}
	path, err := InitializeConfiguration(options)
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(workingDirectory, utils.LocalConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read config: %v", readErr)
	}
	if !strings.Contains(string(content), "tree:") {
		t.Fatalf("unexpected configuration content: %s", string(content))
	}
}

func TestInitializeConfigurationTemplateLoads(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	workingDirectory := t.TempDir()
	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory}); err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	settings := loaded.Tree.Settings()
	if settings.Format != "raw" || settings.Source != "all" || settings.Copy || settings.VaultPaths || settings.BasePath != "" {
		t.Fatalf("unexpected settings from template: %+v", settings)
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal, Force: true})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	if !strings.HasPrefix(path, homeDir) {
		t.Fatalf("expected configuration under home dir, got %s", path)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("expected file to exist at %s: %v", path, statErr)
	}
}

func TestInitializeConfigurationPreventsOverwriteWithoutForce(t *testing.T) {
	workingDirectory := t.TempDir()
	path := filepath.Join(workingDirectory, utils.LocalConfigFileName)
	if err := os.WriteFile(path, []byte("existing"), 0o600); err != nil {
		t.Fatalf("write seed config: %v", err)
	}
	_, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal, Force: false})
	if !errors.Is(err, ErrConfigurationExists) {
		t.Fatalf("expected ErrConfigurationExists, got %v", err)
	}
}

func TestInitTargetConfigurationPath(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	workingDirectory := t.TempDir()

	testCases := []struct {
		name         string
		target       InitTarget
		expectedPath string
		expectError  error
	}{
		{name: "local", target: InitTargetLocal, expectedPath: filepath.Join(workingDirectory, utils.LocalConfigFileName)},
		{name: "empty_is_local", target: "", expectedPath: filepath.Join(workingDirectory, utils.LocalConfigFileName)},
		{name: "global", target: InitTargetGlobal, expectedPath: filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)},
		{name: "unsupported", target: "system", expectError: ErrUnsupportedInitTarget},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			path, err := testCase.target.ConfigurationPath(workingDirectory)
			if testCase.expectError != nil {
				if !errors.Is(err, testCase.expectError) {
					t.Fatalf("expected %v, got %v", testCase.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ConfigurationPath error: %v", err)
			}
			if path != testCase.expectedPath {
				t.Fatalf("expected %s, got %s", testCase.expectedPath, path)
			}
		})
	}
}

func TestInitializeConfigurationKeepsOrReplacesExistingFile(t *testing.T) {
	workingDirectory := t.TempDir()
	path := filepath.Join(workingDirectory, utils.LocalConfigFileName)
	if err := os.WriteFile(path, []byte("existing"), 0o600); err != nil {
		t.Fatalf("write seed config: %v", err)
	}

	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory}); !errors.Is(err, ErrConfigurationExists) {
		t.Fatalf("expected ErrConfigurationExists, got %v", err)
	}
	if content, _ := os.ReadFile(path); string(content) != "existing" {
		t.Fatalf("existing configuration modified: %q", string(content))
	}

	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Force: true}); err != nil {
		t.Fatalf("InitializeConfiguration with force error: %v", err)
	}
	if content, _ := os.ReadFile(path); string(content) != defaultConfigurationTemplate {
		t.Fatalf("expected template after force, got %q", string(content))
	}
}

func TestInitializeConfigurationRejectsUnsupportedTarget(t *testing.T) {
	if _, err := InitializeConfiguration(InitOptions{Target: "system", WorkingDirectory: t.TempDir()}); !errors.Is(err, ErrUnsupportedInitTarget) {
		t.Fatalf("expected ErrUnsupportedInitTarget, got %v", err)
	}
}
