package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ovel-dev/ovel-js/internal/branding"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Setting keys, shared by flags, env vars and the config file.
const (
	KeyRoot         = "root"
	KeyPackagesDir  = "packages_dir"
	KeyScope        = "scope"
	KeyBaseConfig   = "base_config"
	KeyRegistryFile = "registry_file"
	KeyVersion      = "version"
)

// Defaults for a conventional workspace layout.
const (
	DefaultPackagesDir  = "packages"
	DefaultBaseConfig   = "tsconfig.base.json"
	DefaultRegistryFile = "tsconfig.json"
	DefaultVersion      = "0.0.1"
)

var (
	// ErrUnknownKey is returned for a key that is not a workspace setting.
	ErrUnknownKey = errors.New("unknown setting")
	// ErrInvalidValue is returned when Set is given a value the key cannot hold.
	ErrInvalidValue = errors.New("invalid setting value")
)

// FileKeys lists the settings that may be stored in the config file. The
// root is not among them; the file lives in the root.
var FileKeys = []string{KeyPackagesDir, KeyScope, KeyBaseConfig, KeyRegistryFile, KeyVersion}

// Settings is the resolved workspace configuration.
type Settings struct {
	Root         string // absolute workspace root
	PackagesDir  string // relative to Root
	Scope        string // e.g., "@ovel"
	BaseConfig   string // shared compiler config, relative to Root
	RegistryFile string // root config holding project references, relative to Root
	Version      string // initial version for new packages
}

// PackagesPath returns the absolute directory packages are created under.
func (s Settings) PackagesPath() string {
	return filepath.Join(s.Root, s.PackagesDir)
}

// RegistryPath returns the absolute path of the root registry file.
func (s Settings) RegistryPath() string {
	return filepath.Join(s.Root, s.RegistryFile)
}

// BaseConfigPath returns the absolute path of the shared base config.
func (s Settings) BaseConfigPath() string {
	return filepath.Join(s.Root, s.BaseConfig)
}

// Get returns the resolved value of key.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case KeyRoot:
		return s.Root, nil
	case KeyPackagesDir:
		return s.PackagesDir, nil
	case KeyScope:
		return s.Scope, nil
	case KeyBaseConfig:
		return s.BaseConfig, nil
	case KeyRegistryFile:
		return s.RegistryFile, nil
	case KeyVersion:
		return s.Version, nil
	}
	return "", unknownKey(key)
}

// Set stores key = value in the config file of the workspace at root,
// creating the file when missing. Keys already in the file are kept.
func Set(root, key, value string) error {
	if !isFileKey(key) {
		return unknownKey(key)
	}
	if err := checkValue(key, value); err != nil {
		return err
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("workspace root %s is not a directory", root)
	}

	// A private instance so flags and env vars are not written to the file.
	v := viper.New()
	v.SetConfigType(fileType)
	configFile := FilePath(root)
	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	v.Set(key, value)
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file %s: %w", configFile, err)
	}
	return nil
}

func isFileKey(key string) bool {
	for _, k := range FileKeys {
		if k == key {
			return true
		}
	}
	return false
}

func unknownKey(key string) error {
	return fmt.Errorf("%w %q (valid: %s)", ErrUnknownKey, key, strings.Join(FileKeys, ", "))
}

func checkValue(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidValue, key)
	}
	if key == KeyVersion {
		if _, err := semver.StrictNewVersion(value); err != nil {
			return fmt.Errorf("%w: version %q is not a semantic version: %v", ErrInvalidValue, value, err)
		}
	}
	return nil
}

// FilePath returns the config file path for a workspace root (<root>/.ovel.yaml).
func FilePath(root string) string {
	return filepath.Join(root, branding.ConfigFile()+"."+fileType)
}

// SetDefaults registers default values with Viper.
func SetDefaults() {
	viper.SetDefault(KeyPackagesDir, DefaultPackagesDir)
	viper.SetDefault(KeyScope, branding.Scope())
	viper.SetDefault(KeyBaseConfig, DefaultBaseConfig)
	viper.SetDefault(KeyRegistryFile, DefaultRegistryFile)
	viper.SetDefault(KeyVersion, DefaultVersion)
}

// Load resolves the workspace root, reads its config file when present and
// returns the merged settings. Flags must be bound before calling Load.
func Load() (Settings, error) {
	SetDefaults()
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	root := viper.GetString(KeyRoot)
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Settings{}, fmt.Errorf("resolving working directory: %w", err)
		}
		root = FindRoot(cwd, viper.GetString(KeyBaseConfig))
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return Settings{}, fmt.Errorf("resolving workspace root %s: %w", root, err)
	}

	// The config file is optional.
	configFile := FilePath(root)
	if _, err := os.Stat(configFile); err == nil {
		viper.SetConfigFile(configFile)
		viper.SetConfigType(fileType)
		if err := viper.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	return Settings{
		Root:         root,
		PackagesDir:  viper.GetString(KeyPackagesDir),
		Scope:        viper.GetString(KeyScope),
		BaseConfig:   viper.GetString(KeyBaseConfig),
		RegistryFile: viper.GetString(KeyRegistryFile),
		Version:      viper.GetString(KeyVersion),
	}, nil
}

// FindRoot walks up from start looking for a directory that contains marker.
// It returns start itself when no ancestor matches.
func FindRoot(start, marker string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
