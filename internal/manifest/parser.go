package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ParsePackage reads a package.json file.
func ParsePackage(path string) (*PackageManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseTyped[PackageManifest](data, path)
}

// ParseBuildConfig reads a package tsconfig.json file.
func ParseBuildConfig(path string) (*BuildConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseTyped[BuildConfig](data, path)
}

// parseTyped unmarshals data into a typed struct. JSON documents are valid
// YAML, so one decoder serves both.
func parseTyped[T any](data []byte, path string) (*T, error) {
	var m T
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
