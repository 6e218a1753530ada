package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind selects which schema a document is validated against.
type Kind string

const (
	KindPackage     Kind = "package"
	KindBuildConfig Kind = "tsconfig"
)

// File and directory names inside a generated package.
const (
	PackageFile     = "package.json"
	BuildConfigFile = "tsconfig.json"
	SourceDir       = "src"
	OutputDir       = "dist"
	EntryFile       = "index.ts"

	// EntryPath is the entry module as referenced from package.json.
	EntryPath = "./" + SourceDir + "/" + EntryFile
)

// PackageManifest is the package.json written for a new package. Field order
// matches the rendered JSON.
type PackageManifest struct {
	Name    string            `yaml:"name" json:"name"`
	Version string            `yaml:"version" json:"version"`
	Type    string            `yaml:"type" json:"type"`
	Main    string            `yaml:"main" json:"main"`
	Module  string            `yaml:"module" json:"module"`
	Types   string            `yaml:"types" json:"types"`
	Exports map[string]Export `yaml:"exports" json:"exports"`
	Scripts Scripts           `yaml:"scripts" json:"scripts"`
	Files   []string          `yaml:"files" json:"files"`
}

// Export is one conditional entry of the "exports" map.
type Export struct {
	Import string `yaml:"import" json:"import"`
	Types  string `yaml:"types" json:"types"`
}

// Scripts holds the fixed script aliases of a generated package.
type Scripts struct {
	Build     string `yaml:"build" json:"build"`
	Dev       string `yaml:"dev" json:"dev"`
	Test      string `yaml:"test" json:"test"`
	TestWatch string `yaml:"test:watch" json:"test:watch"`
}

// BuildConfig is the per-package tsconfig.json.
type BuildConfig struct {
	Extends         string          `yaml:"extends" json:"extends"`
	CompilerOptions CompilerOptions `yaml:"compilerOptions" json:"compilerOptions"`
	Include         []string        `yaml:"include" json:"include"`
}

// CompilerOptions is the subset of compiler options a package overrides.
type CompilerOptions struct {
	Composite      bool   `yaml:"composite" json:"composite"`
	RootDir        string `yaml:"rootDir" json:"rootDir"`
	OutDir         string `yaml:"outDir" json:"outDir"`
	Declaration    bool   `yaml:"declaration" json:"declaration"`
	DeclarationMap bool   `yaml:"declarationMap" json:"declarationMap"`
}

// NewPackageManifest returns the manifest for a package published as
// fullName (e.g., "@ovel/utils").
func NewPackageManifest(fullName, version string) *PackageManifest {
	return &PackageManifest{
		Name:    fullName,
		Version: version,
		Type:    "module",
		Main:    EntryPath,
		Module:  EntryPath,
		Types:   EntryPath,
		Exports: map[string]Export{
			".": {Import: EntryPath, Types: EntryPath},
		},
		Scripts: Scripts{
			Build:     "tsc --build",
			Dev:       "tsc --build --watch",
			Test:      "bun test",
			TestWatch: "bun test --watch",
		},
		Files: []string{SourceDir, OutputDir},
	}
}

// NewBuildConfig returns a build configuration extending the shared base at
// the given relative path.
func NewBuildConfig(extends string) *BuildConfig {
	return &BuildConfig{
		Extends: extends,
		CompilerOptions: CompilerOptions{
			Composite:      true,
			RootDir:        SourceDir,
			OutDir:         OutputDir,
			Declaration:    true,
			DeclarationMap: true,
		},
		Include: []string{SourceDir},
	}
}

// Marshal renders v as JSON indented by two spaces with a trailing newline.
// HTML characters are written literally, not as \u escapes.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshaling %T: %w", v, err)
	}
	return buf.Bytes(), nil
}
