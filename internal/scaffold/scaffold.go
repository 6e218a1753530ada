package scaffold

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"

	"github.com/ovel-dev/ovel-js/internal/config"
	"github.com/ovel-dev/ovel-js/internal/manifest"
	"github.com/ovel-dev/ovel-js/internal/registry"
)

//go:embed templates/index.ts.tmpl
var entryTemplate string

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

var (
	ErrInvalidName    = errors.New("invalid package name")
	ErrInvalidVersion = errors.New("invalid version")
	ErrPackageExists  = errors.New("package already exists")
)

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// PackageData holds everything derived from a package name and the
// workspace settings.
type PackageData struct {
	Name         string // e.g., "my-pkg"
	PackageName  string // Derived: <scope>/<name>
	Version      string // Semver, e.g., "0.0.1"
	Dir          string // Absolute package directory
	RefPath      string // Registry path, e.g., "packages/my-pkg"
	Extends      string // Base config relative to Dir, e.g., "../../tsconfig.base.json"
	RegistryPath string // Absolute path of the root registry file
}

// Result holds the outcome of a package generation.
type Result struct {
	OutputDir       string
	Files           []string // relative to OutputDir, in write order
	RegistryUpdated bool
	Warnings        []string
}

// ValidateName checks name against ^[a-z][a-z0-9-]*$.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w %q: use lowercase letters, numbers, and hyphens, starting with a letter", ErrInvalidName, name)
	}
	return nil
}

// ValidateVersion checks that v is a strict semantic version (e.g., "0.0.1").
func ValidateVersion(v string) error {
	if _, err := semver.StrictNewVersion(v); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidVersion, v, err)
	}
	return nil
}

// NewPackageData derives the paths and names for a new package.
func NewPackageData(name string, s config.Settings) *PackageData {
	dir := filepath.Join(s.PackagesPath(), name)
	d := &PackageData{
		Name:         name,
		PackageName:  s.Scope + "/" + name,
		Version:      s.Version,
		Dir:          dir,
		RefPath:      path.Join(filepath.ToSlash(s.PackagesDir), name),
		Extends:      s.BaseConfig,
		RegistryPath: s.RegistryPath(),
	}
	if s.Scope == "" {
		d.PackageName = name
	}
	if rel, err := filepath.Rel(dir, s.BaseConfigPath()); err == nil {
		d.Extends = filepath.ToSlash(rel)
	}
	return d
}

// Generate creates the package described by data and registers it. Progress
// lines are written to w as each step completes. Name, version and existence
// checks run before anything is written; later failures are returned as is
// and leave whatever was already written in place.
func Generate(data *PackageData, w io.Writer, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if err := ValidateName(data.Name); err != nil {
		return nil, err
	}
	if err := ValidateVersion(data.Version); err != nil {
		return nil, err
	}

	if _, err := os.Stat(data.Dir); err == nil {
		return nil, fmt.Errorf("%w: %q at %s", ErrPackageExists, data.PackageName, data.Dir)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", data.Dir, err)
	}

	fmt.Fprintf(w, "\nCreating %s...\n\n", data.PackageName)

	srcDir := filepath.Join(data.Dir, manifest.SourceDir)
	logger.Debug("creating directories", "dir", srcDir)
	if err := os.MkdirAll(srcDir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating package directory: %w", err)
	}

	result := &Result{OutputDir: data.Dir}

	pkgJSON, err := manifest.Marshal(manifest.NewPackageManifest(data.PackageName, data.Version))
	if err != nil {
		return nil, err
	}
	if err := writeFile(w, logger, result, manifest.PackageFile, pkgJSON); err != nil {
		return nil, err
	}

	tsconfig, err := manifest.Marshal(manifest.NewBuildConfig(data.Extends))
	if err != nil {
		return nil, err
	}
	if err := writeFile(w, logger, result, manifest.BuildConfigFile, tsconfig); err != nil {
		return nil, err
	}

	entry, err := renderEntry(data)
	if err != nil {
		return nil, err
	}
	if err := writeFile(w, logger, result, manifest.SourceDir+"/"+manifest.EntryFile, entry); err != nil {
		return nil, err
	}

	logger.Debug("updating registry", "file", data.RegistryPath, "reference", data.RefPath)
	updated, err := registry.AddReference(data.RegistryPath, data.RefPath)
	if err != nil {
		return nil, err
	}
	result.RegistryUpdated = updated
	if updated {
		fmt.Fprintf(w, "  ✓ Updated root %s\n", filepath.Base(data.RegistryPath))
	} else {
		logger.Debug("registry already references package", "reference", data.RefPath)
	}

	validateGenerated(result, manifest.KindPackage, pkgJSON, manifest.PackageFile)
	validateGenerated(result, manifest.KindBuildConfig, tsconfig, manifest.BuildConfigFile)

	return result, nil
}

func writeFile(w io.Writer, logger *log.Logger, result *Result, rel string, content []byte) error {
	outPath := filepath.Join(result.OutputDir, filepath.FromSlash(rel))
	logger.Debug("writing file", "path", outPath, "bytes", len(content))
	if err := os.WriteFile(outPath, content, filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	result.Files = append(result.Files, rel)
	fmt.Fprintf(w, "  ✓ %s\n", rel)
	return nil
}

func renderEntry(data *PackageData) ([]byte, error) {
	tmpl, err := template.New(manifest.EntryFile).Parse(entryTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", manifest.EntryFile, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", manifest.EntryFile, err)
	}
	return buf.Bytes(), nil
}

// validateGenerated records schema issues as warnings; they never fail the run.
func validateGenerated(result *Result, kind manifest.Kind, content []byte, name string) {
	valResult, err := manifest.Validate(kind, content)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate %s: %v", name, err))
		return
	}
	for _, issue := range valResult.Issues {
		result.Warnings = append(result.Warnings, name+": "+issue.String())
	}
}
