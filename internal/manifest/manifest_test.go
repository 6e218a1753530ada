package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewPackageManifest(t *testing.T) {
	m := NewPackageManifest("@ovel/my-pkg", "0.0.1")
	if m.Name != "@ovel/my-pkg" {
		t.Errorf("Name = %q, want %q", m.Name, "@ovel/my-pkg")
	}
	if m.Type != "module" {
		t.Errorf("Type = %q, want %q", m.Type, "module")
	}
	for field, got := range map[string]string{"main": m.Main, "module": m.Module, "types": m.Types} {
		if got != "./src/index.ts" {
			t.Errorf("%s = %q, want %q", field, got, "./src/index.ts")
		}
	}
	if exp := m.Exports["."]; exp.Import != EntryPath || exp.Types != EntryPath {
		t.Errorf("exports[.] = %+v", exp)
	}
	if strings.Join(m.Files, ",") != "src,dist" {
		t.Errorf("Files = %v, want [src dist]", m.Files)
	}
}

func TestMarshalPackageLayout(t *testing.T) {
	out, err := Marshal(NewPackageManifest("@ovel/my-pkg", "0.0.1"))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	s := string(out)

	if !strings.HasSuffix(s, "}\n") {
		t.Errorf("output should end with a newline, got %q", s[len(s)-3:])
	}
	if !strings.HasPrefix(s, "{\n  \"name\": \"@ovel/my-pkg\",\n  \"version\": \"0.0.1\",") {
		t.Errorf("unexpected leading fields:\n%s", s)
	}
	// Script aliases keep their declared order.
	order := []string{`"build"`, `"dev"`, `"test"`, `"test:watch"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, key)
		if idx <= last {
			t.Errorf("script %s out of order in:\n%s", key, s)
		}
		last = idx
	}
}

func TestMarshalBuildConfig(t *testing.T) {
	out, err := Marshal(NewBuildConfig("../../tsconfig.base.json"))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{
  "extends": "../../tsconfig.base.json",
  "compilerOptions": {
    "composite": true,
    "rootDir": "src",
    "outDir": "dist",
    "declaration": true,
    "declarationMap": true
  },
  "include": [
    "src"
  ]
}
`
	if string(out) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", out, want)
	}
}

func TestMarshalKeepsHTMLCharacters(t *testing.T) {
	out, err := Marshal(NewPackageManifest("@ovel/a<b>&c", "0.0.1"))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(out), `"name": "@ovel/a<b>&c"`) {
		t.Errorf("Marshal() did not keep name literal:\n%s", out)
	}
	for _, esc := range []string{`\u003c`, `\u003e`, `\u0026`} {
		if strings.Contains(string(out), esc) {
			t.Errorf("Marshal() output contains %s:\n%s", esc, out)
		}
	}
	if !strings.HasSuffix(string(out), "}\n") || strings.HasSuffix(string(out), "\n\n") {
		t.Errorf("Marshal() should end with exactly one newline, got %q", out[len(out)-3:])
	}
}

func TestParseRoundTrip(t *testing.T) {
	dir := t.TempDir()

	pkgOut, _ := Marshal(NewPackageManifest("@ovel/round-trip", "1.2.3"))
	pkgPath := filepath.Join(dir, PackageFile)
	if err := os.WriteFile(pkgPath, pkgOut, 0644); err != nil {
		t.Fatal(err)
	}
	pkg, err := ParsePackage(pkgPath)
	if err != nil {
		t.Fatalf("ParsePackage() error: %v", err)
	}
	if pkg.Name != "@ovel/round-trip" || pkg.Version != "1.2.3" {
		t.Errorf("parsed name/version = %q/%q", pkg.Name, pkg.Version)
	}
	if pkg.Scripts.TestWatch != "bun test --watch" {
		t.Errorf("Scripts.TestWatch = %q", pkg.Scripts.TestWatch)
	}

	cfgOut, _ := Marshal(NewBuildConfig("../../tsconfig.base.json"))
	cfgPath := filepath.Join(dir, BuildConfigFile)
	if err := os.WriteFile(cfgPath, cfgOut, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := ParseBuildConfig(cfgPath)
	if err != nil {
		t.Fatalf("ParseBuildConfig() error: %v", err)
	}
	if !cfg.CompilerOptions.Composite || !cfg.CompilerOptions.DeclarationMap {
		t.Errorf("compiler options not parsed: %+v", cfg.CompilerOptions)
	}
	if cfg.Extends != "../../tsconfig.base.json" {
		t.Errorf("Extends = %q", cfg.Extends)
	}
}

func TestParseErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ParsePackage(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"name": [`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParsePackage(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}
