//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testEnv holds paths to an isolated workspace.
type testEnv struct {
	Root     string // workspace root (OVEL_ROOT)
	Registry string // root tsconfig.json
	Binary   string // compiled ovel binary
}

const rootTsconfig = `{
  "files": [],
  "compilerOptions": {
    "strict": true
  },
  "references": [
    {
      "path": "packages/utils"
    }
  ]
}
`

// setupTestEnv creates a workspace with a shared base config, a root registry
// and an existing utils package, and points OVEL_ROOT at it.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	env := &testEnv{
		Root:     root,
		Registry: filepath.Join(root, "tsconfig.json"),
	}

	writeFile(t, filepath.Join(root, "tsconfig.base.json"), `{"compilerOptions":{"target":"ES2022"}}`+"\n")
	writeFile(t, env.Registry, rootTsconfig)
	writeFile(t, filepath.Join(root, "packages", "utils", "package.json"), `{"name":"@ovel/utils","version":"0.0.1"}`+"\n")
	writeFile(t, filepath.Join(root, "packages", "utils", "src", "index.ts"), "export function noop(): void {}\n")

	t.Setenv("OVEL_ROOT", root)
	return env
}

// buildBinary compiles the CLI once per test into a temp directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	name := "ovel"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	bin := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", bin, "../..")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("building binary: %v\n%s", err, out)
	}
	return bin
}

// runBinary runs the CLI and returns its exit code and output streams.
func runBinary(t *testing.T, bin, dir string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr strings.Builder
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), stdout.String(), stderr.String()
	}
	if err != nil {
		t.Fatalf("running %s: %v", bin, err)
	}
	return 0, stdout.String(), stderr.String()
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
