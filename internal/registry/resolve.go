package registry

import (
	"os"
	"path/filepath"

	"github.com/ovel-dev/ovel-js/internal/manifest"
)

// Entry is a reference resolved against the workspace root.
type Entry struct {
	Reference
	Dir      string
	Detached bool                      // referenced directory does not exist
	Package  *manifest.PackageManifest // nil when package.json is missing or unreadable
}

// Resolve maps each reference to its directory under root and loads the
// package manifest when one is present.
func Resolve(root string, refs []Reference) []Entry {
	entries := make([]Entry, 0, len(refs))
	for _, ref := range refs {
		e := Entry{
			Reference: ref,
			Dir:       filepath.Join(root, filepath.FromSlash(ref.Path)),
		}
		info, err := os.Stat(e.Dir)
		if err != nil || !info.IsDir() {
			e.Detached = true
			entries = append(entries, e)
			continue
		}
		if pkg, err := manifest.ParsePackage(filepath.Join(e.Dir, manifest.PackageFile)); err == nil {
			e.Package = pkg
		}
		entries = append(entries, e)
	}
	return entries
}
