package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const referencesKey = "references"

// ErrMalformed is returned when the registry is not a JSON object or its
// references value cannot hold a list.
var ErrMalformed = errors.New("malformed registry")

var prettyOptions = &pretty.Options{Indent: "  "}

// Reference is one entry of the "references" list.
type Reference struct {
	Path string `json:"path"`
}

// Load returns the references listed in the registry file at path. Entries
// without a string "path" are skipped.
func Load(path string) ([]Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}
	if err := checkObject(data); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}

	var refs []Reference
	list := gjson.GetBytes(data, referencesKey)
	if !list.IsArray() {
		return refs, nil
	}
	list.ForEach(func(_, v gjson.Result) bool {
		if p := v.Get("path"); p.Type == gjson.String {
			refs = append(refs, Reference{Path: p.Str})
		}
		return true
	})
	return refs, nil
}

// AddReference makes the registry file at path list refPath. The file is
// rewritten only when the reference is new; it reports whether it was.
func AddReference(path, refPath string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("reading registry %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading registry %s: %w", path, err)
	}

	updated, changed, err := AppendReference(data, refPath)
	if err != nil {
		return false, fmt.Errorf("updating registry %s: %w", path, err)
	}
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing registry %s: %w", path, err)
	}
	return true, nil
}

// AppendReference returns data with {"path": refPath} appended to its
// references list, creating the list when missing or falsy (null, false, 0,
// ""). Any other non-list value is ErrMalformed. When an entry with the exact
// same path exists, data is returned unchanged and changed is false.
func AppendReference(data []byte, refPath string) (out []byte, changed bool, err error) {
	if err := checkObject(data); err != nil {
		return nil, false, err
	}

	list := gjson.GetBytes(data, referencesKey)
	if list.IsArray() && contains(list, refPath) {
		return data, false, nil
	}
	if !list.IsArray() {
		if list.Exists() && !falsy(list) {
			return nil, false, fmt.Errorf("%w: %s is not a list", ErrMalformed, referencesKey)
		}
		data, err = sjson.SetRawBytes(data, referencesKey, []byte("[]"))
		if err != nil {
			return nil, false, fmt.Errorf("initializing %s: %w", referencesKey, err)
		}
	}

	entry, err := json.Marshal(Reference{Path: refPath})
	if err != nil {
		return nil, false, fmt.Errorf("encoding reference: %w", err)
	}
	data, err = sjson.SetRawBytes(data, referencesKey+".-1", entry)
	if err != nil {
		return nil, false, fmt.Errorf("appending reference %s: %w", refPath, err)
	}
	return format(data), true, nil
}

func falsy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Num == 0
	case gjson.String:
		return v.Str == ""
	}
	return false
}

// contains compares paths byte for byte; case differences are distinct paths.
func contains(list gjson.Result, refPath string) bool {
	found := false
	list.ForEach(func(_, v gjson.Result) bool {
		p := v.Get("path")
		if p.Type == gjson.String && p.Str == refPath {
			found = true
			return false
		}
		return true
	})
	return found
}

func checkObject(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return fmt.Errorf("%w: top-level value is not an object", ErrMalformed)
	}
	return nil
}

// format indents by two spaces and ends with exactly one newline.
func format(data []byte) []byte {
	out := pretty.PrettyOptions(data, prettyOptions)
	return append(bytes.TrimRight(out, "\n"), '\n')
}
