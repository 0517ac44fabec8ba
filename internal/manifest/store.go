package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kingsword09/frontpl/internal/platform"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ErrNotObject is returned by Parse when the document root is not an object.
var ErrNotObject = errors.New("package.json root is not an object")

var formatOptions = &pretty.Options{Width: 0, Indent: "  "}

// Manifest is a mutable package.json document.
type Manifest struct {
	raw  []byte
	path string
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{raw: []byte("{}")}
}

// Parse builds a manifest from JSON bytes.
func Parse(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing package.json: invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, ErrNotObject
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	if deduped, changed := dedupe(gjson.ParseBytes(raw)); changed {
		raw = deduped
	}
	return &Manifest{raw: raw}, nil
}

// dedupe rewrites objects that repeat a key so each key appears once. The
// last value wins and takes the position of the first occurrence, matching
// how Node reads package.json. changed is false when nothing repeats.
func dedupe(res gjson.Result) (out []byte, changed bool) {
	if !res.IsObject() && !res.IsArray() {
		return nil, false
	}

	type member struct {
		key   string
		value string
	}
	var members []member
	seen := map[string]int{}
	res.ForEach(func(key, value gjson.Result) bool {
		raw := value.Raw
		if inner, ok := dedupe(value); ok {
			raw = string(inner)
			changed = true
		}
		if res.IsObject() {
			if i, ok := seen[key.Str]; ok {
				members[i].value = raw
				changed = true
				return true
			}
			seen[key.Str] = len(members)
		}
		members = append(members, member{key: key.Raw, value: raw})
		return true
	})
	if !changed {
		return nil, false
	}

	open, end := byte('['), byte(']')
	if res.IsObject() {
		open, end = '{', '}'
	}
	out = append(out, open)
	for i, mb := range members {
		if i > 0 {
			out = append(out, ',')
		}
		if res.IsObject() {
			out = append(out, mb.key...)
			out = append(out, ':')
		}
		out = append(out, mb.value...)
	}
	return append(out, end), true
}

// Load reads dir/package.json. ok is false when the file is missing,
// unreadable, malformed, or not a JSON object.
func Load(dir string) (m *Manifest, ok bool) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	m, err = Parse(data)
	if err != nil {
		return nil, false
	}
	m.path = path
	return m, true
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string {
	return m.path
}

// Bytes returns the formatted document with a trailing newline.
func (m *Manifest) Bytes() []byte {
	return pretty.PrettyOptions(m.raw, formatOptions)
}

// Save writes the manifest back to the file it was loaded from.
func (m *Manifest) Save() error {
	if m.path == "" {
		return errors.New("manifest has no file path")
	}
	return m.WriteTo(m.path)
}

// WriteTo writes the formatted manifest to path.
func (m *Manifest) WriteTo(path string) error {
	return platform.WriteText(path, m.Bytes())
}

// Get returns the value at a top-level key.
func (m *Manifest) Get(key string) gjson.Result {
	return gjson.GetBytes(m.raw, gjson.Escape(key))
}

// Has reports whether a top-level key is present.
func (m *Manifest) Has(key string) bool {
	return m.Get(key).Exists()
}

// String returns a top-level string value.
func (m *Manifest) String(key string) (string, bool) {
	res := m.Get(key)
	if res.Type != gjson.String {
		return "", false
	}
	return res.Str, true
}

// Set assigns a top-level key. New keys are appended.
func (m *Manifest) Set(key string, value any) error {
	return m.set(gjson.Escape(key), value)
}

// Delete removes a top-level key. It reports whether the key existed.
func (m *Manifest) Delete(key string) (bool, error) {
	if !m.Has(key) {
		return false, nil
	}
	return true, m.del(gjson.Escape(key))
}

// Name returns the package name.
func (m *Manifest) Name() string {
	name, _ := m.String("name")
	return name
}

// PackageManagerField returns the raw packageManager value ("pnpm@9.1.0").
func (m *Manifest) PackageManagerField() string {
	pm, _ := m.String("packageManager")
	return pm
}

// EnginesNode returns engines.node when it is a string.
func (m *Manifest) EnginesNode() string {
	res := gjson.GetBytes(m.raw, "engines.node")
	if res.Type != gjson.String {
		return ""
	}
	return res.Str
}

// Names returns every key of a bucket in document order, whatever the value type.
func (m *Manifest) Names(b Bucket) []string {
	var names []string
	bucket := m.Get(string(b))
	if !bucket.IsObject() {
		return nil
	}
	bucket.ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.Str)
		return true
	})
	return names
}

// Lookup returns the string value of name in a bucket.
func (m *Manifest) Lookup(b Bucket, name string) (string, bool) {
	res := gjson.GetBytes(m.raw, entryPath(b, name))
	if res.Type != gjson.String {
		return "", false
	}
	return res.Str, true
}

// Contains reports whether a bucket has a key, whatever its value type.
func (m *Manifest) Contains(b Bucket, name string) bool {
	if !m.Get(string(b)).IsObject() {
		return false
	}
	return gjson.GetBytes(m.raw, entryPath(b, name)).Exists()
}

// Script returns scripts[name] when it is a string.
func (m *Manifest) Script(name string) (string, bool) {
	return m.Lookup(Scripts, name)
}

// HasDependency reports whether name is listed in either dependency bucket.
func (m *Manifest) HasDependency(name string) bool {
	for _, b := range DependencyBuckets {
		if m.Contains(b, name) {
			return true
		}
	}
	return false
}

// SetEntry assigns bucket[name] = value, creating the bucket when needed.
func (m *Manifest) SetEntry(b Bucket, name, value string) error {
	if bucket := m.Get(string(b)); bucket.Exists() && !bucket.IsObject() {
		if err := m.set(gjson.Escape(string(b)), map[string]any{}); err != nil {
			return err
		}
	}
	return m.set(entryPath(b, name), value)
}

// DeleteEntry removes bucket[name]. It reports whether the entry existed.
func (m *Manifest) DeleteEntry(b Bucket, name string) (bool, error) {
	if !m.Contains(b, name) {
		return false, nil
	}
	return true, m.del(entryPath(b, name))
}

// PruneEmpty deletes a bucket that is an object with no keys.
func (m *Manifest) PruneEmpty(b Bucket) (bool, error) {
	bucket := m.Get(string(b))
	if !bucket.IsObject() || len(bucket.Map()) > 0 {
		return false, nil
	}
	return true, m.del(gjson.Escape(string(b)))
}

func (m *Manifest) set(path string, value any) error {
	raw, err := sjson.SetBytes(m.raw, path, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	m.raw = raw
	return nil
}

func (m *Manifest) del(path string) error {
	raw, err := sjson.DeleteBytes(m.raw, path)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	m.raw = raw
	return nil
}

func entryPath(b Bucket, name string) string {
	return gjson.Escape(string(b)) + "." + gjson.Escape(name)
}
