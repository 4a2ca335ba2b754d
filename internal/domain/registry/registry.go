// Package registry discovers OpenAPI specification files on disk and
// indexes them under canonical short names for the HTTP surface.
package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
)

// scanPatterns are matched in order; a later batch wins name collisions.
var scanPatterns = []string{"*.yaml", "*.yml", "*.json"}

// Entry locates a single discovered specification file.
type Entry struct {
	Name     string `json:"name"`      // canonical short name
	FileName string `json:"file_name"` // file name within the specs directory
	Path     string `json:"path"`      // full path to the file
	Ext      string `json:"ext"`       // extension without the dot: yaml, yml or json
}

// Index is the immutable name to Entry mapping built by Scan.
type Index struct {
	dir     string
	entries map[string]Entry
	names   []string
}

// Scan enumerates spec files directly inside dir (no recursion) and
// derives a canonical name for each. YAML files are indexed first, then
// yml, then JSON; when two files reduce to the same name the later batch
// replaces the earlier file but keeps its position in the listing order.
// A missing directory yields an empty index so the server can still
// start and answer health checks.
func Scan(dir string, log logrus.FieldLogger) *Index {
	idx := &Index{dir: dir, entries: make(map[string]Entry)}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Specs directory not found: %s", dir)
		} else {
			log.Warnf("Reading specs directory %s: %v", dir, err)
		}
		return idx
	}

	for _, pattern := range scanPatterns {
		for _, de := range dirEntries {
			if de.IsDir() {
				continue
			}
			if ok, _ := doublestar.Match(pattern, de.Name()); !ok {
				continue
			}
			stem := strings.TrimSuffix(de.Name(), filepath.Ext(de.Name()))
			name := SpecName(stem)
			if _, exists := idx.entries[name]; !exists {
				idx.names = append(idx.names, name)
			}
			idx.entries[name] = Entry{
				Name:     name,
				FileName: de.Name(),
				Path:     filepath.Join(dir, de.Name()),
				Ext:      strings.TrimPrefix(strings.ToLower(filepath.Ext(de.Name())), "."),
			}
		}
	}

	log.Infof("Discovered %d specifications: %v", len(idx.names), idx.names)
	return idx
}

// SpecName derives the canonical short name from a filename stem. Each
// openapi marker is removed once, in order, separators collapse to
// underscores, and a stem that reduces to nothing falls back to itself.
func SpecName(stem string) string {
	name := strings.Replace(stem, "-openapi", "", 1)
	name = strings.Replace(name, "_openapi", "", 1)
	name = strings.Replace(name, "openapi", "", 1)
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return stem
	}
	return name
}

// Get returns the entry registered under name.
func (i *Index) Get(name string) (Entry, bool) {
	e, ok := i.entries[name]
	return e, ok
}

// Names returns the canonical names in listing order.
func (i *Index) Names() []string {
	return i.names
}

// Entries returns all entries in listing order.
func (i *Index) Entries() []Entry {
	entries := make([]Entry, 0, len(i.names))
	for _, name := range i.names {
		entries = append(entries, i.entries[name])
	}
	return entries
}

// Len returns the number of indexed specifications.
func (i *Index) Len() int {
	return len(i.names)
}

// Dir returns the scanned directory.
func (i *Index) Dir() string {
	return i.dir
}
