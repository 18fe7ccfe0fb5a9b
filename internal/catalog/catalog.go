// Package catalog maps lexicon specifiers like "omw-en:1.4" to download
// URLs using a TOML project index.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed index.toml
var defaultIndex []byte

type project struct {
	Label    string             `toml:"label"`
	Language string             `toml:"language"`
	License  string             `toml:"license"`
	Default  string             `toml:"default"`
	Versions map[string]version `toml:"versions"`
}

type version struct {
	URL string `toml:"url"`
}

// Index is a set of known lexicon projects and their editions.
type Index struct {
	projects map[string]project
}

// Entry is one downloadable lexicon edition resolved from the index.
type Entry struct {
	Project  string
	Version  string
	Label    string
	Language string
	License  string
	URL      string
}

// Spec returns the edition's lexicon specifier, e.g. "omw-en:1.4".
func (e Entry) Spec() string {
	return e.Project + ":" + e.Version
}

// Default returns the index built into the binary.
func Default() (*Index, error) {
	ix := &Index{projects: map[string]project{}}
	if err := toml.Unmarshal(defaultIndex, &ix.projects); err != nil {
		return nil, fmt.Errorf("parsing built-in index: %v", err)
	}
	return ix, nil
}

// AddFile merges the projects from a TOML index file into ix. A project
// id appearing in the file replaces the built-in one wholesale.
func (ix *Index) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading index %s: %v", path, err)
	}
	extra := map[string]project{}
	if err := toml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("parsing index %s: %v", path, err)
	}
	for id, p := range extra {
		ix.projects[id] = p
	}
	return nil
}

// ParseSpec splits a lexicon specifier into project id and version. The
// version is empty when the specifier has no colon.
func ParseSpec(spec string) (id, ver string) {
	id, ver, _ = strings.Cut(spec, ":")
	return id, ver
}

// Resolve looks up a lexicon specifier. A bare project id resolves to
// the project's default edition.
func (ix *Index) Resolve(spec string) (Entry, error) {
	id, ver := ParseSpec(spec)
	p, ok := ix.projects[id]
	if !ok {
		return Entry{}, fmt.Errorf("unknown lexicon project %q", id)
	}
	if ver == "" {
		ver = p.Default
	}
	if ver == "" {
		return Entry{}, fmt.Errorf("no version given for %q and the index has no default", id)
	}
	v, ok := p.Versions[ver]
	if !ok {
		return Entry{}, fmt.Errorf("unknown version %q of lexicon project %q", ver, id)
	}
	return Entry{
		Project:  id,
		Version:  ver,
		Label:    p.Label,
		Language: p.Language,
		License:  p.License,
		URL:      v.URL,
	}, nil
}
