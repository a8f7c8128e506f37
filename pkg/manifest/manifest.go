// Package manifest defines the manifest record submitted to the GitHub
// dependency graph for one environment file.
//
// A [Manifest] pairs the resolved package entries with the path of the file
// they came from. It serializes to the "manifests" object shape of the
// dependency submission API:
//
//	{
//	  "resolved": {
//	    "pkg:conda/python@3.8": {
//	      "package_url": "pkg:conda/python@3.8",
//	      "relationship": "direct",
//	      "dependencies": []
//	    }
//	  },
//	  "name": "environment.yml",
//	  "file": {"source_location": "environment.yml"}
//	}
package manifest

import (
	"os"
	"slices"

	"github.com/matzehuels/condadeps/pkg/errors"
)

// RelationshipDirect marks a package declared directly in the descriptor.
// Transitive dependencies are never resolved, so every entry is direct.
const RelationshipDirect = "direct"

// Entry is a single resolved package.
type Entry struct {
	PackageURL   string   `json:"package_url"`
	Relationship string   `json:"relationship"`
	Dependencies []string `json:"dependencies"`
}

// NewEntry creates a direct Entry for the given Package URL.
// Dependencies is an empty, non-nil slice so it encodes as [].
func NewEntry(packageURL string) Entry {
	return Entry{
		PackageURL:   packageURL,
		Relationship: RelationshipDirect,
		Dependencies: []string{},
	}
}

// Resolved maps canonical Package URLs to their entries.
type Resolved map[string]Entry

// File records where a manifest came from.
type File struct {
	SourceLocation string `json:"source_location"`
}

// Manifest is the resolved content of one environment file.
type Manifest struct {
	Resolved Resolved `json:"resolved"`
	Name     string   `json:"name"`
	File     File     `json:"file"`
}

// New assembles a Manifest for the descriptor at path.
//
// The path is used verbatim as both the manifest name and its source
// location. It must still exist: a path that cannot be stat'ed yields a
// DESCRIPTOR_NOT_FOUND error. A nil resolved map is replaced with an empty one.
func New(path string, resolved Resolved) (*Manifest, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDescriptorNotFound, err, "invalid descriptor path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDescriptorNotFound, err, "descriptor %s is not accessible", path)
	}
	if resolved == nil {
		resolved = Resolved{}
	}
	return &Manifest{
		Resolved: resolved,
		Name:     path,
		File:     File{SourceLocation: path},
	}, nil
}

// Len returns the number of resolved entries.
func (m *Manifest) Len() int { return len(m.Resolved) }

// PackageURLs returns the resolved Package URLs in sorted order.
func (m *Manifest) PackageURLs() []string {
	urls := make([]string, 0, len(m.Resolved))
	for k := range m.Resolved {
		urls = append(urls, k)
	}
	slices.Sort(urls)
	return urls
}
