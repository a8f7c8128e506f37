// Package purl builds Package URLs for the two ecosystems a Conda environment
// file can declare: Conda packages and PyPI packages installed through pip.
//
// Only the `pkg:<type>/<name>[@<version>]` subset of the PURL format is
// produced. Names are normalized per ecosystem; versions are kept verbatim.
//
//	id := purl.New(purl.PyPI, "Name_Extra", "1.2.3")
//	id.String() // "pkg:pypi/name-extra@1.2.3"
package purl

import "strings"

// Ecosystem is a package ecosystem and doubles as its PURL type.
type Ecosystem string

const (
	Conda Ecosystem = "conda" // Native packages listed directly under dependencies
	PyPI  Ecosystem = "pypi"  // Packages listed under a nested pip key
)

// Valid reports whether e is a known ecosystem.
func (e Ecosystem) Valid() bool {
	return e == Conda || e == PyPI
}

// Normalize returns the canonical form of a package name in ecosystem e.
//
// Conda names are used verbatim. PyPI names are lower-cased and underscores
// are replaced with hyphens, following the PEP 503 rule that treats case,
// "_" and "-" as equivalent.
func (e Ecosystem) Normalize(name string) string {
	if e == PyPI {
		return strings.ReplaceAll(strings.ToLower(name), "_", "-")
	}
	return name
}

// Identifier is an ecosystem-qualified package reference.
// An empty Version means the declaration carried no version.
type Identifier struct {
	Ecosystem Ecosystem
	Name      string
	Version   string
}

// New creates an Identifier, normalizing name for the ecosystem.
func New(eco Ecosystem, name, version string) Identifier {
	return Identifier{
		Ecosystem: eco,
		Name:      eco.Normalize(name),
		Version:   version,
	}
}

// String returns the canonical Package URL, e.g. "pkg:conda/python@3.8".
// It is derived from the fields on every call.
func (id Identifier) String() string {
	var b strings.Builder
	b.Grow(len("pkg:/@") + len(id.Ecosystem) + len(id.Name) + len(id.Version))
	b.WriteString("pkg:")
	b.WriteString(string(id.Ecosystem))
	b.WriteByte('/')
	b.WriteString(id.Name)
	if id.Version != "" {
		b.WriteByte('@')
		b.WriteString(id.Version)
	}
	return b.String()
}
