package environment

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/condadeps/pkg/errors"
	"github.com/matzehuels/condadeps/pkg/manifest"
	"github.com/matzehuels/condadeps/pkg/purl"
)

// dependenciesKey is the top-level key holding the dependency sequence.
const dependenciesKey = "dependencies"

// versionDelimiters separates name from version in a spec, per ecosystem.
var versionDelimiters = map[purl.Ecosystem]string{
	purl.Conda: "=",
	purl.PyPI:  "==",
}

// Resolution is the outcome of one resolution pass.
type Resolution struct {
	// Resolved maps each distinct Package URL to its entry.
	Resolved manifest.Resolved
	// Duplicates lists, in walk order, Package URLs that replaced an earlier
	// entry with the same key. It never affects Resolved.
	Duplicates []string
}

// Resolve parses an environment document and resolves its dependencies.
//
// Errors carry one of these codes:
//   - DESCRIPTOR_PARSE_ERROR: data is not valid YAML
//   - MISSING_DEPENDENCY_LIST: no top-level "dependencies" sequence
//   - MALFORMED_DEPENDENCY_DECLARATION: an element cannot be used
//
// On error the returned Resolution is nil.
func Resolve(data []byte) (*Resolution, error) {
	return resolve(data, "descriptor")
}

// ResolveFile reads the descriptor at path and resolves it.
// A read failure yields DESCRIPTOR_NOT_FOUND.
func ResolveFile(path string) (*Resolution, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDescriptorNotFound, err, "read descriptor %s", path)
	}
	return resolve(data, path)
}

func resolve(data []byte, source string) (*Resolution, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDescriptorParse, err, "%s is not valid YAML", source)
	}

	deps, err := dependencyList(&doc, source)
	if err != nil {
		return nil, err
	}

	res := &Resolution{Resolved: make(manifest.Resolved, len(deps.Content))}
	for i, node := range deps.Content {
		decl := Classify(node)
		switch decl.Kind {
		case KindNative:
			if err := res.add(purl.Conda, decl.Spec, decl, source); err != nil {
				return nil, err
			}
		case KindPip:
			for _, spec := range decl.Pip {
				if err := res.add(purl.PyPI, spec, decl, source); err != nil {
					return nil, err
				}
			}
		default:
			return nil, errors.New(errors.ErrCodeMalformedDeclaration,
				"%s: dependency #%d at %s: %s", source, i+1, decl.Position(), decl.Reason)
		}
	}
	return res, nil
}

// dependencyList finds the top-level dependencies sequence.
func dependencyList(doc *yaml.Node, source string) (*yaml.Node, error) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New(errors.ErrCodeMissingDependencies, "%s is empty", source)
	}
	root := deref(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeMissingDependencies,
			"%s: top level must be a mapping with a %q key, got %s", source, dependenciesKey, describe(root))
	}
	deps := lookup(root, dependenciesKey)
	if deps == nil {
		return nil, errors.New(errors.ErrCodeMissingDependencies, "%s has no %q key", source, dependenciesKey)
	}
	if deps.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrCodeMissingDependencies,
			"%s: %q must be a sequence, got %s", source, dependenciesKey, describe(deps))
	}
	return deps, nil
}

// add builds the identifier for spec and stores its entry, replacing any
// entry already stored under the same Package URL.
func (r *Resolution) add(eco purl.Ecosystem, spec string, decl Declaration, source string) error {
	id, err := Identify(eco, spec)
	if err != nil {
		return errors.New(errors.ErrCodeMalformedDeclaration, "%s: %s: %s", source, decl.Position(), errors.UserMessage(err))
	}
	key := id.String()
	if _, exists := r.Resolved[key]; exists {
		r.Duplicates = append(r.Duplicates, key)
	}
	r.Resolved[key] = manifest.NewEntry(key)
	return nil
}

// Identify splits a raw spec into name and version for the ecosystem and
// returns the normalized identifier.
//
// Only the first delimiter splits; anything after it, further delimiters
// included, becomes the version. An empty remainder means no version.
// A spec with an empty name is rejected.
func Identify(eco purl.Ecosystem, spec string) (purl.Identifier, error) {
	delim, ok := versionDelimiters[eco]
	if !ok {
		return purl.Identifier{}, errors.New(errors.ErrCodeInternal, "unknown ecosystem %q", eco)
	}
	name, version, _ := strings.Cut(spec, delim)
	if strings.TrimSpace(name) == "" {
		return purl.Identifier{}, errors.New(errors.ErrCodeMalformedDeclaration, "%s spec %q has no package name", eco, spec)
	}
	return purl.New(eco, name, version), nil
}
