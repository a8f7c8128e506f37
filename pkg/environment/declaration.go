package environment

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// pipKey is the mapping key that nests pip requirements inside dependencies.
const pipKey = "pip"

// DeclarationKind tags the shape of a dependency node.
type DeclarationKind int

const (
	KindMalformed DeclarationKind = iota // Neither a spec string nor a pip list
	KindNative                           // Conda match spec string
	KindPip                              // Mapping with a pip requirement list
)

func (k DeclarationKind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindPip:
		return "pip"
	default:
		return "malformed"
	}
}

// Declaration is one classified element of the dependencies sequence.
type Declaration struct {
	Kind   DeclarationKind
	Spec   string   // Raw Conda spec, set for KindNative
	Pip    []string // Raw pip specs in document order, set for KindPip
	Reason string   // Why the node was rejected, set for KindMalformed
	Line   int      // 1-based source line of the node, 0 if unknown
	Column int      // 1-based source column of the node, 0 if unknown
}

// Position formats the node location for diagnostics.
func (d Declaration) Position() string {
	if d.Line == 0 {
		return "unknown position"
	}
	return fmt.Sprintf("line %d, column %d", d.Line, d.Column)
}

// Classify decides what a single dependencies element declares.
// It has no side effects and never fails; shapes it cannot use come back as
// KindMalformed with a Reason.
func Classify(node *yaml.Node) Declaration {
	if node == nil {
		return Declaration{Kind: KindMalformed, Reason: "empty node"}
	}
	node = deref(node)
	d := Declaration{Line: node.Line, Column: node.Column}

	switch node.Kind {
	case yaml.ScalarNode:
		if !isString(node) {
			d.Reason = fmt.Sprintf("expected a package spec string, got %s %q", describe(node), node.Value)
			return d
		}
		d.Kind = KindNative
		d.Spec = node.Value
		return d

	case yaml.MappingNode:
		list := lookup(node, pipKey)
		if list == nil {
			d.Reason = fmt.Sprintf("mapping has no %q key", pipKey)
			return d
		}
		if list.Kind != yaml.SequenceNode {
			d.Reason = fmt.Sprintf("%q must be a sequence, got %s", pipKey, describe(list))
			return d
		}
		specs := make([]string, 0, len(list.Content))
		for _, item := range list.Content {
			item = deref(item)
			if item.Kind != yaml.ScalarNode || !isString(item) {
				d.Line, d.Column = item.Line, item.Column
				d.Reason = fmt.Sprintf("pip entries must be strings, got %s %q", describe(item), item.Value)
				return d
			}
			specs = append(specs, item.Value)
		}
		d.Kind = KindPip
		d.Pip = specs
		return d

	default:
		d.Reason = fmt.Sprintf("expected a package spec string or a %q mapping, got %s", pipKey, describe(node))
		return d
	}
}

// deref follows alias nodes to the anchored node.
func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// lookup returns the value node for key in a mapping node, or nil.
// A key repeated in the mapping resolves to its last occurrence.
func lookup(m *yaml.Node, key string) *yaml.Node {
	var v *yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		if k := deref(m.Content[i]); k.Kind == yaml.ScalarNode && k.Value == key {
			v = deref(m.Content[i+1])
		}
	}
	return v
}

func isString(n *yaml.Node) bool {
	return n.ShortTag() == "!!str"
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return "null"
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		default:
			return "scalar " + n.ShortTag()
		}
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.DocumentNode:
		return "document"
	default:
		return "unknown node"
	}
}
