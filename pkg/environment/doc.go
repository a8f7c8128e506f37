// Package environment resolves Conda environment files into manifest entries.
//
// # Overview
//
// A Conda environment file lists its packages under a top-level
// "dependencies" sequence. Each element is either a Conda match spec string
// or a mapping whose "pip" key holds a list of pip requirement strings:
//
//	name: vision
//	dependencies:
//	  - python=3.8
//	  - torchvision
//	  - pip:
//	    - Flask==2.0.1
//	    - torch_optimizer
//
// [Resolve] turns such a document into a [manifest.Resolved] map:
//
//	pkg:conda/python@3.8
//	pkg:conda/torchvision
//	pkg:pypi/flask@2.0.1
//	pkg:pypi/torch-optimizer
//
// # Classification
//
// [Classify] maps one dependency node to a [Declaration]: a native Conda
// spec, a nested pip list, or a malformed entry. Only YAML strings count as
// specs; numbers, booleans and nulls are malformed.
//
// # Name and Version Rules
//
// Conda specs split on the first "=", pip specs on the first "==". The left
// side is the name and any non-empty remainder is the version, kept verbatim.
// Conda names are used as written; pip names are lower-cased with "_"
// replaced by "-".
//
// # Duplicates
//
// Entries are keyed by Package URL. When two declarations produce the same
// URL, the later one replaces the earlier one and the URL is recorded in
// [Resolution.Duplicates].
//
// # Failure Model
//
// Resolution is all-or-nothing. Invalid YAML, a missing "dependencies"
// sequence or a single malformed entry aborts the pass with a coded
// [errors.Error] and no partial map.
//
// # Discovery
//
// [Discover] walks a directory tree for the first env*.yml file, falling back
// to env*.yaml, matching names case-insensitively.
//
// [manifest.Resolved]: github.com/matzehuels/condadeps/pkg/manifest.Resolved
// [errors.Error]: github.com/matzehuels/condadeps/pkg/errors.Error
package environment
