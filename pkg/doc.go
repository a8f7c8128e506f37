// Package pkg holds the condadeps libraries.
//
// # Overview
//
// condadeps turns a Conda environment file into a GitHub dependency
// snapshot. The packages follow the data as it flows through a run:
//
//	env*.yml / env*.yaml
//	         ↓
//	    [environment] (discover, classify, resolve)
//	         ↓
//	    [manifest]    (Package URL entries + source file)
//	         ↓
//	    [snapshot]    (CI metadata from [config])
//	         ↓
//	    [integrations/github] (POST to the dependency graph)
//
// [pipeline] chains these stages for the CLI. Supporting packages:
//
//   - [purl]: Package URL formatting and name normalization
//   - [errors]: coded errors shared by every stage
//   - [observability]: hook registry for logging and metrics
//   - [io]: JSON output
//   - [buildinfo]: version information set at link time
//
// # Quick Start
//
// Resolve an environment file without submitting:
//
//	import "github.com/matzehuels/condadeps/pkg/environment"
//
//	res, err := environment.ResolveFile("environment.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for purl := range res.Resolved {
//	    fmt.Println(purl)
//	}
//
// [environment]: github.com/matzehuels/condadeps/pkg/environment
// [manifest]: github.com/matzehuels/condadeps/pkg/manifest
// [snapshot]: github.com/matzehuels/condadeps/pkg/snapshot
// [config]: github.com/matzehuels/condadeps/pkg/config
// [integrations/github]: github.com/matzehuels/condadeps/pkg/integrations/github
// [pipeline]: github.com/matzehuels/condadeps/pkg/pipeline
// [purl]: github.com/matzehuels/condadeps/pkg/purl
// [errors]: github.com/matzehuels/condadeps/pkg/errors
// [observability]: github.com/matzehuels/condadeps/pkg/observability
// [io]: github.com/matzehuels/condadeps/pkg/io
// [buildinfo]: github.com/matzehuels/condadeps/pkg/buildinfo
package pkg
