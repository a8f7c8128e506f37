package pipeline

import (
	"context"

	"github.com/matzehuels/condadeps/pkg/environment"
	"github.com/matzehuels/condadeps/pkg/manifest"
	"github.com/matzehuels/condadeps/pkg/observability"
)

// Locate returns the descriptor to resolve: opts.File when set, otherwise
// the result of discovery under opts.Dir.
func Locate(ctx context.Context, opts Options) (string, error) {
	if opts.File != "" {
		return opts.File, nil
	}
	path, err := environment.Discover(opts.Dir)
	observability.Pipeline().OnDiscover(ctx, opts.Dir, path, err)
	if err != nil {
		return "", err
	}
	return path, nil
}

// Resolve reads the descriptor at path and assembles its manifest.
func Resolve(path string) (*manifest.Manifest, []string, error) {
	res, err := environment.ResolveFile(path)
	if err != nil {
		return nil, nil, err
	}
	m, err := manifest.New(path, res.Resolved)
	if err != nil {
		return nil, nil, err
	}
	return m, res.Duplicates, nil
}
