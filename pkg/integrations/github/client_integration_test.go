//go:build integration

package github

import (
	"context"
	"os"
	"testing"
	"time"
)

// Submits a real snapshot. Needs a token with contents: write on the target
// repository, which is taken from CONDADEPS_IT_REPOSITORY.
func TestSubmitSnapshot_Integration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	repo := os.Getenv("CONDADEPS_IT_REPOSITORY")
	sha := os.Getenv("CONDADEPS_IT_SHA")
	if token == "" || repo == "" || sha == "" {
		t.Skip("GITHUB_TOKEN, CONDADEPS_IT_REPOSITORY or CONDADEPS_IT_SHA not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s := testSnapshot()
	s.Sha = sha
	s.Job.Correlator = "condadeps-integration_test"

	res, err := NewClient(token, "").SubmitSnapshot(ctx, repo, s)
	if err != nil {
		t.Fatalf("SubmitSnapshot: %v", err)
	}
	if !res.Accepted() {
		t.Errorf("result = %q: %s", res.Result, res.Message)
	}
}
