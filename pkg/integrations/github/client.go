package github

import (
	"context"
	"fmt"

	"github.com/matzehuels/condadeps/pkg/buildinfo"
	"github.com/matzehuels/condadeps/pkg/integrations"
	"github.com/matzehuels/condadeps/pkg/snapshot"
)

const (
	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	// APIVersion is sent as X-GitHub-Api-Version.
	APIVersion = "2022-11-28"

	mediaType = "application/vnd.github+json"
)

// Client submits dependency snapshots to the GitHub dependency graph.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client authenticated with token.
// An empty baseURL selects [DefaultBaseURL]; GitHub Enterprise Server
// callers pass their /api/v3 root.
func NewClient(token, baseURL string) *Client {
	headers := map[string]string{
		"Accept":               mediaType,
		"X-GitHub-Api-Version": APIVersion,
		"User-Agent":           buildinfo.UserAgent(),
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(headers),
		baseURL: baseURL,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// SubmitSnapshot posts s to the dependency submission endpoint of repository
// ("owner/repo"). The repository is validated before any request is made.
//
// The request is sent once. A non-2xx response is returned as an error
// carrying the status code and the server's message.
func (c *Client) SubmitSnapshot(ctx context.Context, repository string, s *snapshot.Snapshot) (*SubmitResult, error) {
	owner, repo, err := ParseRepoRef(repository)
	if err != nil {
		return nil, err
	}

	var data submitResponse
	if err := c.PostJSON(ctx, snapshotsURL(c.baseURL, owner, repo), s, &data); err != nil {
		return nil, err
	}
	return &SubmitResult{
		ID:        data.ID,
		CreatedAt: data.CreatedAt,
		Result:    data.Result,
		Message:   data.Message,
	}, nil
}

func snapshotsURL(baseURL, owner, repo string) string {
	return fmt.Sprintf("%s/repos/%s/%s/dependency-graph/snapshots", baseURL, owner, repo)
}
