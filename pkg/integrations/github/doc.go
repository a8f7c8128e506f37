// Package github submits dependency snapshots to the GitHub dependency graph.
//
// # Usage
//
//	client := github.NewClient(token, "https://api.github.com")
//	res, err := client.SubmitSnapshot(ctx, "octo/vision", snap)
//	if err != nil {
//	    return err
//	}
//	fmt.Println("snapshot", res.ID, res.Result)
//
// The request goes to POST /repos/{owner}/{repo}/dependency-graph/snapshots
// with the GitHub JSON media type and API version 2022-11-28. In Actions the
// workflow token needs the contents: write permission.
//
// # Errors
//
// Authentication and permission failures (401, 403) are UNAUTHORIZED, an
// unknown or hidden repository (404) is NOT_FOUND, and everything else is
// NETWORK_ERROR. See [integrations.StatusError] for the status and message.
//
// [integrations.StatusError]: github.com/matzehuels/condadeps/pkg/integrations.StatusError
package github
