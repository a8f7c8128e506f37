// Package integrations provides the shared HTTP layer for remote API clients.
//
// # Overview
//
// Each remote service has its own subpackage built on [Client]:
//
//   - [github]: GitHub dependency submission API
//
// # Client Pattern
//
// Service clients embed [*Client] and add typed methods:
//
//	client := github.NewClient(token, apiURL)
//	res, err := client.SubmitSnapshot(ctx, "octo/vision", snap)
//
// [Client] handles:
//   - JSON request encoding and response decoding
//   - Default headers (auth, API version)
//   - Mapping of error statuses to typed errors
//   - HTTP events via [observability.HTTP]
//
// Requests are sent exactly once. A failed submission is reported to the
// caller unchanged; retrying is the CI job's decision.
//
// # Errors
//
// Failures are *errors.Error values from pkg/errors carrying NOT_FOUND,
// UNAUTHORIZED, or NETWORK_ERROR. They also unwrap to [ErrNotFound],
// [ErrUnauthorized], or [ErrNetwork], and status failures to [*StatusError].
//
// [github]: github.com/matzehuels/condadeps/pkg/integrations/github
// [observability.HTTP]: github.com/matzehuels/condadeps/pkg/observability.HTTP
package integrations
