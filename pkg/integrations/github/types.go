package github

import "time"

// SubmitResult is GitHub's acknowledgement of a submitted snapshot.
type SubmitResult struct {
	ID        int64     `json:"id"`         // Snapshot ID assigned by GitHub
	CreatedAt time.Time `json:"created_at"` // Server-side receipt time
	Result    string    `json:"result"`     // SUCCESS, ACCEPTED, or INVALID
	Message   string    `json:"message"`    // Human-readable detail
}

// Submission result values.
const (
	ResultSuccess  = "SUCCESS"
	ResultAccepted = "ACCEPTED"
	ResultInvalid  = "INVALID"
)

// Accepted reports whether GitHub stored the snapshot.
func (r *SubmitResult) Accepted() bool {
	return r.Result == ResultSuccess || r.Result == ResultAccepted
}

// submitResponse is the API's 201 body.
type submitResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Result    string    `json:"result"`
	Message   string    `json:"message"`
}
