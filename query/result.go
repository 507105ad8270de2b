package query

import "github.com/poiesic/placefinder/core"

// Status describes the outcome of one pipeline turn.
type Status string

const (
	// StatusSuccess means all fields validated and the search can proceed.
	StatusSuccess Status = "success"

	// StatusPrompt means the caller must show Prompt to the user and call
	// Resume with their answer and the attached Context.
	StatusPrompt Status = "prompt"

	// StatusError means the turn failed; Errors holds user-facing messages.
	StatusError Status = "error"
)

// Result is the outcome of one pipeline turn.
type Result struct {
	Status Status

	// Validated is set on success. On error it may hold the fields that did
	// validate, with the failed ones nil.
	Validated *core.ValidatedFields

	// Prompt is the user-facing question when Status is StatusPrompt, or a
	// corrective-guidance line when Status is StatusError. Never empty on
	// either status.
	Prompt string

	// Context must be passed back on the next turn when Status is
	// StatusPrompt.
	Context *core.DisambiguationContext

	// Errors holds user-facing messages when Status is StatusError.
	Errors []string
}
