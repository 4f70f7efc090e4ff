package project

import "fmt"

// Result is the normalized outcome of one operation.
// Error carries raw diagnostic text (stderr, panic value) when available.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Ok returns a successful result.
func Ok(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Fail returns a failed result with diagnostic detail.
func Fail(message, detail string) Result {
	return Result{Success: false, Message: message, Error: detail}
}

// FromError converts an unexpected error into the generic failure shape.
func FromError(err error) Result {
	return Result{Success: false, Message: "Operation failed", Error: err.Error()}
}

// Aggregate folds the results of a sequence into one result.
// Success is the AND of all results; Error is the first failure's error.
func Aggregate(results []Result) Result {
	if len(results) == 0 {
		return Ok("No operations to run")
	}

	failed := 0
	var firstFailure *Result
	for i := range results {
		if results[i].Success {
			continue
		}
		failed++
		if firstFailure == nil {
			firstFailure = &results[i]
		}
	}

	if failed == 0 {
		return Ok("All %d operations succeeded", len(results))
	}
	return Result{
		Success: false,
		Message: fmt.Sprintf("%d of %d operations failed (first: %s)", failed, len(results), firstFailure.Message),
		Error:   firstFailure.Error,
	}
}
