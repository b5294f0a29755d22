package domain

import "fmt"

// IndexBuildError reports a failed corpus (re)build. The previously persisted
// index, if any, remains authoritative.
type IndexBuildError struct {
	CorpusID string
	Err      error
}

func (e *IndexBuildError) Error() string {
	return fmt.Sprintf("index build failed for corpus %q: %v", e.CorpusID, e.Err)
}

func (e *IndexBuildError) Unwrap() error { return e.Err }

// MissingEntityError means an audit question has no resolvable person. The
// caller should ask for clarification rather than default to anyone.
type MissingEntityError struct {
	Question string
}

func (e *MissingEntityError) Error() string {
	return fmt.Sprintf("audit question has no identifiable person: %q", e.Question)
}

// UnknownIntentError means the question did not classify into any supported
// route. The caller must respond with a clarification, not a guessed routing.
type UnknownIntentError struct {
	Question string
}

func (e *UnknownIntentError) Error() string {
	return fmt.Sprintf("question does not match any supported route: %q", e.Question)
}

// ExternalServiceError wraps a failure from the embedding or generative
// service. It is surfaced verbatim, never swallowed into a fabricated answer.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s service error: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
