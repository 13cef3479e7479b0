package ingest

import "errors"

// ErrorKind classifies ingestion failures so the request boundary can map
// them without parsing messages.
type ErrorKind string

const (
	KindInvalidIdentity     ErrorKind = "invalid_identity"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	KindRepositoryNotFound  ErrorKind = "repository_not_found"
	KindSizeLimitExceeded   ErrorKind = "size_limit_exceeded"
	KindNotYetAnalyzed      ErrorKind = "not_yet_analyzed"
)

// Error carries a kind alongside a human-readable message and the
// underlying cause, if any.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the ErrorKind from err, or "" when err carries none.
func KindOf(err error) ErrorKind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}
