package domain

import "errors"

var (
	// ErrIngestionFailed is returned when a grid read could not produce a usable test.
	ErrIngestionFailed = errors.New("test ingestion failed")
	// ErrTestNotFound is returned when no stored question set exists for a test name.
	ErrTestNotFound = errors.New("test not found")
	// ErrBackingStoreUnavailable wraps any spreadsheet transport failure.
	ErrBackingStoreUnavailable = errors.New("backing store unavailable")
	// ErrMalformedPayload is returned for callback payloads with a bad shape.
	ErrMalformedPayload = errors.New("malformed callback payload")
	// ErrSessionNotFound is returned when a user acts without an active session.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrNotStudent is returned when a non-student tries to enter the survey flow.
	ErrNotStudent = errors.New("user is not a student")
)
