package dialogue

import (
	"errors"
	"fmt"
)

// DialogueError is a typed engine error. Code distinguishes the failure
// classes the handlers care about.
type DialogueError struct {
	Code    string
	Message string
}

func (e *DialogueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	codeExtractionFailure  = "extractionFailure"
	codeVenueNotResolved   = "venueNotResolved"
	codePersistenceFailure = "persistenceFailure"
)

func NewExtractionError(msg string) error {
	return &DialogueError{Code: codeExtractionFailure, Message: msg}
}

func NewVenueNotResolvedError(msg string) error {
	return &DialogueError{Code: codeVenueNotResolved, Message: msg}
}

func NewPersistenceError(msg string) error {
	return &DialogueError{Code: codePersistenceFailure, Message: msg}
}

func hasCode(err error, code string) bool {
	var de *DialogueError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// IsExtractionFailure reports whether err is an oracle extraction failure.
func IsExtractionFailure(err error) bool { return hasCode(err, codeExtractionFailure) }

// IsVenueNotResolved reports whether err is a venue resolution failure.
func IsVenueNotResolved(err error) bool { return hasCode(err, codeVenueNotResolved) }

// IsPersistenceFailure reports whether err is a booking persistence failure.
func IsPersistenceFailure(err error) bool { return hasCode(err, codePersistenceFailure) }
