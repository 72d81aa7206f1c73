package dictionary

import (
	"errors"
	"fmt"
)

type MappingErrorKind string

const (
	MappingEmptyResult MappingErrorKind = "empty_result"
	MappingMalformed   MappingErrorKind = "malformed"
)

// MappingError is returned when an API payload cannot be turned into a Word.
type MappingError struct {
	Kind MappingErrorKind
	// Field is the JSON path of the offending field, if known.
	Field string
	Err   error
}

func (e *MappingError) Error() string {
	msg := "mapping failed: " + string(e.Kind)
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

type LookupErrorKind string

const (
	LookupNotFound LookupErrorKind = "not_found"
	LookupNetwork  LookupErrorKind = "network"
	LookupMapping  LookupErrorKind = "mapping"
)

var (
	ErrNotFound = errors.New("no definitions found")
	ErrNetwork  = errors.New("network failure")
	ErrMapping  = errors.New("unexpected response")
)

// LookupError classifies a failed lookup.
type LookupError struct {
	Kind LookupErrorKind
	Term string
	// StatusCode is set for non-success HTTP responses other than 404.
	StatusCode int
	Err        error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case LookupNotFound:
		return fmt.Sprintf("%q: %v", e.Term, ErrNotFound)
	case LookupNetwork:
		if e.StatusCode != 0 {
			return fmt.Sprintf("%q: %v: status code %d", e.Term, ErrNetwork, e.StatusCode)
		}
		return fmt.Sprintf("%q: %v: %v", e.Term, ErrNetwork, e.Err)
	case LookupMapping:
		return fmt.Sprintf("%q: %v: %v", e.Term, ErrMapping, e.Err)
	default:
		return fmt.Sprintf("%q: lookup failed (%s): %v", e.Term, e.Kind, e.Err)
	}
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a LookupError against ErrNotFound, ErrNetwork or ErrMapping.
func (e *LookupError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == LookupNotFound
	case ErrNetwork:
		return e.Kind == LookupNetwork
	case ErrMapping:
		return e.Kind == LookupMapping
	}
	return false
}

// KindOf returns the kind of a LookupError found in err's chain.
func KindOf(err error) (LookupErrorKind, bool) {
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		return "", false
	}
	return lookupErr.Kind, true
}
