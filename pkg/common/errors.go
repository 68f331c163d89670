package common

import (
	"errors"
	"fmt"
)

var ErrMalformedRecord = errors.New("malformed instrument record")

type MalformedKind int

const (
	KindShapeMismatch MalformedKind = iota
	KindInvalidFieldValue
)

func (k MalformedKind) String() string {
	switch k {
	case KindShapeMismatch:
		return "shape mismatch"
	case KindInvalidFieldValue:
		return "invalid field value"
	default:
		return fmt.Sprintf("MalformedKind(%d)", int(k))
	}
}

// MalformedRecordError carries the diagnostics of a rejected line. It matches
// ErrMalformedRecord through errors.Is.
type MalformedRecordError struct {
	Kind  MalformedKind
	Got   int
	Want  int
	Field string
	Raw   string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	switch e.Kind {
	case KindShapeMismatch:
		return fmt.Sprintf("%s: %s, got %d fields, want %d: %q", ErrMalformedRecord, e.Kind, e.Got, e.Want, e.Raw)
	default:
		return fmt.Sprintf("%s: %s for %s: %v: %q", ErrMalformedRecord, e.Kind, e.Field, e.Err, e.Raw)
	}
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }
