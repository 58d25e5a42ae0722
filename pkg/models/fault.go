package models

import (
	"errors"
	"fmt"
)

// FaultKind is a stable error code surfaced across the contract boundary.
type FaultKind string

const (
	FaultUnsupportedFormat FaultKind = "UnsupportedFormat"
	FaultMalformedInput    FaultKind = "MalformedInput"
	FaultLowQualityInput   FaultKind = "LowQualityInput"
	FaultInsufficientData  FaultKind = "InsufficientData"
	FaultGenerationFailed  FaultKind = "GenerationFailed"
	FaultSchemaViolation   FaultKind = "SchemaViolation"
	FaultDuplicateInFlight FaultKind = "DuplicateInFlight"
)

// Fault pairs a stable kind with a human-readable detail string.
type Fault struct {
	Kind   FaultKind
	Detail string
	Err    error // optional underlying cause
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Detail, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// NewFault builds a Fault with a formatted detail string.
func NewFault(kind FaultKind, format string, args ...interface{}) *Fault {
	return &Fault{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// WrapFault attaches an underlying cause to a new Fault.
func WrapFault(kind FaultKind, err error, format string, args ...interface{}) *Fault {
	return &Fault{Kind: kind, Detail: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the FaultKind from an error chain, or "" if none.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsKind reports whether err carries the given fault kind.
func IsKind(err error, kind FaultKind) bool {
	return KindOf(err) == kind
}
