// Package cheaperr defines the recoverable error kinds surfaced by the
// kernel (spec §7). Every error carries a Kind, the identifier of the
// offending element, and a short human message; none leak internal
// stack state across the serialization or persistence boundary, though
// github.com/pkg/errors is used internally to retain a cause chain for
// callers that want it via errors.Unwrap/errors.Cause.
package cheaperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the error categories of spec §7.
type Kind string

const (
	// Structural
	KindDefinitionConflict   Kind = "DefinitionConflict"
	KindDuplicateName        Kind = "DuplicateName"
	KindUnknownAspectDef     Kind = "UnknownAspectDef"
	KindUnknownHierarchyDef  Kind = "UnknownHierarchyDef"
	KindStrictViolation      Kind = "StrictViolation"

	// Access
	KindReadOnly     Kind = "ReadOnly"
	KindNotWritable  Kind = "NotWritable"
	KindNotRemovable Kind = "NotRemovable"
	KindNotAddable   Kind = "NotAddable"

	// Typed-value
	KindTypeMismatch   Kind = "TypeMismatch"
	KindNullNotAllowed Kind = "NullNotAllowed"
	KindOutOfRange     Kind = "OutOfRange"

	// Lookup / range
	KindNotFound         Kind = "NotFound"
	KindIndexOutOfBounds Kind = "IndexOutOfBounds"

	// Parse / protocol
	KindMalformedInput      Kind = "MalformedInput"
	KindMissingRequiredField Kind = "MissingRequiredField"
	KindOrderingViolation   Kind = "OrderingViolation"

	// Persistence
	KindStorageUnavailable Kind = "StorageUnavailable"
	KindSchemaIncompatible Kind = "SchemaIncompatible"
	KindTransactionAborted Kind = "TransactionAborted"
)

// Error is the concrete error type returned by every kernel operation
// that can fail in a caller-recoverable way.
type Error struct {
	Kind    Kind
	Element string // offending aspect-def name, hierarchy name, property name, entity UUID, or stream offset
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s(%s): %s", e.Kind, e.Element, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an Error of the given kind.
func New(kind Kind, element, message string) error {
	return errors.WithStack(&Error{Kind: kind, Element: element, Message: message})
}

// Wrap builds an Error of the given kind with an underlying cause.
func Wrap(cause error, kind Kind, element, message string) error {
	return errors.WithStack(&Error{Kind: kind, Element: element, Message: message, cause: cause})
}

// Is reports whether err is a kernel Error of the given kind, unwrapping
// the github.com/pkg/errors stack frames that New/Wrap attach.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		type causer interface{ Cause() error }
		type unwrapper interface{ Unwrap() error }
		switch u := err.(type) {
		case causer:
			err = u.Cause()
		case unwrapper:
			err = u.Unwrap()
		default:
			return false
		}
	}
	return false
}
