package rangetype

import "errors"

var (
	// ErrMalformed is returned when text or binary input cannot be parsed.
	ErrMalformed = errors.New("malformed range literal")
	// ErrNullBound is returned, wrapped in ErrMalformed, for NULL range
	// boundaries, which are not supported.
	ErrNullBound = errors.New("NULL range boundaries are not supported")
	// ErrInvalidRange is returned when the lower bound exceeds the upper bound.
	ErrInvalidRange = errors.New("range lower bound must be less than or equal to range upper bound")
	// ErrTypeMismatch is returned when the operands have different range types.
	ErrTypeMismatch = errors.New("range types do not match")
	// ErrUndefined is returned when the result of an operation cannot be
	// represented as a single range.
	ErrUndefined = errors.New("operation undefined for these operands")
	// ErrMissingCapability is returned when a subtype lacks an optional
	// capability an operation needs.
	ErrMissingCapability = errors.New("subtype capability not available")
	// ErrEmptyRange is returned by predicates that are undefined on empty ranges.
	ErrEmptyRange = errors.New("range is empty")
	// ErrInfiniteBound is returned when the value of an infinite bound is requested.
	ErrInfiniteBound = errors.New("range bound is infinite")
	// ErrOutOfRange is returned when canonicalization steps past the last
	// value of a discrete subtype.
	ErrOutOfRange = errors.New("value out of range")
)
