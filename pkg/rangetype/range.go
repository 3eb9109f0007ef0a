package rangetype

import (
	"fmt"
)

// Type is a resolved range type: the subtype capabilities plus the optional
// hooks looked up once at construction. A Type is immutable and safe for
// concurrent use.
type Type[T any] struct {
	st    Subtype[T]
	canon Canonicalizer[T]
	float Floater[T]
}

// NewType resolves the optional capabilities of st and returns the range type
// built on it.
func NewType[T any](st Subtype[T]) *Type[T] {
	t := &Type[T]{st: st}
	if c, ok := st.(Canonicalizer[T]); ok {
		t.canon = c
	}
	if f, ok := st.(Floater[T]); ok {
		t.float = f
	}
	return t
}

func (t *Type[T]) Subtype() Subtype[T] { return t.st }
func (t *Type[T]) TypeID() TypeID      { return t.st.TypeID() }
func (t *Type[T]) Name() string        { return t.st.Name() }

// Discrete reports whether the subtype registers a canonicalization hook.
func (t *Type[T]) Discrete() bool { return t.canon != nil }

// HasFloat reports whether the subtype can approximate values as floats.
func (t *Type[T]) HasFloat() bool { return t.float != nil }

// Float approximates v as a float64.
func (t *Type[T]) Float(v T) (float64, error) {
	if t.float == nil {
		return 0, fmt.Errorf("%w: %s has no float approximation", ErrMissingCapability, t.st.Name())
	}
	return t.float.Float(v), nil
}

// Range is an interval value. The zero value is not a valid range; ranges are
// built by a Type and never change afterwards.
type Range[T any] struct {
	typ   TypeID
	empty bool
	lower Bound[T]
	upper Bound[T]
}

func (r Range[T]) TypeID() TypeID { return r.typ }
func (r Range[T]) IsEmpty() bool  { return r.empty }

// LowerBound returns the lower bound. It carries no value for empty ranges.
func (r Range[T]) LowerBound() Bound[T] { return r.lower }

// UpperBound returns the upper bound. It carries no value for empty ranges.
func (r Range[T]) UpperBound() Bound[T] { return r.upper }

func (r Range[T]) LowerInc() bool { return !r.empty && r.lower.Inclusive }
func (r Range[T]) UpperInc() bool { return !r.empty && r.upper.Inclusive }
func (r Range[T]) LowerInf() bool { return !r.empty && r.lower.Infinite }
func (r Range[T]) UpperInf() bool { return !r.empty && r.upper.Infinite }

// Lower returns the lower bound value.
func (r Range[T]) Lower() (T, error) {
	var zero T
	if r.empty {
		return zero, ErrEmptyRange
	}
	if r.lower.Infinite {
		return zero, fmt.Errorf("%w: lower", ErrInfiniteBound)
	}
	return r.lower.Value, nil
}

// Upper returns the upper bound value.
func (r Range[T]) Upper() (T, error) {
	var zero T
	if r.empty {
		return zero, ErrEmptyRange
	}
	if r.upper.Infinite {
		return zero, fmt.Errorf("%w: upper", ErrInfiniteBound)
	}
	return r.upper.Value, nil
}

func (r Range[T]) String() string {
	if r.empty {
		return "-"
	}
	return fmt.Sprintf("%s,%s", r.lower, r.upper)
}

// Empty returns the empty range of this type.
func (t *Type[T]) Empty() Range[T] {
	return Range[T]{
		typ:   t.st.TypeID(),
		empty: true,
		lower: Bound[T]{Lower: true},
	}
}

// Make builds a range from two bounds, validates it and applies the subtype's
// canonicalization hook, if any.
func (t *Type[T]) Make(lower, upper Bound[T]) (Range[T], error) {
	r, err := t.serialize(lower, upper)
	if err != nil {
		return Range[T]{}, err
	}
	if r.empty || t.canon == nil {
		return r, nil
	}
	return t.canonicalize(r)
}

// New builds a finite range. bounds is one of "[]", "[)", "(]" or "()".
func (t *Type[T]) New(lo, hi T, bounds string) (Range[T], error) {
	if len(bounds) != 2 ||
		(bounds[0] != '[' && bounds[0] != '(') ||
		(bounds[1] != ']' && bounds[1] != ')') {
		return Range[T]{}, fmt.Errorf("%w: invalid range bound flags %q", ErrMalformed, bounds)
	}
	return t.Make(LowerBound(lo, bounds[0] == '['), UpperBound(hi, bounds[1] == ']'))
}

// Singleton returns the range containing exactly v.
func (t *Type[T]) Singleton(v T) (Range[T], error) {
	return t.Make(LowerBound(v, true), UpperBound(v, true))
}

// LowerUnbounded returns (-INF, hi) or (-INF, hi].
func (t *Type[T]) LowerUnbounded(hi T, inclusive bool) (Range[T], error) {
	return t.Make(NegInf[T](), UpperBound(hi, inclusive))
}

// UpperUnbounded returns (lo, INF) or [lo, INF).
func (t *Type[T]) UpperUnbounded(lo T, inclusive bool) (Range[T], error) {
	return t.Make(LowerBound(lo, inclusive), PosInf[T]())
}

// Unbounded returns (-INF, INF).
func (t *Type[T]) Unbounded() Range[T] {
	return Range[T]{typ: t.st.TypeID(), lower: NegInf[T](), upper: PosInf[T]()}
}

// Canonicalize applies the canonicalization hook to r. It is the identity for
// non-discrete subtypes and for empty ranges.
func (t *Type[T]) Canonicalize(r Range[T]) (Range[T], error) {
	if err := t.check(r); err != nil {
		return Range[T]{}, err
	}
	if r.empty || t.canon == nil {
		return r, nil
	}
	return t.canonicalize(r)
}

func (t *Type[T]) canonicalize(r Range[T]) (Range[T], error) {
	lower, upper, err := t.canon.Canonicalize(r.lower, r.upper)
	if err != nil {
		return Range[T]{}, err
	}
	return t.serialize(lower, upper)
}

// serialize assembles a range without canonicalizing it. Equal bound values
// with an exclusive side collapse to the empty range.
func (t *Type[T]) serialize(lower, upper Bound[T]) (Range[T], error) {
	lower.Lower = true
	upper.Lower = false
	var zero T
	if lower.Infinite {
		lower.Inclusive = false
		lower.Value = zero
	}
	if upper.Infinite {
		upper.Inclusive = false
		upper.Value = zero
	}

	c := t.compareBoundValues(lower, upper)
	if c > 0 {
		return Range[T]{}, fmt.Errorf("%w: %s", ErrInvalidRange, Range[T]{lower: lower, upper: upper})
	}
	if c == 0 && !(lower.Inclusive && upper.Inclusive) {
		return t.Empty(), nil
	}
	return Range[T]{typ: t.st.TypeID(), lower: lower, upper: upper}, nil
}

// CanonicalizeDiscrete rewrites bounds into the [inclusive, exclusive) form
// using next to step to the following value. next reports false past the last
// value; an inclusive upper bound on the last value is left as is since no
// exclusive form exists for it.
func CanonicalizeDiscrete[T any](lower, upper Bound[T], next func(T) (T, bool)) (Bound[T], Bound[T], error) {
	if !lower.Infinite && !lower.Inclusive {
		v, ok := next(lower.Value)
		if !ok {
			return lower, upper, fmt.Errorf("%w: no value after lower bound %v", ErrOutOfRange, lower.Value)
		}
		lower = LowerBound(v, true)
	}
	if !upper.Infinite && upper.Inclusive {
		if v, ok := next(upper.Value); ok {
			upper = UpperBound(v, false)
		}
	}
	return lower, upper, nil
}

func (t *Type[T]) check(rs ...Range[T]) error {
	id := t.st.TypeID()
	for _, r := range rs {
		if r.typ != id {
			return fmt.Errorf("%w: %d and %d", ErrTypeMismatch, id, r.typ)
		}
	}
	return nil
}
