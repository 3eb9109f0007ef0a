package rangetype

import "fmt"

// Equal reports whether both ranges are empty or have equal bounds.
func (t *Type[T]) Equal(r1, r2 Range[T]) (bool, error) {
	if err := t.check(r1, r2); err != nil {
		return false, err
	}
	return t.equal(r1, r2), nil
}

func (t *Type[T]) NotEqual(r1, r2 Range[T]) (bool, error) {
	eq, err := t.Equal(r1, r2)
	return !eq, err
}

func (t *Type[T]) equal(r1, r2 Range[T]) bool {
	if r1.empty || r2.empty {
		return r1.empty && r2.empty
	}
	return t.CompareBounds(r1.lower, r2.lower) == 0 &&
		t.CompareBounds(r1.upper, r2.upper) == 0
}

// Contains reports whether every point of r2 is in r1. The empty range is
// contained by every range.
func (t *Type[T]) Contains(r1, r2 Range[T]) (bool, error) {
	if err := t.check(r1, r2); err != nil {
		return false, err
	}
	return t.contains(r1, r2), nil
}

// ContainedBy reports whether every point of r1 is in r2.
func (t *Type[T]) ContainedBy(r1, r2 Range[T]) (bool, error) {
	if err := t.check(r1, r2); err != nil {
		return false, err
	}
	return t.contains(r2, r1), nil
}

func (t *Type[T]) contains(r1, r2 Range[T]) bool {
	if r2.empty {
		return true
	}
	if r1.empty {
		return false
	}
	return t.CompareBounds(r1.lower, r2.lower) <= 0 &&
		t.CompareBounds(r1.upper, r2.upper) >= 0
}

// ContainsElem reports whether v is a point of r.
func (t *Type[T]) ContainsElem(r Range[T], v T) (bool, error) {
	if err := t.check(r); err != nil {
		return false, err
	}
	return t.containsElem(r, v), nil
}

// ElemContainedBy is ContainsElem with the operands swapped.
func (t *Type[T]) ElemContainedBy(v T, r Range[T]) (bool, error) {
	return t.ContainsElem(r, v)
}

func (t *Type[T]) containsElem(r Range[T], v T) bool {
	if r.empty {
		return false
	}
	return t.CompareBounds(r.lower, LowerBound(v, true)) <= 0 &&
		t.CompareBounds(r.upper, UpperBound(v, true)) >= 0
}

// Overlaps reports whether the ranges share at least one point.
func (t *Type[T]) Overlaps(r1, r2 Range[T]) (bool, error) {
	if err := t.check(r1, r2); err != nil {
		return false, err
	}
	return t.overlaps(r1, r2), nil
}

func (t *Type[T]) overlaps(r1, r2 Range[T]) bool {
	if r1.empty || r2.empty {
		return false
	}
	if t.CompareBounds(r1.lower, r2.lower) >= 0 && t.CompareBounds(r1.lower, r2.upper) <= 0 {
		return true
	}
	return t.CompareBounds(r2.lower, r1.lower) >= 0 && t.CompareBounds(r2.lower, r1.upper) <= 0
}

// Before reports whether r1 lies strictly left of r2.
func (t *Type[T]) Before(r1, r2 Range[T]) (bool, error) {
	if err := t.checkNonEmpty(r1, r2); err != nil {
		return false, err
	}
	return t.before(r1, r2), nil
}

// After reports whether r1 lies strictly right of r2.
func (t *Type[T]) After(r1, r2 Range[T]) (bool, error) {
	if err := t.checkNonEmpty(r1, r2); err != nil {
		return false, err
	}
	return t.before(r2, r1), nil
}

func (t *Type[T]) before(r1, r2 Range[T]) bool {
	return t.CompareBounds(r1.upper, r2.lower) < 0
}

// OverLeft reports whether r1 does not extend to the right of r2. It is false
// when either range is empty.
func (t *Type[T]) OverLeft(r1, r2 Range[T]) (bool, error) {
	if err := t.check(r1, r2); err != nil {
		return false, err
	}
	return t.overLeft(r1, r2), nil
}

// OverRight reports whether r1 does not extend to the left of r2. It is false
// when either range is empty.
func (t *Type[T]) OverRight(r1, r2 Range[T]) (bool, error) {
	if err := t.check(r1, r2); err != nil {
		return false, err
	}
	return t.overRight(r1, r2), nil
}

func (t *Type[T]) overLeft(r1, r2 Range[T]) bool {
	if r1.empty || r2.empty {
		return false
	}
	return t.CompareBounds(r1.upper, r2.upper) <= 0
}

func (t *Type[T]) overRight(r1, r2 Range[T]) bool {
	if r1.empty || r2.empty {
		return false
	}
	return t.CompareBounds(r1.lower, r2.lower) >= 0
}

// Adjacent reports whether the ranges touch without overlapping and without
// leaving a gap.
func (t *Type[T]) Adjacent(r1, r2 Range[T]) (bool, error) {
	if err := t.checkNonEmpty(r1, r2); err != nil {
		return false, err
	}
	return t.adjacent(r1, r2), nil
}

func (t *Type[T]) adjacent(r1, r2 Range[T]) bool {
	if r1.empty || r2.empty {
		return false
	}
	return t.touches(r1.upper, r2.lower) || t.touches(r2.upper, r1.lower)
}

// touches reports whether an upper and a lower bound sit on the same finite
// value with exactly one of them inclusive.
func (t *Type[T]) touches(upper, lower Bound[T]) bool {
	if upper.Infinite || lower.Infinite {
		return false
	}
	if t.st.Compare(upper.Value, lower.Value) != 0 {
		return false
	}
	return upper.Inclusive != lower.Inclusive
}

// Union returns the range covering both operands. The operands must overlap or
// be adjacent unless one of them is empty.
func (t *Type[T]) Union(r1, r2 Range[T]) (Range[T], error) {
	if err := t.check(r1, r2); err != nil {
		return Range[T]{}, err
	}
	if r1.empty {
		return r2, nil
	}
	if r2.empty {
		return r1, nil
	}
	if !t.overlaps(r1, r2) && !t.adjacent(r1, r2) {
		return Range[T]{}, fmt.Errorf("%w: union of %s and %s would not be contiguous", ErrUndefined, r1, r2)
	}
	return t.Make(t.minLower(r1.lower, r2.lower), t.maxUpper(r1.upper, r2.upper))
}

// Intersect returns the points shared by both operands.
func (t *Type[T]) Intersect(r1, r2 Range[T]) (Range[T], error) {
	if err := t.check(r1, r2); err != nil {
		return Range[T]{}, err
	}
	if !t.overlaps(r1, r2) {
		return t.Empty(), nil
	}
	lower := r1.lower
	if t.CompareBounds(r2.lower, lower) > 0 {
		lower = r2.lower
	}
	upper := r1.upper
	if t.CompareBounds(r2.upper, upper) < 0 {
		upper = r2.upper
	}
	return t.Make(lower, upper)
}

// Minus returns the points of r1 that are not in r2. A subtrahend strictly
// inside r1 would leave two pieces and is reported as ErrUndefined.
func (t *Type[T]) Minus(r1, r2 Range[T]) (Range[T], error) {
	if err := t.check(r1, r2); err != nil {
		return Range[T]{}, err
	}
	if r1.empty || r2.empty {
		return r1, nil
	}

	cmpL1L2 := t.CompareBounds(r1.lower, r2.lower)
	cmpL1U2 := t.CompareBounds(r1.lower, r2.upper)
	cmpU1L2 := t.CompareBounds(r1.upper, r2.lower)
	cmpU1U2 := t.CompareBounds(r1.upper, r2.upper)

	if cmpL1L2 < 0 && cmpU1U2 > 0 {
		return Range[T]{}, fmt.Errorf("%w: %s minus %s would not be contiguous", ErrUndefined, r1, r2)
	}
	if cmpL1U2 > 0 || cmpU1L2 < 0 {
		return r1, nil
	}
	if cmpL1L2 >= 0 && cmpU1U2 <= 0 {
		return t.Empty(), nil
	}
	if cmpL1L2 <= 0 && cmpU1L2 >= 0 && cmpU1U2 <= 0 {
		upper := r2.lower
		upper.Inclusive = !upper.Inclusive
		upper.Lower = false
		return t.Make(r1.lower, upper)
	}
	// remaining case: r2 covers the left part of r1
	lower := r2.upper
	lower.Inclusive = !lower.Inclusive
	lower.Lower = true
	return t.Make(lower, r1.upper)
}

// Compare orders ranges: the empty range first, then by lower bound and then
// by upper bound.
func (t *Type[T]) Compare(r1, r2 Range[T]) (int, error) {
	if err := t.check(r1, r2); err != nil {
		return 0, err
	}
	return t.compare(r1, r2), nil
}

func (t *Type[T]) compare(r1, r2 Range[T]) int {
	switch {
	case r1.empty && r2.empty:
		return 0
	case r1.empty:
		return -1
	case r2.empty:
		return 1
	}
	if c := t.CompareBounds(r1.lower, r2.lower); c != 0 {
		return c
	}
	return t.CompareBounds(r1.upper, r2.upper)
}

// SuperUnion returns the smallest range containing both operands. Unlike Union
// it is defined for disjoint ranges.
func (t *Type[T]) SuperUnion(r1, r2 Range[T]) (Range[T], error) {
	if err := t.check(r1, r2); err != nil {
		return Range[T]{}, err
	}
	if r1.empty {
		return r2, nil
	}
	if r2.empty {
		return r1, nil
	}
	return t.serialize(t.minLower(r1.lower, r2.lower), t.maxUpper(r1.upper, r2.upper))
}

func (t *Type[T]) minLower(b1, b2 Bound[T]) Bound[T] {
	if t.CompareBounds(b1, b2) <= 0 {
		return b1
	}
	return b2
}

func (t *Type[T]) maxUpper(b1, b2 Bound[T]) Bound[T] {
	if t.CompareBounds(b1, b2) >= 0 {
		return b1
	}
	return b2
}

func (t *Type[T]) checkNonEmpty(r1, r2 Range[T]) error {
	if err := t.check(r1, r2); err != nil {
		return err
	}
	if r1.empty || r2.empty {
		return ErrEmptyRange
	}
	return nil
}
