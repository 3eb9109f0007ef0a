package rangetype

import "fmt"

// Bound is one endpoint of a range. Value is meaningless when Infinite is set,
// and an infinite bound is never inclusive.
type Bound[T any] struct {
	Value     T
	Inclusive bool
	Infinite  bool
	Lower     bool
}

// LowerBound returns a finite lower bound.
func LowerBound[T any](v T, inclusive bool) Bound[T] {
	return Bound[T]{Value: v, Inclusive: inclusive, Lower: true}
}

// UpperBound returns a finite upper bound.
func UpperBound[T any](v T, inclusive bool) Bound[T] {
	return Bound[T]{Value: v, Inclusive: inclusive}
}

// NegInf returns the unbounded lower bound.
func NegInf[T any]() Bound[T] {
	return Bound[T]{Infinite: true, Lower: true}
}

// PosInf returns the unbounded upper bound.
func PosInf[T any]() Bound[T] {
	return Bound[T]{Infinite: true}
}

func (b Bound[T]) String() string {
	switch {
	case b.Infinite && b.Lower:
		return "-INF"
	case b.Infinite:
		return "INF"
	case b.Lower && b.Inclusive:
		return fmt.Sprintf("[%v", b.Value)
	case b.Lower:
		return fmt.Sprintf("(%v", b.Value)
	case b.Inclusive:
		return fmt.Sprintf("%v]", b.Value)
	default:
		return fmt.Sprintf("%v)", b.Value)
	}
}

// CompareBounds returns -1, 0 or 1 depending on whether b1 sorts before, at
// the same position as, or after b2.
//
// Infinities sort by side regardless of value. At equal finite values an
// inclusive bound sits exactly on the point, an exclusive lower bound sits
// just after it and an exclusive upper bound just before it.
func (t *Type[T]) CompareBounds(b1, b2 Bound[T]) int {
	if b1.Infinite && b2.Infinite {
		if b1.Lower == b2.Lower {
			return 0
		}
		if b1.Lower {
			return -1
		}
		return 1
	}
	if b1.Infinite {
		if b1.Lower {
			return -1
		}
		return 1
	}
	if b2.Infinite {
		if b2.Lower {
			return 1
		}
		return -1
	}

	if c := sign(t.st.Compare(b1.Value, b2.Value)); c != 0 {
		return c
	}

	switch {
	case b1.Inclusive && b2.Inclusive:
		return 0
	case !b1.Inclusive && !b2.Inclusive:
		if b1.Lower == b2.Lower {
			return 0
		}
		if b1.Lower {
			return 1
		}
		return -1
	case !b1.Inclusive:
		if b1.Lower {
			return 1
		}
		return -1
	default:
		if b2.Lower {
			return -1
		}
		return 1
	}
}

// compareBoundValues compares only the positions of the bound values, ignoring
// inclusivity. Used to validate a lower/upper pair.
func (t *Type[T]) compareBoundValues(b1, b2 Bound[T]) int {
	if b1.Infinite && b2.Infinite {
		if b1.Lower == b2.Lower {
			return 0
		}
		if b1.Lower {
			return -1
		}
		return 1
	}
	if b1.Infinite {
		if b1.Lower {
			return -1
		}
		return 1
	}
	if b2.Infinite {
		if b2.Lower {
			return 1
		}
		return -1
	}
	return sign(t.st.Compare(b1.Value, b2.Value))
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}
