// Package gist holds the callbacks a height-balanced search tree needs to
// index ranges: bounding union, insert penalty, node split and search
// consistency. All of them are pure functions of their arguments.
package gist

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/henderiw/rangetype/pkg/rangetype"
)

var (
	ErrUnknownStrategy = errors.New("unknown index strategy")
	ErrTooFewEntries   = errors.New("split needs at least two entries")
)

// Adapter binds the index callbacks to one range type.
type Adapter[T any] struct {
	t *rangetype.Type[T]
}

func New[T any](t *rangetype.Type[T]) *Adapter[T] {
	return &Adapter[T]{t: t}
}

func (a *Adapter[T]) Type() *rangetype.Type[T] { return a.t }

// Union returns the bounding range of keys. It never fails for keys of the
// adapter's type, whether or not they overlap.
func (a *Adapter[T]) Union(keys ...rangetype.Range[T]) (rangetype.Range[T], error) {
	result := a.t.Empty()
	for _, k := range keys {
		var err error
		if result, err = a.t.SuperUnion(result, k); err != nil {
			return rangetype.Range[T]{}, err
		}
	}
	return result, nil
}

// Penalty estimates the cost of adding incoming below a subtree bounded by
// existing, as the growth of the bounding range length.
func (a *Adapter[T]) Penalty(existing, incoming rangetype.Range[T]) (float64, error) {
	if !a.t.HasFloat() {
		return 0, fmt.Errorf("%w: %s has no float approximation for penalty", rangetype.ErrMissingCapability, a.t.Name())
	}
	union, err := a.t.SuperUnion(existing, incoming)
	if err != nil {
		return 0, err
	}
	before, err := a.length(existing)
	if err != nil {
		return 0, err
	}
	after, err := a.length(union)
	if err != nil {
		return 0, err
	}
	if math.IsInf(before, 1) {
		// an unbounded subtree cannot grow any further
		return 0, nil
	}
	if p := after - before; p > 0 {
		return p, nil
	}
	return 0, nil
}

func (a *Adapter[T]) length(r rangetype.Range[T]) (float64, error) {
	if r.IsEmpty() {
		return 0, nil
	}
	if r.LowerInf() || r.UpperInf() {
		return math.Inf(1), nil
	}
	lo, err := a.t.Float(r.LowerBound().Value)
	if err != nil {
		return 0, err
	}
	hi, err := a.t.Float(r.UpperBound().Value)
	if err != nil {
		return 0, err
	}
	return hi - lo, nil
}

// Split is the result of PickSplit. Left and Right index into the entries
// passed to PickSplit.
type Split[T any] struct {
	Left     []int
	Right    []int
	LeftKey  rangetype.Range[T]
	RightKey rangetype.Range[T]
}

// PickSplit orders keys with empty ranges first and unbounded ranges last and
// cuts the ordering in half.
func (a *Adapter[T]) PickSplit(keys []rangetype.Range[T]) (*Split[T], error) {
	if len(keys) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewEntries, len(keys))
	}
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	var cmpErr error
	slices.SortStableFunc(order, func(i, j int) int {
		c, err := a.splitCompare(keys[i], keys[j])
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return c
	})
	if cmpErr != nil {
		return nil, cmpErr
	}

	half := len(order) / 2
	split := &Split[T]{
		Left:  order[:half:half],
		Right: order[half:],
	}
	var err error
	if split.LeftKey, err = a.unionOf(keys, split.Left); err != nil {
		return nil, err
	}
	if split.RightKey, err = a.unionOf(keys, split.Right); err != nil {
		return nil, err
	}
	return split, nil
}

func (a *Adapter[T]) unionOf(keys []rangetype.Range[T], idx []int) (rangetype.Range[T], error) {
	sel := make([]rangetype.Range[T], 0, len(idx))
	for _, i := range idx {
		sel = append(sel, keys[i])
	}
	return a.Union(sel...)
}

func unbounded[T any](r rangetype.Range[T]) bool {
	return r.LowerInf() || r.UpperInf()
}

// splitCompare is the range order with unbounded ranges moved after every
// bounded one.
func (a *Adapter[T]) splitCompare(r1, r2 rangetype.Range[T]) (int, error) {
	u1, u2 := unbounded(r1), unbounded(r2)
	switch {
	case u1 && !u2:
		return 1, nil
	case !u1 && u2:
		return -1, nil
	}
	return a.t.Compare(r1, r2)
}

// Same reports whether two keys are equal.
func (a *Adapter[T]) Same(r1, r2 rangetype.Range[T]) (bool, error) {
	return a.t.Equal(r1, r2)
}

// Consistent reports whether key may match query under strategy s. At a leaf
// the answer is exact. For an internal key it is true whenever some range
// bounded by key could match. recheck is always false.
func (a *Adapter[T]) Consistent(s Strategy, key, query rangetype.Range[T], leaf bool) (match, recheck bool, err error) {
	if !s.Valid() {
		return false, false, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint16(s))
	}
	if leaf {
		match, err = a.consistentLeaf(s, key, query)
	} else {
		match, err = a.consistentInternal(s, key, query)
	}
	return match, false, err
}

// ConsistentElement is Consistent for the element strategies. The element is
// turned into the single point range [v,v].
func (a *Adapter[T]) ConsistentElement(s Strategy, key rangetype.Range[T], v T, leaf bool) (match, recheck bool, err error) {
	if !s.IsElement() {
		return false, false, fmt.Errorf("%w: %s does not take an element", ErrUnknownStrategy, s)
	}
	query, err := a.t.Singleton(v)
	if err != nil {
		return false, false, err
	}
	return a.Consistent(s, key, query, leaf)
}

func (a *Adapter[T]) consistentInternal(s Strategy, key, query rangetype.Range[T]) (bool, error) {
	t := a.t
	switch s {
	case NotEqual, ContainedBy, ElemContainedBy:
		return true, nil
	case Equal, Contains, ContainsElem:
		return t.Contains(key, query)
	case Overlaps:
		return t.Overlaps(key, query)
	}

	if key.IsEmpty() || query.IsEmpty() {
		return false, nil
	}
	switch s {
	case Before:
		ok, err := t.OverRight(key, query)
		return !ok, err
	case After:
		ok, err := t.OverLeft(key, query)
		return !ok, err
	case OverLeft:
		ok, err := t.After(key, query)
		return !ok, err
	case OverRight:
		ok, err := t.Before(key, query)
		return !ok, err
	case Adjacent:
		ok, err := t.Adjacent(key, query)
		if err != nil || ok {
			return ok, err
		}
		return t.Overlaps(key, query)
	}
	return false, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint16(s))
}

func (a *Adapter[T]) consistentLeaf(s Strategy, key, query rangetype.Range[T]) (bool, error) {
	t := a.t
	switch s {
	case Equal:
		return t.Equal(key, query)
	case NotEqual:
		return t.NotEqual(key, query)
	case Overlaps:
		return t.Overlaps(key, query)
	case Contains, ContainsElem:
		return t.Contains(key, query)
	case ContainedBy, ElemContainedBy:
		return t.ContainedBy(key, query)
	}

	if key.IsEmpty() || query.IsEmpty() {
		return false, nil
	}
	switch s {
	case Before:
		return t.Before(key, query)
	case After:
		return t.After(key, query)
	case OverLeft:
		return t.OverLeft(key, query)
	case OverRight:
		return t.OverRight(key, query)
	case Adjacent:
		return t.Adjacent(key, query)
	}
	return false, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint16(s))
}
