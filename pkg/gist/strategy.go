package gist

import (
	"fmt"
	"strings"
)

// Strategy numbers the predicates an index search can answer.
type Strategy uint16

const (
	Equal Strategy = iota + 1
	NotEqual
	Overlaps
	ContainsElem
	// ElemContainedBy turns the element v into [v,v] and matches keys
	// contained by it, so only empty keys and the key [v,v] match. It is not
	// the "r contains v" of rangetype.Type.ElemContainedBy; use ContainsElem
	// for that.
	ElemContainedBy
	Contains
	ContainedBy
	Before
	After
	OverLeft
	OverRight
	Adjacent
)

var strategyNames = map[Strategy]string{
	Equal:           "eq",
	NotEqual:        "ne",
	Overlaps:        "overlaps",
	ContainsElem:    "contains-elem",
	ElemContainedBy: "elem-contained-by",
	Contains:        "contains",
	ContainedBy:     "contained-by",
	Before:          "before",
	After:           "after",
	OverLeft:        "overleft",
	OverRight:       "overright",
	Adjacent:        "adjacent",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("strategy(%d)", uint16(s))
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// IsElement reports whether the query of s is a single element rather than a
// range.
func (s Strategy) IsElement() bool {
	return s == ContainsElem || s == ElemContainedBy
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Strategies returns all strategies in numeric order.
func Strategies() []Strategy {
	ss := make([]Strategy, 0, len(strategyNames))
	for s := Equal; s <= Adjacent; s++ {
		ss = append(ss, s)
	}
	return ss
}
