// Package int8 is the 64-bit integer range subtype.
package int8

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/henderiw/rangetype/pkg/rangetype"
)

const (
	// TypeID of int8range.
	TypeID rangetype.TypeID = 3926
	Name                    = "int8range"
)

type subtype struct {
	id   rangetype.TypeID
	name string
}

func New() rangetype.Subtype[int64] { return subtype{id: TypeID, name: Name} }

// NewWithID returns the subtype registered under another id and name, for
// range types that share an element type.
func NewWithID(id rangetype.TypeID, name string) rangetype.Subtype[int64] {
	return subtype{id: id, name: name}
}

func NewType() *rangetype.Type[int64] { return rangetype.NewType(New()) }

func (s subtype) TypeID() rangetype.TypeID { return s.id }
func (s subtype) Name() string             { return s.name }
func (subtype) Len() int                   { return 8 }
func (subtype) Align() int                 { return 8 }

func (subtype) Compare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (subtype) Parse(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int8 %q: %w", s, err)
	}
	return v, nil
}

func (subtype) Format(v int64) string { return strconv.FormatInt(v, 10) }

func (subtype) AppendBinary(dst []byte, v int64) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(v))
}

func (subtype) DecodeBinary(src []byte) (int64, error) {
	if len(src) != 8 {
		return 0, fmt.Errorf("int8 payload must be 8 bytes, got %d", len(src))
	}
	return int64(binary.BigEndian.Uint64(src)), nil
}

func (subtype) Float(v int64) float64 { return float64(v) }

func (subtype) Canonicalize(lower, upper rangetype.Bound[int64]) (rangetype.Bound[int64], rangetype.Bound[int64], error) {
	return rangetype.CanonicalizeDiscrete(lower, upper, func(v int64) (int64, bool) {
		if v == math.MaxInt64 {
			return v, false
		}
		return v + 1, true
	})
}
