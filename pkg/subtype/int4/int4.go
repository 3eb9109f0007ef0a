// Package int4 is the 32-bit integer range subtype.
package int4

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/henderiw/rangetype/pkg/rangetype"
)

const (
	// TypeID of int4range.
	TypeID rangetype.TypeID = 3904
	Name                    = "int4range"
)

type subtype struct {
	id   rangetype.TypeID
	name string
}

// New returns the int4 subtype.
func New() rangetype.Subtype[int32] { return subtype{id: TypeID, name: Name} }

// NewWithID returns the subtype registered under another id and name, for
// range types that share an element type.
func NewWithID(id rangetype.TypeID, name string) rangetype.Subtype[int32] {
	return subtype{id: id, name: name}
}

// NewType returns the int4range type.
func NewType() *rangetype.Type[int32] { return rangetype.NewType(New()) }

func (s subtype) TypeID() rangetype.TypeID { return s.id }
func (s subtype) Name() string             { return s.name }
func (subtype) Len() int                   { return 4 }
func (subtype) Align() int                 { return 4 }

func (subtype) Compare(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (subtype) Parse(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid int4 %q: %w", s, err)
	}
	return int32(v), nil
}

func (subtype) Format(v int32) string { return strconv.FormatInt(int64(v), 10) }

func (subtype) AppendBinary(dst []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(v))
}

func (subtype) DecodeBinary(src []byte) (int32, error) {
	if len(src) != 4 {
		return 0, fmt.Errorf("int4 payload must be 4 bytes, got %d", len(src))
	}
	return int32(binary.BigEndian.Uint32(src)), nil
}

func (subtype) Float(v int32) float64 { return float64(v) }

func (subtype) Canonicalize(lower, upper rangetype.Bound[int32]) (rangetype.Bound[int32], rangetype.Bound[int32], error) {
	return rangetype.CanonicalizeDiscrete(lower, upper, next)
}

func next(v int32) (int32, bool) {
	if v == math.MaxInt32 {
		return v, false
	}
	return v + 1, true
}
