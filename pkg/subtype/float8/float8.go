// Package float8 is the double precision range subtype. It is continuous and
// has no canonical form.
package float8

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/henderiw/rangetype/pkg/rangetype"
)

const (
	// TypeID of float8range.
	TypeID rangetype.TypeID = 3906
	Name                    = "float8range"
)

var errNaN = errors.New("NaN is not allowed in a range")

type subtype struct {
	id   rangetype.TypeID
	name string
}

func New() rangetype.Subtype[float64] { return subtype{id: TypeID, name: Name} }

// NewWithID returns the subtype registered under another id and name, for
// range types that share an element type.
func NewWithID(id rangetype.TypeID, name string) rangetype.Subtype[float64] {
	return subtype{id: id, name: name}
}

func NewType() *rangetype.Type[float64] { return rangetype.NewType(New()) }

func (s subtype) TypeID() rangetype.TypeID { return s.id }
func (s subtype) Name() string             { return s.name }
func (subtype) Len() int                   { return 8 }
func (subtype) Align() int                 { return 8 }

// Compare orders NaN after every other value so the order stays total for
// values that bypass Parse.
func (subtype) Compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return 1
	}
	return -1
}

func (subtype) Parse(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float8 %q: %w", s, err)
	}
	if math.IsNaN(v) {
		return 0, errNaN
	}
	return v, nil
}

func (subtype) Format(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func (subtype) AppendBinary(dst []byte, v float64) []byte {
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(v))
}

func (subtype) DecodeBinary(src []byte) (float64, error) {
	if len(src) != 8 {
		return 0, fmt.Errorf("float8 payload must be 8 bytes, got %d", len(src))
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(src))
	if math.IsNaN(v) {
		return 0, errNaN
	}
	return v, nil
}

func (subtype) Float(v float64) float64 { return v }
