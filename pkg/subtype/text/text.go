// Package text is the string range subtype. Values compare bytewise and have
// no float approximation, so text ranges cannot be indexed with a penalty
// based tree.
package text

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/henderiw/rangetype/pkg/rangetype"
)

const (
	// TypeID of textrange.
	TypeID rangetype.TypeID = 3930
	Name                    = "textrange"
)

var errInvalidUTF8 = errors.New("invalid UTF-8 in text payload")

type subtype struct {
	id   rangetype.TypeID
	name string
}

func New() rangetype.Subtype[string] { return subtype{id: TypeID, name: Name} }

// NewWithID returns the subtype registered under another id and name, for
// range types that share an element type.
func NewWithID(id rangetype.TypeID, name string) rangetype.Subtype[string] {
	return subtype{id: id, name: name}
}

func NewType() *rangetype.Type[string] { return rangetype.NewType(New()) }

func (s subtype) TypeID() rangetype.TypeID { return s.id }
func (s subtype) Name() string             { return s.name }
func (subtype) Len() int                   { return -1 }
func (subtype) Align() int                 { return 4 }

func (subtype) Compare(a, b string) int { return strings.Compare(a, b) }

func (subtype) Parse(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("invalid UTF-8 in text value %q", s)
	}
	return s, nil
}

func (subtype) Format(v string) string { return v }

func (subtype) AppendBinary(dst []byte, v string) []byte { return append(dst, v...) }

func (subtype) DecodeBinary(src []byte) (string, error) {
	if !utf8.Valid(src) {
		return "", errInvalidUTF8
	}
	return string(src), nil
}
