// Package date is the calendar date range subtype. Values are time.Time at
// midnight UTC; any other time of day is truncated to its date.
package date

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/henderiw/rangetype/pkg/rangetype"
)

const (
	// TypeID of daterange.
	TypeID rangetype.TypeID = 3912
	Name                    = "daterange"

	// Layout is the text form of a date.
	Layout = "2006-01-02"

	secondsPerDay = 24 * 60 * 60
)

// epoch is day zero of the binary form.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type subtype struct {
	id   rangetype.TypeID
	name string
}

func New() rangetype.Subtype[time.Time] { return subtype{id: TypeID, name: Name} }

// NewWithID returns the subtype registered under another id and name, for
// range types that share an element type.
func NewWithID(id rangetype.TypeID, name string) rangetype.Subtype[time.Time] {
	return subtype{id: id, name: name}
}

func NewType() *rangetype.Type[time.Time] { return rangetype.NewType(New()) }

// Day returns the date of t at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days between the binary epoch and t.
func Days(t time.Time) int64 {
	s := Day(t).Unix() - epoch.Unix()
	return s / secondsPerDay
}

func fromDays(n int64) time.Time {
	return epoch.AddDate(0, 0, int(n))
}

func (s subtype) TypeID() rangetype.TypeID { return s.id }
func (s subtype) Name() string             { return s.name }
func (subtype) Len() int                   { return 4 }
func (subtype) Align() int                 { return 4 }

func (subtype) Compare(a, b time.Time) int {
	da, db := Days(a), Days(b)
	switch {
	case da < db:
		return -1
	case da > db:
		return 1
	}
	return 0
}

func (subtype) Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func (subtype) Format(v time.Time) string { return Day(v).Format(Layout) }

func (subtype) AppendBinary(dst []byte, v time.Time) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(int32(Days(v))))
}

func (subtype) DecodeBinary(src []byte) (time.Time, error) {
	if len(src) != 4 {
		return time.Time{}, fmt.Errorf("date payload must be 4 bytes, got %d", len(src))
	}
	return fromDays(int64(int32(binary.BigEndian.Uint32(src)))), nil
}

func (subtype) Float(v time.Time) float64 { return float64(Days(v)) }

func (subtype) Canonicalize(lower, upper rangetype.Bound[time.Time]) (rangetype.Bound[time.Time], rangetype.Bound[time.Time], error) {
	return rangetype.CanonicalizeDiscrete(lower, upper, func(v time.Time) (time.Time, bool) {
		n := Days(v)
		if n >= math.MaxInt32 {
			return v, false
		}
		return fromDays(n + 1), true
	})
}
