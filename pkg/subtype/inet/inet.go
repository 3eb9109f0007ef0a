// Package inet is the IP address range subtype. Addresses are discrete, so
// ranges are kept in [from, to) form, and convert to and from netipx.IPRange.
package inet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"net/netip"

	"github.com/henderiw/rangetype/pkg/rangetype"
	"go4.org/netipx"
)

const (
	// TypeID of inetrange.
	TypeID rangetype.TypeID = 3932
	Name                    = "inetrange"
)

var (
	errZone          = errors.New("ip address zones are not supported")
	errMixedFamilies = errors.New("range spans ipv4 and ipv6")
)

type subtype struct {
	id   rangetype.TypeID
	name string
}

func New() rangetype.Subtype[netip.Addr] { return subtype{id: TypeID, name: Name} }

// NewWithID returns the subtype registered under another id and name, for
// range types that share an element type.
func NewWithID(id rangetype.TypeID, name string) rangetype.Subtype[netip.Addr] {
	return subtype{id: id, name: name}
}

func NewType() *rangetype.Type[netip.Addr] { return rangetype.NewType(New()) }

func (s subtype) TypeID() rangetype.TypeID { return s.id }
func (s subtype) Name() string             { return s.name }
func (subtype) Len() int                   { return -1 }
func (subtype) Align() int                 { return 4 }

// Compare orders all ipv4 addresses before ipv6 addresses.
func (subtype) Compare(a, b netip.Addr) int { return a.Compare(b) }

func (subtype) Parse(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("ip address %s is invalid: %w", s, err)
	}
	if addr.Zone() != "" {
		return netip.Addr{}, fmt.Errorf("ip address %s: %w", s, errZone)
	}
	return addr, nil
}

func (subtype) Format(v netip.Addr) string { return v.String() }

func (subtype) AppendBinary(dst []byte, v netip.Addr) []byte {
	return append(dst, v.AsSlice()...)
}

func (subtype) DecodeBinary(src []byte) (netip.Addr, error) {
	addr, ok := netip.AddrFromSlice(src)
	if !ok {
		return netip.Addr{}, fmt.Errorf("ip address payload must be 4 or 16 bytes, got %d", len(src))
	}
	return addr, nil
}

// Float maps ipv4 addresses onto [0, 2^32) and ipv6 addresses above that, so
// the approximation keeps the address order.
func (subtype) Float(v netip.Addr) float64 {
	if v.Is4() {
		b := v.As4()
		return float64(binary.BigEndian.Uint32(b[:]))
	}
	b := v.As16()
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])
	return math.Exp2(32) + float64(hi)*math.Exp2(64) + float64(lo)
}

func (subtype) Canonicalize(lower, upper rangetype.Bound[netip.Addr]) (rangetype.Bound[netip.Addr], rangetype.Bound[netip.Addr], error) {
	return rangetype.CanonicalizeDiscrete(lower, upper, func(v netip.Addr) (netip.Addr, bool) {
		next := netipx.AddrNext(v)
		return next, next.IsValid()
	})
}

// FromIPRange returns the range holding every address of ipr.
func FromIPRange(t *rangetype.Type[netip.Addr], ipr netipx.IPRange) (rangetype.Range[netip.Addr], error) {
	if !ipr.IsValid() {
		return rangetype.Range[netip.Addr]{}, fmt.Errorf("%w: invalid ip range %s", rangetype.ErrInvalidRange, ipr)
	}
	return t.New(ipr.From(), ipr.To(), "[]")
}

// FromPrefix returns the range holding every address of p.
func FromPrefix(t *rangetype.Type[netip.Addr], p netip.Prefix) (rangetype.Range[netip.Addr], error) {
	return FromIPRange(t, netipx.RangeOfPrefix(p.Masked()))
}

// ToIPRange converts a bounded range to the inclusive netipx form.
func ToIPRange(r rangetype.Range[netip.Addr]) (netipx.IPRange, error) {
	if r.IsEmpty() {
		return netipx.IPRange{}, rangetype.ErrEmptyRange
	}
	from, err := r.Lower()
	if err != nil {
		return netipx.IPRange{}, err
	}
	to, err := r.Upper()
	if err != nil {
		return netipx.IPRange{}, err
	}
	if !r.LowerInc() {
		if from = netipx.AddrNext(from); !from.IsValid() {
			return netipx.IPRange{}, rangetype.ErrEmptyRange
		}
	}
	if !r.UpperInc() {
		if to = netipx.AddrPrior(to); !to.IsValid() {
			return netipx.IPRange{}, rangetype.ErrEmptyRange
		}
	}
	if from.BitLen() != to.BitLen() {
		return netipx.IPRange{}, fmt.Errorf("%s: %w", r, errMixedFamilies)
	}
	ipr := netipx.IPRangeFrom(from, to)
	if !ipr.IsValid() {
		return netipx.IPRange{}, rangetype.ErrEmptyRange
	}
	return ipr, nil
}

// Prefixes returns the minimal set of CIDR prefixes covering r.
func Prefixes(r rangetype.Range[netip.Addr]) ([]netip.Prefix, error) {
	ipr, err := ToIPRange(r)
	if err != nil {
		return nil, err
	}
	return ipr.Prefixes(), nil
}

// Set folds ranges into a netipx.IPSet, merging overlaps and adjacency.
func Set(rs ...rangetype.Range[netip.Addr]) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, r := range rs {
		if r.IsEmpty() {
			continue
		}
		ipr, err := ToIPRange(r)
		if err != nil {
			return nil, err
		}
		b.AddRange(ipr)
	}
	return b.IPSet()
}
