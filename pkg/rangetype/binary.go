package rangetype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Flag bits of the binary form.
const (
	FlagEmpty          byte = 0x01
	FlagLowerInclusive byte = 0x02
	FlagLowerInfinite  byte = 0x04
	FlagUpperInclusive byte = 0x08
	FlagUpperInfinite  byte = 0x10

	flagReserved byte = 0xe0
)

const (
	// headerLen covers the total length, the type id and the flags byte.
	headerLen = 9

	shortHeaderBit = 0x80
	maxShortLen    = 0x7f
	longAlign      = 4
)

// Flags returns the flags byte describing r.
func (r Range[T]) Flags() byte {
	if r.empty {
		return FlagEmpty
	}
	var f byte
	if r.lower.Infinite {
		f |= FlagLowerInfinite
	} else if r.lower.Inclusive {
		f |= FlagLowerInclusive
	}
	if r.upper.Infinite {
		f |= FlagUpperInfinite
	} else if r.upper.Inclusive {
		f |= FlagUpperInclusive
	}
	return f
}

// Serialize returns the binary form of r:
//
//	u32 total length | u32 type id | u8 flags | [lower] | [upper]
//
// All integers are big-endian. Fixed-width payloads are zero padded to the
// subtype alignment, measured from the start of the value. Variable-width
// payloads carry a one byte header (0x80|len) when shorter than 128 bytes,
// otherwise a 4-byte aligned u32 length.
func (t *Type[T]) Serialize(r Range[T]) ([]byte, error) {
	return t.AppendBinary(nil, r)
}

// AppendBinary appends the binary form of r to dst.
func (t *Type[T]) AppendBinary(dst []byte, r Range[T]) ([]byte, error) {
	if err := t.check(r); err != nil {
		return dst, err
	}
	start := len(dst)
	dst = binary.BigEndian.AppendUint32(dst, 0)
	dst = binary.BigEndian.AppendUint32(dst, uint32(r.typ))
	dst = append(dst, r.Flags())

	var err error
	if !r.empty && !r.lower.Infinite {
		if dst, err = t.appendValue(dst, start, r.lower.Value); err != nil {
			return dst[:start], err
		}
	}
	if !r.empty && !r.upper.Infinite {
		if dst, err = t.appendValue(dst, start, r.upper.Value); err != nil {
			return dst[:start], err
		}
	}
	n := len(dst) - start
	if n > math.MaxInt32 {
		return dst[:start], fmt.Errorf("%w: encoded range too large (%d bytes)", ErrOutOfRange, n)
	}
	binary.BigEndian.PutUint32(dst[start:], uint32(n))
	return dst, nil
}

func (t *Type[T]) appendValue(dst []byte, start int, v T) ([]byte, error) {
	width := t.st.Len()
	if width >= 0 {
		dst = pad(dst, start, t.st.Align())
		before := len(dst)
		dst = t.st.AppendBinary(dst, v)
		if got := len(dst) - before; got != width {
			return dst, fmt.Errorf("%w: %s encoded %d bytes, want %d", ErrMalformed, t.st.Name(), got, width)
		}
		return dst, nil
	}

	payload := t.st.AppendBinary(nil, v)
	if len(payload) <= maxShortLen {
		dst = append(dst, shortHeaderBit|byte(len(payload)))
		return append(dst, payload...), nil
	}
	if len(payload) > math.MaxInt32 {
		return dst, fmt.Errorf("%w: %s value too large (%d bytes)", ErrOutOfRange, t.st.Name(), len(payload))
	}
	dst = pad(dst, start, longAlign)
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...), nil
}

func pad(dst []byte, start, align int) []byte {
	if align <= 1 {
		return dst
	}
	for (len(dst)-start)%align != 0 {
		dst = append(dst, 0)
	}
	return dst
}

func alignUp(off, align int) int {
	if align <= 1 {
		return off
	}
	if rem := off % align; rem != 0 {
		return off + align - rem
	}
	return off
}

// PeekTypeID returns the type id of a binary range without decoding it.
func PeekTypeID(src []byte) (TypeID, error) {
	if len(src) < headerLen {
		return 0, fmt.Errorf("%w: binary range shorter than header (%d bytes)", ErrMalformed, len(src))
	}
	return TypeID(binary.BigEndian.Uint32(src[4:])), nil
}

// Deserialize decodes a binary range. src must hold exactly one value.
func (t *Type[T]) Deserialize(src []byte) (Range[T], error) {
	r, n, err := t.Decode(src)
	if err != nil {
		return Range[T]{}, err
	}
	if n != len(src) {
		return Range[T]{}, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(src)-n)
	}
	return r, nil
}

// Decode decodes the binary range at the start of src and returns it together
// with the number of bytes it occupied.
func (t *Type[T]) Decode(src []byte) (Range[T], int, error) {
	id, err := PeekTypeID(src)
	if err != nil {
		return Range[T]{}, 0, err
	}
	total := int(binary.BigEndian.Uint32(src))
	if total < headerLen || total > len(src) {
		return Range[T]{}, 0, fmt.Errorf("%w: binary range length %d out of bounds (have %d bytes)", ErrMalformed, total, len(src))
	}
	if id != t.st.TypeID() {
		return Range[T]{}, 0, fmt.Errorf("%w: binary range has type %d, want %d", ErrTypeMismatch, id, t.st.TypeID())
	}
	buf := src[:total]
	flags := buf[8]

	switch {
	case flags&flagReserved != 0:
		return Range[T]{}, 0, fmt.Errorf("%w: reserved flag bits set (0x%02x)", ErrMalformed, flags)
	case flags&FlagEmpty != 0:
		if flags != FlagEmpty || total != headerLen {
			return Range[T]{}, 0, fmt.Errorf("%w: empty range with flags 0x%02x and length %d", ErrMalformed, flags, total)
		}
		return t.Empty(), total, nil
	case flags&FlagLowerInfinite != 0 && flags&FlagLowerInclusive != 0,
		flags&FlagUpperInfinite != 0 && flags&FlagUpperInclusive != 0:
		return Range[T]{}, 0, fmt.Errorf("%w: infinite bound marked inclusive (0x%02x)", ErrMalformed, flags)
	}

	off := headerLen
	lower := NegInf[T]()
	if flags&FlagLowerInfinite == 0 {
		v, next, err := t.decodeValue(buf, off)
		if err != nil {
			return Range[T]{}, 0, fmt.Errorf("lower bound: %w", err)
		}
		lower, off = LowerBound(v, flags&FlagLowerInclusive != 0), next
	}
	upper := PosInf[T]()
	if flags&FlagUpperInfinite == 0 {
		v, next, err := t.decodeValue(buf, off)
		if err != nil {
			return Range[T]{}, 0, fmt.Errorf("upper bound: %w", err)
		}
		upper, off = UpperBound(v, flags&FlagUpperInclusive != 0), next
	}
	if off != total {
		return Range[T]{}, 0, fmt.Errorf("%w: %d unused bytes inside binary range", ErrMalformed, total-off)
	}

	r, err := t.Make(lower, upper)
	if err != nil {
		return Range[T]{}, 0, err
	}
	return r, total, nil
}

func (t *Type[T]) decodeValue(buf []byte, off int) (T, int, error) {
	var zero T
	width := t.st.Len()
	if width >= 0 {
		off = alignUp(off, t.st.Align())
		if off+width > len(buf) {
			return zero, 0, fmt.Errorf("%w: truncated %s payload", ErrMalformed, t.st.Name())
		}
		v, err := t.st.DecodeBinary(buf[off : off+width])
		if err != nil {
			return zero, 0, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return v, off + width, nil
	}

	if off >= len(buf) {
		return zero, 0, fmt.Errorf("%w: missing %s length header", ErrMalformed, t.st.Name())
	}
	var n int
	if buf[off]&shortHeaderBit != 0 {
		n = int(buf[off] &^ shortHeaderBit)
		off++
	} else {
		off = alignUp(off, longAlign)
		if off+4 > len(buf) {
			return zero, 0, fmt.Errorf("%w: truncated %s length header", ErrMalformed, t.st.Name())
		}
		n = int(binary.BigEndian.Uint32(buf[off:]))
		off += 4
	}
	if n < 0 || off+n > len(buf) {
		return zero, 0, fmt.Errorf("%w: truncated %s payload", ErrMalformed, t.st.Name())
	}
	v, err := t.st.DecodeBinary(buf[off : off+n])
	if err != nil {
		return zero, 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return v, off + n, nil
}
