package rangetype

// TypeID identifies a range type. Every Range carries the TypeID of the type
// that built it so binary operations can refuse operands of different types.
type TypeID uint32

// Descriptor is the untyped part of a subtype. It is what a catalog stores and
// what the binary codec needs to lay out a payload.
type Descriptor interface {
	TypeID() TypeID
	Name() string
	// Len is the fixed byte width of an encoded value, or -1 when values are
	// variable-length.
	Len() int
	// Align is the alignment of a fixed-width payload relative to the start
	// of the encoded range.
	Align() int
}

// Subtype is the capability set of the element type of a range. Compare must
// be a total order.
type Subtype[T any] interface {
	Descriptor
	Compare(a, b T) int
	Parse(s string) (T, error)
	Format(v T) string
	AppendBinary(dst []byte, v T) []byte
	DecodeBinary(src []byte) (T, error)
}

// Canonicalizer is implemented by discrete subtypes. It receives the bounds of
// a valid, non-empty range and returns the canonical bounds. Implementations
// must not build ranges themselves.
type Canonicalizer[T any] interface {
	Canonicalize(lower, upper Bound[T]) (Bound[T], Bound[T], error)
}

// Floater is implemented by subtypes that can approximate a value as a
// float64. The index penalty metric needs it.
type Floater[T any] interface {
	Float(v T) float64
}
