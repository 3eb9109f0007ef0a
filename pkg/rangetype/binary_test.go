package rangetype_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henderiw/rangetype/pkg/rangetype"
	"github.com/henderiw/rangetype/pkg/subtype/float8"
	"github.com/henderiw/rangetype/pkg/subtype/int4"
	"github.com/henderiw/rangetype/pkg/subtype/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeLayout(t *testing.T) {
	i4 := int4.NewType()
	tx := text.NewType()
	cases := map[string]struct {
		encode   func() ([]byte, error)
		expected []byte
	}{
		"Int4HalfOpen": {
			encode: func() ([]byte, error) { return i4.Serialize(mustParse(t, i4, "[1,5)")) },
			expected: []byte{
				0x00, 0x00, 0x00, 0x14, // length
				0x00, 0x00, 0x0f, 0x40, // type id
				0x02,             // flags
				0x00, 0x00, 0x00, // padding
				0x00, 0x00, 0x00, 0x01,
				0x00, 0x00, 0x00, 0x05,
			},
		},
		"Int4Empty": {
			encode:   func() ([]byte, error) { return i4.Serialize(i4.Empty()) },
			expected: []byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x0f, 0x40, 0x01},
		},
		"Int4UpperInfinite": {
			encode: func() ([]byte, error) { return i4.Serialize(mustParse(t, i4, "[7,INF)")) },
			expected: []byte{
				0x00, 0x00, 0x00, 0x10,
				0x00, 0x00, 0x0f, 0x40,
				0x12,
				0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x07,
			},
		},
		"Int4Unbounded": {
			encode:   func() ([]byte, error) { return i4.Serialize(i4.Unbounded()) },
			expected: []byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x0f, 0x40, 0x14},
		},
		"TextShortHeaders": {
			encode: func() ([]byte, error) { return tx.Serialize(mustParse(t, tx, "[a,b]")) },
			expected: []byte{
				0x00, 0x00, 0x00, 0x0d,
				0x00, 0x00, 0x0f, 0x5a,
				0x0a,
				0x81, 'a',
				0x81, 'b',
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.encode()
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	i4 := int4.NewType()
	f8 := float8.NewType()
	tx := text.NewType()

	for _, s := range []string{"-", "[1,5)", "(-INF,3)", "[0,INF)", "(-INF,INF)", "[-2147483648,2147483647]"} {
		r := mustParse(t, i4, s)
		b, err := i4.Serialize(r)
		require.NoError(t, err)
		got, err := i4.Deserialize(b)
		require.NoError(t, err)
		if diff := cmp.Diff(r, got, cmp.AllowUnexported(rangetype.Range[int32]{})); diff != "" {
			t.Errorf("%s: -want, +got:\n%s", s, diff)
		}
	}
	for _, s := range []string{"-", "[1.5,2.5)", "(0,1]", "(-INF,0]", "[1,1]"} {
		r := mustParse(t, f8, s)
		b, err := f8.Serialize(r)
		require.NoError(t, err)
		got, err := f8.Deserialize(b)
		require.NoError(t, err)
		if diff := cmp.Diff(r, got, cmp.AllowUnexported(rangetype.Range[float64]{})); diff != "" {
			t.Errorf("%s: -want, +got:\n%s", s, diff)
		}
	}

	long := strings.Repeat("x", 200)
	for _, s := range []string{"-", "[a,b)", `["",z]`, "[" + long + ",y)", "(a," + long + "]", "(-INF," + long + ")"} {
		r := mustParse(t, tx, s)
		b, err := tx.Serialize(r)
		require.NoError(t, err)
		got, err := tx.Deserialize(b)
		require.NoError(t, err)
		if diff := cmp.Diff(r, got, cmp.AllowUnexported(rangetype.Range[string]{})); diff != "" {
			t.Errorf("%s: -want, +got:\n%s", s, diff)
		}
	}
}

func TestDecodeStream(t *testing.T) {
	i4 := int4.NewType()
	var buf []byte
	var err error
	inputs := []string{"[1,5)", "-", "(-INF,9)"}
	for _, s := range inputs {
		buf, err = i4.AppendBinary(buf, mustParse(t, i4, s))
		require.NoError(t, err)
	}
	for _, s := range inputs {
		r, n, err := i4.Decode(buf)
		require.NoError(t, err)
		assert.Equal(t, s, i4.Format(r))
		buf = buf[n:]
	}
	assert.Empty(t, buf)
}

func TestDeserializeErrors(t *testing.T) {
	i4 := int4.NewType()
	valid, err := i4.Serialize(mustParse(t, i4, "[1,5)"))
	require.NoError(t, err)

	mutate := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return f(b)
	}
	cases := map[string]struct {
		input       []byte
		expectedErr error
	}{
		"Short": {
			input:       valid[:5],
			expectedErr: rangetype.ErrMalformed,
		},
		"Truncated": {
			input:       valid[:len(valid)-1],
			expectedErr: rangetype.ErrMalformed,
		},
		"TrailingBytes": {
			input:       append(append([]byte(nil), valid...), 0),
			expectedErr: rangetype.ErrMalformed,
		},
		"ReservedFlags": {
			input:       mutate(func(b []byte) []byte { b[8] |= 0x80; return b }),
			expectedErr: rangetype.ErrMalformed,
		},
		"InclusiveInfinite": {
			input:       []byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x0f, 0x40, 0x06 | 0x10},
			expectedErr: rangetype.ErrMalformed,
		},
		"EmptyWithPayload": {
			input:       mutate(func(b []byte) []byte { b[8] = 0x01; return b }),
			expectedErr: rangetype.ErrMalformed,
		},
		"EmptyWithOtherFlags": {
			input:       []byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x0f, 0x40, 0x03},
			expectedErr: rangetype.ErrMalformed,
		},
		"LengthTooSmall": {
			input:       mutate(func(b []byte) []byte { b[3] = 0x05; return b }),
			expectedErr: rangetype.ErrMalformed,
		},
		"UnusedBytes": {
			input:       mutate(func(b []byte) []byte { b[8] = 0x12; return b }),
			expectedErr: rangetype.ErrMalformed,
		},
		"Inverted": {
			input:       mutate(func(b []byte) []byte { b[15] = 0x09; return b }),
			expectedErr: rangetype.ErrInvalidRange,
		},
		"WrongType": {
			input:       mutate(func(b []byte) []byte { b[7] = 0x42; return b }),
			expectedErr: rangetype.ErrTypeMismatch,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := i4.Deserialize(tc.input)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestDeserializeCanonicalizes(t *testing.T) {
	i4 := int4.NewType()
	valid, err := i4.Serialize(mustParse(t, i4, "[2,6)"))
	require.NoError(t, err)

	cases := map[string]struct {
		flags    byte
		expected string
	}{
		"LowerExclusiveUpperInclusive": {flags: 0x08, expected: "[3,7)"},
		"BothInclusive":                {flags: 0x0a, expected: "[2,7)"},
		"BothExclusive":                {flags: 0x00, expected: "[3,6)"},
		"Canonical":                    {flags: 0x02, expected: "[2,6)"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b := append([]byte(nil), valid...)
			b[8] = tc.flags
			r, err := i4.Deserialize(b)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, i4.Format(r))

			eq, err := i4.Equal(r, mustParse(t, i4, tc.expected))
			require.NoError(t, err)
			assert.True(t, eq)
		})
	}
}

func TestPeekTypeID(t *testing.T) {
	tx := text.NewType()
	b, err := tx.Serialize(mustParse(t, tx, "[a,b)"))
	require.NoError(t, err)
	id, err := rangetype.PeekTypeID(b)
	assert.NoError(t, err)
	assert.Equal(t, text.TypeID, id)

	_, err = rangetype.PeekTypeID(b[:3])
	assert.ErrorIs(t, err, rangetype.ErrMalformed)
}

func TestSerializeTypeMismatch(t *testing.T) {
	i4 := int4.NewType()
	f8 := float8.NewType()
	_, err := f8.Serialize(rangetype.Range[float64]{})
	assert.ErrorIs(t, err, rangetype.ErrTypeMismatch)
	_, err = i4.Deserialize(mustSerialize(t, f8, mustParse(t, f8, "[1,2)")))
	assert.ErrorIs(t, err, rangetype.ErrTypeMismatch)
}

func mustParse[T any](t *testing.T, typ *rangetype.Type[T], s string) rangetype.Range[T] {
	t.Helper()
	r, err := typ.Parse(s)
	require.NoError(t, err, s)
	return r
}

func mustSerialize[T any](t *testing.T, typ *rangetype.Type[T], r rangetype.Range[T]) []byte {
	t.Helper()
	b, err := typ.Serialize(r)
	require.NoError(t, err)
	return b
}
