package int4

import (
	"math"
	"testing"

	"github.com/henderiw/rangetype/pkg/rangetype"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	typ := NewType()
	cases := map[string]struct {
		lower, upper rangetype.Bound[int32]
		expected     string
		expectedErr  error
	}{
		"ExclusiveLower": {
			lower: rangetype.LowerBound[int32](1, false), upper: rangetype.UpperBound[int32](5, false), expected: "[2,5)",
		},
		"InclusiveUpper": {
			lower: rangetype.LowerBound[int32](1, true), upper: rangetype.UpperBound[int32](5, true), expected: "[1,6)",
		},
		"Infinite": {
			lower: rangetype.NegInf[int32](), upper: rangetype.PosInf[int32](), expected: "(-INF,INF)",
		},
		"MaxUpper": {
			lower: rangetype.LowerBound[int32](0, true), upper: rangetype.UpperBound[int32](math.MaxInt32, true), expected: "[0,2147483647]",
		},
		"MaxExclusiveLower": {
			lower: rangetype.LowerBound[int32](math.MaxInt32, false), upper: rangetype.PosInf[int32](), expectedErr: rangetype.ErrOutOfRange,
		},
		"Empty": {
			lower: rangetype.LowerBound[int32](1, false), upper: rangetype.UpperBound[int32](2, false), expected: "-",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := typ.Make(tc.lower, tc.upper)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, typ.Format(r))
		})
	}
}

func TestSubtype(t *testing.T) {
	st := New()
	assert.Equal(t, TypeID, st.TypeID())
	assert.Equal(t, 4, st.Len())

	v, err := st.Parse("-42")
	assert.NoError(t, err)
	assert.Equal(t, int32(-42), v)
	_, err = st.Parse("2147483648")
	assert.Error(t, err)

	b := st.AppendBinary(nil, -2)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xfe}, b)
	v, err = st.DecodeBinary(b)
	assert.NoError(t, err)
	assert.Equal(t, int32(-2), v)
	_, err = st.DecodeBinary(b[:3])
	assert.Error(t, err)

	f, err := NewType().Float(7)
	assert.NoError(t, err)
	assert.Equal(t, 7.0, f)
}
