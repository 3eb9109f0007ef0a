package rangetype_test

import (
	"testing"

	"github.com/henderiw/rangetype/pkg/rangetype"
	"github.com/henderiw/rangetype/pkg/subtype/float8"
	"github.com/henderiw/rangetype/pkg/subtype/int4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt4Scenarios(t *testing.T) {
	typ := int4.NewType()

	r := mustParse(t, typ, "[1,5)")
	lo, err := r.Lower()
	require.NoError(t, err)
	hi, err := r.Upper()
	require.NoError(t, err)
	assert.Equal(t, int32(1), lo)
	assert.Equal(t, int32(5), hi)
	assert.True(t, r.LowerInc())
	assert.False(t, r.UpperInc())
	assert.Equal(t, "[1,5)", typ.Format(r))

	assert.Equal(t, "[2,6)", typ.Format(mustParse(t, typ, "(1,5]")))

	ok, err := typ.Overlaps(mustParse(t, typ, "[1,5)"), mustParse(t, typ, "[5,10)"))
	assert.NoError(t, err)
	assert.False(t, ok)
	ok, err = typ.Adjacent(mustParse(t, typ, "[1,5)"), mustParse(t, typ, "[5,10)"))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = typ.Contains(mustParse(t, typ, "[1,10)"), mustParse(t, typ, "[3,7)"))
	assert.NoError(t, err)
	assert.True(t, ok)
	ok, err = typ.Contains(mustParse(t, typ, "[3,7)"), mustParse(t, typ, "[1,10)"))
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = typ.Minus(mustParse(t, typ, "[1,10)"), mustParse(t, typ, "[3,5)"))
	assert.ErrorIs(t, err, rangetype.ErrUndefined)

	empty := mustParse(t, typ, "-")
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, int4.TypeID, empty.TypeID())
	for _, s := range []string{"-", "[1,5)", "(-INF,INF)"} {
		ok, err := typ.Overlaps(empty, mustParse(t, typ, s))
		assert.NoError(t, err)
		assert.False(t, ok, s)
	}
}

// op runs a binary range operation on parsed operands and formats the result.
func op(t *testing.T, typ *rangetype.Type[int32], f func(r1, r2 rangetype.Range[int32]) (rangetype.Range[int32], error), a, b string) (string, error) {
	t.Helper()
	r, err := f(mustParse(t, typ, a), mustParse(t, typ, b))
	if err != nil {
		return "", err
	}
	return typ.Format(r), nil
}

func TestSetOperations(t *testing.T) {
	typ := int4.NewType()
	cases := map[string]struct {
		f           func(r1, r2 rangetype.Range[int32]) (rangetype.Range[int32], error)
		r1, r2      string
		expected    string
		expectedErr error
	}{
		"UnionOverlap":       {f: typ.Union, r1: "[1,5)", r2: "[3,8)", expected: "[1,8)"},
		"UnionAdjacent":      {f: typ.Union, r1: "[1,5)", r2: "[5,8)", expected: "[1,8)"},
		"UnionEmptyLeft":     {f: typ.Union, r1: "-", r2: "[3,8)", expected: "[3,8)"},
		"UnionEmptyRight":    {f: typ.Union, r1: "[3,8)", r2: "-", expected: "[3,8)"},
		"UnionInfinite":      {f: typ.Union, r1: "(-INF,5)", r2: "[2,INF)", expected: "(-INF,INF)"},
		"UnionDisjoint":      {f: typ.Union, r1: "[1,3)", r2: "[5,8)", expectedErr: rangetype.ErrUndefined},
		"IntersectOverlap":   {f: typ.Intersect, r1: "[1,5)", r2: "[3,8)", expected: "[3,5)"},
		"IntersectContained": {f: typ.Intersect, r1: "[1,10)", r2: "[3,5)", expected: "[3,5)"},
		"IntersectDisjoint":  {f: typ.Intersect, r1: "[1,3)", r2: "[5,8)", expected: "-"},
		"IntersectAdjacent":  {f: typ.Intersect, r1: "[1,5)", r2: "[5,8)", expected: "-"},
		"IntersectEmpty":     {f: typ.Intersect, r1: "-", r2: "[5,8)", expected: "-"},
		"IntersectInfinite":  {f: typ.Intersect, r1: "(-INF,5)", r2: "[2,INF)", expected: "[2,5)"},
		"MinusRight":         {f: typ.Minus, r1: "[1,5)", r2: "[3,8)", expected: "[1,3)"},
		"MinusLeft":          {f: typ.Minus, r1: "[3,8)", r2: "[1,5)", expected: "[5,8)"},
		"MinusDisjoint":      {f: typ.Minus, r1: "[1,3)", r2: "[5,8)", expected: "[1,3)"},
		"MinusContained":     {f: typ.Minus, r1: "[3,5)", r2: "[1,8)", expected: "-"},
		"MinusEqual":         {f: typ.Minus, r1: "[3,5)", r2: "[3,5)", expected: "-"},
		"MinusEmpty":         {f: typ.Minus, r1: "[3,5)", r2: "-", expected: "[3,5)"},
		"MinusFromEmpty":     {f: typ.Minus, r1: "-", r2: "[3,5)", expected: "-"},
		"MinusInfiniteRight": {f: typ.Minus, r1: "[1,10)", r2: "[5,INF)", expected: "[1,5)"},
		"MinusInfiniteLeft":  {f: typ.Minus, r1: "[1,10)", r2: "(-INF,5)", expected: "[5,10)"},
		"MinusSplit":         {f: typ.Minus, r1: "[1,10)", r2: "[3,5)", expectedErr: rangetype.ErrUndefined},
		"MinusSplitInfinite": {f: typ.Minus, r1: "(-INF,INF)", r2: "[3,5)", expectedErr: rangetype.ErrUndefined},
		"SuperUnionDisjoint": {f: typ.SuperUnion, r1: "[1,3)", r2: "[5,8)", expected: "[1,8)"},
		"SuperUnionEmpty":    {f: typ.SuperUnion, r1: "-", r2: "[5,8)", expected: "[5,8)"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := op(t, typ, tc.f, tc.r1, tc.r2)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			if got != tc.expected {
				t.Errorf("%s: -want %s, +got: %s\n", name, tc.expected, got)
			}
		})
	}
}

func TestMinusContinuous(t *testing.T) {
	typ := float8.NewType()
	cases := map[string]struct {
		r1, r2   string
		expected string
	}{
		"TrimRightFlipsInclusive": {r1: "[0,2]", r2: "[1,3]", expected: "[0,1)"},
		"TrimLeftFlipsInclusive":  {r1: "[0,2]", r2: "(-INF,1)", expected: "[1,2]"},
		"TrimPoint":               {r1: "[0,1]", r2: "[1,1]", expected: "[0,1)"},
		"TrimOpen":                {r1: "[0,1]", r2: "(-INF,0]", expected: "(0,1]"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := typ.Minus(mustParse(t, typ, tc.r1), mustParse(t, typ, tc.r2))
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, typ.Format(r))
		})
	}
}

func TestPredicates(t *testing.T) {
	typ := float8.NewType()
	type predicate func(r1, r2 rangetype.Range[float64]) (bool, error)
	cases := map[string]struct {
		p           predicate
		r1, r2      string
		expected    bool
		expectedErr error
	}{
		"EqualSame":               {p: typ.Equal, r1: "[1,2)", r2: "[1,2)", expected: true},
		"EqualInclusivity":        {p: typ.Equal, r1: "[1,2)", r2: "[1,2]", expected: false},
		"EqualEmpty":              {p: typ.Equal, r1: "-", r2: "(1,1)", expected: true},
		"EqualOneEmpty":           {p: typ.Equal, r1: "-", r2: "[1,1]", expected: false},
		"NotEqual":                {p: typ.NotEqual, r1: "[1,2)", r2: "[1,2]", expected: true},
		"ContainsEmpty":           {p: typ.Contains, r1: "[1,2)", r2: "-", expected: true},
		"EmptyContains":           {p: typ.Contains, r1: "-", r2: "[1,2)", expected: false},
		"ContainsExclusiveEdge":   {p: typ.Contains, r1: "(1,5)", r2: "[1,3)", expected: false},
		"ContainsInclusiveEdge":   {p: typ.Contains, r1: "[1,5)", r2: "(1,3)", expected: true},
		"ContainedBy":             {p: typ.ContainedBy, r1: "[2,3]", r2: "[1,5)", expected: true},
		"ContainedByNot":          {p: typ.ContainedBy, r1: "[1,5)", r2: "[2,3]", expected: false},
		"OverlapsPoint":           {p: typ.Overlaps, r1: "[1,2]", r2: "[2,3]", expected: true},
		"OverlapsOpenPoint":       {p: typ.Overlaps, r1: "[1,2)", r2: "[2,3]", expected: false},
		"OverlapsInfinite":        {p: typ.Overlaps, r1: "(-INF,0]", r2: "[0,INF)", expected: true},
		"Before":                  {p: typ.Before, r1: "[1,2)", r2: "[2,3]", expected: true},
		"BeforeTouching":          {p: typ.Before, r1: "[1,2]", r2: "[2,3]", expected: false},
		"BeforeEmpty":             {p: typ.Before, r1: "-", r2: "[2,3]", expectedErr: rangetype.ErrEmptyRange},
		"After":                   {p: typ.After, r1: "[4,5]", r2: "[2,3]", expected: true},
		"AfterInfinite":           {p: typ.After, r1: "[4,INF)", r2: "(-INF,3]", expected: true},
		"AfterEmpty":              {p: typ.After, r1: "[4,5]", r2: "-", expectedErr: rangetype.ErrEmptyRange},
		"OverLeft":                {p: typ.OverLeft, r1: "[1,3]", r2: "[2,3]", expected: true},
		"OverLeftNot":             {p: typ.OverLeft, r1: "[1,4]", r2: "[2,3]", expected: false},
		"OverLeftEmpty":           {p: typ.OverLeft, r1: "-", r2: "[2,3]", expected: false},
		"OverRight":               {p: typ.OverRight, r1: "[2,9]", r2: "[2,3]", expected: true},
		"OverRightNot":            {p: typ.OverRight, r1: "[1,9]", r2: "[2,3]", expected: false},
		"Adjacent":                {p: typ.Adjacent, r1: "[1,2)", r2: "[2,3]", expected: true},
		"AdjacentReversed":        {p: typ.Adjacent, r1: "(2,3]", r2: "[1,2]", expected: true},
		"AdjacentGap":             {p: typ.Adjacent, r1: "[1,2)", r2: "(2,3]", expected: false},
		"AdjacentOverlap":         {p: typ.Adjacent, r1: "[1,2]", r2: "[2,3]", expected: false},
		"AdjacentInfiniteBounded": {p: typ.Adjacent, r1: "(-INF,2)", r2: "[2,INF)", expected: true},
		"AdjacentEmpty":           {p: typ.Adjacent, r1: "-", r2: "[2,3]", expectedErr: rangetype.ErrEmptyRange},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.p(mustParse(t, typ, tc.r1), mustParse(t, typ, tc.r2))
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestElementPredicates(t *testing.T) {
	typ := float8.NewType()
	cases := map[string]struct {
		r        string
		v        float64
		expected bool
	}{
		"Inside":         {r: "[1,5)", v: 3, expected: true},
		"InclusiveLower": {r: "[1,5)", v: 1, expected: true},
		"ExclusiveUpper": {r: "[1,5)", v: 5, expected: false},
		"ExclusiveLower": {r: "(1,5)", v: 1, expected: false},
		"InclusiveUpper": {r: "(1,5]", v: 5, expected: true},
		"Infinite":       {r: "(-INF,INF)", v: -1e300, expected: true},
		"Empty":          {r: "-", v: 0, expected: false},
		"Outside":        {r: "[1,5)", v: 7, expected: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := mustParse(t, typ, tc.r)
			got, err := typ.ContainsElem(r, tc.v)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			got, err = typ.ElemContainedBy(tc.v, r)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTypeMismatch(t *testing.T) {
	typ := int4.NewType()
	other := rangetype.Range[int32]{}
	r := mustParse(t, typ, "[1,5)")

	_, err := typ.Equal(r, other)
	assert.ErrorIs(t, err, rangetype.ErrTypeMismatch)
	_, err = typ.Overlaps(other, r)
	assert.ErrorIs(t, err, rangetype.ErrTypeMismatch)
	_, err = typ.Union(r, other)
	assert.ErrorIs(t, err, rangetype.ErrTypeMismatch)
	_, err = typ.Minus(r, other)
	assert.ErrorIs(t, err, rangetype.ErrTypeMismatch)
	_, err = typ.Compare(r, other)
	assert.ErrorIs(t, err, rangetype.ErrTypeMismatch)
}

func TestConstructors(t *testing.T) {
	typ := int4.NewType()
	cases := map[string]struct {
		build       func() (rangetype.Range[int32], error)
		expected    string
		expectedErr error
	}{
		"New":            {build: func() (rangetype.Range[int32], error) { return typ.New(1, 5, "[]") }, expected: "[1,6)"},
		"NewOpen":        {build: func() (rangetype.Range[int32], error) { return typ.New(1, 5, "()") }, expected: "[2,5)"},
		"NewBadFlags":    {build: func() (rangetype.Range[int32], error) { return typ.New(1, 5, "[[") }, expectedErr: rangetype.ErrMalformed},
		"NewInverted":    {build: func() (rangetype.Range[int32], error) { return typ.New(5, 1, "[)") }, expectedErr: rangetype.ErrInvalidRange},
		"Singleton":      {build: func() (rangetype.Range[int32], error) { return typ.Singleton(7) }, expected: "[7,8)"},
		"LowerUnbounded": {build: func() (rangetype.Range[int32], error) { return typ.LowerUnbounded(3, true) }, expected: "(-INF,4)"},
		"UpperUnbounded": {build: func() (rangetype.Range[int32], error) { return typ.UpperUnbounded(3, false) }, expected: "[4,INF)"},
		"MakeInfinite": {
			build: func() (rangetype.Range[int32], error) {
				return typ.Make(rangetype.NegInf[int32](), rangetype.PosInf[int32]())
			},
			expected: "(-INF,INF)",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := tc.build()
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, typ.Format(r))
		})
	}
}

func TestAccessors(t *testing.T) {
	typ := int4.NewType()
	empty := typ.Empty()
	_, err := empty.Lower()
	assert.ErrorIs(t, err, rangetype.ErrEmptyRange)
	assert.False(t, empty.LowerInc())
	assert.False(t, empty.LowerInf())

	r := mustParse(t, typ, "(-INF,5)")
	_, err = r.Lower()
	assert.ErrorIs(t, err, rangetype.ErrInfiniteBound)
	assert.True(t, r.LowerInf())
	assert.False(t, r.UpperInf())
	assert.False(t, r.LowerInc())
	assert.Equal(t, rangetype.FlagLowerInfinite, r.Flags())

	assert.True(t, typ.Discrete())
	assert.False(t, float8.NewType().Discrete())
}

func TestCompare(t *testing.T) {
	typ := int4.NewType()
	ordered := []string{"-", "(-INF,1)", "(-INF,INF)", "[1,2)", "[1,5)", "[1,INF)", "[2,3)"}
	for i := range ordered {
		for j := range ordered {
			c, err := typ.Compare(mustParse(t, typ, ordered[i]), mustParse(t, typ, ordered[j]))
			assert.NoError(t, err)
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			assert.Equal(t, want, c, "%s vs %s", ordered[i], ordered[j])
		}
	}
}
