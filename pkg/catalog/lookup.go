package catalog

import (
	"fmt"
	"strconv"

	"github.com/henderiw/rangetype/pkg/rangetype"
	"github.com/henderiw/rangetype/pkg/subtype/date"
	"github.com/henderiw/rangetype/pkg/subtype/float8"
	"github.com/henderiw/rangetype/pkg/subtype/inet"
	"github.com/henderiw/rangetype/pkg/subtype/int4"
	"github.com/henderiw/rangetype/pkg/subtype/int8"
	"github.com/henderiw/rangetype/pkg/subtype/text"
	"k8s.io/apimachinery/pkg/labels"
)

// Builtin returns a catalog holding the int4, int8, float8, text, date and
// inet range types.
func Builtin(opts ...Option) (Catalog, error) {
	return New([]Registration{
		NewRegistration(int4.New(), nil),
		NewRegistration(int8.New(), nil),
		NewRegistration(float8.New(), nil),
		NewRegistration(text.New(), nil),
		NewRegistration(date.New(), nil),
		NewRegistration(inet.New(), nil),
	}, opts...)
}

// NewRegistration labels st with whether its ranges are discrete.
func NewRegistration[T any](st rangetype.Subtype[T], l labels.Set) Registration {
	return Registration{
		Descriptor: st,
		Labels: labels.Merge(l, labels.Set{
			LabelDiscrete: strconv.FormatBool(rangetype.NewType(st).Discrete()),
		}),
	}
}

// Register claims st with the discrete label set.
func Register[T any](c Catalog, st rangetype.Subtype[T], l labels.Set) error {
	reg := NewRegistration(st, l)
	return c.Claim(reg.Descriptor, reg.Labels)
}

// Lookup returns the subtype registered under id. It fails with
// rangetype.ErrTypeMismatch when that subtype does not operate on T.
func Lookup[T any](c Catalog, id rangetype.TypeID) (rangetype.Subtype[T], error) {
	e, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	st, ok := e.Descriptor().(rangetype.Subtype[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %s is not a range over %T", rangetype.ErrTypeMismatch, e.Descriptor().Name(), zero)
	}
	return st, nil
}

// LookupType is Lookup followed by rangetype.NewType.
func LookupType[T any](c Catalog, id rangetype.TypeID) (*rangetype.Type[T], error) {
	st, err := Lookup[T](c, id)
	if err != nil {
		return nil, err
	}
	return rangetype.NewType(st), nil
}

// CallCache remembers the type a call site resolved last, so repeated calls
// on ranges of the same type skip the catalog. It is dropped when the id
// changes or the catalog generation moves on.
//
// A CallCache is not safe for concurrent use.
type CallCache[T any] struct {
	cat        Catalog
	id         rangetype.TypeID
	generation uint64
	typ        *rangetype.Type[T]
}

func NewCallCache[T any](c Catalog) *CallCache[T] {
	return &CallCache[T]{cat: c}
}

func (r *CallCache[T]) Resolve(id rangetype.TypeID) (*rangetype.Type[T], error) {
	gen := r.cat.Generation()
	if r.typ != nil && r.id == id && r.generation == gen {
		return r.typ, nil
	}
	typ, err := LookupType[T](r.cat, id)
	if err != nil {
		r.typ = nil
		return nil, err
	}
	r.id, r.generation, r.typ = id, gen, typ
	return typ, nil
}

// ResolveRange resolves the type of rg.
func (r *CallCache[T]) ResolveRange(rg rangetype.Range[T]) (*rangetype.Type[T], error) {
	return r.Resolve(rg.TypeID())
}
