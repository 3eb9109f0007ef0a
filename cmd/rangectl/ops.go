package main

import (
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/henderiw/rangetype/pkg/catalog"
	"github.com/henderiw/rangetype/pkg/gist"
	"github.com/henderiw/rangetype/pkg/rangeindex"
	"github.com/henderiw/rangetype/pkg/rangetype"
	"k8s.io/apimachinery/pkg/labels"
)

var errUnknownOp = errors.New("unknown operation")

// opArgs is the number of arguments each operation takes.
var opArgs = map[string]int{
	"eq":                2,
	"ne":                2,
	"contains":          2,
	"contained-by":      2,
	"contains-elem":     2,
	"elem-contained-by": 2,
	"overlaps":          2,
	"before":            2,
	"after":             2,
	"overleft":          2,
	"overright":         2,
	"adjacent":          2,
	"union":             2,
	"intersect":         2,
	"minus":             2,
	"superunion":        2,
	"cmp":               2,
	"canonical":         1,
	"isempty":           1,
	"lower":             1,
	"upper":             1,
	"lower-inc":         1,
	"upper-inc":         1,
	"lower-inf":         1,
	"upper-inf":         1,
}

func opNames() []string {
	names := make([]string, 0, len(opArgs))
	for n := range opArgs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// rangeOps hides the element type of a range type from the commands.
type rangeOps interface {
	format(s string) (string, error)
	encode(s string) ([]byte, error)
	decode(b []byte) (string, error)
	apply(op string, args []string) (string, error)
	search(s gist.Strategy, query string, keys []string, maxEntries int) ([]string, error)
}

func (o *options) opsByName(name string) (rangeOps, error) {
	entries := o.cat.GetByLabel(labels.SelectorFromSet(labels.Set{catalog.LabelName: name}))
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, name)
	}
	return newOps(entries[0].Descriptor(), o.log)
}

func (o *options) opsByID(id rangetype.TypeID) (rangeOps, error) {
	e, err := o.cat.Get(id)
	if err != nil {
		return nil, err
	}
	return newOps(e.Descriptor(), o.log)
}

func newOps(desc rangetype.Descriptor, log logr.Logger) (rangeOps, error) {
	switch st := desc.(type) {
	case rangetype.Subtype[int32]:
		return &typedOps[int32]{t: rangetype.NewType(st), log: log}, nil
	case rangetype.Subtype[int64]:
		return &typedOps[int64]{t: rangetype.NewType(st), log: log}, nil
	case rangetype.Subtype[float64]:
		return &typedOps[float64]{t: rangetype.NewType(st), log: log}, nil
	case rangetype.Subtype[string]:
		return &typedOps[string]{t: rangetype.NewType(st), log: log}, nil
	case rangetype.Subtype[time.Time]:
		return &typedOps[time.Time]{t: rangetype.NewType(st), log: log}, nil
	case rangetype.Subtype[netip.Addr]:
		return &typedOps[netip.Addr]{t: rangetype.NewType(st), log: log}, nil
	default:
		return nil, fmt.Errorf("range type %s has an element type rangectl does not handle", desc.Name())
	}
}

type typedOps[T any] struct {
	t   *rangetype.Type[T]
	log logr.Logger
}

func (o *typedOps[T]) format(s string) (string, error) {
	r, err := o.t.Parse(s)
	if err != nil {
		return "", err
	}
	return o.t.Format(r), nil
}

func (o *typedOps[T]) encode(s string) ([]byte, error) {
	r, err := o.t.Parse(s)
	if err != nil {
		return nil, err
	}
	return o.t.Serialize(r)
}

func (o *typedOps[T]) decode(b []byte) (string, error) {
	r, err := o.t.Deserialize(b)
	if err != nil {
		return "", err
	}
	return o.t.Format(r), nil
}

func (o *typedOps[T]) parse(args []string) ([]rangetype.Range[T], error) {
	rs := make([]rangetype.Range[T], 0, len(args))
	for _, a := range args {
		r, err := o.t.Parse(a)
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, nil
}

func (o *typedOps[T]) apply(op string, args []string) (string, error) {
	n, ok := opArgs[op]
	if !ok {
		return "", fmt.Errorf("%w: %s", errUnknownOp, op)
	}
	if len(args) != n {
		return "", fmt.Errorf("%s takes %d arguments, got %d", op, n, len(args))
	}

	switch op {
	case "contains-elem":
		r, err := o.t.Parse(args[0])
		if err != nil {
			return "", err
		}
		v, err := o.t.Subtype().Parse(args[1])
		if err != nil {
			return "", err
		}
		return formatBool(o.t.ContainsElem(r, v))
	case "elem-contained-by":
		v, err := o.t.Subtype().Parse(args[0])
		if err != nil {
			return "", err
		}
		r, err := o.t.Parse(args[1])
		if err != nil {
			return "", err
		}
		return formatBool(o.t.ElemContainedBy(v, r))
	}

	rs, err := o.parse(args)
	if err != nil {
		return "", err
	}
	if n == 1 {
		return o.unary(op, rs[0])
	}
	r1, r2 := rs[0], rs[1]

	switch op {
	case "eq":
		return formatBool(o.t.Equal(r1, r2))
	case "ne":
		return formatBool(o.t.NotEqual(r1, r2))
	case "contains":
		return formatBool(o.t.Contains(r1, r2))
	case "contained-by":
		return formatBool(o.t.ContainedBy(r1, r2))
	case "overlaps":
		return formatBool(o.t.Overlaps(r1, r2))
	case "before":
		return formatBool(o.t.Before(r1, r2))
	case "after":
		return formatBool(o.t.After(r1, r2))
	case "overleft":
		return formatBool(o.t.OverLeft(r1, r2))
	case "overright":
		return formatBool(o.t.OverRight(r1, r2))
	case "adjacent":
		return formatBool(o.t.Adjacent(r1, r2))
	case "union":
		return o.formatRange(o.t.Union(r1, r2))
	case "intersect":
		return o.formatRange(o.t.Intersect(r1, r2))
	case "minus":
		return o.formatRange(o.t.Minus(r1, r2))
	case "superunion":
		return o.formatRange(o.t.SuperUnion(r1, r2))
	case "cmp":
		c, err := o.t.Compare(r1, r2)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(c), nil
	}
	return "", fmt.Errorf("%w: %s", errUnknownOp, op)
}

func (o *typedOps[T]) unary(op string, r rangetype.Range[T]) (string, error) {
	switch op {
	case "canonical":
		return o.t.Format(r), nil
	case "isempty":
		return strconv.FormatBool(r.IsEmpty()), nil
	case "lower":
		return o.formatValue(r.Lower())
	case "upper":
		return o.formatValue(r.Upper())
	case "lower-inc":
		return strconv.FormatBool(r.LowerInc()), nil
	case "upper-inc":
		return strconv.FormatBool(r.UpperInc()), nil
	case "lower-inf":
		return strconv.FormatBool(r.LowerInf()), nil
	case "upper-inf":
		return strconv.FormatBool(r.UpperInf()), nil
	}
	return "", fmt.Errorf("%w: %s", errUnknownOp, op)
}

// search loads keys into an index and returns the ones matching query, in
// the order they were given.
func (o *typedOps[T]) search(s gist.Strategy, query string, keys []string, maxEntries int) ([]string, error) {
	idx := rangeindex.New("rangectl", o.t,
		rangeindex.WithMaxEntries(maxEntries),
		rangeindex.WithLogger(o.log.WithName("index")),
	)
	for i, k := range keys {
		r, err := o.t.Parse(k)
		if err != nil {
			return nil, err
		}
		if err := idx.Insert(r, labels.Set{"pos": strconv.Itoa(i)}); err != nil {
			return nil, err
		}
	}
	o.log.V(1).Info("loaded index", "entries", idx.Len(), "height", idx.Height())

	var (
		entries rangeindex.Entries[T]
		err     error
	)
	if s.IsElement() {
		v, perr := o.t.Subtype().Parse(query)
		if perr != nil {
			return nil, perr
		}
		entries, err = idx.SearchElement(s, v)
	} else {
		q, perr := o.t.Parse(query)
		if perr != nil {
			return nil, perr
		}
		entries, err = idx.Search(s, q)
	}
	if err != nil {
		return nil, err
	}

	pos := make([]int, 0, len(entries))
	for _, e := range entries {
		p, err := strconv.Atoi(e.Labels().Get("pos"))
		if err != nil {
			return nil, err
		}
		pos = append(pos, p)
	}
	slices.Sort(pos)
	out := make([]string, 0, len(pos))
	for _, p := range pos {
		out = append(out, keys[p])
	}
	return out, nil
}

func (o *typedOps[T]) formatRange(r rangetype.Range[T], err error) (string, error) {
	if err != nil {
		return "", err
	}
	return o.t.Format(r), nil
}

func (o *typedOps[T]) formatValue(v T, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return o.t.Subtype().Format(v), nil
}

func formatBool(b bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return strconv.FormatBool(b), nil
}
