package catalog

import (
	"fmt"

	"github.com/henderiw/rangetype/pkg/rangetype"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	LabelName     = "name"
	LabelKind     = "kind"
	LabelDiscrete = "discrete"

	KindFixed    = "fixed"
	KindVariable = "variable"
)

// Entry is a registered range type.
type Entry interface {
	ID() rangetype.TypeID
	Descriptor() rangetype.Descriptor
	Labels() labels.Set
	String() string
}

type entry struct {
	id     rangetype.TypeID
	desc   rangetype.Descriptor
	labels labels.Set
}

func (r entry) ID() rangetype.TypeID             { return r.id }
func (r entry) Descriptor() rangetype.Descriptor { return r.desc }
func (r entry) Labels() labels.Set               { return r.labels }
func (r entry) String() string {
	return fmt.Sprintf("id: %d, name: %s, labels: %s", r.id, r.desc.Name(), r.labels.String())
}

// newEntry merges the user labels with the name and kind labels derived from
// the descriptor. Derived labels win.
func newEntry(desc rangetype.Descriptor, l labels.Set) entry {
	kind := KindFixed
	if desc.Len() < 0 {
		kind = KindVariable
	}
	return entry{
		id:   desc.TypeID(),
		desc: desc,
		labels: labels.Merge(l, labels.Set{
			LabelName: desc.Name(),
			LabelKind: kind,
		}),
	}
}

type Entries []Entry

// Iterator walks a snapshot of the catalog in id order.
type Iterator struct {
	current int
	entries Entries
}

func (r *Iterator) Value() Entry {
	return r.entries[r.current]
}

func (r *Iterator) ID() rangetype.TypeID {
	return r.entries[r.current].ID()
}

func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.entries)
}
