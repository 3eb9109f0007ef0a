package rangeindex

import (
	"fmt"

	"github.com/henderiw/rangetype/pkg/rangetype"
	"k8s.io/apimachinery/pkg/labels"
)

// Entry is a range stored in the index together with its labels.
type Entry[T any] interface {
	Key() rangetype.Range[T]
	Labels() labels.Set
	String() string
}

type entry[T any] struct {
	key    rangetype.Range[T]
	labels labels.Set
}

func (r entry[T]) Key() rangetype.Range[T] { return r.key }
func (r entry[T]) Labels() labels.Set      { return r.labels }
func (r entry[T]) String() string {
	return fmt.Sprintf("key: %s, labels: %s", r.key, r.labels.String())
}

func NewEntry[T any](key rangetype.Range[T], l labels.Set) Entry[T] {
	return entry[T]{
		key:    key,
		labels: l,
	}
}

type Entries[T any] []Entry[T]

// Iterator walks a snapshot of index entries.
type Iterator[T any] struct {
	current int
	entries Entries[T]
}

func (r *Iterator[T]) Next() bool {
	r.current++
	return r.current < len(r.entries)
}

func (r *Iterator[T]) Value() Entry[T] {
	return r.entries[r.current]
}
