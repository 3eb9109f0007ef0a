// Package rangeindex is an in-memory height-balanced search tree over ranges.
// Node keys bound their subtrees; insertion, splits and searches are driven
// by the callbacks in package gist.
package rangeindex

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/henderiw/rangetype/pkg/gist"
	"github.com/henderiw/rangetype/pkg/rangetype"
	"k8s.io/apimachinery/pkg/labels"
)

var ErrNotFound = errors.New("entry not found")

type Index[T any] struct {
	m          *sync.RWMutex
	name       string
	adapter    *gist.Adapter[T]
	root       *node[T]
	size       int
	maxEntries int
	log        logr.Logger
}

// node is a leaf when its slots carry entries, otherwise every slot carries a
// child. All leaves sit at the same depth.
type node[T any] struct {
	leaf  bool
	slots []slot[T]
}

type slot[T any] struct {
	key   rangetype.Range[T]
	child *node[T]
	entry Entry[T]
}

func New[T any](name string, t *rangetype.Type[T], opts ...Option) *Index[T] {
	cfg := newConfig(opts)
	return &Index[T]{
		m:          new(sync.RWMutex),
		name:       name,
		adapter:    gist.New(t),
		root:       &node[T]{leaf: true},
		maxEntries: cfg.maxEntries,
		log:        cfg.log.WithValues("index", name),
	}
}

func (r *Index[T]) Name() string { return r.name }

func (r *Index[T]) Len() int {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.size
}

// Height returns the number of levels, 1 for a tree that is a single leaf.
func (r *Index[T]) Height() int {
	r.m.RLock()
	defer r.m.RUnlock()
	h := 1
	for n := r.root; !n.leaf; n = n.slots[0].child {
		h++
	}
	return h
}

// Bound returns the range covering every key in the index.
func (r *Index[T]) Bound() (rangetype.Range[T], error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.bound(r.root)
}

func (r *Index[T]) bound(n *node[T]) (rangetype.Range[T], error) {
	keys := make([]rangetype.Range[T], 0, len(n.slots))
	for _, s := range n.slots {
		keys = append(keys, s.key)
	}
	return r.adapter.Union(keys...)
}

// Insert adds key with its labels.
func (r *Index[T]) Insert(key rangetype.Range[T], l labels.Set) error {
	if key.TypeID() != r.adapter.Type().TypeID() {
		return fmt.Errorf("%w: index %s holds %s", rangetype.ErrTypeMismatch, r.name, r.adapter.Type().Name())
	}
	r.m.Lock()
	defer r.m.Unlock()

	path, err := r.choosePath(key)
	if err != nil {
		return err
	}
	leaf := path[len(path)-1]
	leaf.slots = append(leaf.slots, slot[T]{key: key, entry: NewEntry(key, l)})
	r.size++
	return r.adjust(path)
}

// choosePath descends from the root to a leaf, at each level following the
// child whose key grows the least.
func (r *Index[T]) choosePath(key rangetype.Range[T]) ([]*node[T], error) {
	path := []*node[T]{r.root}
	n := r.root
	for !n.leaf {
		best := -1
		var bestPenalty float64
		for i, s := range n.slots {
			p, err := r.adapter.Penalty(s.key, key)
			if err != nil {
				return nil, err
			}
			if best < 0 || p < bestPenalty {
				best, bestPenalty = i, p
			}
		}
		n = n.slots[best].child
		path = append(path, n)
	}
	return path, nil
}

// adjust walks path bottom-up, splitting overfull nodes and refreshing the
// keys of the parents. A split of the root grows the tree by one level.
func (r *Index[T]) adjust(path []*node[T]) error {
	var sibling *node[T]
	for level := len(path) - 1; level >= 0; level-- {
		n := path[level]
		if sibling != nil {
			key, err := r.bound(sibling)
			if err != nil {
				return err
			}
			n.slots = append(n.slots, slot[T]{key: key, child: sibling})
			sibling = nil
		}
		if len(n.slots) > r.maxEntries {
			var err error
			if sibling, err = r.split(n); err != nil {
				return err
			}
			r.log.V(1).Info("split node", "level", level, "left", len(n.slots), "right", len(sibling.slots))
		}
		if level > 0 {
			if err := r.refresh(path[level-1], n); err != nil {
				return err
			}
		}
	}
	if sibling != nil {
		old := r.root
		oldKey, err := r.bound(old)
		if err != nil {
			return err
		}
		newKey, err := r.bound(sibling)
		if err != nil {
			return err
		}
		r.root = &node[T]{slots: []slot[T]{
			{key: oldKey, child: old},
			{key: newKey, child: sibling},
		}}
		r.log.V(1).Info("grow root", "size", r.size)
	}
	return nil
}

// refresh recomputes the key parent holds for child.
func (r *Index[T]) refresh(parent, child *node[T]) error {
	for i := range parent.slots {
		if parent.slots[i].child == child {
			key, err := r.bound(child)
			if err != nil {
				return err
			}
			parent.slots[i].key = key
			return nil
		}
	}
	return fmt.Errorf("index %s: child node not found in parent", r.name)
}

// split keeps the left half of the slots in n and returns a new node holding
// the right half.
func (r *Index[T]) split(n *node[T]) (*node[T], error) {
	keys := make([]rangetype.Range[T], 0, len(n.slots))
	for _, s := range n.slots {
		keys = append(keys, s.key)
	}
	sp, err := r.adapter.PickSplit(keys)
	if err != nil {
		return nil, err
	}
	left := make([]slot[T], 0, len(sp.Left))
	for _, i := range sp.Left {
		left = append(left, n.slots[i])
	}
	right := make([]slot[T], 0, len(sp.Right))
	for _, i := range sp.Right {
		right = append(right, n.slots[i])
	}
	n.slots = left
	return &node[T]{leaf: n.leaf, slots: right}, nil
}

// Search returns the entries whose key matches query under strategy s.
func (r *Index[T]) Search(s gist.Strategy, query rangetype.Range[T]) (Entries[T], error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var visited int
	return r.search(s, query, &visited)
}

// SearchElement is Search for the element strategies.
func (r *Index[T]) SearchElement(s gist.Strategy, v T) (Entries[T], error) {
	if !s.IsElement() {
		return nil, fmt.Errorf("%w: %s does not take an element", gist.ErrUnknownStrategy, s)
	}
	query, err := r.adapter.Type().Singleton(v)
	if err != nil {
		return nil, err
	}
	return r.Search(s, query)
}

func (r *Index[T]) search(s gist.Strategy, query rangetype.Range[T], visited *int) (Entries[T], error) {
	if query.TypeID() != r.adapter.Type().TypeID() {
		return nil, fmt.Errorf("%w: index %s holds %s", rangetype.ErrTypeMismatch, r.name, r.adapter.Type().Name())
	}
	entries := Entries[T]{}
	var walk func(n *node[T]) error
	walk = func(n *node[T]) error {
		*visited++
		for _, sl := range n.slots {
			match, _, err := r.adapter.Consistent(s, sl.key, query, n.leaf)
			if err != nil {
				return err
			}
			if !match {
				continue
			}
			if n.leaf {
				entries = append(entries, sl.entry)
			} else if err := walk(sl.child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(r.root); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes the entries equal to key whose labels match selector and
// returns how many were removed.
func (r *Index[T]) Delete(key rangetype.Range[T], selector labels.Selector) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()

	n, err := r.delete(func(e Entry[T]) (bool, error) {
		same, err := r.adapter.Same(e.Key(), key)
		if err != nil || !same {
			return false, err
		}
		return selector.Matches(e.Labels()), nil
	})
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	r.log.V(2).Info("delete", "key", key.String(), "count", n)
	return n, nil
}

// DeleteByLabel removes every entry whose labels match selector.
func (r *Index[T]) DeleteByLabel(selector labels.Selector) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()

	n, err := r.delete(func(e Entry[T]) (bool, error) {
		return selector.Matches(e.Labels()), nil
	})
	if err != nil {
		return n, err
	}
	r.log.V(2).Info("delete by label", "selector", selector.String(), "count", n)
	return n, nil
}

func (r *Index[T]) delete(match func(Entry[T]) (bool, error)) (int, error) {
	var walk func(n *node[T]) (int, error)
	walk = func(n *node[T]) (int, error) {
		deleted := 0
		kept := n.slots[:0]
		for _, sl := range n.slots {
			if n.leaf {
				ok, err := match(sl.entry)
				if err != nil {
					return deleted, err
				}
				if ok {
					deleted++
					continue
				}
				kept = append(kept, sl)
				continue
			}
			d, err := walk(sl.child)
			if err != nil {
				return deleted, err
			}
			deleted += d
			if len(sl.child.slots) == 0 {
				continue
			}
			if d > 0 {
				if sl.key, err = r.bound(sl.child); err != nil {
					return deleted, err
				}
			}
			kept = append(kept, sl)
		}
		for i := len(kept); i < len(n.slots); i++ {
			n.slots[i] = slot[T]{}
		}
		n.slots = kept
		return deleted, nil
	}

	deleted, err := walk(r.root)
	r.size -= deleted
	switch {
	case len(r.root.slots) == 0:
		r.root = &node[T]{leaf: true}
	default:
		for !r.root.leaf && len(r.root.slots) == 1 {
			r.root = r.root.slots[0].child
		}
	}
	return deleted, err
}

// GetByLabel returns the entries whose labels match selector.
func (r *Index[T]) GetByLabel(selector labels.Selector) Entries[T] {
	entries := Entries[T]{}
	iter := r.Iterate()
	for iter.Next() {
		if selector.Matches(iter.Value().Labels()) {
			entries = append(entries, iter.Value())
		}
	}
	return entries
}

// GetAll returns every entry in tree order.
func (r *Index[T]) GetAll() Entries[T] {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.all()
}

func (r *Index[T]) all() Entries[T] {
	entries := make(Entries[T], 0, r.size)
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		for _, sl := range n.slots {
			if n.leaf {
				entries = append(entries, sl.entry)
			} else {
				walk(sl.child)
			}
		}
	}
	walk(r.root)
	return entries
}

// Iterate returns an iterator over a snapshot of the entries.
func (r *Index[T]) Iterate() *Iterator[T] {
	r.m.RLock()
	defer r.m.RUnlock()
	return &Iterator[T]{current: -1, entries: r.all()}
}
