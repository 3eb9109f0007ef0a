// Package catalog keeps the registered range types, keyed by TypeID.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/btree"
	"github.com/henderiw/rangetype/pkg/rangetype"
	"k8s.io/apimachinery/pkg/labels"
)

var (
	ErrNotFound = errors.New("range type not found")
	ErrExists   = errors.New("range type already exists")
	ErrNoFreeID = errors.New("no free entry found")
	ErrSize     = errors.New("catalog size must be positive")
)

type Catalog interface {
	Get(id rangetype.TypeID) (Entry, error)
	Claim(desc rangetype.Descriptor, l labels.Set) error
	ClaimDynamic(build func(id rangetype.TypeID) rangetype.Descriptor, l labels.Set) (Entry, error)
	Release(id rangetype.TypeID) error
	Update(id rangetype.TypeID, l labels.Set) error

	Iterate() *Iterator

	Count() int
	Has(id rangetype.TypeID) bool

	IsFree(id rangetype.TypeID) bool
	FindFree() (rangetype.TypeID, error)

	GetAll() Entries
	GetByLabel(selector labels.Selector) Entries

	// Generation changes whenever an entry is claimed or released.
	Generation() uint64
}

// Registration is an initial catalog entry.
type Registration struct {
	Descriptor rangetype.Descriptor
	Labels     labels.Set
}

// New returns a catalog holding initEntries. All failing entries are
// reported together; the catalog holds the ones that succeeded. A zero size
// is rejected before any entry is added.
func New(initEntries []Registration, opts ...Option) (Catalog, error) {
	cfg := newConfig(opts)
	if cfg.size == 0 {
		return nil, ErrSize
	}
	r := &catalog{
		m: new(sync.RWMutex),
		tree: btree.NewG(btreeDegree, func(a, b Entry) bool {
			return a.ID() < b.ID()
		}),
		size:       cfg.size,
		validateFn: cfg.validateFn,
		log:        cfg.log,
	}

	var errm error
	for _, reg := range initEntries {
		if err := r.add(reg.Descriptor, reg.Labels, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return r, errm
}

type catalog struct {
	m          *sync.RWMutex
	tree       *btree.BTreeG[Entry]
	size       uint64
	generation uint64
	validateFn ValidationFn
	log        logr.Logger
}

// searchKey is a btree search key; only its id is compared.
func searchKey(id rangetype.TypeID) Entry { return entry{id: id} }

func (r *catalog) validateID(id rangetype.TypeID) error {
	if id == 0 {
		return fmt.Errorf("id 0 is reserved")
	}
	if uint64(id) > r.size-1 {
		return fmt.Errorf("id %d is bigger than max allowed entries: %d", id, r.size-1)
	}
	return nil
}

func (r *catalog) validate(desc rangetype.Descriptor, init bool) error {
	if desc == nil {
		return fmt.Errorf("missing descriptor")
	}
	if err := r.validateID(desc.TypeID()); err != nil {
		return err
	}
	if desc.Name() == "" {
		return fmt.Errorf("range type %d has no name", desc.TypeID())
	}
	if desc.Len() == 0 || desc.Len() < -1 {
		return fmt.Errorf("range type %s: invalid length %d", desc.Name(), desc.Len())
	}
	switch desc.Align() {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("range type %s: invalid alignment %d", desc.Name(), desc.Align())
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(desc); err != nil {
			return err
		}
	}
	return nil
}

func (r *catalog) Get(id rangetype.TypeID) (Entry, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if err := r.validateID(id); err != nil {
		return nil, err
	}
	e, ok := r.tree.Get(searchKey(id))
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return e, nil
}

func (r *catalog) Claim(desc rangetype.Descriptor, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(desc, l, false)
}

// ClaimDynamic registers the descriptor built for the lowest free id at or
// above FirstDynamicID.
func (r *catalog) ClaimDynamic(build func(id rangetype.TypeID) rangetype.Descriptor, l labels.Set) (Entry, error) {
	r.m.Lock()
	defer r.m.Unlock()

	id, err := r.findFree()
	if err != nil {
		return nil, err
	}
	desc := build(id)
	if desc == nil {
		return nil, fmt.Errorf("missing descriptor for id %d", id)
	}
	if desc.TypeID() != id {
		return nil, fmt.Errorf("descriptor %s has id %d, want %d", desc.Name(), desc.TypeID(), id)
	}
	if err := r.add(desc, l, false); err != nil {
		return nil, err
	}
	e, _ := r.tree.Get(searchKey(id))
	return e, nil
}

func (r *catalog) Release(id rangetype.TypeID) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(id)
}

// Update replaces the user labels of an entry. The name and kind labels are
// kept.
func (r *catalog) Update(id rangetype.TypeID, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.update(id, l)
}

func (r *catalog) Iterate() *Iterator {
	r.m.RLock()
	defer r.m.RUnlock()

	return &Iterator{current: -1, entries: r.all()}
}

func (r *catalog) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.Len()
}

func (r *catalog) Has(id rangetype.TypeID) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.tree.Has(searchKey(id))
}

// IsFree reports whether id can be claimed. Ids outside the id space are
// never free.
func (r *catalog) IsFree(id rangetype.TypeID) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	if r.validateID(id) != nil {
		return false
	}
	return r.isFree(id)
}

func (r *catalog) isFree(id rangetype.TypeID) bool {
	return !r.tree.Has(searchKey(id))
}

func (r *catalog) FindFree() (rangetype.TypeID, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFree()
}

// findFree walks the claimed ids from FirstDynamicID upwards and returns the
// first gap.
func (r *catalog) findFree() (rangetype.TypeID, error) {
	next := uint64(FirstDynamicID)
	r.tree.AscendGreaterOrEqual(searchKey(FirstDynamicID), func(e Entry) bool {
		if uint64(e.ID()) != next {
			return false
		}
		next++
		return true
	})
	if next > r.size-1 {
		return 0, ErrNoFreeID
	}
	return rangetype.TypeID(next), nil
}

func (r *catalog) GetAll() Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.all()
}

func (r *catalog) all() Entries {
	entries := make(Entries, 0, r.tree.Len())
	r.tree.Ascend(func(e Entry) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}

func (r *catalog) GetByLabel(selector labels.Selector) Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	var entries Entries
	r.tree.Ascend(func(e Entry) bool {
		if selector.Matches(e.Labels()) {
			entries = append(entries, e)
		}
		return true
	})
	return entries
}

func (r *catalog) Generation() uint64 {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.generation
}

func (r *catalog) add(desc rangetype.Descriptor, l labels.Set, init bool) error {
	if err := r.validate(desc, init); err != nil {
		return err
	}
	id := desc.TypeID()
	if !r.isFree(id) {
		return fmt.Errorf("%w: entry %d", ErrExists, id)
	}
	var dup Entry
	r.tree.Ascend(func(e Entry) bool {
		if e.Descriptor().Name() == desc.Name() {
			dup = e
			return false
		}
		return true
	})
	if dup != nil {
		return fmt.Errorf("%w: name %s is used by entry %d", ErrExists, desc.Name(), dup.ID())
	}
	r.tree.ReplaceOrInsert(newEntry(desc, l))
	r.generation++
	r.log.V(1).Info("claimed range type", "id", id, "name", desc.Name())
	return nil
}

func (r *catalog) update(id rangetype.TypeID, l labels.Set) error {
	if err := r.validateID(id); err != nil {
		return err
	}
	e, ok := r.tree.Get(searchKey(id))
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	r.tree.ReplaceOrInsert(newEntry(e.Descriptor(), l))
	return nil
}

func (r *catalog) delete(id rangetype.TypeID) error {
	if err := r.validateID(id); err != nil {
		return err
	}
	e, ok := r.tree.Delete(searchKey(id))
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	r.generation++
	r.log.V(1).Info("released range type", "id", id, "name", e.Descriptor().Name())
	return nil
}
