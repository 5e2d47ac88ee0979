package symtable

import (
	"strings"

	"github.com/symtab/symtab/pkg/hash"
)

// Table is a symbol table using open hashing. Bindings hashing to the same
// bucket form a chain; a new binding becomes the head of its chain.
//
// Chain nodes live in an arena owned by the table and refer to each other by
// index. Nodes of removed bindings are cleared and reused by later bindings.
//
// When a binding is added to a table that has at least as many bindings as
// buckets, the table first grows to the next bucket count in [Capacities] and
// relinks every node into the new buckets. Growth stops at the last capacity,
// after which the table keeps accepting bindings with longer chains.
//
// The zero value is not usable; create tables with [New] or
// [NewWithOptions].
type Table[V any] struct {
	// Chain heads. 0 means an empty chain; i > 0 refers to nodes[i-1].
	buckets  []int
	capIndex int
	length   int

	nodes []node[V]
	// Head of the list of unused nodes, linked through their next fields.
	free int

	opts    Options
	walkers int
}

type node[V any] struct {
	key   string
	value V
	next  int
}

// New returns an empty Table with the smallest bucket count and no resource
// limits.
func New[V any]() *Table[V] {
	return &Table[V]{buckets: make([]int, capacities[0])}
}

// NewWithOptions returns an empty Table with the given resource limits, or
// an error if the limits are invalid.
func NewWithOptions[V any](opts Options) (*Table[V], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	t := New[V]()
	t.opts = opts
	return t, nil
}

// Len returns the number of bindings.
func (t *Table[V]) Len() int {
	t.check()
	return t.length
}

// BucketCount returns the current number of buckets.
func (t *Table[V]) BucketCount() int {
	t.check()
	return len(t.buckets)
}

// Put adds a binding of key to v. It returns false and leaves the table
// unchanged if key is already bound or the MaxBindings limit is reached.
// The table keeps its own copy of key.
func (t *Table[V]) Put(key string, v V) bool {
	t.checkMutable()
	if t.find(key) != nil {
		return false
	}
	if t.opts.MaxBindings > 0 && t.length >= t.opts.MaxBindings {
		logger.Printf("limit of %d bindings reached, not adding %q",
			t.opts.MaxBindings, key)
		return false
	}
	if t.length >= len(t.buckets) {
		t.grow()
	}

	i := t.alloc()
	n := &t.nodes[i-1]
	n.key = strings.Clone(key)
	n.value = v
	b := hash.Index(key, len(t.buckets))
	n.next = t.buckets[b]
	t.buckets[b] = i
	t.length++
	return true
}

// Replace rebinds key to v, returning the old value and true. If key is not
// bound, it returns the zero value and false.
func (t *Table[V]) Replace(key string, v V) (V, bool) {
	t.check()
	n := t.find(key)
	if n == nil {
		var zero V
		return zero, false
	}
	old := n.value
	n.value = v
	return old, true
}

// Contains reports whether key is bound.
func (t *Table[V]) Contains(key string) bool {
	t.check()
	return t.find(key) != nil
}

// Get returns the value bound to key and true, or the zero value and false.
func (t *Table[V]) Get(key string) (V, bool) {
	t.check()
	n := t.find(key)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Remove removes the binding of key and returns its value and true. If key
// is not bound, it returns the zero value and false.
func (t *Table[V]) Remove(key string) (V, bool) {
	t.checkMutable()
	b := hash.Index(key, len(t.buckets))
	prev := 0
	for i := t.buckets[b]; i != 0; prev, i = i, t.nodes[i-1].next {
		n := &t.nodes[i-1]
		if n.key != key {
			continue
		}
		if prev == 0 {
			t.buckets[b] = n.next
		} else {
			t.nodes[prev-1].next = n.next
		}
		v := n.value
		*n = node[V]{next: t.free}
		t.free = i
		t.length--
		return v, true
	}
	var zero V
	return zero, false
}

// ForEach calls f with every binding, in bucket order and then chain order.
// Callers must not rely on the order. f may update the value through the
// pointer; calling Put, Remove or Free from f panics.
func (t *Table[V]) ForEach(f func(key string, v *V)) {
	t.check()
	if f == nil {
		panic("symtable: nil function passed to ForEach")
	}
	t.walkers++
	defer func() { t.walkers-- }()

	visited := 0
	for _, head := range t.buckets {
		if visited == t.length {
			break
		}
		for i := head; i != 0; i = t.nodes[i-1].next {
			n := &t.nodes[i-1]
			f(n.key, &n.value)
			visited++
		}
	}
}

// Free releases all bindings and the bucket array. Values are not touched
// beyond dropping the table's references to them. Calling Free on a freed
// table is a no-op; calling any other method panics.
func (t *Table[V]) Free() {
	if t == nil {
		panic("symtable: nil table")
	}
	if t.walkers > 0 {
		panic("symtable: Free called from ForEach")
	}
	clear(t.nodes)
	t.nodes = nil
	t.buckets = nil
	t.free = 0
	t.length = 0
}

// Returns the node of key, or nil.
func (t *Table[V]) find(key string) *node[V] {
	for i := t.buckets[hash.Index(key, len(t.buckets))]; i != 0; i = t.nodes[i-1].next {
		if n := &t.nodes[i-1]; n.key == key {
			return n
		}
	}
	return nil
}

// Returns the index of an unused node, reusing freed nodes first.
func (t *Table[V]) alloc() int {
	if t.free != 0 {
		i := t.free
		t.free = t.nodes[i-1].next
		return i
	}
	t.nodes = append(t.nodes, node[V]{})
	return len(t.nodes)
}

// Moves to the next capacity and relinks every node into the new buckets.
// It does nothing at the last capacity or when MaxBuckets forbids the next
// one.
func (t *Table[V]) grow() {
	next := t.capIndex + 1
	if next >= len(capacities) {
		return
	}
	n := capacities[next]
	if t.opts.MaxBuckets > 0 && n > t.opts.MaxBuckets {
		logger.Printf("not growing to %d buckets beyond limit %d; %d bindings in %d buckets",
			n, t.opts.MaxBuckets, t.length, len(t.buckets))
		return
	}

	buckets := make([]int, n)
	for _, head := range t.buckets {
		for i := head; i != 0; {
			nd := &t.nodes[i-1]
			following := nd.next
			b := hash.Index(nd.key, n)
			nd.next = buckets[b]
			buckets[b] = i
			i = following
		}
	}
	logger.Printf("grew from %d to %d buckets with %d bindings",
		len(t.buckets), n, t.length)
	t.buckets = buckets
	t.capIndex = next
}

func (t *Table[V]) check() {
	if t == nil {
		panic("symtable: nil table")
	}
	if t.buckets == nil {
		panic("symtable: use of freed table")
	}
}

func (t *Table[V]) checkMutable() {
	t.check()
	if t.walkers > 0 {
		panic("symtable: table mutated from ForEach")
	}
}
