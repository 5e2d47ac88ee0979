package symtable

import "strings"

// List is a symbol table backed by a singly linked list. Every operation
// scans the list, so it is only useful as a reference for [Table].
//
// New bindings are added to the front of the list. The zero value is an
// empty list ready to use.
type List[V any] struct {
	first   *listNode[V]
	length  int
	freed   bool
	walkers int
}

type listNode[V any] struct {
	key   string
	value V
	next  *listNode[V]
}

// NewList returns an empty List.
func NewList[V any]() *List[V] {
	return &List[V]{}
}

func (l *List[V]) Len() int {
	l.check()
	return l.length
}

func (l *List[V]) Put(key string, v V) bool {
	l.checkMutable()
	if l.find(key) != nil {
		return false
	}
	l.first = &listNode[V]{strings.Clone(key), v, l.first}
	l.length++
	return true
}

func (l *List[V]) Replace(key string, v V) (V, bool) {
	l.check()
	n := l.find(key)
	if n == nil {
		var zero V
		return zero, false
	}
	old := n.value
	n.value = v
	return old, true
}

func (l *List[V]) Contains(key string) bool {
	l.check()
	return l.find(key) != nil
}

func (l *List[V]) Get(key string) (V, bool) {
	l.check()
	n := l.find(key)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

func (l *List[V]) Remove(key string) (V, bool) {
	l.checkMutable()
	var prev *listNode[V]
	for n := l.first; n != nil; prev, n = n, n.next {
		if n.key != key {
			continue
		}
		if prev == nil {
			l.first = n.next
		} else {
			prev.next = n.next
		}
		l.length--
		return n.value, true
	}
	var zero V
	return zero, false
}

func (l *List[V]) ForEach(f func(key string, v *V)) {
	l.check()
	if f == nil {
		panic("symtable: nil function passed to ForEach")
	}
	l.walkers++
	defer func() { l.walkers-- }()
	for n := l.first; n != nil; n = n.next {
		f(n.key, &n.value)
	}
}

func (l *List[V]) Free() {
	if l == nil {
		panic("symtable: nil table")
	}
	if l.walkers > 0 {
		panic("symtable: Free called from ForEach")
	}
	l.first = nil
	l.length = 0
	l.freed = true
}

func (l *List[V]) find(key string) *listNode[V] {
	for n := l.first; n != nil; n = n.next {
		if n.key == key {
			return n
		}
	}
	return nil
}

func (l *List[V]) check() {
	if l == nil {
		panic("symtable: nil table")
	}
	if l.freed {
		panic("symtable: use of freed table")
	}
}

func (l *List[V]) checkMutable() {
	l.check()
	if l.walkers > 0 {
		panic("symtable: table mutated from ForEach")
	}
}
