// Package symtable implements symbol tables: unordered collections of
// bindings, each associating a unique string key with a value.
//
// Two implementations share the [Interface] method set. [Table] uses open
// hashing with separate chaining and grows its bucket array through a fixed
// sequence of capacities; it is the one to use. [List] scans a singly linked
// list and only serves as a slow reference.
//
// A table owns copies of its keys and stores values verbatim. It never
// inspects values, so V is typically a pointer or a small value type chosen
// by the caller.
//
// Neither implementation is safe for concurrent use. At most one goroutine may
// mutate a table at a time, and readers may only run concurrently with each
// other when there is no mutator.
//
// Misuse, such as calling a method on a nil or freed table or mutating a table
// from inside ForEach, panics.
package symtable

import "github.com/symtab/symtab/pkg/logutil"

var logger = logutil.GetLogger("[symtable] ")

// Interface is the method set shared by [Table] and [List].
type Interface[V any] interface {
	// Len returns the number of bindings.
	Len() int
	// Put adds a binding of key to v and returns true. If key is already
	// bound, or the table cannot hold another binding, it returns false and
	// leaves the table unchanged.
	Put(key string, v V) bool
	// Replace rebinds an existing key to v and returns the old value and
	// true. If key is not bound, it returns the zero value and false.
	Replace(key string, v V) (V, bool)
	// Contains reports whether key is bound.
	Contains(key string) bool
	// Get returns the value bound to key and true, or the zero value and
	// false if key is not bound.
	Get(key string) (V, bool)
	// Remove removes the binding of key and returns its value and true, or
	// the zero value and false if key is not bound.
	Remove(key string) (V, bool)
	// ForEach calls f with every binding. The order is unspecified. f may
	// update the value through the pointer, but must not add or remove
	// bindings.
	ForEach(f func(key string, v *V))
	// Free releases all bindings. The table must not be used afterwards.
	Free()
}

var (
	_ Interface[any] = (*Table[any])(nil)
	_ Interface[any] = (*List[any])(nil)
)

// Bucket counts a Table goes through as it grows.
var capacities = [...]int{509, 1021, 2039, 4093, 8191, 16381, 32749, 65521}

// Capacities returns the sequence of bucket counts a Table goes through as it
// grows. A new Table starts with the first one; growth stops at the last one.
func Capacities() []int {
	return append([]int(nil), capacities[:]...)
}
