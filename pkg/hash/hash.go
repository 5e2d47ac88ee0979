// Package hash contains the string hash function used by symbol tables.
//
// The hash folds each byte of a key into an accumulator with
//
//	acc = acc*Multiplier + b
//
// using wraparound uint64 arithmetic. The accumulator does not depend on the
// bucket count, so a key can be rehashed into any number of buckets
// reproducibly.
package hash

// Multiplier is the odd multiplier of the fold.
const Multiplier uint64 = 65599

// Combine folds one byte into an accumulator.
func Combine(acc uint64, b byte) uint64 {
	return acc*Multiplier + uint64(b)
}

// String returns the hash of s. Every byte of s is hashed, including NUL
// bytes.
func String(s string) uint64 {
	var acc uint64
	for i := 0; i < len(s); i++ {
		acc = Combine(acc, s[i])
	}
	return acc
}

// Index returns the bucket of s in a table with n buckets, in [0, n). It
// panics if n is not positive.
func Index(s string, n int) int {
	if n <= 0 {
		panic("hash: non-positive bucket count")
	}
	return int(String(s) % uint64(n))
}
