package hash

import (
	"testing"

	"github.com/symtab/symtab/pkg/tt"
)

var Args = tt.Args

func TestString(t *testing.T) {
	tt.Test(t, tt.Fn("String", String), tt.Table{
		Args("").Rets(uint64(0)),
		Args("a").Rets(uint64('a')),
		Args("ab").Rets(uint64('a')*65599 + 'b'),
		Args("abc").Rets((uint64('a')*65599+'b')*65599 + 'c'),
		// Bytes above 0x7f are not sign-extended.
		Args("\xff").Rets(uint64(0xff)),
		// NUL is an ordinary byte.
		Args("a\x00").Rets(uint64('a') * 65599),
	})
}

func TestString_Wraparound(t *testing.T) {
	// 65599^4 already overflows 64 bits for a long enough key; the fold must
	// keep working modulo 2^64 rather than saturating.
	s := "the quick brown fox jumps over the lazy dog"
	var want uint64
	for i := 0; i < len(s); i++ {
		want = want*65599 + uint64(s[i])
	}
	if got := String(s); got != want {
		t.Errorf("String(%q) = %d, want %d", s, got, want)
	}
}

func TestIndex(t *testing.T) {
	tt.Test(t, tt.Fn("Index", Index), tt.Table{
		Args("", 509).Rets(0),
		Args("a", 509).Rets(int('a' % 509)),
		Args("ab", 509).Rets(int((uint64('a')*65599 + 'b') % 509)),
		Args("ab", 1021).Rets(int((uint64('a')*65599 + 'b') % 1021)),
	})
}

func TestIndex_InRange(t *testing.T) {
	for _, n := range []int{1, 2, 509, 65521} {
		for _, s := range []string{"", "x", "symbol", "\xff\xfe\xfd", "a longer key with spaces"} {
			if i := Index(s, n); i < 0 || i >= n {
				t.Errorf("Index(%q, %d) = %d, out of range", s, n, i)
			}
		}
	}
}

func TestIndex_PanicsOnBadBucketCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Index did not panic with zero buckets")
		}
	}()
	Index("a", 0)
}
