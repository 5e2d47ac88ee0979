// Package symtabletest keeps a test suite against symtable.Interface.
package symtabletest

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/symtab/symtab/pkg/hash"
	"github.com/symtab/symtab/pkg/symtable"
)

// Number of distinct keys used by tests that need a table past its first
// few growth steps.
const nManyKeys = 5000

// TestInterface runs the suite, calling newTable for a fresh empty table in
// each test.
func TestInterface(t *testing.T, newTable func() symtable.Interface[any]) {
	tests := []struct {
		name string
		fn   func(*testing.T, symtable.Interface[any])
	}{
		{"Scenario", testScenario},
		{"DistinctPuts", testDistinctPuts},
		{"DuplicatePut", testDuplicatePut},
		{"Replace", testReplace},
		{"Remove", testRemove},
		{"RemoveFromChain", testRemoveFromChain},
		{"SpecialKeys", testSpecialKeys},
		{"ValuesAreVerbatim", testValuesAreVerbatim},
		{"ForEach", testForEach},
		{"ForEachUpdatesValues", testForEachUpdatesValues},
		{"AgainstMap", testAgainstMap},
		{"Free", testFree},
		{"MutationFromForEachPanics", testMutationFromForEachPanics},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.fn(t, newTable())
		})
	}
}

func testScenario(t *testing.T, st symtable.Interface[any]) {
	wantBool(t, "Put(a, 1)", st.Put("a", 1), true)
	wantBool(t, "Put(b, 2)", st.Put("b", 2), true)
	wantBool(t, "Put(a, 3)", st.Put("a", 3), false)
	wantGet(t, st, "a", 1, true)

	old, ok := st.Replace("a", 3)
	wantValue(t, "Replace(a, 3)", old, ok, 1, true)
	wantGet(t, st, "a", 3, true)

	removed, ok := st.Remove("b")
	wantValue(t, "Remove(b)", removed, ok, 2, true)
	wantBool(t, "Contains(b)", st.Contains("b"), false)
	wantLen(t, st, 1)
}

func testDistinctPuts(t *testing.T, st symtable.Interface[any]) {
	wantLen(t, st, 0)
	for i := 0; i < nManyKeys; i++ {
		if !st.Put(key(i), i) {
			t.Fatalf("Put(%q) = false for a new key", key(i))
		}
		if st.Len() != i+1 {
			t.Fatalf("Len() = %d after %d puts", st.Len(), i+1)
		}
	}
	for i := 0; i < nManyKeys; i++ {
		if !st.Contains(key(i)) {
			t.Errorf("Contains(%q) = false", key(i))
		}
		wantGet(t, st, key(i), i, true)
	}
	wantGet(t, st, key(nManyKeys), nil, false)
}

func testDuplicatePut(t *testing.T, st symtable.Interface[any]) {
	st.Put("k", "first")
	for i := 0; i < 3; i++ {
		wantBool(t, "Put(k, again)", st.Put("k", "again"), false)
	}
	wantGet(t, st, "k", "first", true)
	wantLen(t, st, 1)
}

func testReplace(t *testing.T, st symtable.Interface[any]) {
	old, ok := st.Replace("absent", 1)
	wantValue(t, "Replace(absent, 1)", old, ok, nil, false)
	wantLen(t, st, 0)
	wantBool(t, "Contains(absent)", st.Contains("absent"), false)

	st.Put("k", 1)
	old, ok = st.Replace("k", 2)
	wantValue(t, "Replace(k, 2)", old, ok, 1, true)
	old, ok = st.Replace("k", 3)
	wantValue(t, "Replace(k, 3)", old, ok, 2, true)
	wantGet(t, st, "k", 3, true)
	wantLen(t, st, 1)
}

func testRemove(t *testing.T, st symtable.Interface[any]) {
	removed, ok := st.Remove("absent")
	wantValue(t, "Remove(absent)", removed, ok, nil, false)
	wantLen(t, st, 0)

	st.Put("x", 1)
	st.Put("y", 2)
	removed, ok = st.Remove("absent")
	wantValue(t, "Remove(absent)", removed, ok, nil, false)
	wantLen(t, st, 2)

	removed, ok = st.Remove("x")
	wantValue(t, "Remove(x)", removed, ok, 1, true)
	wantBool(t, "Contains(x)", st.Contains("x"), false)
	removed, ok = st.Remove("x")
	wantValue(t, "Remove(x) again", removed, ok, nil, false)
	wantLen(t, st, 1)

	// A removed key can be bound again.
	wantBool(t, "Put(x, 3)", st.Put("x", 3), true)
	wantGet(t, st, "x", 3, true)
	wantLen(t, st, 2)
}

// Removes bindings from the tail, the middle and the head of one chain.
func testRemoveFromChain(t *testing.T, st symtable.Interface[any]) {
	keys := collidingKeys(4, symtable.Capacities()[0])
	for i, k := range keys {
		st.Put(k, i)
	}
	// keys[3] heads the chain, keys[0] is its tail.
	for _, i := range []int{0, 2, 3, 1} {
		removed, ok := st.Remove(keys[i])
		wantValue(t, "Remove("+strconv.Quote(keys[i])+")", removed, ok, i, true)
		wantBool(t, "Contains after Remove", st.Contains(keys[i]), false)
		for j := range keys {
			if j != i && st.Contains(keys[j]) {
				wantGet(t, st, keys[j], j, true)
			}
		}
	}
	wantLen(t, st, 0)
}

func testSpecialKeys(t *testing.T, st symtable.Interface[any]) {
	keys := []string{"", "\x00", "a\x00b", "a\x00c", "\xff\xfe", "ключ", " "}
	for i, k := range keys {
		wantBool(t, "Put("+strconv.Quote(k)+")", st.Put(k, i), true)
	}
	for i, k := range keys {
		wantGet(t, st, k, i, true)
	}
	wantLen(t, st, len(keys))
}

func testValuesAreVerbatim(t *testing.T, st symtable.Interface[any]) {
	p := new(int)
	st.Put("p", p)
	st.Put("nil", nil)

	got, _ := st.Get("p")
	if got.(*int) != p {
		t.Errorf("Get(p) returns a different pointer")
	}
	// A nil value is still a binding.
	wantGet(t, st, "nil", nil, true)
	wantBool(t, "Contains(nil)", st.Contains("nil"), true)
	removed, ok := st.Remove("p")
	if !ok || removed.(*int) != p {
		t.Errorf("Remove(p) returns a different pointer")
	}
}

func testForEach(t *testing.T, st symtable.Interface[any]) {
	count := 0
	st.ForEach(func(string, *any) { count++ })
	if count != 0 {
		t.Errorf("ForEach on empty table visits %d bindings", count)
	}

	want := make(map[string]any)
	for i := 0; i < nManyKeys; i++ {
		st.Put(key(i), i)
		want[key(i)] = i
	}
	for i := 0; i < nManyKeys; i += 3 {
		st.Remove(key(i))
		delete(want, key(i))
	}

	got := make(map[string]any)
	visits := 0
	st.ForEach(func(k string, v *any) {
		visits++
		if _, dup := got[k]; dup {
			t.Errorf("ForEach visits %q more than once", k)
		}
		got[k] = *v
	})
	if visits != st.Len() {
		t.Errorf("ForEach visits %d bindings, Len() = %d", visits, st.Len())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bindings visited by ForEach (-want +got):\n%s", diff)
	}
}

func testForEachUpdatesValues(t *testing.T, st symtable.Interface[any]) {
	for i := 0; i < 100; i++ {
		st.Put(key(i), i)
	}
	st.ForEach(func(k string, v *any) { *v = (*v).(int) * 2 })
	for i := 0; i < 100; i++ {
		wantGet(t, st, key(i), i*2, true)
	}
}

// Applies random operations to the table and a Go map, checking that they
// agree throughout.
func testAgainstMap(t *testing.T, st symtable.Interface[any]) {
	const (
		nOps  = 20000
		nKeys = 3000
	)
	r := rand.New(rand.NewSource(1))
	ref := make(map[string]any)
	for op := 0; op < nOps; op++ {
		k := key(r.Intn(nKeys))
		_, in := ref[k]
		switch r.Intn(4) {
		case 0, 1:
			wantBool(t, "Put("+k+")", st.Put(k, op), !in)
			if !in {
				ref[k] = op
			}
		case 2:
			old, ok := st.Replace(k, op)
			wantValue(t, "Replace("+k+")", old, ok, ref[k], in)
			if in {
				ref[k] = op
			}
		case 3:
			removed, ok := st.Remove(k)
			wantValue(t, "Remove("+k+")", removed, ok, ref[k], in)
			delete(ref, k)
		}
		if st.Len() != len(ref) {
			t.Fatalf("after op %d, Len() = %d, want %d", op, st.Len(), len(ref))
		}
	}
	for k, v := range ref {
		wantGet(t, st, k, v, true)
	}
}

func testFree(t *testing.T, st symtable.Interface[any]) {
	for i := 0; i < 1000; i++ {
		st.Put(key(i), i)
	}
	st.Free()
	// Freeing again is allowed.
	st.Free()
	wantPanic(t, "Get after Free", func() { st.Get("a") })
	wantPanic(t, "Put after Free", func() { st.Put("a", 1) })
	wantPanic(t, "Len after Free", func() { st.Len() })
}

func testMutationFromForEachPanics(t *testing.T, st symtable.Interface[any]) {
	st.Put("a", 1)
	wantPanic(t, "Put from ForEach", func() {
		st.ForEach(func(string, *any) { st.Put("b", 2) })
	})
	wantPanic(t, "Remove from ForEach", func() {
		st.ForEach(func(k string, _ *any) { st.Remove(k) })
	})
	wantPanic(t, "ForEach(nil)", func() { st.ForEach(nil) })
	// The table is still usable after a callback panicked.
	wantBool(t, "Put(b, 2)", st.Put("b", 2), true)
	wantLen(t, st, 2)
}

func key(i int) string { return "key" + strconv.Itoa(i) }

// Returns n distinct keys that hash to the same bucket among nBuckets.
func collidingKeys(n, nBuckets int) []string {
	byBucket := make(map[int][]string)
	for i := 0; ; i++ {
		k := key(i)
		b := hash.Index(k, nBuckets)
		byBucket[b] = append(byBucket[b], k)
		if len(byBucket[b]) == n {
			return byBucket[b]
		}
	}
}

func wantLen(t *testing.T, st symtable.Interface[any], want int) {
	t.Helper()
	if got := st.Len(); got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func wantBool(t *testing.T, what string, got, want bool) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func wantGet(t *testing.T, st symtable.Interface[any], k string, wantV any, wantOK bool) {
	t.Helper()
	v, ok := st.Get(k)
	wantValue(t, "Get("+strconv.Quote(k)+")", v, ok, wantV, wantOK)
}

func wantValue(t *testing.T, what string, v any, ok bool, wantV any, wantOK bool) {
	t.Helper()
	if v != wantV || ok != wantOK {
		t.Errorf("%s = (%v, %v), want (%v, %v)", what, v, ok, wantV, wantOK)
	}
}

func wantPanic(t *testing.T, what string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", what)
		}
	}()
	f()
}
