package symtable

import (
	"strings"
	"testing"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantErrs []string
	}{
		{"zero value", Options{}, nil},
		{"limits", Options{MaxBindings: 10, MaxBuckets: 4093}, nil},
		{"max buckets equal to first capacity", Options{MaxBuckets: 509}, nil},
		{"negative max bindings", Options{MaxBindings: -1},
			[]string{"max bindings must not be negative"}},
		{"negative max buckets", Options{MaxBuckets: -5},
			[]string{"max buckets must not be negative"}},
		{"small max buckets", Options{MaxBuckets: 100},
			[]string{"smaller than the initial bucket count 509"}},
		{"two problems", Options{MaxBindings: -1, MaxBuckets: 1},
			[]string{"multiple errors", "max bindings", "smaller than"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.opts.Validate()
			if test.wantErrs == nil {
				if err != nil {
					t.Errorf("got error %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("got nil error, want one containing %q", test.wantErrs)
			}
			for _, want := range test.wantErrs {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not contain %q", err, want)
				}
			}
		})
	}
}

func TestNewWithOptions_Invalid(t *testing.T) {
	st, err := NewWithOptions[int](Options{MaxBuckets: 1})
	if err == nil || st != nil {
		t.Errorf("NewWithOptions with bad options = (%v, %v), want (nil, error)", st, err)
	}
}
