package errutil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti_Nil(t *testing.T) {
	if err := Multi(); err != nil {
		t.Errorf("Multi() = %v, want nil", err)
	}
	if err := Multi(nil, nil); err != nil {
		t.Errorf("Multi(nil, nil) = %v, want nil", err)
	}
}

func TestMulti_Single(t *testing.T) {
	if err := Multi(nil, err1, nil); err != err1 {
		t.Errorf("Multi(nil, err1, nil) = %v, want err1", err)
	}
}

func TestMulti_Flattens(t *testing.T) {
	got := Multi(Multi(err1, err2), nil, err3)
	want := "multiple errors: error 1; error 2; error 3"
	if diff := cmp.Diff(want, got.Error()); diff != "" {
		t.Errorf("Error() (-want +got):\n%s", diff)
	}
}

func TestMulti_Is(t *testing.T) {
	err := Multi(err1, err2)
	if !errors.Is(err, err2) {
		t.Errorf("errors.Is(Multi(err1, err2), err2) = false")
	}
	if errors.Is(err, err3) {
		t.Errorf("errors.Is(Multi(err1, err2), err3) = true")
	}
}
