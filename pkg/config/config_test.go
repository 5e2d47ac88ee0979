package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/symtab/symtab/pkg/must"
	"github.com/symtab/symtab/pkg/symtable"
	"github.com/symtab/symtab/pkg/testutil"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Config
		wantErr string
	}{
		{name: "empty", yaml: "", want: Config{Impl: ImplHash}},
		{
			name: "all keys",
			yaml: "impl: list\nmax-bindings: 10\nmax-buckets: 1021\nlog: /tmp/x\n",
			want: Config{Impl: ImplList, MaxBindings: 10, MaxBuckets: 1021, Log: "/tmp/x"},
		},
		{
			name: "partial",
			yaml: "max-buckets: 4093\n",
			want: Config{Impl: ImplHash, MaxBuckets: 4093},
		},
		{name: "unknown key", yaml: "buckets: 3\n", wantErr: "field buckets not found"},
		{name: "bad impl", yaml: "impl: tree\n", wantErr: `impl must be "hash" or "list"`},
		{name: "bad type", yaml: "max-bindings: many\n", wantErr: "cannot unmarshal"},
		{
			name:    "several problems",
			yaml:    "impl: tree\nmax-bindings: -1\n",
			wantErr: "multiple errors",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse([]byte(test.yaml))
			if test.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), test.wantErr) {
					t.Errorf("got error %v, want one containing %q", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("got error %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("config (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fname := filepath.Join(testutil.TempDir(t), "symtab.yaml")
	must.WriteFile(fname, "impl: list\n")
	cfg, err := Load(fname)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Impl != ImplList {
		t.Errorf("Impl = %q, want %q", cfg.Impl, ImplList)
	}

	must.WriteFile(fname, "impl: nope\n")
	if _, err := Load(fname); err == nil || !strings.HasPrefix(err.Error(), fname+": ") {
		t.Errorf("Load of invalid file returns %v", err)
	}

	if _, err := Load(filepath.Join(testutil.TempDir(t), "missing")); err == nil {
		t.Errorf("Load of missing file returns nil error")
	}
}

func TestMarshal_RoundTrips(t *testing.T) {
	cfg := Config{Impl: ImplList, MaxBindings: 5, MaxBuckets: 2039, Log: "log"}
	data := must.OK1(cfg.Marshal())
	got := must.OK1(Parse(data))
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestOptions(t *testing.T) {
	cfg := Config{MaxBindings: 1, MaxBuckets: 2}
	want := symtable.Options{MaxBindings: 1, MaxBuckets: 2}
	if got := cfg.Options(); got != want {
		t.Errorf("Options() = %+v, want %+v", got, want)
	}
}
