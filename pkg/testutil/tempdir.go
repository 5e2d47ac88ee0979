package testutil

import (
	"os"
	"path/filepath"

	"github.com/symtab/symtab/pkg/must"
)

// TempDir creates a temporary directory with symlinks in its path resolved,
// and arranges for it to be removed recursively when the test finishes.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "symtabtest"))
	dir = must.OK1(filepath.EvalSymlinks(dir))
	c.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			panic(err)
		}
	})
	return dir
}
