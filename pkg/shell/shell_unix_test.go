//go:build unix

package shell_test

import (
	"os"
	"strings"
	"testing"

	"github.com/creack/pty"
	"github.com/symtab/symtab/pkg/must"
	"github.com/symtab/symtab/pkg/prog"
	. "github.com/symtab/symtab/pkg/shell"
)

func TestInteractivePrompt(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("cannot open pty: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if _, err := ptmx.WriteString("put a 1\nquit\n"); err != nil {
		t.Fatal(err)
	}
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()
	exit := prog.Run([3]*os.File{tty, w1, w2}, []string{"symtab"}, Program{})
	w1.Close()
	w2.Close()

	stdout := string(must.ReadAllAndClose(r1))
	stderr := string(must.ReadAllAndClose(r2))
	if exit != 0 {
		t.Errorf("exit = %d, stderr = %q", exit, stderr)
	}
	if !strings.HasPrefix(stdout, "symtab> true\nsymtab> ") {
		t.Errorf("stdout = %q, want prompts", stdout)
	}
}
