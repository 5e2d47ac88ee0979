// Package progtest contains utilities for testing [prog.Program]
// implementations by running them with prepared stdin and checking what they
// write and how they exit.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/symtab/symtab/pkg/must"
	"github.com/symtab/symtab/pkg/prog"
)

// Case is a test case for Test, created by ThatSymtab.
type Case struct {
	args  []string
	stdin string

	want result
}

type result struct {
	exitCode int
	stdout   output
	stderr   output
}

type output struct {
	content  string
	partial  bool
	anything bool
}

func (o output) String() string {
	switch {
	case o.anything:
		return "anything"
	case o.partial:
		return "text containing " + quote(o.content)
	default:
		return quote(o.content)
	}
}

func (o output) matches(s string) bool {
	switch {
	case o.anything:
		return true
	case o.partial:
		return strings.Contains(s, o.content)
	default:
		return s == o.content
	}
}

// ThatSymtab returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "symtab -bad-flag" exits with 2 reads
// like:
//
//	ThatSymtab("-bad-flag").ExitsWith(2)
func ThatSymtab(args ...string) Case {
	return Case{args: append([]string{"symtab"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatSymtab("-cpuprofile", "x").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program to return with
// the given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exitCode = code
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program to
// write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStdoutAnything returns an altered Case that accepts any stdout.
func (c Case) WritesStdoutAnything() Case {
	c.want.stdout = output{anything: true}
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program to
// write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exitCode != c.want.exitCode {
				t.Errorf("got exit code %v, want %v", r.exitCode, c.want.exitCode)
			}
			if !c.want.stdout.matches(r.stdout.content) {
				t.Errorf("got stdout %v, want %v", r.stdout, c.want.stdout)
			}
			if !c.want.stderr.matches(r.stderr.content) {
				t.Errorf("got stderr %v, want %v", r.stderr, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments and stdin. It returns the
// program's exit code and output to stdout and stderr.
func Run(p prog.Program, args []string, stdin string) (exit int, stdout, stderr string) {
	r := run(p, args, stdin)
	return r.exitCode, r.stdout.content, r.stderr.content
}

func run(p prog.Program, args []string, stdin string) result {
	r0, w0 := must.Pipe()
	// Write stdin in the background; a program may exit before consuming all
	// of it.
	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()

	// Drain stdout and stderr concurrently, so that the program does not
	// block on a full pipe.
	stdoutCh := make(chan string, 1)
	stderrCh := make(chan string, 1)
	go func() { stdoutCh <- string(must.ReadAllAndClose(r1)) }()
	go func() { stderrCh <- string(must.ReadAllAndClose(r2)) }()

	exitCode := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	r0.Close()
	w1.Close()
	w2.Close()

	return result{exitCode, output{content: <-stdoutCh}, output{content: <-stderrCh}}
}

func quote(s string) string {
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return "\"" + strings.ReplaceAll(s, "\n", "\\n") + "\""
}
