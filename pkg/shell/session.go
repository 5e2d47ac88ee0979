package shell

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/symtab/symtab/pkg/symtable"
)

// Maximum length of a command line.
const maxLine = 1 << 20

type session struct {
	table  symtable.Interface[string]
	out    io.Writer
	errOut io.Writer
	json   bool
	prompt string
}

// Placeholder written for a missing value.
type none struct{}

type command struct {
	// Number of arguments. A negative value -n means at least n, with the
	// arguments from the n-th on joined by spaces.
	arity int
	run   func(s *session, args []string) any
}

var commands = map[string]command{
	"put": {-2, func(s *session, args []string) any {
		return s.table.Put(args[0], args[1])
	}},
	"replace": {-2, func(s *session, args []string) any {
		return orNone(s.table.Replace(args[0], args[1]))
	}},
	"get": {1, func(s *session, args []string) any {
		return orNone(s.table.Get(args[0]))
	}},
	"remove": {1, func(s *session, args []string) any {
		return orNone(s.table.Remove(args[0]))
	}},
	"contains": {1, func(s *session, args []string) any {
		return s.table.Contains(args[0])
	}},
	"len": {0, func(s *session, _ []string) any {
		return s.table.Len()
	}},
	"buckets": {0, func(s *session, _ []string) any {
		if bc, ok := s.table.(interface{ BucketCount() int }); ok {
			return bc.BucketCount()
		}
		return none{}
	}},
	"list": {0, func(s *session, _ []string) any {
		m := make(map[string]string, s.table.Len())
		s.table.ForEach(func(k string, v *string) { m[k] = *v })
		return m
	}},
}

func orNone(v string, ok bool) any {
	if !ok {
		return none{}
	}
	return v
}

// Runs commands read from r until EOF or a quit command. It returns the
// number of commands that failed, and any error reading r.
func (s *session) run(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4096), maxLine)
	nErrors := 0
	for lineNo := 1; ; lineNo++ {
		io.WriteString(s.out, s.prompt)
		if !sc.Scan() {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "quit" {
			break
		}
		if err := s.exec(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(s.errOut, "line %d: %v\n", lineNo, err)
			nErrors++
		}
	}
	return nErrors, sc.Err()
}

func (s *session) exec(name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	switch {
	case cmd.arity >= 0 && len(args) != cmd.arity:
		return fmt.Errorf("%s takes %d arguments, got %d", name, cmd.arity, len(args))
	case cmd.arity < 0 && len(args) < -cmd.arity:
		return fmt.Errorf("%s takes at least %d arguments, got %d", name, -cmd.arity, len(args))
	case cmd.arity < 0:
		n := -cmd.arity
		args = append(args[:n-1:n-1], strings.Join(args[n-1:], " "))
	}
	s.write(cmd.run(s, args))
	return nil
}

func (s *session) write(v any) {
	if s.json {
		if _, ok := v.(none); ok {
			v = nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			// Only strings, ints, bools and string maps reach here.
			panic(err)
		}
		fmt.Fprintf(s.out, "%s\n", b)
		return
	}
	switch v := v.(type) {
	case none:
		fmt.Fprintln(s.out, "(none)")
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(s.out, "%s=%s\n", k, v[k])
		}
	default:
		fmt.Fprintln(s.out, v)
	}
}
