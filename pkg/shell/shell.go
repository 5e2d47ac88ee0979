// Package shell is the command interpreter of symtab. It reads commands, one
// per line, from stdin or a script file, and applies them to a symbol table.
package shell

import (
	"fmt"
	"os"

	"github.com/symtab/symtab/pkg/config"
	"github.com/symtab/symtab/pkg/logutil"
	"github.com/symtab/symtab/pkg/prog"
	"github.com/symtab/symtab/pkg/symtable"
	"github.com/symtab/symtab/pkg/sys"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 1 {
		return prog.BadUsage("at most one script file may be given")
	}
	st, err := newTable(f.Config)
	if err != nil {
		return err
	}
	defer st.Free()

	in, interactive := fds[0], sys.IsATTY(fds[0])
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot read script: %w", err)
		}
		defer file.Close()
		in, interactive = file, false
	}

	logger.Printf("starting session with %s table, interactive = %v",
		f.Config.Impl, interactive)
	s := &session{table: st, out: fds[1], errOut: fds[2], json: f.JSON}
	if interactive {
		s.prompt = "symtab> "
	}
	nErrors, err := s.run(in)
	if err != nil {
		return err
	}
	if nErrors > 0 {
		return prog.Exit(1)
	}
	return nil
}

func newTable(cfg config.Config) (symtable.Interface[string], error) {
	switch cfg.Impl {
	case config.ImplList:
		if cfg.MaxBindings != 0 || cfg.MaxBuckets != 0 {
			logger.Println("limits are ignored by the list implementation")
		}
		return symtable.NewList[string](), nil
	default:
		return symtable.NewWithOptions[string](cfg.Options())
	}
}
