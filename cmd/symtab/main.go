// Symtab drives a symbol table from the command line. It reads commands such
// as "put key value" and "get key" from stdin or a script file and prints the
// results, which makes it handy for exercising the table by hand or from
// shell scripts.
package main

import (
	"os"

	"github.com/symtab/symtab/pkg/buildinfo"
	"github.com/symtab/symtab/pkg/prog"
	"github.com/symtab/symtab/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, shell.Program{})))
}
