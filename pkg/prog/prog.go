// Package prog provides the entry point to symtab. It parses flags, resolves
// the configuration and runs the first suitable subprogram.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/symtab/symtab/pkg/config"
	"github.com/symtab/symtab/pkg/logutil"
)

// Flags keeps command-line flags, and the configuration resolved from them
// and the configuration file.
type Flags struct {
	ConfigFile, Log, CPUProfile string

	Help, Version, BuildInfo, JSON bool

	// Config is the configuration file (or the defaults) with explicitly
	// given flags applied on top. It is set before any Program runs.
	Config config.Config
}

func newFlagSet(f *Flags, flagCfg *config.Config) *flag.FlagSet {
	fs := flag.NewFlagSet("symtab", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.ConfigFile, "config", "", "path to a YAML configuration file")
	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")
	fs.StringVar(&f.CPUProfile, "cpuprofile", "", "write cpu profile to file")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.JSON, "json", false, "show output in JSON")

	fs.StringVar(&flagCfg.Impl, "impl", "", "table implementation, hash or list")
	fs.IntVar(&flagCfg.MaxBindings, "max-bindings", 0, "maximum number of bindings, 0 for no limit")
	fs.IntVar(&flagCfg.MaxBuckets, "max-buckets", 0, "maximum number of buckets, 0 for no limit")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: symtab [flags] [script]")
	fmt.Fprintln(out, "Commands are read from the script, or stdin if none is given, one per line.")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	var flagCfg config.Config
	fs := newFlagSet(f, &flagCfg)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h was requested but
			// not defined. Treat it like any other undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	if f.CPUProfile != "" {
		f, err := os.Create(f.CPUProfile)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot create CPU profile:", err)
			fmt.Fprintln(fds[2], "Continuing without CPU profiling.")
		} else {
			pprof.StartCPUProfile(f)
			defer pprof.StopCPUProfile()
		}
	}

	f.Config, err = resolveConfig(f, fs, flagCfg)
	if err != nil {
		fmt.Fprintln(fds[2], err)
		return 2
	}
	if f.Config.Log != "" {
		if err := logutil.SetOutputFile(f.Config.Log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Loads the configuration file if there is one, and applies the flags that
// were given explicitly.
func resolveConfig(f *Flags, fs *flag.FlagSet, flagCfg config.Config) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		var err error
		cfg, err = config.Load(f.ConfigFile)
		if err != nil {
			return config.Config{}, err
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "impl":
			cfg.Impl = flagCfg.Impl
		case "max-bindings":
			cfg.MaxBindings = flagCfg.MaxBindings
		case "max-buckets":
			cfg.MaxBuckets = flagCfg.MaxBuckets
		case "log":
			cfg.Log = f.Log
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	// If we have reached here, all subprograms have returned ErrNotSuitable
	return ErrNotSuitable
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}
