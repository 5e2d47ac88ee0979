// Package logutil provides loggers for debug output.
//
// All loggers obtained from GetLogger share one output, which discards
// everything until SetOutput or SetOutputFile is called.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	outFile *os.File
	loggers []*log.Logger
)

// GetLogger returns a logger whose messages start with prefix, followed by
// the standard timestamp and the file position of the call.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags|log.Lshortfile)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects all loggers, including those obtained before the call.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	setOutput(w)
	if outFile != nil {
		outFile.Close()
		outFile = nil
	}
}

func setOutput(w io.Writer) {
	out = w
	for _, logger := range loggers {
		logger.SetOutput(w)
	}
}

// SetOutputFile redirects all loggers to the named file, truncating it. An
// empty name discards all output.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	setOutput(file)
	if outFile != nil {
		outFile.Close()
	}
	outFile = file
	return nil
}
