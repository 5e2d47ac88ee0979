// Package config reads the configuration file of the symtab tool.
//
// The file is YAML:
//
//	impl: hash          # or "list"
//	max-bindings: 0     # 0 means no limit
//	max-buckets: 0      # 0 means no limit
//	log: /tmp/symtab.log
//
// Every key is optional. Unknown keys are errors.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/symtab/symtab/pkg/errutil"
	"github.com/symtab/symtab/pkg/symtable"
)

// Implementations that can be named by Config.Impl.
const (
	ImplHash = "hash"
	ImplList = "list"
)

// Config keeps the settings of the symtab tool.
type Config struct {
	Impl        string `yaml:"impl"`
	MaxBindings int    `yaml:"max-bindings"`
	MaxBuckets  int    `yaml:"max-buckets"`
	Log         string `yaml:"log"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{Impl: ImplHash}
}

// Load reads the named file on top of Default.
func Load(fname string) (Config, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}

// Parse parses YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document is io.EOF; it leaves the defaults in place.
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns an error describing every invalid setting.
func (cfg Config) Validate() error {
	var errs []error
	if cfg.Impl != ImplHash && cfg.Impl != ImplList {
		errs = append(errs, fmt.Errorf("impl must be %q or %q, got %q",
			ImplHash, ImplList, cfg.Impl))
	}
	return errutil.Multi(append(errs, cfg.Options().Validate())...)
}

// Options returns the table options implied by cfg.
func (cfg Config) Options() symtable.Options {
	return symtable.Options{MaxBindings: cfg.MaxBindings, MaxBuckets: cfg.MaxBuckets}
}

// Marshal renders cfg as YAML.
func (cfg Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}
