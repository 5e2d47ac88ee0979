package symtable

import (
	"fmt"

	"github.com/symtab/symtab/pkg/errutil"
)

// Options limits the resources a Table may use. The zero value imposes no
// limits.
type Options struct {
	// MaxBindings is the maximum number of bindings. Put returns false once
	// it is reached. Zero means no limit.
	MaxBindings int
	// MaxBuckets is the maximum number of buckets. Growth steps that would
	// exceed it are skipped, and the table keeps working with longer chains.
	// Zero means no limit.
	MaxBuckets int
}

// Validate returns an error describing every invalid field of opts.
func (opts Options) Validate() error {
	var errs []error
	if opts.MaxBindings < 0 {
		errs = append(errs,
			fmt.Errorf("max bindings must not be negative, got %d", opts.MaxBindings))
	}
	if opts.MaxBuckets < 0 {
		errs = append(errs,
			fmt.Errorf("max buckets must not be negative, got %d", opts.MaxBuckets))
	} else if opts.MaxBuckets > 0 && opts.MaxBuckets < capacities[0] {
		errs = append(errs,
			fmt.Errorf("max buckets %d is smaller than the initial bucket count %d",
				opts.MaxBuckets, capacities[0]))
	}
	return errutil.Multi(errs...)
}
