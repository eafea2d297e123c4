//go:build !unix

package main

import (
	"fmt"
	"os"
)

// redirectStdio swaps os.Stdout and os.Stderr for path. Runtime panic
// output still goes to the original stderr on these platforms.
func redirectStdio(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	os.Stdout, os.Stderr = f, f
	return nil
}
