//go:build unix

package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// redirectStdio points file descriptors 1 and 2 at path, so writes from
// every goroutine and the runtime's own panic output land in the file.
func redirectStdio(path string) error {
	fd, err := unix.Open(path, unix.O_CREAT|unix.O_APPEND|unix.O_WRONLY|unix.O_CLOEXEC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)

	for _, target := range []int{unix.Stdout, unix.Stderr} {
		if err := unix.Dup2(fd, target); err != nil {
			return fmt.Errorf("dup2 %s onto fd %d: %w", path, target, err)
		}
	}
	return nil
}
