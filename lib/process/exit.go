// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUsage marks a command-line mistake. Fatal exits with status 2 for
// it, like flag parsers do.
var ErrUsage = errors.New("usage")

// Usagef returns an error wrapping ErrUsage.
func Usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// ExitCode is the status Fatal exits with for err: 2 for usage errors,
// 1 otherwise.
func ExitCode(err error) int {
	if errors.Is(err, ErrUsage) {
		return 2
	}
	return 1
}

// Fatal writes "<binary>: err" to stderr and exits with ExitCode(err).
// Used by main() for errors from run(), including fatal socket
// transport errors, where the structured logger may already be gone.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
	os.Exit(ExitCode(err))
}
