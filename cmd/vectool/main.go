// File: cmd/vectool/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// vectool drives hioload-vec containers from the command line: split,
// join, sort and dedupe text, heap-sort integers, pipe lines through an
// SPSC ring, and round-trip the bracketed text form.

package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
