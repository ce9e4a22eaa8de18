//go:build !linux && !darwin && !windows

package main

import (
	"fmt"
	"os"
	"runtime"
)

func main() {
	fmt.Fprintf(os.Stderr, "hotmic: unsupported platform %s\n", runtime.GOOS)
	os.Exit(1)
}
