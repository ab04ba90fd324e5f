// Command sampletab samples catalog functions on uniform grids described by
// YAML profiles, and prints the tables or looks values up in them.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
