// fieldex extracts typed records from free text with a text generator and
// scores the results against ground truth.
//
// Usage:
//
//	fieldex extract --schema=<name> [--source=<file|url|text>] [--overview]
//	fieldex evaluate --schema=<name> [--trials=N] [--concurrency=N] [--markdown]
//	fieldex clean [--schema=<name>] [--repair] < fragment
//	fieldex schemas
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
