// Command report prints the participant dashboard of one workshop (or of all
// of them) to the terminal, as JSON, or as an XLSX workbook.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
