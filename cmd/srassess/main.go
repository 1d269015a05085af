// Command srassess filters findings out of an AI result structured report
// and writes the filtered report together with an IHE AIR approval status
// report that references it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
