// Command gridpanel lays out and browses a virtualizing grid of items.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/gridpanel/cmd/gridpanel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
