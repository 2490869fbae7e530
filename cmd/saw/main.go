// saw loads declarative saw recipes from a resource tree and evaluates
// blocks against them.
package main

import (
	"os"

	"github.com/corey/saw/cmd/saw/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
