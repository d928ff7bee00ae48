// Command bvhmake converts a scene's triangle mesh into a chunked binary
// BVH file (spec.md §6's CLI surface).
package main

import (
	"fmt"
	"os"

	"github.com/rendercore/bvhmake/cmd/bvhmake/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	code, err := cmd.Execute(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return code
}
