// weave — terminal canvas for assembling and running AI agent workflows.
//
// Run: go run ./cmd/weave/
package main

import (
	"os"

	"github.com/wesen/weave/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
