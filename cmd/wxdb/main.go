// Command wxdb administers weather archive databases.
package main

import (
	"os"

	"github.com/skyarchive/wxdb/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
