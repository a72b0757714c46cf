// Command deepsort prints structured documents with keys sorted at every
// depth. Run "deepsort --help" for usage.
package main

import (
	"os"

	"github.com/roach88/deepsort/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
