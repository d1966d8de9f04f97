// Command cacti codes and rates recorded counseling sessions.
package main

import (
	"os"

	"github.com/jling-NM/CACTI-sub000/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
