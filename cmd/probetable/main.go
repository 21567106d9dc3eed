// Command probetable loads word lists into a linear probing hash table and
// reports collision and probe statistics.
package main

import (
	"os"

	"github.com/theflywheel/probetable/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
