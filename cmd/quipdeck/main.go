// Command quipdeck parses, checks, formats and draws Quipper ASCII
// circuits.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
