// Command ricochet replaces the teacher's flag-based main.go with a
// cobra CLI: one subcommand per engine operation (trajectory,
// visibility, serve, validate) instead of one fixed render pipeline
// behind --scene/--integrator flags.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
