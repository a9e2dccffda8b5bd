package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/stowsave/cmd/stowsave"
	"github.com/arthur-debert/stowsave/pkg/output/styles"
)

func main() {
	rootCmd := stowsave.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
