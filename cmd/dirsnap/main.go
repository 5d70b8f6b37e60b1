package main

import (
	"fmt"
	"os"

	"github.com/ataylor/dirsnap/internal/cmd"
)

// Version is the current version of the dirsnap application
const Version = "0.3.0"

func main() {
	rootCmd := cmd.NewRootCommand(Version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
