// Package main is the entry point for the arena server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arena-api",
	Short: "AI tactical combat arena server",
	Long:  `arena-api runs live AI dungeon-master combat sessions: an event-sourced engine, agent turn protocol, and autonomous demo modes.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
