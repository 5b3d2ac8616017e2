package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacks-roll/internal/registry"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List advisor backends",
	Long:  `Shows the difficulty advisor backends that --advisor accepts.`,
	Args:  cobra.NoArgs,
	Run:   runBackends,
}

func runBackends(_ *cobra.Command, _ []string) {
	backends := registry.List()

	if len(backends) == 0 {
		fmt.Println("No backends available.")
		return
	}

	fmt.Println("Advisor backends:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, b := range backends {
		if len(b.ID) > maxIDLen {
			maxIDLen = len(b.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, b := range backends {
		fmt.Printf("  %-*s  %s\n", maxIDLen, b.ID, b.Description)
	}

	fmt.Println()
	fmt.Println("Run 'stacksroll play --advisor <id>' to use one.")
}
