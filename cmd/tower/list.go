package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bear-tower/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stages",
	Long:  `Shows every stage that can be passed to 'tower play'.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	stages := registry.List()

	if len(stages) == 0 {
		fmt.Println("No stages available.")
		return
	}

	fmt.Println("Available stages:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, s := range stages {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, s := range stages {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'tower play <id>' to climb a stage.")
}
