// cmd/list.go
package cmd

import (
	"github.com/davidkohl/gobelix/asterix"
	"github.com/spf13/cobra"
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available ASTERIX categories",
		Long: `Display information about available ASTERIX categories.
This command lists all the ASTERIX categories implemented in the gobelix library.`,
		Run: runList,
	}

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	// Configure logging
	logger := ConfigureLogger(Verbose, JsonLogs)

	logger.Info("Available ASTERIX Categories")

	// Get information about known categories
	categories := []asterix.Category{
		asterix.Cat001,
		asterix.Cat002,
		asterix.Cat004,
		asterix.Cat020,
		asterix.Cat021,
		asterix.Cat030,
		asterix.Cat032,
		asterix.Cat034,
		asterix.Cat048,
		asterix.Cat062,
		asterix.Cat063,
		asterix.Cat065,
		asterix.Cat252,
	}

	for _, cat := range categories {
		info := asterix.GetCategoryInfo(cat)
		logger.Info("Category",
			"name", info.Name,
			"description", info.Description,
			"blockable", info.Blockable,
			"supported", info.Supported,
		)
	}
}
