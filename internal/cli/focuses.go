package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/scicheck/internal/model"
)

// focusesCmd lists the supported analysis focuses.
var focusesCmd = &cobra.Command{
	Use:   "focuses",
	Short: "List the supported analysis focuses",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range model.AllFocuses {
			fmt.Printf("  %-12s %s\n", f, f.Description())
		}
	},
}

func init() {
	rootCmd.AddCommand(focusesCmd)
}
