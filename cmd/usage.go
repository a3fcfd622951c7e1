package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mend/config"
	"mend/workspace"
)

var resetUsage bool

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show tracked token usage for this workspace",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		workspacePath, err := workspace.DetectWorkspace()
		if err != nil {
			fmt.Printf("Error detecting workspace: %v\n", err)
			return
		}

		store := config.NewUsageStore(workspacePath)

		if resetUsage {
			if err := store.ResetUsage(); err != nil {
				fmt.Printf("Error resetting usage: %v\n", err)
				return
			}
			fmt.Println("Usage history reset.")
			return
		}

		usage := store.GetUsage()
		fmt.Printf("Total tokens: %d\n", usage.TotalTokens)
		fmt.Printf("Recorded commands: %d\n", len(usage.Records))

		if len(usage.Records) > 0 {
			fmt.Println("\nRecent commands:")
			start := len(usage.Records) - 10
			if start < 0 {
				start = 0
			}
			for _, rec := range usage.Records[start:] {
				fmt.Printf("  %s  %6d tokens  %s\n",
					rec.Timestamp.Format("2006-01-02 15:04"), rec.Tokens, rec.Command)
			}
		}
	},
}

func init() {
	usageCmd.Flags().BoolVar(&resetUsage, "reset", false, "clear the usage history")
}
