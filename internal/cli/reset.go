package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all saved drafts",
	Long: `Delete all saved drafts from the store.

Example:
  billcraft reset    # Delete every saved draft`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		drafts := appInstance.Drafts.List(ctx)
		if len(drafts) == 0 {
			fmt.Println("No drafts to delete.")
			return nil
		}

		if !confirmPrompt(fmt.Sprintf("This will delete ALL %d saved draft(s). Continue?", len(drafts))) {
			fmt.Println("Cancelled.")
			return nil
		}

		for _, d := range drafts {
			appInstance.Drafts.Delete(ctx, d.ID)
		}

		fmt.Printf("Deleted %d draft(s).\n", len(drafts))
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
