package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/render"
	"github.com/spf13/cobra"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Manage saved invoice drafts",
	Long:  `List, show, and delete saved invoice drafts.`,
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		drafts := appInstance.Drafts.List(ctx)
		if len(drafts) == 0 {
			fmt.Println("No drafts found")
			return nil
		}

		fmt.Printf("%-18s %-12s %-25s %-6s %-12s %-17s\n",
			"ID", "Number", "Client", "Items", "Total", "Last edited")
		fmt.Println(strings.Repeat("-", 92))

		for _, d := range drafts {
			client := d.Client.Name
			if client == "" {
				client = "(no client)"
			}
			fmt.Printf("%-18s %-12s %-25s %-6d %-12s %-17s\n",
				d.ID,
				truncate(d.InvoiceNumber, 12),
				truncate(client, 25),
				len(d.Items),
				render.Money(d.Total),
				d.LastEdited.Format("2006-01-02 15:04"),
			)
		}

		fmt.Printf("\nTotal: %d draft(s)\n", len(drafts))
		return nil
	},
}

var draftsShowCmd = &cobra.Command{
	Use:   "show [id_or_number]",
	Short: "Render a draft as a plain-text invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		draft, err := resolveDraft(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Println(render.Text(draft, appInstance.Business()))
		return nil
	},
}

var draftsDeleteCmd = &cobra.Command{
	Use:   "delete [id_or_number]",
	Short: "Delete a saved draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		draft, err := resolveDraft(ctx, args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirmPrompt(fmt.Sprintf("Delete draft %s (%s)?", draft.InvoiceNumber, draft.ID)) {
			fmt.Println("Cancelled.")
			return nil
		}

		appInstance.Drafts.Delete(ctx, draft.ID)
		fmt.Printf("Deleted draft %s\n", draft.InvoiceNumber)
		return nil
	},
	Args: cobra.ExactArgs(1),
}

// resolveDraft finds a draft by its ID or, failing that, by invoice number.
// Number matching is case-insensitive and errors on ambiguity.
func resolveDraft(ctx context.Context, arg string) (*domain.Invoice, error) {
	if d := appInstance.Drafts.Get(ctx, arg); d != nil {
		return d, nil
	}

	var matches []domain.Invoice
	for _, d := range appInstance.Drafts.List(ctx) {
		if strings.EqualFold(d.InvoiceNumber, arg) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no draft found matching %q", arg)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("multiple drafts numbered %q; use the draft ID", arg)
	}
}

// truncate shortens a string for table display
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func init() {
	draftsDeleteCmd.Flags().BoolP("force", "f", false, "delete without confirmation")
	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsShowCmd)
	draftsCmd.AddCommand(draftsDeleteCmd)
}
