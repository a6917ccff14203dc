package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/andy/billcraft/internal/render"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [id_or_number]",
	Short: "Export a saved draft as a PDF",
	Long: `Export a saved draft as a PDF invoice.

The file is written to the configured output directory, named after the
invoice number, unless --out is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		draft, err := resolveDraft(ctx, args[0])
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("out")
		if path == "" {
			path = filepath.Join(appInstance.Config.Invoice.OutputDir,
				fmt.Sprintf("%s.pdf", draft.InvoiceNumber))
		}

		if err := render.PDF(draft, appInstance.Business(), path); err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}

		fmt.Printf("Exported %s to %s\n", draft.InvoiceNumber, path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "output file path")
}
