package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInventoryCmd creates the "inventory" command group
func NewInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Browse inventory stock",
	}

	cmd.AddCommand(newInventoryListCmd())

	return cmd
}

func newInventoryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory stock",
		RunE:  runInventoryList,
	}
	addListFlags(cmd)
	cmd.Flags().Int64("material", 0, "Filter by material id")
	return cmd
}

func runInventoryList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	params := listParams(cmd)
	if material, _ := cmd.Flags().GetInt64("material"); material > 0 {
		params.Filters = map[string]string{"materialId": fmt.Sprintf("%d", material)}
	}

	page, err := app.Dash.Inventory.List(cmd.Context(), params)
	if err != nil {
		return err
	}

	w := newTabWriter(cmd)
	fmt.Fprintln(w, "ID\tMATERIAL\tQTY\tLOCATION")
	for _, item := range page.Data {
		fmt.Fprintf(w, "%d\t%d\t%g\t%s\n",
			item.InventoryItemID, item.MaterialID, item.Quantity, item.Location)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPagination(cmd, page.Pagination)
	return nil
}
