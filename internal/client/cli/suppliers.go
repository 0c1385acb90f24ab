package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSuppliersCmd creates the "suppliers" command group
func NewSuppliersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suppliers",
		Short: "Browse suppliers",
	}

	cmd.AddCommand(newSuppliersListCmd())

	return cmd
}

func newSuppliersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suppliers",
		RunE:  runSuppliersList,
	}
	addListFlags(cmd)
	return cmd
}

func runSuppliersList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	page, err := app.Dash.Suppliers.List(cmd.Context(), listParams(cmd))
	if err != nil {
		return err
	}

	w := newTabWriter(cmd)
	fmt.Fprintln(w, "ID\tNAME\tCONTACT\tEMAIL\tPHONE")
	for _, s := range page.Data {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			s.SupplierID, s.Name, s.ContactPerson, s.Email, s.Phone)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPagination(cmd, page.Pagination)
	return nil
}
