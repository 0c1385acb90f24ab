package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/procure/internal/validation"
)

// NewInvoicesCmd creates the "invoices" command group
func NewInvoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Manage supplier invoices",
	}

	cmd.AddCommand(
		newInvoicesListCmd(),
		newInvoicesGetCmd(),
		newInvoicesCreateCmd(),
	)

	return cmd
}

func newInvoicesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		RunE:  runInvoicesList,
	}
	addListFlags(cmd)
	cmd.Flags().Int64("order", 0, "Filter by purchase order id")
	return cmd
}

func runInvoicesList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	params := listParams(cmd)
	if order, _ := cmd.Flags().GetInt64("order"); order > 0 {
		params.Filters = map[string]string{"purchaseOrderId": fmt.Sprintf("%d", order)}
	}

	page, err := app.Dash.Invoices.List(cmd.Context(), params)
	if err != nil {
		return err
	}

	w := newTabWriter(cmd)
	fmt.Fprintln(w, "ID\tNUMBER\tORDER\tDATE\tSTATUS\tTOTAL")
	for _, inv := range page.Data {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
			inv.InvoiceID, inv.InvoiceNumber, inv.PurchaseOrderID,
			inv.InvoiceDate, inv.Status, formatMoney(inv.TotalAmount))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPagination(cmd, page.Pagination)
	return nil
}

func newInvoicesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one invoice with its unpaid remainder",
		Args:  cobra.ExactArgs(1),
		RunE:  runInvoicesGet,
	}
}

func runInvoicesGet(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	inv, outstanding, err := app.Dash.Outstanding(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Invoice #%d %s (order %d)\n", inv.InvoiceID, inv.InvoiceNumber, inv.PurchaseOrderID)
	fmt.Fprintf(out, "  Date:        %s\n", inv.InvoiceDate)
	fmt.Fprintf(out, "  Status:      %s\n", inv.Status)
	fmt.Fprintf(out, "  Total:       %s\n", formatMoney(inv.TotalAmount))
	fmt.Fprintf(out, "  Outstanding: %s\n", formatMoney(outstanding))
	return nil
}

func newInvoicesCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a supplier invoice",
		RunE:  runInvoicesCreate,
	}

	cmd.Flags().Int64("order", 0, "Purchase order id")
	cmd.Flags().String("number", "", "Invoice number")
	cmd.Flags().String("date", "", "Invoice date (YYYY-MM-DD)")
	cmd.Flags().Float64("total", 0, "Invoice total amount")

	return cmd
}

func runInvoicesCreate(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	in := validation.InvoiceInput{}
	in.PurchaseOrderID, _ = cmd.Flags().GetInt64("order")
	in.InvoiceNumber, _ = cmd.Flags().GetString("number")
	in.InvoiceDate, _ = cmd.Flags().GetString("date")
	in.TotalAmount, _ = cmd.Flags().GetFloat64("total")

	inv, err := app.Dash.CreateInvoice(cmd.Context(), in)
	if err != nil {
		var fe validation.FieldErrors
		if errors.As(err, &fe) {
			printFieldErrors(cmd, fe)
			return fmt.Errorf("invalid input")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created invoice #%d %s\n", inv.InvoiceID, inv.InvoiceNumber)
	return nil
}
