package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/procure/internal/validation"
)

// NewOrdersCmd creates the "orders" command group
func NewOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage purchase orders",
	}

	cmd.AddCommand(
		newOrdersListCmd(),
		newOrdersGetCmd(),
		newOrdersCreateCmd(),
	)

	return cmd
}

func newOrdersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List purchase orders",
		RunE:  runOrdersList,
	}
	addListFlags(cmd)
	cmd.Flags().Int64("project", 0, "Filter by project id")
	cmd.Flags().Int64("supplier", 0, "Filter by supplier id")
	return cmd
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	params := listParams(cmd)
	filters := map[string]string{}
	if project, _ := cmd.Flags().GetInt64("project"); project > 0 {
		filters["projectId"] = fmt.Sprintf("%d", project)
	}
	if supplier, _ := cmd.Flags().GetInt64("supplier"); supplier > 0 {
		filters["supplierId"] = fmt.Sprintf("%d", supplier)
	}
	if len(filters) > 0 {
		params.Filters = filters
	}

	page, err := app.Dash.PurchaseOrders.List(cmd.Context(), params)
	if err != nil {
		return err
	}

	w := newTabWriter(cmd)
	fmt.Fprintln(w, "ID\tPROJECT\tSUPPLIER\tDATE\tSTATUS\tTOTAL")
	for _, o := range page.Data {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
			o.PurchaseOrderID, o.ProjectID, o.SupplierID,
			o.OrderDate, o.Status, formatMoney(o.TotalAmount))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPagination(cmd, page.Pagination)
	return nil
}

func newOrdersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one purchase order with its lines",
		Args:  cobra.ExactArgs(1),
		RunE:  runOrdersGet,
	}
}

func runOrdersGet(cmd *cobra.Command, args []string) error {
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

	o, err := app.Dash.PurchaseOrders.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Purchase order #%d (project %d, supplier %d)\n",
		o.PurchaseOrderID, o.ProjectID, o.SupplierID)
	fmt.Fprintf(out, "  Date:   %s\n", o.OrderDate)
	fmt.Fprintf(out, "  Status: %s\n", o.Status)

	w := newTabWriter(cmd)
	fmt.Fprintln(w, "  MATERIAL\tQTY\tPRICE\tLINE TOTAL")
	for _, item := range o.Items {
		fmt.Fprintf(w, "  %d\t%g\t%s\t%s\n",
			item.MaterialID, item.Quantity,
			formatMoney(item.UnitPrice), formatMoney(item.LineTotal))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "  Total:  %s\n", formatMoney(o.TotalAmount))
	return nil
}

func newOrdersCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a purchase order",
		Long: `Create a purchase order. Each line is given with a repeatable
--item flag in the form materialId:quantity:unitPrice, for example:

  procure orders create --project 1 --supplier 2 \
    --item 10:5:120.50 --item 11:2:80`,
		RunE: runOrdersCreate,
	}

	cmd.Flags().Int64("project", 0, "Project id")
	cmd.Flags().Int64("supplier", 0, "Supplier id")
	cmd.Flags().String("date", "", "Order date (YYYY-MM-DD)")
	cmd.Flags().StringArray("item", nil, "Order line materialId:quantity:unitPrice (repeatable)")

	return cmd
}

func runOrdersCreate(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	specs, _ := cmd.Flags().GetStringArray("item")
	items := make([]validation.PurchaseOrderItemInput, 0, len(specs))
	for _, spec := range specs {
		item, err := parseItemSpec(spec)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	in := validation.PurchaseOrderInput{Items: items}
	in.ProjectID, _ = cmd.Flags().GetInt64("project")
	in.SupplierID, _ = cmd.Flags().GetInt64("supplier")
	in.OrderDate, _ = cmd.Flags().GetString("date")

	o, err := app.Dash.CreatePurchaseOrder(cmd.Context(), in)
	if err != nil {
		var fe validation.FieldErrors
		if errors.As(err, &fe) {
			printFieldErrors(cmd, fe)
			return fmt.Errorf("invalid input")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created purchase order #%d, total %s\n",
		o.PurchaseOrderID, formatMoney(o.TotalAmount))
	return nil
}
