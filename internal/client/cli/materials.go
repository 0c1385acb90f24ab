package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/procure/internal/validation"
)

// NewMaterialsCmd creates the "materials" command group
func NewMaterialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Manage the material catalog",
	}

	cmd.AddCommand(
		newMaterialsListCmd(),
		newMaterialsCreateCmd(),
	)

	return cmd
}

func newMaterialsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List materials",
		RunE:  runMaterialsList,
	}
	addListFlags(cmd)
	return cmd
}

func runMaterialsList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	page, err := app.Dash.Materials.List(cmd.Context(), listParams(cmd))
	if err != nil {
		return err
	}

	w := newTabWriter(cmd)
	fmt.Fprintln(w, "ID\tNAME\tUNIT\tDESCRIPTION")
	for _, m := range page.Data {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.MaterialID, m.Name, m.Unit, m.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPagination(cmd, page.Pagination)
	return nil
}

func newMaterialsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a material to the catalog",
		RunE:  runMaterialsCreate,
	}

	cmd.Flags().String("name", "", "Material name")
	cmd.Flags().String("unit", "", "Measurement unit")
	cmd.Flags().String("description", "", "Material description")

	return cmd
}

func runMaterialsCreate(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	in := validation.MaterialInput{}
	in.Name, _ = cmd.Flags().GetString("name")
	in.Unit, _ = cmd.Flags().GetString("unit")
	in.Description, _ = cmd.Flags().GetString("description")

	m, err := app.Dash.CreateMaterial(cmd.Context(), in)
	if err != nil {
		var fe validation.FieldErrors
		if errors.As(err, &fe) {
			printFieldErrors(cmd, fe)
			return fmt.Errorf("invalid input")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created material #%d %q\n", m.MaterialID, m.Name)
	return nil
}
