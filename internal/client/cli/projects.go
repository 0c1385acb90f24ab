package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/procure/internal/validation"
	"github.com/iudanet/procure/pkg/api"
)

// NewProjectsCmd creates the "projects" command group
func NewProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectsListCmd(),
		newProjectsGetCmd(),
		newProjectsCreateCmd(),
	)

	return cmd
}

func newProjectsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE:  runProjectsList,
	}
	addListFlags(cmd)
	cmd.Flags().String("status", "", "Filter by status")
	return cmd
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	params := listParams(cmd)
	if status, _ := cmd.Flags().GetString("status"); status != "" {
		params.Filters = map[string]string{"status": status}
	}

	page, err := app.Dash.Projects.List(cmd.Context(), params)
	if err != nil {
		return err
	}

	w := newTabWriter(cmd)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tBUDGET")
	for _, p := range page.Data {
		budget := "-"
		if p.Budget != nil {
			budget = formatMoney(*p.Budget)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ProjectID, p.Name, p.Type, p.Status, budget)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPagination(cmd, page.Pagination)
	return nil
}

func newProjectsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE:  runProjectsGet,
	}
}

func runProjectsGet(cmd *cobra.Command, args []string) error {
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

	p, err := app.Dash.Projects.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	printProject(cmd, p)
	return nil
}

func printProject(cmd *cobra.Command, p *api.Project) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project #%d\n", p.ProjectID)
	fmt.Fprintf(out, "  Name:   %s\n", p.Name)
	fmt.Fprintf(out, "  Type:   %s\n", p.Type)
	fmt.Fprintf(out, "  Status: %s\n", p.Status)
	if p.StartDate != "" {
		fmt.Fprintf(out, "  Start:  %s\n", p.StartDate)
	}
	if p.EndDate != "" {
		fmt.Fprintf(out, "  End:    %s\n", p.EndDate)
	}
	if p.Budget != nil {
		fmt.Fprintf(out, "  Budget: %s\n", formatMoney(*p.Budget))
	}
}

func newProjectsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE:  runProjectsCreate,
	}

	cmd.Flags().String("name", "", "Project name")
	cmd.Flags().String("type", "", "Project type (Government or Private)")
	cmd.Flags().String("status", "Planned", "Project status")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().Float64("budget", 0, "Project budget")

	return cmd
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(cmd.Context()); err != nil {
		return err
	}

	in := validation.ProjectInput{}
	in.Name, _ = cmd.Flags().GetString("name")
	in.Type, _ = cmd.Flags().GetString("type")
	in.Status, _ = cmd.Flags().GetString("status")
	in.StartDate, _ = cmd.Flags().GetString("start")
	in.EndDate, _ = cmd.Flags().GetString("end")
	if cmd.Flags().Changed("budget") {
		budget, _ := cmd.Flags().GetFloat64("budget")
		in.Budget = &budget
	}

	p, err := app.Dash.CreateProject(cmd.Context(), in)
	if err != nil {
		var fe validation.FieldErrors
		if errors.As(err, &fe) {
			printFieldErrors(cmd, fe)
			return fmt.Errorf("invalid input")
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created project #%d %q\n", p.ProjectID, p.Name)
	return nil
}
