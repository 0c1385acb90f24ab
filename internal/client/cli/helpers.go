package cli

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	httpClient "github.com/iudanet/procure/internal/client/api"
	"github.com/iudanet/procure/internal/validation"
	"github.com/iudanet/procure/pkg/api"
)

// readLine prompts and reads one line from the command's input
func readLine(cmd *cobra.Command, prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(cmd.OutOrStdout(), prompt)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", fmt.Errorf("unexpected end of input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// readPassword retrieves the password from various sources with priority:
// 1. Environment variable PROCURE_PASSWORD
// 2. File specified via --password-file
// 3. Interactive prompt (fallback)
func readPassword(cmd *cobra.Command) (string, error) {
	// Priority 1: Environment variable
	if envPassword := os.Getenv("PROCURE_PASSWORD"); envPassword != "" {
		return envPassword, nil
	}

	// Priority 2: File
	if file, _ := cmd.Flags().GetString("password-file"); file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	// Priority 3: Interactive prompt
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	if term.IsTerminal(int(syscall.Stdin)) {
		b, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	return readLine(cmd, "")
}

// printFieldErrors renders validation errors sorted by field path
func printFieldErrors(cmd *cobra.Command, fe validation.FieldErrors) {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		for _, msg := range fe[f] {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f, msg)
		}
	}
}

// newTabWriter returns a writer for aligned table output
func newTabWriter(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

// printPagination renders the list footer
func printPagination(cmd *cobra.Command, p api.Pagination) {
	fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d (%d records)\n",
		p.Page, p.TotalPages, p.TotalRecords)
}

// listParams собирает параметры списка из стандартных флагов
func listParams(cmd *cobra.Command) httpClient.ListParams {
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	search, _ := cmd.Flags().GetString("search")
	return httpClient.ListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
	}
}

// addListFlags registers the standard list flags
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("page-size", 20, "Page size")
	cmd.Flags().String("search", "", "Search filter")
}

// parseID parses a positional entity identifier
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// parseItemSpec parses an order line flag of the form
// materialId:quantity:unitPrice
func parseItemSpec(spec string) (validation.PurchaseOrderItemInput, error) {
	var item validation.PurchaseOrderItemInput

	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return item, fmt.Errorf("invalid item %q, want materialId:quantity:unitPrice", spec)
	}

	materialID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return item, fmt.Errorf("invalid material id in %q: %w", spec, err)
	}
	quantity, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return item, fmt.Errorf("invalid quantity in %q: %w", spec, err)
	}
	unitPrice, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return item, fmt.Errorf("invalid unit price in %q: %w", spec, err)
	}

	item.MaterialID = materialID
	item.Quantity = quantity
	item.UnitPrice = unitPrice
	return item, nil
}

// formatMoney renders an amount with two decimals
func formatMoney(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
