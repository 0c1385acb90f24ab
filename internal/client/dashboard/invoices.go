package dashboard

import (
	"context"
	"fmt"
	"strconv"

	httpClient "github.com/iudanet/procure/internal/client/api"
	"github.com/iudanet/procure/internal/validation"
	"github.com/iudanet/procure/pkg/api"
)

// Outstanding returns an invoice together with its unpaid remainder.
// Overpayment clamps to zero.
func (d *Dashboard) Outstanding(ctx context.Context, invoiceID int64) (*api.Invoice, float64, error) {
	invoice, err := d.Invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get invoice: %w", err)
	}

	payments, err := d.Payments.List(ctx, httpClient.ListParams{
		Filters: map[string]string{"invoiceId": strconv.FormatInt(invoiceID, 10)},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	amounts := make([]float64, 0, len(payments.Data))
	for _, p := range payments.Data {
		amounts = append(amounts, p.Amount)
	}

	return invoice, validation.OutstandingAmount(invoice.TotalAmount, amounts), nil
}
