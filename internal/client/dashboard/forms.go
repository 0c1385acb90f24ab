package dashboard

import (
	"context"

	"github.com/iudanet/procure/internal/validation"
	"github.com/iudanet/procure/pkg/api"
)

// Валидируемые операции над формами. Невалидный ввод возвращается как
// validation.FieldErrors и никогда не уходит в сеть.

// CreateProject validates the project form and submits it
func (d *Dashboard) CreateProject(ctx context.Context, in validation.ProjectInput) (*api.Project, error) {
	if fe := d.validate.Validate(in); fe != nil {
		return nil, fe
	}
	return d.Projects.Create(ctx, in)
}

// UpdateProject validates the project form and submits it
func (d *Dashboard) UpdateProject(ctx context.Context, id int64, in validation.ProjectInput) (*api.Project, error) {
	if fe := d.validate.Validate(in); fe != nil {
		return nil, fe
	}
	return d.Projects.Update(ctx, id, in)
}

// CreatePurchaseOrder validates the order form and submits it
func (d *Dashboard) CreatePurchaseOrder(ctx context.Context, in validation.PurchaseOrderInput) (*api.PurchaseOrder, error) {
	if fe := d.validate.Validate(in); fe != nil {
		return nil, fe
	}
	return d.PurchaseOrders.Create(ctx, in)
}

// CreateInvoice validates the invoice form and submits it
func (d *Dashboard) CreateInvoice(ctx context.Context, in validation.InvoiceInput) (*api.Invoice, error) {
	if fe := d.validate.Validate(in); fe != nil {
		return nil, fe
	}
	return d.Invoices.Create(ctx, in)
}

// CreateMaterial validates the material form and submits it
func (d *Dashboard) CreateMaterial(ctx context.Context, in validation.MaterialInput) (*api.Material, error) {
	if fe := d.validate.Validate(in); fe != nil {
		return nil, fe
	}
	return d.Materials.Create(ctx, in)
}
