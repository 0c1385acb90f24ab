// Package dashboard wires the cache layer to the API layer: one typed
// service per resource, with mutation-driven invalidation of the
// affected key subtrees.
package dashboard

import (
	"log/slog"

	httpClient "github.com/iudanet/procure/internal/client/api"
	"github.com/iudanet/procure/internal/client/cache"
	"github.com/iudanet/procure/internal/validation"
	"github.com/iudanet/procure/pkg/api"
)

// Resource kinds - the first segment of every cache key
const (
	KindProjects       = "projects"
	KindSuppliers      = "suppliers"
	KindMaterials      = "materials"
	KindPurchaseOrders = "purchase-orders"
	KindInvoices       = "invoices"
	KindPayments       = "payments"
	KindInventory      = "inventory"
)

// Dashboard bundles the per-resource services behind one constructor
type Dashboard struct {
	store    *cache.Store
	validate *validation.Validator
	logger   *slog.Logger

	Projects       *ResourceService[api.Project]
	Suppliers      *ResourceService[api.Supplier]
	Materials      *ResourceService[api.Material]
	PurchaseOrders *ResourceService[api.PurchaseOrder]
	Invoices       *ResourceService[api.Invoice]
	Payments       *ResourceService[api.Payment]
	Inventory      *ResourceService[api.InventoryItem]
}

// New creates the dashboard services over a cache store and API client
func New(store *cache.Store, client *httpClient.Client, validate *validation.Validator, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{
		store:    store,
		validate: validate,
		logger:   logger,

		Projects:       NewResourceService(store, client.Projects, KindProjects),
		Suppliers:      NewResourceService(store, client.Suppliers, KindSuppliers),
		Materials:      NewResourceService(store, client.Materials, KindMaterials),
		PurchaseOrders: NewResourceService(store, client.PurchaseOrders, KindPurchaseOrders),
		Invoices:       NewResourceService(store, client.Invoices, KindInvoices),
		Payments:       NewResourceService(store, client.Payments, KindPayments),
		Inventory:      NewResourceService(store, client.Inventory, KindInventory),
	}
}
