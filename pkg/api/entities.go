package api

// Сущности закупочного контура. Даты передаются строками в формате
// YYYY-MM-DD, денежные суммы — числами с плавающей точкой.
// Идентификаторы числовые, назначаются сервером.

// Project представляет проект, в рамках которого ведутся закупки
type Project struct {
	ProjectID int64    `json:"projectId"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`   // Government | Private
	Status    string   `json:"status"` // Planned | In Progress | Completed | Cancelled
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Budget    *float64 `json:"budget,omitempty"`
}

// Supplier представляет поставщика материалов
type Supplier struct {
	SupplierID    int64  `json:"supplierId"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// Material представляет закупаемый материал
type Material struct {
	MaterialID  int64  `json:"materialId"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description,omitempty"`
}

// PurchaseOrderItem представляет строку заказа на закупку
type PurchaseOrderItem struct {
	PurchaseOrderItemID int64   `json:"purchaseOrderItemId"`
	MaterialID          int64   `json:"materialId"`
	Quantity            float64 `json:"quantity"`
	UnitPrice           float64 `json:"unitPrice"`
	LineTotal           float64 `json:"lineTotal"`
}

// PurchaseOrder представляет заказ на закупку
type PurchaseOrder struct {
	PurchaseOrderID int64               `json:"purchaseOrderId"`
	ProjectID       int64               `json:"projectId"`
	SupplierID      int64               `json:"supplierId"`
	OrderDate       string              `json:"orderDate"`
	Status          string              `json:"status"`
	Items           []PurchaseOrderItem `json:"items"`
	TotalAmount     float64             `json:"totalAmount"`
}

// Invoice представляет счёт поставщика по заказу
type Invoice struct {
	InvoiceID       int64   `json:"invoiceId"`
	PurchaseOrderID int64   `json:"purchaseOrderId"`
	InvoiceNumber   string  `json:"invoiceNumber"`
	InvoiceDate     string  `json:"invoiceDate"`
	TotalAmount     float64 `json:"totalAmount"`
	Status          string  `json:"status"`
}

// Payment представляет платёж по счёту
type Payment struct {
	PaymentID   int64   `json:"paymentId"`
	InvoiceID   int64   `json:"invoiceId"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"paymentDate"`
	Method      string  `json:"method,omitempty"`
}

// InventoryItem представляет складской остаток материала
type InventoryItem struct {
	InventoryItemID int64   `json:"inventoryItemId"`
	MaterialID      int64   `json:"materialId"`
	Quantity        float64 `json:"quantity"`
	Location        string  `json:"location,omitempty"`
}
