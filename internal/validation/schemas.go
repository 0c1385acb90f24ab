package validation

// DateLayout задаёт формат дат во входных формах
const DateLayout = "2006-01-02"

// LoginInput представляет форму логина
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProjectInput представляет форму создания/редактирования проекта
type ProjectInput struct {
	Name      string   `json:"name"      validate:"required,max=100"`
	Type      string   `json:"type"      validate:"required,oneof=Government Private"`
	Status    string   `json:"status"    validate:"required,oneof=Planned 'In Progress' Completed Cancelled"`
	StartDate string   `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `json:"endDate"   validate:"omitempty,datetime=2006-01-02"`
	Budget    *float64 `json:"budget"    validate:"omitempty,gte=0"`
}

// PurchaseOrderItemInput представляет строку заказа на закупку
type PurchaseOrderItemInput struct {
	MaterialID int64   `json:"materialId" validate:"required,gt=0"`
	Quantity   float64 `json:"quantity"   validate:"required,gt=0,lte=999999"`
	UnitPrice  float64 `json:"unitPrice"  validate:"gte=0,lte=9999999"`
}

// PurchaseOrderInput представляет форму заказа на закупку.
// Повторное использование материала в разных строках запрещено.
type PurchaseOrderInput struct {
	ProjectID  int64                    `json:"projectId"  validate:"required,gt=0"`
	SupplierID int64                    `json:"supplierId" validate:"required,gt=0"`
	OrderDate  string                   `json:"orderDate"  validate:"omitempty,datetime=2006-01-02"`
	Items      []PurchaseOrderItemInput `json:"items"      validate:"required,min=1,max=100,dive"`
}

// InvoiceInput представляет форму счёта поставщика
type InvoiceInput struct {
	PurchaseOrderID int64   `json:"purchaseOrderId" validate:"required,gt=0"`
	InvoiceNumber   string  `json:"invoiceNumber"   validate:"required,max=50,refcode"`
	InvoiceDate     string  `json:"invoiceDate"     validate:"required,datetime=2006-01-02"`
	TotalAmount     float64 `json:"totalAmount"     validate:"required,gt=0,lte=999999999"`
}

// MaterialInput представляет форму материала
type MaterialInput struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Unit        string `json:"unit"        validate:"required,max=20"`
	Description string `json:"description" validate:"omitempty,max=500"`
}
