package validation

// Производные вычисления, сопутствующие схемам. Они ничего не
// валидируют - только считают.

// LineTotal возвращает сумму строки заказа
func LineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// OrderTotal возвращает сумму заказа по всем строкам
func OrderTotal(items []PurchaseOrderItemInput) float64 {
	var total float64
	for _, item := range items {
		total += LineTotal(item.Quantity, item.UnitPrice)
	}
	return total
}

// OutstandingAmount returns the unpaid remainder of an invoice.
// Overpayment is clamped to zero, never reported as negative - that is
// the server's business rule to flag, not this layer's.
func OutstandingAmount(total float64, paymentAmounts []float64) float64 {
	paid := 0.0
	for _, amount := range paymentAmounts {
		paid += amount
	}

	outstanding := total - paid
	if outstanding < 0 {
		return 0
	}
	return outstanding
}
