package model

import "petcare/shared/model"

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID              = "id"
	FieldClientID        = "client_id"
	FieldTotalAmount     = "total_amount"
	FieldPaymentMethod   = "payment_method"
	FieldReceiptURL      = "receipt_url"
	FieldReceiptVerified = "receipt_verified"
	FieldStatus          = "status"
)

const (
	PaymentCash  = "cash"
	PaymentGcash = "gcash"
	PaymentCard  = "card"
)

type Order struct {
	ID              string  `db:"id"`
	ClientID        string  `db:"client_id"`
	TotalAmount     float64 `db:"total_amount"`
	PaymentMethod   string  `db:"payment_method"`
	ReceiptURL      string  `db:"receipt_url"`
	ReceiptVerified bool    `db:"receipt_verified"`
	Status          Status  `db:"status"`
	model.Metadata
}

// RequiresReceipt reports whether the order's payment proof must be verified
// before it can leave pending.
func (o *Order) RequiresReceipt() bool {
	return o.PaymentMethod != PaymentCash
}
