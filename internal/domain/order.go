package domain

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderPending          OrderStatus = "Pending"
	OrderProcessing       OrderStatus = "Processing"
	OrderPaymentRequested OrderStatus = "Payment Requested"
	OrderPaymentSubmitted OrderStatus = "Payment Submitted"
	OrderDispatched       OrderStatus = "Dispatched"
	OrderCancelled        OrderStatus = "Cancelled"
)

// Terminal reports whether no further transition may leave the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderDispatched || s == OrderCancelled
}

type Order struct {
	ID                string              `db:"id"`
	UserID            string              `db:"user_id"`
	UserName          string              `db:"user_name"` // denormalized for display
	Status            OrderStatus         `db:"status"`
	TotalInquiryValue decimal.Decimal     `db:"total_inquiry_value"` // frozen at creation
	FinalPayable      decimal.NullDecimal `db:"final_payable_amount"`
	InvoiceURL        string              `db:"invoice_url"`
	PaymentProofURL   string              `db:"payment_proof_url"`
	DocketNumber      string              `db:"docket_number"`
	TransportDetails  string              `db:"transport_details"`
	CreatedAt         string              `db:"created_at"` // RFC 3339
}

// OrderLine is a snapshot of the product at order time. Later catalog
// edits never change a placed line.
type OrderLine struct {
	OrderID   string          `db:"order_id"`
	ProductID string          `db:"product_id"`
	BrandName string          `db:"brand_name"`
	Packing   string          `db:"packing"`
	MRP       decimal.Decimal `db:"mrp"`
	Quantity  int             `db:"quantity"`
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.MRP.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderHistoryItem is one historical purchase event used by the
// restock advisor; read-only, derived from the ledger.
type OrderHistoryItem struct {
	OrderDate string `db:"order_date"`
	ProductID string `db:"product_id"`
	Quantity  int    `db:"quantity"`
}
