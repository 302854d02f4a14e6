package billing

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvoiceStatusPaid   = "paid"
	InvoiceStatusUnpaid = "unpaid"

	KindInvoice = "invoice"
	KindReceipt = "receipt"

	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

var validInvoiceStatuses = map[string]bool{
	InvoiceStatusPaid:   true,
	InvoiceStatusUnpaid: true,
}

var validDocumentKinds = map[string]bool{
	KindInvoice: true,
	KindReceipt: true,
}

var validPaymentMethods = map[string]bool{
	MethodCash:     true,
	MethodCard:     true,
	MethodTransfer: true,
}

// Invoice maps to the invoices table. Amounts are recorded as entered at the
// front desk; nothing is computed from them.
type Invoice struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Number       string    `db:"number" json:"number"`
	IssueDate    string    `db:"issue_date" json:"issue_date"`
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	ServiceNames *string   `db:"service_names" json:"service_names,omitempty"`
	Amount       float64   `db:"amount" json:"amount"`
	Status       string    `db:"status" json:"status"`
	Kind         string    `db:"kind" json:"kind"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Payment maps to the payments table and records money received against an
// invoice.
type Payment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	InvoiceID uuid.UUID `db:"invoice_id" json:"invoice_id"`
	PaidDate  string    `db:"paid_date" json:"paid_date"`
	Amount    float64   `db:"amount" json:"amount"`
	Method    string    `db:"method" json:"method"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
