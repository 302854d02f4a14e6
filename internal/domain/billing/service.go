package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type Service struct {
	invoices InvoiceRepository
	payments PaymentRepository
}

func NewService(invoices InvoiceRepository, payments PaymentRepository) *Service {
	return &Service{invoices: invoices, payments: payments}
}

func (s *Service) CreateInvoice(ctx context.Context, inv *Invoice) error {
	inv.Number = strings.TrimSpace(inv.Number)
	if inv.Number == "" {
		return fmt.Errorf("number is required")
	}
	if _, err := time.Parse(dateLayout, inv.IssueDate); err != nil {
		return fmt.Errorf("invalid issue_date %q", inv.IssueDate)
	}
	if inv.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if inv.Amount < 0 {
		return fmt.Errorf("amount cannot be negative")
	}
	if inv.Status == "" {
		inv.Status = InvoiceStatusUnpaid
	}
	if !validInvoiceStatuses[inv.Status] {
		return fmt.Errorf("invalid status %q", inv.Status)
	}
	if inv.Kind == "" {
		inv.Kind = KindInvoice
	}
	if !validDocumentKinds[inv.Kind] {
		return fmt.Errorf("invalid kind %q", inv.Kind)
	}
	return s.invoices.Create(ctx, inv)
}

func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

// ListInvoices pages the register. A non-empty query searches by invoice
// number; status filters to paid or unpaid.
func (s *Service) ListInvoices(ctx context.Context, query, status string, limit, offset int) ([]*Invoice, int, error) {
	if status != "" && !validInvoiceStatuses[status] {
		return nil, 0, fmt.Errorf("invalid status %q", status)
	}
	query = strings.TrimSpace(query)
	if query != "" {
		return s.invoices.Search(ctx, query, limit, offset)
	}
	return s.invoices.List(ctx, status, limit, offset)
}

func (s *Service) ListInvoicesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error) {
	return s.invoices.ListByPatient(ctx, patientID, limit, offset)
}

// RecordPayment stores a payment against an invoice and marks the invoice
// paid. Whether the amount settles the invoice is the front desk's call, not
// a computation.
func (s *Service) RecordPayment(ctx context.Context, p *Payment) error {
	inv, err := s.invoices.GetByID(ctx, p.InvoiceID)
	if err != nil {
		return fmt.Errorf("invoice %s: %w", p.InvoiceID, err)
	}
	if _, err := time.Parse(dateLayout, p.PaidDate); err != nil {
		return fmt.Errorf("invalid paid_date %q", p.PaidDate)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if !validPaymentMethods[p.Method] {
		return fmt.Errorf("invalid method %q", p.Method)
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return err
	}

	if inv.Status != InvoiceStatusPaid {
		inv.Status = InvoiceStatusPaid
		if err := s.invoices.Update(ctx, inv); err != nil {
			return fmt.Errorf("mark invoice paid: %w", err)
		}
	}
	return nil
}

func (s *Service) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*Payment, error) {
	if _, err := s.invoices.GetByID(ctx, invoiceID); err != nil {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, err)
	}
	return s.payments.ListByInvoice(ctx, invoiceID)
}
