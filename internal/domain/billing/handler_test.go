package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestHandleCreateInvoice(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)

	body := fmt.Sprintf(`{"number":"FV/2024/06/0001","issue_date":"2024-06-10","patient_id":%q,"amount":150}`, uuid.New())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateInvoice(c); err != nil {
		t.Fatalf("CreateInvoice() error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var inv Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &inv); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if inv.Status != InvoiceStatusUnpaid || inv.Kind != KindInvoice {
		t.Errorf("unexpected defaults: %+v", inv)
	}
}

func TestHandleCreateInvoice_Invalid(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateInvoice(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandleRecordPayment(t *testing.T) {
	svc, invoices, _ := newTestService()
	h := NewHandler(svc)

	inv := &Invoice{Number: "FV/1", IssueDate: "2024-06-10", PatientID: uuid.New(), Amount: 150}
	if err := invoices.Create(context.Background(), inv); err != nil {
		t.Fatal(err)
	}
	inv.Status = InvoiceStatusUnpaid

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/invoices/x/payments",
		strings.NewReader(`{"paid_date":"2024-06-11","amount":150,"method":"card"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(inv.ID.String())

	if err := h.RecordPayment(c); err != nil {
		t.Fatalf("RecordPayment() error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if invoices.invoices[inv.ID].Status != InvoiceStatusPaid {
		t.Error("expected invoice marked paid")
	}
}

func TestHandleGetInvoice_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/invoices/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetInvoice(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}

func TestHandleListInvoices_Filters(t *testing.T) {
	svc, invoices, _ := newTestService()
	h := NewHandler(svc)

	pid := uuid.New()
	for i, n := range []string{"FV/1", "FV/2"} {
		inv := &Invoice{Number: n, IssueDate: "2024-06-10", Amount: 100, Status: InvoiceStatusUnpaid, Kind: KindInvoice}
		if i == 0 {
			inv.PatientID = pid
		} else {
			inv.PatientID = uuid.New()
		}
		if err := invoices.Create(context.Background(), inv); err != nil {
			t.Fatal(err)
		}
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/invoices?patient_id="+pid.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListInvoices(c); err != nil {
		t.Fatalf("ListInvoices() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []*Invoice `json:"data"`
		Total int        `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected 1 invoice for the patient, got %d", resp.Total)
	}
}
