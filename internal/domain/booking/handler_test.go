package booking

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/domain/scheduling"
)

func post(t *testing.T, h func(echo.Context) error, target, body string, paramName, paramValue string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	return rec, h(c)
}

func TestHandlerStart(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.mgr)

	rec, err := post(t, h.Start, "/bookings", "", "", "")
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var st State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if st.Step != "patient" {
		t.Errorf("expected a fresh wizard on the patient step, got %s", st.Step)
	}
	if len(st.WeekDates) != 5 {
		t.Errorf("expected 5 week dates, got %d", len(st.WeekDates))
	}
}

func TestHandlerGetState_Unknown(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.mgr)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("8b2e2c1e-0000-0000-0000-000000000000")

	err := h.GetState(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}

func TestHandlerFullFlow(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.mgr)
	w := f.mgr.Start()
	id := w.ID.String()

	steps := []struct {
		name    string
		handler func(echo.Context) error
		body    string
	}{
		{"patient", h.SelectPatient, fmt.Sprintf(`{"patient_id":%q}`, f.patientID)},
		{"service", h.SelectService, fmt.Sprintf(`{"service_id":%q}`, f.serviceID)},
		{"staff", h.SelectStaff, fmt.Sprintf(`{"staff_id":%q}`, f.staffID)},
		{"datetime", h.SelectDateTime, `{"date":"2024-06-10","start_time":"09:30"}`},
	}
	for _, s := range steps {
		rec, err := post(t, s.handler, "/bookings/"+id+"/"+s.name, s.body, "id", id)
		if err != nil {
			t.Fatalf("%s step error: %v", s.name, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s step: expected 200, got %d", s.name, rec.Code)
		}
	}

	rec, err := post(t, h.Confirm, "/bookings/"+id+"/confirm", `{"notes":"first visit"}`, "id", id)
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var a scheduling.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if a.Status != scheduling.StatusConfirmed || a.EndTime != "10:00" {
		t.Errorf("unexpected appointment: %+v", a)
	}

	// A confirmed session is closed.
	if _, err := f.mgr.Get(w.ID); err == nil {
		t.Error("expected session to be closed after confirm")
	}
}

func TestHandlerRegisterNewPatient(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.mgr)
	w := f.mgr.Start()
	id := w.ID.String()

	body := `{"first_name":"Jan","last_name":"Nowak","phone":"+48 600 100 200"}`
	rec, err := post(t, h.SelectPatient, "/bookings/"+id+"/patient", body, "id", id)
	if err != nil {
		t.Fatalf("SelectPatient() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if f.patients.createCalls != 1 {
		t.Errorf("expected one patient write, got %d", f.patients.createCalls)
	}

	var st State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if st.Step != "service" {
		t.Errorf("expected step service after registering, got %s", st.Step)
	}
	if st.Patient == nil || st.Patient.LastName != "Nowak" {
		t.Error("expected the registered patient on the wizard")
	}
}

func TestHandlerPageWeek(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.mgr)
	w := f.mgr.Start()
	id := w.ID.String()

	rec, err := post(t, h.PageWeek, "/bookings/"+id+"/week", `{"direction":"next"}`, "id", id)
	if err != nil {
		t.Fatalf("PageWeek() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var st State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if st.WeekDates[0] != "2024-06-17" {
		t.Errorf("expected next week to start 2024-06-17, got %s", st.WeekDates[0])
	}

	_, err = post(t, h.PageWeek, "/bookings/"+id+"/week", `{"direction":"sideways"}`, "id", id)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown direction, got %v", err)
	}
}
