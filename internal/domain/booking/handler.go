package booking

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/scheduling"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

type Handler struct {
	mgr *Manager
}

func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/bookings", auth.RequireRole(auth.RoleRegistrar, auth.RolePhysician))
	g.POST("", h.Start)
	g.GET("/:id", h.GetState)
	g.DELETE("/:id", h.Cancel)
	g.POST("/:id/patient", h.SelectPatient)
	g.POST("/:id/service", h.SelectService)
	g.POST("/:id/staff", h.SelectStaff)
	g.POST("/:id/week", h.PageWeek)
	g.POST("/:id/datetime", h.SelectDateTime)
	g.POST("/:id/edit", h.EditStep)
	g.POST("/:id/confirm", h.Confirm)
}

func (h *Handler) wizard(c echo.Context) (*Wizard, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}
	w, err := h.mgr.Get(id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "booking session not found")
	}
	return w, nil
}

// Start handles POST /bookings and opens a new wizard session.
func (h *Handler) Start(c echo.Context) error {
	w := h.mgr.Start()
	return c.JSON(http.StatusCreated, w.Snapshot())
}

func (h *Handler) GetState(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w.Snapshot())
}

// Cancel handles DELETE /bookings/:id. The session is discarded without
// booking anything.
func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}
	h.mgr.Close(id)
	return c.NoContent(http.StatusNoContent)
}

type selectPatientRequest struct {
	PatientID *uuid.UUID `json:"patient_id"`

	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Pesel       *string `json:"pesel"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	DateOfBirth *string `json:"date_of_birth"`
	Address     *string `json:"address"`
}

// SelectPatient handles POST /bookings/:id/patient. With patient_id it
// attaches an existing patient; otherwise the body is treated as a new
// patient registration.
func (h *Handler) SelectPatient(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var req selectPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.PatientID != nil {
		if err := w.SelectExistingPatient(c.Request().Context(), *req.PatientID); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, w.Snapshot())
	}

	p := &patient.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Pesel:       req.Pesel,
		Phone:       req.Phone,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
	}
	if err := w.SubmitNewPatient(c.Request().Context(), p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, w.Snapshot())
}

func (h *Handler) SelectService(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var req struct {
		ServiceID uuid.UUID `json:"service_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := w.SelectService(c.Request().Context(), req.ServiceID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, w.Snapshot())
}

func (h *Handler) SelectStaff(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var req struct {
		StaffID uuid.UUID `json:"staff_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := w.SelectStaff(c.Request().Context(), req.StaffID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, w.Snapshot())
}

// PageWeek handles POST /bookings/:id/week with a direction of "previous",
// "next" or "today".
func (h *Handler) PageWeek(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	switch req.Direction {
	case "previous":
		w.AdvanceWeek(scheduling.DirPrevious)
	case "next":
		w.AdvanceWeek(scheduling.DirNext)
	case "today":
		w.ResetWeek()
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "direction must be previous, next or today")
	}
	return c.JSON(http.StatusOK, w.Snapshot())
}

func (h *Handler) SelectDateTime(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var req struct {
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := w.SelectDateTime(req.Date, req.StartTime); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, w.Snapshot())
}

// EditStep handles POST /bookings/:id/edit and jumps back to an earlier step.
func (h *Handler) EditStep(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var req struct {
		Step int `json:"step"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := w.Edit(Step(req.Step)); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, w.Snapshot())
}

// Confirm handles POST /bookings/:id/confirm. On success the session is
// closed and the booked appointment returned.
func (h *Handler) Confirm(c echo.Context) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := w.Confirm(c.Request().Context(), req.Notes)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.mgr.Close(w.ID)
	return c.JSON(http.StatusCreated, a)
}
