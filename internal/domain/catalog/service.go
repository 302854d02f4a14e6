package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	services ServiceRepository
	staff    StaffRepository
}

func NewService(services ServiceRepository, staff StaffRepository) *Service {
	return &Service{services: services, staff: staff}
}

// -- Clinic services --

func (s *Service) CreateClinicService(ctx context.Context, cs *ClinicService) error {
	cs.Name = strings.TrimSpace(cs.Name)
	if cs.Name == "" {
		return fmt.Errorf("name is required")
	}
	if cs.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return s.services.Create(ctx, cs)
}

func (s *Service) GetClinicService(ctx context.Context, id uuid.UUID) (*ClinicService, error) {
	return s.services.GetByID(ctx, id)
}

func (s *Service) UpdateClinicService(ctx context.Context, cs *ClinicService) error {
	if strings.TrimSpace(cs.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if cs.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return s.services.Update(ctx, cs)
}

func (s *Service) DeleteClinicService(ctx context.Context, id uuid.UUID) error {
	return s.services.Delete(ctx, id)
}

// ListClinicServices returns the catalog, filtered by query when non-empty.
func (s *Service) ListClinicServices(ctx context.Context, query string) ([]*ClinicService, error) {
	items, err := s.services.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterServices(items, query), nil
}

// -- Staff --

func (s *Service) CreateStaff(ctx context.Context, st *Staff) error {
	st.FirstName = strings.TrimSpace(st.FirstName)
	st.LastName = strings.TrimSpace(st.LastName)
	if st.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if st.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	return s.staff.Create(ctx, st)
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) UpdateStaff(ctx context.Context, st *Staff) error {
	if strings.TrimSpace(st.FirstName) == "" {
		return fmt.Errorf("first_name is required")
	}
	if strings.TrimSpace(st.LastName) == "" {
		return fmt.Errorf("last_name is required")
	}
	return s.staff.Update(ctx, st)
}

func (s *Service) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return s.staff.Delete(ctx, id)
}

// ListStaff returns staff, filtered by query when non-empty. Only active
// staff are offered for booking.
func (s *Service) ListStaff(ctx context.Context, query string, activeOnly bool) ([]*Staff, error) {
	items, err := s.staff.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return FilterStaff(items, query), nil
}
