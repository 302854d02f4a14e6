package catalog

import (
	"context"

	"github.com/google/uuid"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *ClinicService) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClinicService, error)
	Update(ctx context.Context, s *ClinicService) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*ClinicService, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*ClinicService, error)
}

type StaffRepository interface {
	Create(ctx context.Context, st *Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	Update(ctx context.Context, st *Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns staff ordered by last name; activeOnly restricts to
	// staff available for booking.
	List(ctx context.Context, activeOnly bool) ([]*Staff, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Staff, error)
}
