package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	// Search matches the query case-insensitively against name, pesel,
	// phone, and email.
	Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Patient, error)
}
