package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Service Repository ===========

type serviceRepoPG struct{ pool *pgxpool.Pool }

func NewServiceRepoPG(pool *pgxpool.Pool) ServiceRepository { return &serviceRepoPG{pool: pool} }

const serviceCols = `id, name, description, duration_minutes, price, created_at, updated_at`

func scanService(row pgx.Row) (*ClinicService, error) {
	var s ClinicService
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.DurationMinutes, &s.Price, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *serviceRepoPG) Create(ctx context.Context, s *ClinicService) error {
	s.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO services (id, name, description, duration_minutes, price)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		s.ID, s.Name, s.Description, s.DurationMinutes, s.Price,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *serviceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClinicService, error) {
	return scanService(r.pool.QueryRow(ctx, `SELECT `+serviceCols+` FROM services WHERE id = $1`, id))
}

func (r *serviceRepoPG) Update(ctx context.Context, s *ClinicService) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE services SET name=$2, description=$3, duration_minutes=$4, price=$5, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Name, s.Description, s.DurationMinutes, s.Price)
	return err
}

func (r *serviceRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	return err
}

func (r *serviceRepoPG) List(ctx context.Context) ([]*ClinicService, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+serviceCols+` FROM services ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ClinicService
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *serviceRepoPG) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*ClinicService, error) {
	result := make(map[uuid.UUID]*ClinicService, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+serviceCols+` FROM services WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		result[s.ID] = s
	}
	return result, rows.Err()
}

// =========== Staff Repository ===========

type staffRepoPG struct{ pool *pgxpool.Pool }

func NewStaffRepoPG(pool *pgxpool.Pool) StaffRepository { return &staffRepoPG{pool: pool} }

const staffCols = `id, first_name, last_name, specialization, active, created_at, updated_at`

func scanStaff(row pgx.Row) (*Staff, error) {
	var st Staff
	err := row.Scan(&st.ID, &st.FirstName, &st.LastName, &st.Specialization, &st.Active, &st.CreatedAt, &st.UpdatedAt)
	return &st, err
}

func (r *staffRepoPG) Create(ctx context.Context, st *Staff) error {
	st.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO staff (id, first_name, last_name, specialization, active)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		st.ID, st.FirstName, st.LastName, st.Specialization, st.Active,
	).Scan(&st.CreatedAt, &st.UpdatedAt)
}

func (r *staffRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return scanStaff(r.pool.QueryRow(ctx, `SELECT `+staffCols+` FROM staff WHERE id = $1`, id))
}

func (r *staffRepoPG) Update(ctx context.Context, st *Staff) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE staff SET first_name=$2, last_name=$3, specialization=$4, active=$5, updated_at=NOW()
		WHERE id = $1`,
		st.ID, st.FirstName, st.LastName, st.Specialization, st.Active)
	return err
}

func (r *staffRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	return err
}

func (r *staffRepoPG) List(ctx context.Context, activeOnly bool) ([]*Staff, error) {
	query := `SELECT ` + staffCols + ` FROM staff`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Staff
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, st)
	}
	return items, rows.Err()
}

func (r *staffRepoPG) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Staff, error) {
	result := make(map[uuid.UUID]*Staff, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+staffCols+` FROM staff WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result[st.ID] = st
	}
	return result, rows.Err()
}
