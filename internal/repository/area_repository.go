package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prodline/workorder-tracker/internal/domain"
)

// AreaRepository encapsulates area persistence.
type AreaRepository interface {
	Create(ctx context.Context, area *domain.Area) error
	Update(ctx context.Context, area *domain.Area) error
	GetByID(ctx context.Context, id string) (*domain.Area, error)
	List(ctx context.Context) ([]domain.Area, error)
	Delete(ctx context.Context, id string) error
}

type areaRepository struct {
	pool *pgxpool.Pool
}

// NewAreaRepository instantiates repository.
func NewAreaRepository(pool *pgxpool.Pool) AreaRepository {
	return &areaRepository{pool: pool}
}

func (r *areaRepository) Create(ctx context.Context, area *domain.Area) error {
	const query = `INSERT INTO areas (name) VALUES ($1) RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, area.Name).Scan(&area.ID, &area.CreatedAt)
}

func (r *areaRepository) Update(ctx context.Context, area *domain.Area) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE areas SET name=$1 WHERE id=$2`, area.Name, area.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *areaRepository) GetByID(ctx context.Context, id string) (*domain.Area, error) {
	var area domain.Area
	if err := r.pool.QueryRow(ctx, `SELECT id, name, created_at FROM areas WHERE id=$1`, id).Scan(
		&area.ID,
		&area.Name,
		&area.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *areaRepository) List(ctx context.Context) ([]domain.Area, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM areas ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Area
	for rows.Next() {
		var area domain.Area
		if err := rows.Scan(&area.ID, &area.Name, &area.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, area)
	}
	return result, rows.Err()
}

func (r *areaRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM areas WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
