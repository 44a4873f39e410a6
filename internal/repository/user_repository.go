package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prodline/workorder-tracker/internal/domain"
)

// UserRepository reads and mutates locally-mirrored user profiles.
// Rows are inserted by the identity provider's signup hook, never here.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	UpdateAccess(ctx context.Context, id string, granted bool) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, fullName string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates repository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, full_name, role, access_granted, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FullName,
			&user.Role,
			&user.AccessGranted,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	query := `UPDATE users SET role=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + userColumns
	return r.scanOne(ctx, query, role, id)
}

func (r *userRepository) UpdateAccess(ctx context.Context, id string, granted bool) (*domain.User, error) {
	query := `UPDATE users SET access_granted=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + userColumns
	return r.scanOne(ctx, query, granted, id)
}

func (r *userRepository) UpdateProfile(ctx context.Context, id, fullName string) (*domain.User, error) {
	query := `UPDATE users SET full_name=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + userColumns
	return r.scanOne(ctx, query, fullName, id)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Role,
		&user.AccessGranted,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
