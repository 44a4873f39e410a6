package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prodline/workorder-tracker/internal/domain"
)

// WorkOrderFilter captures listing parameters.
type WorkOrderFilter struct {
	Search *string
	Status *domain.WorkOrderStatus
}

// WorkOrderRepository encapsulates work order persistence.
type WorkOrderRepository interface {
	Create(ctx context.Context, order *domain.WorkOrder) error
	Update(ctx context.Context, order *domain.WorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	List(ctx context.Context, filter WorkOrderFilter) ([]domain.WorkOrder, error)
	Delete(ctx context.Context, id string) error
	NextNumber(ctx context.Context) (int64, error)
}

type workOrderRepository struct {
	pool *pgxpool.Pool
}

// NewWorkOrderRepository instantiates repository.
func NewWorkOrderRepository(pool *pgxpool.Pool) WorkOrderRepository {
	return &workOrderRepository{pool: pool}
}

const workOrderColumns = `id, work_order_number, asm_number, description, status, created_by, created_at, updated_at`

func (r *workOrderRepository) Create(ctx context.Context, order *domain.WorkOrder) error {
	const query = `
        INSERT INTO work_orders (work_order_number, asm_number, description, status, created_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.WorkOrderNumber,
		order.ASMNumber,
		order.Description,
		order.Status,
		order.CreatedBy,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *workOrderRepository) Update(ctx context.Context, order *domain.WorkOrder) error {
	const query = `
        UPDATE work_orders SET asm_number=$1, description=$2, status=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		order.ASMNumber,
		order.Description,
		order.Status,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workOrderRepository) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id=$1`
	var order domain.WorkOrder
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.WorkOrderNumber,
		&order.ASMNumber,
		&order.Description,
		&order.Status,
		&order.CreatedBy,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *workOrderRepository) List(ctx context.Context, filter WorkOrderFilter) ([]domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders`
	clauses := []string{}
	args := []any{}

	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(work_order_number ILIKE $%d OR asm_number ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WorkOrder
	for rows.Next() {
		var order domain.WorkOrder
		if err := rows.Scan(
			&order.ID,
			&order.WorkOrderNumber,
			&order.ASMNumber,
			&order.Description,
			&order.Status,
			&order.CreatedBy,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *workOrderRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM work_orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// NextNumber pulls the next value from the work order number sequence.
func (r *workOrderRepository) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('work_order_number_seq')`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
