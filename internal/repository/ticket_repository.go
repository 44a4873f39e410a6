package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prodline/workorder-tracker/internal/domain"
)

// TicketFilter captures listing parameters.
type TicketFilter struct {
	WorkOrderID *string
	SubmittedBy *string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetOwner(ctx context.Context, id string) (string, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Delete(ctx context.Context, id string) error
	NextNumber(ctx context.Context) (int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_number, work_order_id, area_id, submitted_by, priority, description, image_urls, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_number, work_order_id, area_id, submitted_by, priority, description, image_urls)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.WorkOrderID,
		ticket.AreaID,
		ticket.SubmittedBy,
		ticket.Priority,
		ticket.Description,
		ticket.ImageURLs,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

// Update persists mutable ticket fields. submitted_by and ticket_number
// are deliberately absent from the statement.
func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET work_order_id=$1, area_id=$2, priority=$3, description=$4,
            image_urls=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.WorkOrderID,
		ticket.AreaID,
		ticket.Priority,
		ticket.Description,
		ticket.ImageURLs,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.WorkOrderID,
		&ticket.AreaID,
		&ticket.SubmittedBy,
		&ticket.Priority,
		&ticket.Description,
		&ticket.ImageURLs,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetOwner is the single point lookup backing ownership checks.
func (r *ticketRepository) GetOwner(ctx context.Context, id string) (string, error) {
	var owner string
	if err := r.pool.QueryRow(ctx, `SELECT submitted_by FROM tickets WHERE id=$1`, id).Scan(&owner); err != nil {
		return "", err
	}
	return owner, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets`
	args := []any{}
	if filter.WorkOrderID != nil {
		args = append(args, *filter.WorkOrderID)
		query += ` WHERE work_order_id=$1`
	} else if filter.SubmittedBy != nil {
		args = append(args, *filter.SubmittedBy)
		query += ` WHERE submitted_by=$1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketNumber,
			&ticket.WorkOrderID,
			&ticket.AreaID,
			&ticket.SubmittedBy,
			&ticket.Priority,
			&ticket.Description,
			&ticket.ImageURLs,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// NextNumber pulls the next value from the ticket number sequence.
func (r *ticketRepository) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('ticket_number_seq')`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
