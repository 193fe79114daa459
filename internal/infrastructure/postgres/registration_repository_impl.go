package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/internal/domain/repository"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

// Create relies on registrations_event_user_key to arbitrate concurrent inserts.
func (r *RegistrationRepository) Create(ctx context.Context, eventID, userID string) (*entity.Registration, error) {
	if !validID(eventID) || !validID(userID) {
		return nil, repository.ErrReferenceMissing
	}
	reg := &entity.Registration{}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO registrations (event_id, user_id)
		VALUES ($1, $2)
		RETURNING id, event_id, user_id, created_at, updated_at
	`, eventID, userID).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return reg, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, eventID, userID string) error {
	if !validID(eventID) || !validID(userID) {
		return repository.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	if !validID(eventID) {
		return 0, nil
	}
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&n)
	return n, err
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string, p pagination.Params) ([]entity.RegistrationDetail, int64, error) {
	p = p.Normalize()
	if !validID(eventID) {
		return []entity.RegistrationDetail{}, 0, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.event_id, r.user_id, r.created_at, r.updated_at,
		       u.id, u.name, u.email
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC, r.id
		LIMIT $2 OFFSET $3
	`, eventID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	items := make([]entity.RegistrationDetail, 0, p.Limit)
	for rows.Next() {
		var d entity.RegistrationDetail
		if err := rows.Scan(&d.ID, &d.EventID, &d.UserID, &d.CreatedAt, &d.UpdatedAt,
			&d.User.ID, &d.User.Name, &d.User.Email); err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := r.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}
	return items, total, nil
}

var _ repository.RegistrationRepository = (*RegistrationRepository)(nil)
