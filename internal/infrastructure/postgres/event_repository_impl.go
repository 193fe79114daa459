package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, name, description, category, date, venue, price, image, organizer_id, created_at, updated_at`

// eventDetailSelect projects organizer, registration count and the viewer flag.
// $1 is the viewer id or '' for anonymous callers.
const eventDetailSelect = `
	SELECT e.id, e.name, e.description, e.category, e.date, e.venue, e.price, e.image,
	       e.organizer_id, e.created_at, e.updated_at,
	       u.id, u.name, u.email,
	       (SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id) AS registration_count,
	       EXISTS (
	           SELECT 1 FROM registrations r
	           WHERE r.event_id = e.id AND r.user_id = NULLIF($1::text, '')::uuid
	       ) AS is_registered
	FROM events e
	JOIN users u ON u.id = e.organizer_id`

// searchFilter matches the pattern at placeholder n against name case-insensitively;
// an empty pattern disables it.
func searchFilter(n int) string {
	return fmt.Sprintf(` WHERE ($%[1]d::text = '' OR e.name ILIKE $%[1]d::text ESCAPE '\')`, n)
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Category, &e.Date, &e.Venue, &e.Price,
		&e.Image, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func scanEventDetail(row pgx.Row) (*entity.EventDetail, error) {
	d := &entity.EventDetail{}
	e := &d.Event
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Category, &e.Date, &e.Venue, &e.Price,
		&e.Image, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
		&d.Organizer.ID, &d.Organizer.Name, &d.Organizer.Email,
		&d.RegistrationCount, &d.IsRegistered); err != nil {
		return nil, translate(err)
	}
	return d, nil
}

// containsPattern builds an ILIKE substring pattern with the wildcard characters escaped.
func containsPattern(search string) string {
	search = strings.TrimSpace(search)
	if search == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

func viewer(id string) string {
	if !validID(id) {
		return ""
	}
	return id
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (name, description, category, date, venue, price, image, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, e.Name, e.Description, e.Category, e.Date, e.Venue, e.Price, e.Image, e.OrganizerID)
	return translate(row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt))
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

func (r *EventRepository) GetDetail(ctx context.Context, id, viewerID string) (*entity.EventDetail, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanEventDetail(r.pool.QueryRow(ctx, eventDetailSelect+` WHERE e.id = $2`, viewer(viewerID), id))
}

func (r *EventRepository) List(ctx context.Context, q repository.EventQuery) ([]entity.EventDetail, int64, error) {
	p := q.Page.Normalize()
	pattern := containsPattern(q.Search)

	rows, err := r.pool.Query(ctx, eventDetailSelect+searchFilter(2)+`
		ORDER BY e.date ASC, e.id
		LIMIT $3 OFFSET $4
	`, viewer(q.ViewerID), pattern, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]entity.EventDetail, 0, p.Limit)
	for rows.Next() {
		d, err := scanEventDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events e`+searchFilter(1), pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return items, total, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, patch entity.EventPatch) (*entity.Event, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanEvent(r.pool.QueryRow(ctx, `
		UPDATE events
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    category    = COALESCE($4, category),
		    date        = COALESCE($5, date),
		    venue       = COALESCE($6, venue),
		    price       = COALESCE($7, price),
		    updated_at  = now()
		WHERE id = $1
		RETURNING `+eventColumns,
		id, patch.Name, patch.Description, patch.Category, patch.Date, patch.Venue, patch.Price))
}

func (r *EventRepository) SetImage(ctx context.Context, id, imageURL string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `UPDATE events SET image = $2, updated_at = now() WHERE id = $1`, id, imageURL)
	if err != nil {
		return fmt.Errorf("set image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) DeleteWithRegistrations(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM registrations WHERE event_id = $1`, id); err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

var _ repository.EventRepository = (*EventRepository)(nil)
