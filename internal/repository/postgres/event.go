package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"servicehours-backend/internal/domain"
	"servicehours-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, description, starts_on, ends_on, capacity, visible,
	requires_approval, public_token, status, created_by, created_on, version`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	ev := &domain.Event{}
	err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.StartsOn, &ev.EndsOn,
		&ev.Capacity, &ev.Visible, &ev.RequiresApproval, &ev.PublicToken,
		&ev.Status, &ev.CreatedBy, &ev.CreatedOn, &ev.Version)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *eventRepository) Create(ctx context.Context, ev *domain.Event) error {
	query := `INSERT INTO events (title, description, starts_on, ends_on, capacity, visible,
	            requires_approval, public_token, status, created_by, created_on, version)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, ev.Title, ev.Description, ev.StartsOn, ev.EndsOn,
		ev.Capacity, ev.Visible, ev.RequiresApproval, ev.PublicToken, ev.Status,
		ev.CreatedBy, time.Now()).Scan(&ev.ID)
	if err != nil {
		return err
	}
	ev.Version = 1
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	ev, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadEntries(ctx, ev, 0); err != nil {
		return nil, err
	}
	return ev, nil
}

// loadEntries attaches the event's entries and their time records. A non-zero
// userID restricts the load to that participant's entry.
func (r *eventRepository) loadEntries(ctx context.Context, ev *domain.Event, userID int32) error {
	query := `SELECT id, user_id, registration_status, attendance_status, disapproval_reason,
	            joined_on, last_modified_on, last_modified_by
	          FROM registration_entries WHERE event_id = $1`
	args := []any{ev.ID}
	if userID != 0 {
		query += ` AND user_id = $2`
		args = append(args, userID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := map[int32]int{}
	for rows.Next() {
		var e domain.RegistrationEntry
		var reason sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.RegistrationStatus, &e.AttendanceStatus,
			&reason, &e.JoinedOn, &e.LastModifiedOn, &e.LastModifiedBy); err != nil {
			return err
		}
		e.EventID = ev.ID
		e.DisapprovalReason = reason.String
		byID[e.ID] = len(ev.Entries)
		ev.Entries = append(ev.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(ev.Entries) == 0 {
		return nil
	}

	recQuery := `SELECT tr.entry_id, tr.time_in, tr.time_out
	             FROM time_records tr
	             JOIN registration_entries re ON re.id = tr.entry_id
	             WHERE re.event_id = $1 ORDER BY tr.id`
	recRows, err := r.db.QueryContext(ctx, recQuery, ev.ID)
	if err != nil {
		return err
	}
	defer recRows.Close()

	for recRows.Next() {
		var entryID int32
		var rec domain.TimeRecord
		var out sql.NullTime
		if err := recRows.Scan(&entryID, &rec.TimeIn, &out); err != nil {
			return err
		}
		if out.Valid {
			t := out.Time
			rec.TimeOut = &t
		}
		if i, ok := byID[entryID]; ok {
			ev.Entries[i].Ledger.Records = append(ev.Entries[i].Ledger.Records, rec)
		}
	}
	return recRows.Err()
}

// Save writes the whole aggregate in one transaction. The event row update is
// guarded by the version column; zero rows affected means another writer got
// there first.
func (r *eventRepository) Save(ctx context.Context, ev *domain.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE events SET title = $1, description = $2, starts_on = $3, ends_on = $4,
		   capacity = $5, visible = $6, requires_approval = $7, public_token = $8,
		   status = $9, version = version + 1
		 WHERE id = $10 AND version = $11`,
		ev.Title, ev.Description, ev.StartsOn, ev.EndsOn, ev.Capacity, ev.Visible,
		ev.RequiresApproval, ev.PublicToken, ev.Status, ev.ID, ev.Version)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrVersionConflict
	}

	for i := range ev.Entries {
		e := &ev.Entries[i]
		if e.ID == 0 {
			err = tx.QueryRowContext(ctx,
				`INSERT INTO registration_entries (event_id, user_id, registration_status,
				   attendance_status, disapproval_reason, joined_on, last_modified_on, last_modified_by)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
				ev.ID, e.UserID, e.RegistrationStatus, e.AttendanceStatus, e.DisapprovalReason,
				e.JoinedOn, e.LastModifiedOn, e.LastModifiedBy).Scan(&e.ID)
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE registration_entries SET registration_status = $1, attendance_status = $2,
				   disapproval_reason = $3, last_modified_on = $4, last_modified_by = $5
				 WHERE id = $6`,
				e.RegistrationStatus, e.AttendanceStatus, e.DisapprovalReason,
				e.LastModifiedOn, e.LastModifiedBy, e.ID)
		}
		if err != nil {
			return err
		}

		// Records are immutable once closed; rewriting the entry's rows keeps
		// the mapping simple without tracking per-record dirty state.
		if _, err = tx.ExecContext(ctx, `DELETE FROM time_records WHERE entry_id = $1`, e.ID); err != nil {
			return err
		}
		for _, rec := range e.Ledger.Records {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO time_records (entry_id, time_in, time_out) VALUES ($1, $2, $3)`,
				e.ID, rec.TimeIn, rec.TimeOut); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	ev.Version++
	return nil
}

func (r *eventRepository) ListVisible(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE visible = TRUE AND status = $1 ORDER BY starts_on`
	return r.listEvents(ctx, query, domain.EventStatusActive)
}

func (r *eventRepository) listEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// ListByParticipant returns the events the user has an entry on. Each event
// carries only that user's entry and time records.
func (r *eventRepository) ListByParticipant(ctx context.Context, userID int32) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE id IN (SELECT event_id FROM registration_entries WHERE user_id = $1)
	          ORDER BY starts_on`
	events, err := r.listEvents(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if err := r.loadEntries(ctx, &events[i], userID); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (r *eventRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE status = $1 AND starts_on >= $2 AND starts_on < $3 ORDER BY starts_on`
	events, err := r.listEvents(ctx, query, domain.EventStatusActive, from, to)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if err := r.loadEntries(ctx, &events[i], 0); err != nil {
			return nil, err
		}
	}
	return events, nil
}
