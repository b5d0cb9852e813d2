package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/neondara/internal/models"
	"github.com/mmynk/neondara/internal/storage"
)

const entrySelect = `
	SELECT e.id, e.owner_id, e.person_id, e.direction, e.date, e.event, e.gift_type,
	       e.amount, e.description, e.notes, e.created_at, p.name
	FROM entries e
	JOIN people p ON p.id = e.person_id`

// CreateEntry inserts a ledger entry. The caller checks that the person
// belongs to the same owner.
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, owner_id, person_id, direction, date, event, gift_type, amount, description, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.OwnerID,
		entry.PersonID,
		string(entry.Direction),
		models.FormatDate(entry.Date),
		string(entry.Event),
		string(entry.GiftType),
		nullAmount(entry.Amount),
		entry.Description,
		entry.Notes,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// GetEntry retrieves one of the owner's entries.
func (s *SQLiteStore) GetEntry(ctx context.Context, ownerID, id string) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx, entrySelect+` WHERE e.id = ? AND e.owner_id = ?`, id, ownerID)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// ListEntries returns the owner's entries matching filter, newest first.
func (s *SQLiteStore) ListEntries(ctx context.Context, ownerID string, filter storage.EntryFilter) ([]models.Entry, error) {
	var (
		where = []string{"e.owner_id = ?"}
		args  = []any{ownerID}
	)
	if filter.PersonID != "" {
		where = append(where, "e.person_id = ?")
		args = append(args, filter.PersonID)
	}
	if filter.Event != "" {
		where = append(where, "e.event = ?")
		args = append(args, string(filter.Event))
	}
	if filter.Direction != "" {
		where = append(where, "e.direction = ?")
		args = append(args, string(filter.Direction))
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		where = append(where, `(
			(e.description NOT LIKE 'data:image/%' AND e.description LIKE ? ESCAPE '\')
			OR e.notes LIKE ? ESCAPE '\'
			OR p.name LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	query := entrySelect + ` WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY e.date DESC, e.created_at DESC, e.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

// UpdateEntry overwrites every mutable field of an entry.
func (s *SQLiteStore) UpdateEntry(ctx context.Context, entry *models.Entry) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE entries
		SET person_id = ?, direction = ?, date = ?, event = ?, gift_type = ?, amount = ?, description = ?, notes = ?
		WHERE id = ? AND owner_id = ?`,
		entry.PersonID,
		string(entry.Direction),
		models.FormatDate(entry.Date),
		string(entry.Event),
		string(entry.GiftType),
		nullAmount(entry.Amount),
		entry.Description,
		entry.Notes,
		entry.ID,
		entry.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return checkAffected(res, "entry", entry.ID)
}

// DeleteEntry removes one of the owner's entries.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return checkAffected(res, "entry", id)
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var (
		e                                models.Entry
		direction, date, event, giftType string
		amount                           sql.NullFloat64
	)
	if err := row.Scan(
		&e.ID, &e.OwnerID, &e.PersonID, &direction, &date, &event, &giftType,
		&amount, &e.Description, &e.Notes, &e.CreatedAt, &e.PersonName,
	); err != nil {
		return nil, err
	}

	d, err := models.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("bad stored date %q: %w", date, err)
	}
	e.Date = d
	e.Direction = models.Direction(direction)
	e.Event = models.Event(event)
	e.GiftType = models.GiftType(giftType)
	if amount.Valid {
		v := amount.Float64
		e.Amount = &v
	}
	return &e, nil
}

func nullAmount(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
