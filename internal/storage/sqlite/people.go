package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/neondara/internal/models"
	"github.com/mmynk/neondara/internal/storage"
)

const personColumns = `id, owner_id, name, relation, notes, created_at`

// CreatePerson inserts a contact. A name already used by the owner
// (ignoring case) yields storage.ErrConflict.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if person.CreatedAt == 0 {
		person.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO people (`+personColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		person.ID, person.OwnerID, person.Name, string(person.Relation), person.Notes, person.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("person %q: %w", person.Name, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}
	return nil
}

// GetPerson retrieves one of the owner's contacts.
func (s *SQLiteStore) GetPerson(ctx context.Context, ownerID, id string) (*models.Person, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	p, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return p, nil
}

// ListPeople returns the owner's contacts sorted by name.
func (s *SQLiteStore) ListPeople(ctx context.Context, ownerID string) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE owner_id = ? ORDER BY name COLLATE NOCASE`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

// UpdatePerson overwrites name, relation and notes.
func (s *SQLiteStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE people SET name = ?, relation = ?, notes = ? WHERE id = ? AND owner_id = ?`,
		person.Name, string(person.Relation), person.Notes, person.ID, person.OwnerID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("person %q: %w", person.Name, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	return checkAffected(res, "person", person.ID)
}

// DeletePerson removes a contact together with everything that references it.
func (s *SQLiteStore) DeletePerson(ctx context.Context, ownerID, id string) (storage.CascadeResult, error) {
	var result storage.CascadeResult

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM people WHERE id = ? AND owner_id = ?`, id, ownerID,
		).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to look up person: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM entries WHERE person_id = ? AND owner_id = ?`, id, ownerID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete entries: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count deleted entries: %w", err)
		}
		result.EntriesDeleted = int(n)

		billIDs, err := affectedBills(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM bill_participants WHERE person_id = ?`, id,
		); err != nil {
			return fmt.Errorf("failed to remove bill participant: %w", err)
		}

		for _, billID := range billIDs {
			var remaining int
			if err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM bill_participants WHERE bill_id = ?`, billID,
			).Scan(&remaining); err != nil {
				return fmt.Errorf("failed to count participants: %w", err)
			}

			if remaining == 0 {
				if _, err := tx.ExecContext(ctx, `DELETE FROM bills WHERE id = ?`, billID); err != nil {
					return fmt.Errorf("failed to delete empty bill: %w", err)
				}
				result.BillsDeleted++
				continue
			}

			if _, err := tx.ExecContext(ctx,
				`UPDATE bills SET payer_id = owner_id WHERE id = ? AND payer_id = ?`, billID, id,
			); err != nil {
				return fmt.Errorf("failed to reset bill payer: %w", err)
			}
			result.BillsUpdated++
		}

		// Bills the person paid for without taking part still need a payer.
		res, err = tx.ExecContext(ctx,
			`UPDATE bills SET payer_id = owner_id WHERE owner_id = ? AND payer_id = ?`, ownerID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to reset bill payer: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			result.BillsUpdated += int(n)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM people WHERE id = ? AND owner_id = ?`, id, ownerID,
		); err != nil {
			return fmt.Errorf("failed to delete person: %w", err)
		}
		return nil
	})
	if err != nil {
		return storage.CascadeResult{}, err
	}
	return result, nil
}

// affectedBills lists the owner's bills that personID takes part in.
func affectedBills(ctx context.Context, tx *sql.Tx, ownerID, personID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT b.id FROM bills b
		JOIN bill_participants bp ON bp.bill_id = b.id
		WHERE b.owner_id = ? AND bp.person_id = ?`,
		ownerID, personID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find affected bills: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bill id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate affected bills: %w", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*models.Person, error) {
	p := &models.Person{}
	var relation string
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &relation, &p.Notes, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Relation = models.Relation(relation)
	return p, nil
}
