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

const billColumns = `id, owner_id, description, total_amount, date, payer_id, created_at`

// CreateBill persists a new bill and its participants in one transaction.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bills (`+billColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			bill.ID, bill.OwnerID, bill.Description, bill.TotalAmount,
			models.FormatDate(bill.Date), bill.PayerID, bill.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}
		return insertParticipants(ctx, tx, bill)
	})
}

// GetBill retrieves a bill with its participants in insertion order.
func (s *SQLiteStore) GetBill(ctx context.Context, ownerID, id string) (*models.Bill, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE id = ? AND owner_id = ?`, id, ownerID,
	)
	bill, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	byBill, err := s.loadParticipants(ctx, `bp.bill_id = ?`, id)
	if err != nil {
		return nil, err
	}
	bill.Participants = byBill[id]
	return bill, nil
}

// ListBills returns the owner's bills newest first.
func (s *SQLiteStore) ListBills(ctx context.Context, ownerID string) ([]models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE owner_id = ? ORDER BY date DESC, created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	if len(bills) == 0 {
		return bills, nil
	}

	byBill, err := s.loadParticipants(ctx, `b.owner_id = ?`, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		bills[i].Participants = byBill[bills[i].ID]
	}
	return bills, nil
}

// UpdateBill replaces a bill and its participant list.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE bills SET description = ?, total_amount = ?, date = ?, payer_id = ?
			WHERE id = ? AND owner_id = ?`,
			bill.Description, bill.TotalAmount, models.FormatDate(bill.Date), bill.PayerID,
			bill.ID, bill.OwnerID,
		)
		if err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		if err := checkAffected(res, "bill", bill.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM bill_participants WHERE bill_id = ?`, bill.ID); err != nil {
			return fmt.Errorf("failed to clear participants: %w", err)
		}
		return insertParticipants(ctx, tx, bill)
	})
}

// DeleteBill removes a bill; participants go with it.
func (s *SQLiteStore) DeleteBill(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bills WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return checkAffected(res, "bill", id)
}

func insertParticipants(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	for i, p := range bill.Participants {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bill_participants (bill_id, person_id, position, share_amount, is_paid)
			VALUES (?, ?, ?, ?, ?)`,
			bill.ID, p.PersonID, i, p.ShareAmount, p.IsPaid,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("participant %s listed twice: %w", p.PersonID, storage.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// loadParticipants returns participants grouped by bill ID for the bills
// selected by cond.
func (s *SQLiteStore) loadParticipants(ctx context.Context, cond string, arg any) (map[string][]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT bp.bill_id, bp.person_id, bp.share_amount, bp.is_paid, p.name
		FROM bill_participants bp
		JOIN bills b ON b.id = bp.bill_id
		JOIN people p ON p.id = bp.person_id
		WHERE `+cond+`
		ORDER BY bp.bill_id, bp.position`,
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Participant)
	for rows.Next() {
		var (
			billID string
			p      models.Participant
		)
		if err := rows.Scan(&billID, &p.PersonID, &p.ShareAmount, &p.IsPaid, &p.PersonName); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		out[billID] = append(out[billID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return out, nil
}

func scanBill(row rowScanner) (*models.Bill, error) {
	b := &models.Bill{}
	var date string
	if err := row.Scan(&b.ID, &b.OwnerID, &b.Description, &b.TotalAmount, &date, &b.PayerID, &b.CreatedAt); err != nil {
		return nil, err
	}
	d, err := models.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("bad stored date %q: %w", date, err)
	}
	b.Date = d
	return b, nil
}
