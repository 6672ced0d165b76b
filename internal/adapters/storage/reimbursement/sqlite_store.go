package reimbursement

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/J11tendra/saac-event-management/internal/adapters/storage"
	domain "github.com/J11tendra/saac-event-management/internal/domain/reimbursement"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const treasurerColumns = `id, club_id, student_id, student_name, account_holder_name,
		account_number, bank_name, branch_name, ifsc_code, created_at`

// GetTreasurerByClubID retrieves the club's registered treasurer.
// PRE: clubID is non-empty
// POST: Returns the entity or sql.ErrNoRows if none is registered
func (s *SQLiteStore) GetTreasurerByClubID(ctx context.Context, clubID string) (domain.Treasurer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+treasurerColumns+` FROM treasurer WHERE club_id = ?`, clubID)

	var t domain.Treasurer
	var branch sql.NullString
	var createdAt string
	err := row.Scan(&t.ID, &t.ClubID, &t.StudentID, &t.StudentName, &t.AccountHolderName,
		&t.AccountNumber, &t.BankName, &branch, &t.IFSCCode, &createdAt)
	if err != nil {
		return domain.Treasurer{}, err
	}
	if branch.Valid {
		t.BranchName = branch.String
	}
	t.CreatedAt = parseTime(createdAt, "created_at", t.ID)
	return t, nil
}

// SaveTreasurer inserts or replaces a club's treasurer. club_id is unique,
// so re-registration updates the existing row in place.
// PRE: entity has been validated
// POST: The club's treasurer details reflect the given entity
func (s *SQLiteStore) SaveTreasurer(ctx context.Context, t domain.Treasurer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO treasurer (id, club_id, student_id, student_name, account_holder_name,
		   account_number, bank_name, branch_name, ifsc_code, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(club_id) DO UPDATE SET
		   student_id=excluded.student_id, student_name=excluded.student_name,
		   account_holder_name=excluded.account_holder_name, account_number=excluded.account_number,
		   bank_name=excluded.bank_name, branch_name=excluded.branch_name,
		   ifsc_code=excluded.ifsc_code`,
		t.ID, t.ClubID, t.StudentID, t.StudentName, t.AccountHolderName,
		t.AccountNumber, t.BankName, nullableString(t.BranchName), t.IFSCCode,
		t.CreatedAt.Format(timeLayout))
	return err
}

// CreateReimbursement inserts a claim with its reimbursees and line items
// inside a single transaction.
// PRE: entity and children validated, child IDs assigned
// POST: Either everything is persisted or nothing is
func (s *SQLiteStore) CreateReimbursement(ctx context.Context, r domain.Reimbursement) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reimbursement (id, treasurer_id, created_at) VALUES (?, ?, ?)`,
		r.ID, r.TreasurerID, r.CreatedAt.Format(timeLayout))
	if err != nil {
		return err
	}
	for _, re := range r.Reimbursees {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO reimbursee (id, reimbursement_id, student_id, student_name, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			re.ID, re.ReimbursementID, re.StudentID, re.StudentName, re.CreatedAt.Format(timeLayout))
		if err != nil {
			return err
		}
	}
	for _, it := range r.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO reimbursement_item (id, reimbursement_id, name, amount, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			it.ID, it.ReimbursementID, it.Name, it.Amount.String(), it.CreatedAt.Format(timeLayout))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListByTreasurer returns a treasurer's claims newest first, each with its
// reimbursees and items loaded.
func (s *SQLiteStore) ListByTreasurer(ctx context.Context, treasurerID string) ([]domain.Reimbursement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, treasurer_id, created_at FROM reimbursement
		 WHERE treasurer_id = ? ORDER BY created_at DESC, id DESC`, treasurerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.Reimbursement
	for rows.Next() {
		var r domain.Reimbursement
		var createdAt string
		if err := rows.Scan(&r.ID, &r.TreasurerID, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(createdAt, "created_at", r.ID)
		claims = append(claims, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range claims {
		if claims[i].Reimbursees, err = s.listReimbursees(ctx, claims[i].ID); err != nil {
			return nil, err
		}
		if claims[i].Items, err = s.listItems(ctx, claims[i].ID); err != nil {
			return nil, err
		}
	}
	return claims, nil
}

func (s *SQLiteStore) listReimbursees(ctx context.Context, reimbursementID string) ([]domain.Reimbursee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, reimbursement_id, student_id, student_name, created_at
		 FROM reimbursee WHERE reimbursement_id = ? ORDER BY created_at ASC, id ASC`,
		reimbursementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reimbursee
	for rows.Next() {
		var re domain.Reimbursee
		var createdAt string
		if err := rows.Scan(&re.ID, &re.ReimbursementID, &re.StudentID, &re.StudentName, &createdAt); err != nil {
			return nil, err
		}
		re.CreatedAt = parseTime(createdAt, "created_at", re.ID)
		out = append(out, re)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) listItems(ctx context.Context, reimbursementID string) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, reimbursement_id, name, amount, created_at
		 FROM reimbursement_item WHERE reimbursement_id = ? ORDER BY created_at ASC, id ASC`,
		reimbursementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Item
	for rows.Next() {
		var it domain.Item
		var amount, createdAt string
		if err := rows.Scan(&it.ID, &it.ReimbursementID, &it.Name, &amount, &createdAt); err != nil {
			return nil, err
		}
		it.Amount = parseDecimal(amount, it.ID)
		it.CreatedAt = parseTime(createdAt, "created_at", it.ID)
		out = append(out, it)
	}
	return out, rows.Err()
}

// parseDecimal parses a stored decimal string, logging a warning on failure.
func parseDecimal(raw, itemID string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Warn("reimbursement: failed to parse amount", "item_id", itemID, "raw", raw, "error", err)
	}
	return d
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, field, id string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("reimbursement: failed to parse time", "field", field, "id", id, "raw", raw, "error", err)
	}
	return t
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
