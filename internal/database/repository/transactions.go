package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionFilters defines list filters.
type TransactionFilters struct {
	AccountID string
	Status    string
	Search    string
}

// TransactionRepo handles transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

const transactionCols = `id, account_id, external_id, date, amount, name, merchant_name, status, source_hash, created_at, updated_at`

func (r *TransactionRepo) Insert(ctx context.Context, t Transaction) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(
	 id, account_id, external_id, date, amount, name, merchant_name, status, source_hash, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		t.ID, t.AccountID, t.ExternalID, t.Date, t.Amount.String(), t.Name,
		t.MerchantName, t.Status, t.SourceHash)
	return err
}

func (r *TransactionRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE transactions SET status = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

func (r *TransactionRepo) UpdateMerchant(ctx context.Context, id string, merchant *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE transactions SET merchant_name = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, merchant, id)
	return err
}

func (r *TransactionRepo) List(ctx context.Context, f TransactionFilters) ([]Transaction, error) {
	var where []string
	var args []interface{}

	if f.AccountID != "" {
		where = append(where, "account_id = ?")
		args = append(args, f.AccountID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Search != "" {
		where = append(where, "name LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := `SELECT ` + transactionCols + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"

	return r.queryTransactions(ctx, query, args...)
}

// PostedByAccount is the detection read: every settled, non-duplicate
// transaction for one account, oldest first.
func (r *TransactionRepo) PostedByAccount(ctx context.Context, accountID string) ([]Transaction, error) {
	query := `SELECT ` + transactionCols + ` FROM transactions WHERE account_id = ? AND status = 'posted' ORDER BY date ASC, created_at ASC`
	return r.queryTransactions(ctx, query, accountID)
}

// DedupeCandidates returns all rows not already marked duplicate.
func (r *TransactionRepo) DedupeCandidates(ctx context.Context) ([]Transaction, error) {
	query := `SELECT ` + transactionCols + ` FROM transactions WHERE status != 'duplicate' ORDER BY date ASC, created_at ASC`
	return r.queryTransactions(ctx, query)
}

func (r *TransactionRepo) Get(ctx context.Context, id string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionCols+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepo) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// scanner handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (Transaction, error) {
	var t Transaction
	var external, merchant, source sql.NullString
	var amount string
	if err := row.Scan(&t.ID, &t.AccountID, &external, &t.Date, &amount, &t.Name,
		&merchant, &t.Status, &source, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Transaction{}, err
	}
	var err error
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return Transaction{}, err
	}
	if external.Valid {
		t.ExternalID = &external.String
	}
	if merchant.Valid {
		t.MerchantName = &merchant.String
	}
	if source.Valid {
		t.SourceHash = &source.String
	}
	return t, nil
}
