package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/cashwatch/cashwatch/internal/recur"
)

// RecurringItemRepo handles recurring items.
type RecurringItemRepo struct {
	db *sql.DB
}

func NewRecurringItemRepo(db *sql.DB) *RecurringItemRepo { return &RecurringItemRepo{db: db} }

const recurringCols = `id, account_id, merchant_key, name, merchant_name, amount, frequency, last_date, next_projected_date, is_active, is_user_confirmed, created_at, updated_at`

const upsertRecurringSQL = `
	INSERT INTO recurring_items(
	 id, account_id, merchant_key, name, merchant_name, amount, frequency,
	 last_date, next_projected_date, is_active, is_user_confirmed, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, 1, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(account_id, merchant_key) DO UPDATE SET
	 name=excluded.name,
	 merchant_name=excluded.merchant_name,
	 amount=excluded.amount,
	 frequency=excluded.frequency,
	 last_date=excluded.last_date,
	 next_projected_date=excluded.next_projected_date,
	 updated_at=CURRENT_TIMESTAMP;`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Upsert inserts or refreshes the item identified by
// (account_id, merchant_key). The conflict branch deliberately omits
// is_active and is_user_confirmed: those are user state, not detection
// output.
func (r *RecurringItemRepo) Upsert(ctx context.Context, item RecurringItem) error {
	return upsertRecurring(ctx, r.db, item)
}

// UpsertTx is Upsert inside a caller-managed transaction.
func (r *RecurringItemRepo) UpsertTx(ctx context.Context, tx *sql.Tx, item RecurringItem) error {
	return upsertRecurring(ctx, tx, item)
}

func upsertRecurring(ctx context.Context, ex execer, item RecurringItem) error {
	_, err := ex.ExecContext(ctx, upsertRecurringSQL,
		item.ID, item.AccountID, item.MerchantKey, item.Name, item.MerchantName,
		item.Amount.String(), string(item.Frequency), item.LastDate, item.NextProjectedDate)
	return err
}

// ListActive returns items eligible for projection.
func (r *RecurringItemRepo) ListActive(ctx context.Context) ([]RecurringItem, error) {
	query := `SELECT ` + recurringCols + ` FROM recurring_items WHERE is_active = 1 ORDER BY account_id, merchant_key`
	return r.queryItems(ctx, query)
}

func (r *RecurringItemRepo) List(ctx context.Context) ([]RecurringItem, error) {
	query := `SELECT ` + recurringCols + ` FROM recurring_items ORDER BY account_id, merchant_key`
	return r.queryItems(ctx, query)
}

func (r *RecurringItemRepo) Get(ctx context.Context, id string) (*RecurringItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recurringCols+` FROM recurring_items WHERE id = ?`, id)
	item, err := scanRecurringItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByKey fetches the item for an (account, merchant key) pair.
func (r *RecurringItemRepo) GetByKey(ctx context.Context, accountID, merchantKey string) (*RecurringItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recurringCols+` FROM recurring_items WHERE account_id = ? AND merchant_key = ?`,
		accountID, merchantKey)
	item, err := scanRecurringItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// SetActive flips the user deactivation flag. Detection never calls this.
func (r *RecurringItemRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE recurring_items SET is_active = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`,
		boolToInt(active), id)
	return err
}

// SetConfirmed records user acknowledgment. Does not affect detection or
// projection.
func (r *RecurringItemRepo) SetConfirmed(ctx context.Context, id string, confirmed bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE recurring_items SET is_user_confirmed = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`,
		boolToInt(confirmed), id)
	return err
}

func (r *RecurringItemRepo) queryItems(ctx context.Context, query string, args ...interface{}) ([]RecurringItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecurringItem
	for rows.Next() {
		item, err := scanRecurringItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanRecurringItem(row scanner) (RecurringItem, error) {
	var item RecurringItem
	var merchant sql.NullString
	var amount, frequency string
	var active, confirmed int
	if err := row.Scan(&item.ID, &item.AccountID, &item.MerchantKey, &item.Name, &merchant,
		&amount, &frequency, &item.LastDate, &item.NextProjectedDate,
		&active, &confirmed, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return RecurringItem{}, err
	}
	var err error
	if item.Amount, err = decimal.NewFromString(amount); err != nil {
		return RecurringItem{}, err
	}
	item.Frequency = recur.Frequency(frequency)
	if merchant.Valid {
		item.MerchantName = &merchant.String
	}
	item.IsActive = active != 0
	item.IsUserConfirmed = confirmed != 0
	return item, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
