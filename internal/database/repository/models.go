package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashwatch/cashwatch/internal/recur"
)

// Account represents an account row. Balances are nullable: a freshly
// imported account has no balance until one is set.
type Account struct {
	ID               string
	Name             string
	Institution      string
	AccountType      string
	AvailableBalance *decimal.Decimal
	CurrentBalance   *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Balance returns the balance to measure projections against: available
// balance when set, current balance otherwise. ok is false when neither is
// known.
func (a Account) Balance() (decimal.Decimal, bool) {
	if a.AvailableBalance != nil {
		return *a.AvailableBalance, true
	}
	if a.CurrentBalance != nil {
		return *a.CurrentBalance, true
	}
	return decimal.Zero, false
}

// Transaction represents a transaction row. Amount sign convention:
// positive = outflow.
type Transaction struct {
	ID           string
	AccountID    string
	ExternalID   *string
	Date         time.Time
	Amount       decimal.Decimal
	Name         string
	MerchantName *string
	Status       string // pending | posted | duplicate
	SourceHash   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecurringItem represents one inferred recurring charge. Identity for
// upserts is (AccountID, MerchantKey); IsActive and IsUserConfirmed are
// user-controlled and never re-derived by detection.
type RecurringItem struct {
	ID                string
	AccountID         string
	MerchantKey       string
	Name              string
	MerchantName      *string
	Amount            decimal.Decimal
	Frequency         recur.Frequency
	LastDate          time.Time
	NextProjectedDate time.Time
	IsActive          bool
	IsUserConfirmed   bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
