package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashwatch/cashwatch/internal/database"
	"github.com/cashwatch/cashwatch/internal/database/repository"
	"github.com/cashwatch/cashwatch/internal/recur"
)

// DetectorService runs the per-account recurring-charge detection pass:
// group posted transactions by normalized merchant key, infer a cadence,
// check amount stability, and upsert one RecurringItem per qualifying group.
type DetectorService struct {
	DB           *sql.DB
	Transactions *repository.TransactionRepo
	Recurring    *repository.RecurringItemRepo
	Accounts     *repository.AccountRepo
}

// DetectResult counts what one pass did.
type DetectResult struct {
	Groups          int
	Upserted        int
	SkippedEvidence int // fewer than 3 occurrences
	SkippedCadence  int // no tolerance window matched
	SkippedAmounts  int // amounts too variable, or non-positive mean
}

func (r DetectResult) add(other DetectResult) DetectResult {
	r.Groups += other.Groups
	r.Upserted += other.Upserted
	r.SkippedEvidence += other.SkippedEvidence
	r.SkippedCadence += other.SkippedCadence
	r.SkippedAmounts += other.SkippedAmounts
	return r
}

// DetectAccount classifies one account's posted transactions. The qualifying
// groups are upserted in one transaction, so a failed pass leaves no partial
// rows; evidence and cadence misses are silent skips. Re-running with
// unchanged transactions stores the same values.
func (s *DetectorService) DetectAccount(ctx context.Context, accountID string) (DetectResult, error) {
	txs, err := s.Transactions.PostedByAccount(ctx, accountID)
	if err != nil {
		return DetectResult{}, fmt.Errorf("load transactions: %w", err)
	}

	groups := groupByMerchant(txs)
	res := DetectResult{Groups: len(groups)}

	var qualified []repository.RecurringItem
	for key, g := range groups {
		if len(g.dates) < 3 {
			res.SkippedEvidence++
			continue
		}
		freq, interval, ok := recur.ClassifyFrequency(g.dates)
		if !ok {
			res.SkippedCadence++
			continue
		}
		if !recur.AmountsConsistent(g.amounts) {
			res.SkippedAmounts++
			continue
		}
		amount := recur.Mean(g.amounts).Round(2)
		if !amount.IsPositive() {
			// inflow or zero group; recurring items represent charges
			res.SkippedAmounts++
			continue
		}
		last := g.lastDate()
		qualified = append(qualified, repository.RecurringItem{
			ID:                uuid.NewString(),
			AccountID:         accountID,
			MerchantKey:       key,
			Name:              g.name,
			MerchantName:      g.merchant,
			Amount:            amount,
			Frequency:         freq,
			LastDate:          last,
			NextProjectedDate: last.AddDate(0, 0, interval),
		})
	}
	if len(qualified) == 0 {
		return res, nil
	}

	err = database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, item := range qualified {
			if err := s.Recurring.UpsertTx(ctx, tx, item); err != nil {
				return fmt.Errorf("upsert %q: %w", item.MerchantKey, err)
			}
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	res.Upserted = len(qualified)
	return res, nil
}

// DetectAll runs detection for every known account sequentially. Callers
// wanting concurrency must serialize per account themselves; concurrent runs
// on the same account are last-write-wins.
func (s *DetectorService) DetectAll(ctx context.Context) (DetectResult, error) {
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return DetectResult{}, fmt.Errorf("list accounts: %w", err)
	}
	var total DetectResult
	for _, a := range accounts {
		res, err := s.DetectAccount(ctx, a.ID)
		total = total.add(res)
		if err != nil {
			return total, fmt.Errorf("account %s: %w", a.Name, err)
		}
	}
	return total, nil
}

type merchantGroup struct {
	name     string
	merchant *string
	latest   time.Time
	dates    []time.Time
	amounts  []decimal.Decimal
}

func (g *merchantGroup) lastDate() time.Time {
	last := g.dates[0]
	for _, d := range g.dates[1:] {
		if d.After(last) {
			last = d
		}
	}
	return last
}

func groupByMerchant(txs []repository.Transaction) map[string]*merchantGroup {
	groups := make(map[string]*merchantGroup)
	for _, t := range txs {
		key := recur.MerchantKey(t.Name, t.MerchantName)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &merchantGroup{}
			groups[key] = g
		}
		g.dates = append(g.dates, t.Date)
		g.amounts = append(g.amounts, t.Amount)
		// display name and merchant follow the most recent occurrence
		if g.name == "" || t.Date.After(g.latest) {
			g.latest = t.Date
			g.name = t.Name
			if t.MerchantName != nil {
				g.merchant = t.MerchantName
			}
		}
	}
	return groups
}
