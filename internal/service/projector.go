package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashwatch/cashwatch/internal/database"
	"github.com/cashwatch/cashwatch/internal/database/repository"
	"github.com/cashwatch/cashwatch/internal/recur"
)

// ProjectedExpense is one future occurrence of a recurring item.
type ProjectedExpense struct {
	Date      time.Time
	Name      string
	Amount    decimal.Decimal
	AccountID string
}

// Shortfall flags an account whose projected outflow exceeds its balance.
type Shortfall struct {
	AccountID   string
	AccountName string
	Shortfall   decimal.Decimal
}

// ShortfallReport aggregates projected outflow against balances.
type ShortfallReport struct {
	TotalProjected decimal.Decimal
	Shortfalls     []Shortfall
}

// ProjectorService walks active recurring items forward and compares the
// projected outflow against account balances. Now is injectable for tests;
// leave it nil to use the database clock.
type ProjectorService struct {
	Recurring *repository.RecurringItemRepo
	Accounts  *repository.AccountRepo
	Now       func() time.Time
}

func (s *ProjectorService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return database.Now()
}

// Project emits every projected occurrence of the active recurring items
// within horizonDays of now, ascending by date. Items whose stored next date
// fell before today are fast-forwarded by whole intervals first; a charge due
// today still counts, whatever the time of day.
func (s *ProjectorService) Project(ctx context.Context, horizonDays int) ([]ProjectedExpense, error) {
	items, err := s.Recurring.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recurring items: %w", err)
	}

	now := s.now()
	limit := now.AddDate(0, 0, horizonDays)
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var out []ProjectedExpense
	for _, item := range items {
		interval := recur.IntervalDays(item.Frequency)
		if interval == 0 {
			continue
		}
		next := item.NextProjectedDate
		if next.IsZero() {
			if item.LastDate.IsZero() {
				continue
			}
			next = item.LastDate.AddDate(0, 0, interval)
		}
		// repair stale projections: the sync may not have run for a while
		for next.Before(today) {
			next = next.AddDate(0, 0, interval)
		}
		for !next.After(limit) {
			out = append(out, ProjectedExpense{
				Date:      next,
				Name:      item.Name,
				Amount:    item.Amount,
				AccountID: item.AccountID,
			})
			next = next.AddDate(0, 0, interval)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// Summarize groups projected outflow per account and flags the ones whose
// outflow exceeds the available balance (falling back to current balance).
// Accounts with no balance on record cannot be assessed and are never
// flagged.
func (s *ProjectorService) Summarize(ctx context.Context, horizonDays int) (ShortfallReport, error) {
	expenses, err := s.Project(ctx, horizonDays)
	if err != nil {
		return ShortfallReport{}, err
	}
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return ShortfallReport{}, fmt.Errorf("list accounts: %w", err)
	}

	byID := make(map[string]repository.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	outflow := make(map[string]decimal.Decimal)
	report := ShortfallReport{TotalProjected: decimal.Zero}
	for _, e := range expenses {
		outflow[e.AccountID] = outflow[e.AccountID].Add(e.Amount)
		report.TotalProjected = report.TotalProjected.Add(e.Amount)
	}

	for _, a := range accounts {
		total, ok := outflow[a.ID]
		if !ok || total.IsZero() {
			continue
		}
		balance, known := a.Balance()
		if !known {
			continue
		}
		if total.GreaterThan(balance) {
			report.Shortfalls = append(report.Shortfalls, Shortfall{
				AccountID:   a.ID,
				AccountName: a.Name,
				Shortfall:   total.Sub(balance),
			})
		}
	}
	return report, nil
}
