package service

import (
	"context"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/cashwatch/cashwatch/internal/database/repository"
)

// DeduperService marks duplicate transaction rows so day-gap analysis in
// detection is not distorted by the same charge appearing twice (e.g. a
// pending row the sync later re-delivers as posted).
type DeduperService struct {
	Transactions *repository.TransactionRepo
}

// MarkDuplicates runs exact matching (shared external id or source hash)
// then fuzzy matching (same amount, within 7 days, similar description) over
// all non-duplicate rows. The losing row of each pair gets status
// 'duplicate'. Returns the number of rows marked.
func (s *DeduperService) MarkDuplicates(ctx context.Context) (int, error) {
	txs, err := s.Transactions.DedupeCandidates(ctx)
	if err != nil {
		return 0, err
	}

	marked := 0
	dropped := make(map[string]bool)
	for i := 0; i < len(txs); i++ {
		if dropped[txs[i].ID] {
			continue
		}
		for j := i + 1; j < len(txs); j++ {
			if dropped[txs[j].ID] {
				continue
			}
			a, b := txs[i], txs[j]
			if a.AccountID != b.AccountID {
				continue
			}
			if !matchExact(a, b) && !matchFuzzy(a, b) {
				continue
			}
			keep, drop := chooseKeep(a, b)
			// carry the merchant over before dropping the richer row
			if keep.MerchantName == nil && drop.MerchantName != nil {
				if err := s.Transactions.UpdateMerchant(ctx, keep.ID, drop.MerchantName); err != nil {
					return marked, err
				}
			}
			if err := s.Transactions.UpdateStatus(ctx, drop.ID, "duplicate"); err != nil {
				return marked, err
			}
			dropped[drop.ID] = true
			marked++
			if dropped[txs[i].ID] {
				break
			}
		}
	}
	return marked, nil
}

func matchExact(a, b repository.Transaction) bool {
	if a.ExternalID != nil && b.ExternalID != nil && *a.ExternalID == *b.ExternalID {
		return true
	}
	if a.SourceHash != nil && b.SourceHash != nil && *a.SourceHash == *b.SourceHash {
		return true
	}
	return false
}

func matchFuzzy(a, b repository.Transaction) bool {
	if !a.Amount.Equal(b.Amount) {
		return false
	}
	if daysApart(a.Date, b.Date) > 7 {
		return false
	}
	dist := levenshtein.ComputeDistance(strings.ToUpper(a.Name), strings.ToUpper(b.Name))
	maxlen := len(a.Name)
	if len(b.Name) > maxlen {
		maxlen = len(b.Name)
	}
	if maxlen == 0 {
		return false
	}
	return float64(dist)/float64(maxlen) < 0.4
}

func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

// chooseKeep prefers the posted row, then the one carrying a merchant name,
// then the earlier date.
func chooseKeep(a, b repository.Transaction) (keep, drop repository.Transaction) {
	if a.Status == "posted" && b.Status != "posted" {
		return a, b
	}
	if b.Status == "posted" && a.Status != "posted" {
		return b, a
	}
	if a.MerchantName != nil && b.MerchantName == nil {
		return a, b
	}
	if b.MerchantName != nil && a.MerchantName == nil {
		return b, a
	}
	if b.Date.Before(a.Date) {
		return b, a
	}
	return a, b
}
