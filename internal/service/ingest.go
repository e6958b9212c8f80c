package service

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashwatch/cashwatch/internal/database/repository"
)

// IngestService imports transaction CSV exports; it stands in for the
// bank-aggregation sync feeding the detector.
type IngestService struct {
	Transactions *repository.TransactionRepo
	Accounts     *repository.AccountRepo

	accountCache map[string]repository.Account
}

type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// CSV columns: date, description, amount, merchant, external_id, account, pending
// amount is a decimal string, positive = outflow. merchant, external_id and
// pending may be empty; pending accepts "1" or "true". The account column
// may be overridden wholesale with defaultAccount.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader, defaultAccount string, tz *time.Location) (IngestResult, error) {
	res := IngestResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	line := 0
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if len(rec) < 6 {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected at least 6 columns (date, description, amount, merchant, external_id, account)", line))
			continue
		}
		dateStr, desc, amountStr, merchantStr, externalID, accountName := rec[0], rec[1], rec[2], rec[3], rec[4], rec[5]
		pending := len(rec) > 6 && isTruthy(rec[6])
		if defaultAccount != "" {
			accountName = defaultAccount
		}

		date, err := parseLocalDate(dateStr, tz)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d date: %w", line, err))
			continue
		}
		amount, err := parseAmount(amountStr)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d amount: %w", line, err))
			continue
		}

		acct, err := s.accountForName(ctx, accountName)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d account: %w", line, err))
			continue
		}

		status := "posted"
		if pending {
			status = "pending"
		}
		t := repository.Transaction{
			ID:           uuid.NewString(),
			AccountID:    acct.ID,
			ExternalID:   nullableStr(externalID),
			Date:         date,
			Amount:       amount,
			Name:         strings.TrimSpace(desc),
			MerchantName: nullableStr(merchantStr),
			Status:       status,
			SourceHash:   hashSource(acct.ID, date.Format(time.DateOnly), amount.String(), desc),
		}
		if err := s.Transactions.Insert(ctx, t); err != nil {
			// skip duplicates on unique constraint
			if strings.Contains(err.Error(), "UNIQUE") {
				res.Skipped++
				continue
			}
			res.Errors = append(res.Errors, fmt.Errorf("line %d insert: %w", line, err))
			continue
		}
		res.Imported++
	}
	return res, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "pending":
		return true
	}
	return false
}

func nullableStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func hashSource(parts ...string) *string {
	joined := strings.Join(parts, "|")
	sum := sha256.Sum256([]byte(joined))
	h := fmt.Sprintf("%x", sum[:])
	return &h
}

func parseLocalDate(s string, loc *time.Location) (time.Time, error) {
	layout := "2006-01-02"
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(layout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func (s *IngestService) accountForName(ctx context.Context, name string) (repository.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Account{}, errors.New("account name required")
	}
	if s.accountCache == nil {
		s.accountCache = make(map[string]repository.Account)
	}
	if acct, ok := s.accountCache[name]; ok {
		return acct, nil
	}
	id := deterministicAccountID(name)
	acct := repository.Account{ID: id, Name: name, Institution: name, AccountType: "checking"}
	if err := s.Accounts.Upsert(ctx, acct); err != nil {
		return repository.Account{}, err
	}
	s.accountCache[name] = acct
	return acct, nil
}

func deterministicAccountID(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("acct:"+key)).String()
}
