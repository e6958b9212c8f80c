package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cashwatch/cashwatch/internal/database/repository"
)

func TestImportCSV(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t)

	txRepo := repository.NewTransactionRepo(db)
	acctRepo := repository.NewAccountRepo(db)
	svc := &IngestService{Transactions: txRepo, Accounts: acctRepo}

	data := strings.Join([]string{
		"2024-01-05,NETFLIX.COM 44412,15.99,Netflix,ext-1,Everyday,",
		"2024-01-06,WOOLWORTHS 3042,84.10,,,Everyday,",
		"2024-01-07,PENDING CARD AUTH,30.00,,,Everyday,1",
		"2024-01-08,SALARY,-2500.00,,,Everyday,",
	}, "\n")

	res, err := svc.ImportCSV(ctx, strings.NewReader(data), "", time.UTC)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Equal(t, 4, res.Imported)
	require.Equal(t, 0, res.Skipped)

	accts, err := acctRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, accts, 1)
	require.Equal(t, "Everyday", accts[0].Name)

	txs, err := txRepo.List(ctx, repository.TransactionFilters{AccountID: accts[0].ID})
	require.NoError(t, err)
	require.Len(t, txs, 4)

	byName := make(map[string]repository.Transaction, len(txs))
	for _, tx := range txs {
		byName[tx.Name] = tx
	}
	netflix := byName["NETFLIX.COM 44412"]
	require.NotNil(t, netflix.MerchantName)
	require.Equal(t, "Netflix", *netflix.MerchantName)
	require.NotNil(t, netflix.ExternalID)
	require.Equal(t, "posted", netflix.Status)
	require.Equal(t, "15.99", netflix.Amount.StringFixed(2))
	require.Equal(t, "2024-01-05", netflix.Date.UTC().Format("2006-01-02"))

	require.Equal(t, "pending", byName["PENDING CARD AUTH"].Status)
	require.Equal(t, "-2500.00", byName["SALARY"].Amount.StringFixed(2))

	// re-import skips everything via source hash
	res2, err := svc.ImportCSV(ctx, strings.NewReader(data), "", time.UTC)
	require.NoError(t, err)
	require.Equal(t, 0, res2.Imported)
	require.Equal(t, 4, res2.Skipped)
	require.Empty(t, res2.Errors)
}

func TestImportCSVAccountOverrideAndBadRows(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t)

	txRepo := repository.NewTransactionRepo(db)
	acctRepo := repository.NewAccountRepo(db)
	svc := &IngestService{Transactions: txRepo, Accounts: acctRepo}

	data := strings.Join([]string{
		"2024-01-05,NETFLIX.COM,15.99,,,IgnoredColumn,",
		"not-a-date,BROKEN ROW,1.00,,,IgnoredColumn,",
		"2024-01-06,BAD AMOUNT,abc,,,IgnoredColumn,",
	}, "\n")

	res, err := svc.ImportCSV(ctx, strings.NewReader(data), "Override", time.UTC)
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)
	require.Len(t, res.Errors, 2)

	accts, err := acctRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, accts, 1)
	require.Equal(t, "Override", accts[0].Name)
}
