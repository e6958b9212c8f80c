package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cashwatch/cashwatch/internal/database/repository"
)

func TestMarkDuplicatesExactExternalID(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t)

	acctRepo := repository.NewAccountRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	acct := seedAccount(t, ctx, acctRepo, "Everyday")

	ext := "bank-tx-991"
	a := repository.Transaction{
		ID: uuid.NewString(), AccountID: acct.ID, ExternalID: &ext,
		Date:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("15.99"), Name: "NETFLIX.COM", Status: "pending",
	}
	b := repository.Transaction{
		ID: uuid.NewString(), AccountID: acct.ID, ExternalID: &ext,
		Date:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("15.99"), Name: "NETFLIX.COM", Status: "posted",
	}
	require.NoError(t, txRepo.Insert(ctx, a))
	require.NoError(t, txRepo.Insert(ctx, b))

	svc := &DeduperService{Transactions: txRepo}
	marked, err := svc.MarkDuplicates(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, marked)

	// the pending row loses
	got, err := txRepo.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "duplicate", got.Status)
	kept, err := txRepo.Get(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "posted", kept.Status)
}

func TestMarkDuplicatesFuzzy(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t)

	acctRepo := repository.NewAccountRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	acct := seedAccount(t, ctx, acctRepo, "Everyday")

	merchant := "Netflix"
	a := repository.Transaction{
		ID: uuid.NewString(), AccountID: acct.ID,
		Date:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("15.99"), Name: "NETFLIX.COM", Status: "posted",
		MerchantName: &merchant,
	}
	b := repository.Transaction{
		ID: uuid.NewString(), AccountID: acct.ID,
		Date:   time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("15.99"), Name: "NETFLIX.COM 44412", Status: "posted",
	}
	// same name, different amount: not a duplicate
	c := repository.Transaction{
		ID: uuid.NewString(), AccountID: acct.ID,
		Date:   time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("25.00"), Name: "NETFLIX.COM", Status: "posted",
	}
	for _, tx := range []repository.Transaction{a, b, c} {
		require.NoError(t, txRepo.Insert(ctx, tx))
	}

	svc := &DeduperService{Transactions: txRepo}
	marked, err := svc.MarkDuplicates(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, marked)

	// the row carrying the merchant name is kept
	kept, err := txRepo.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "posted", kept.Status)
	dropped, err := txRepo.Get(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "duplicate", dropped.Status)
	other, err := txRepo.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "posted", other.Status)
}

func TestMarkDuplicatesIgnoresOtherAccounts(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t)

	acctRepo := repository.NewAccountRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	a := seedAccount(t, ctx, acctRepo, "Everyday")
	b := seedAccount(t, ctx, acctRepo, "Joint")

	seedTx(t, ctx, txRepo, a.ID, "2024-01-03", "15.99", "NETFLIX.COM", nil)
	seedTx(t, ctx, txRepo, b.ID, "2024-01-03", "15.99", "NETFLIX.COM", nil)

	svc := &DeduperService{Transactions: txRepo}
	marked, err := svc.MarkDuplicates(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, marked, "identical charges on different accounts are distinct")
}
