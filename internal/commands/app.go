package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cashwatch/cashwatch/internal/config"
	"github.com/cashwatch/cashwatch/internal/database"
	"github.com/cashwatch/cashwatch/internal/database/repository"
	"github.com/cashwatch/cashwatch/internal/service"
)

// app wires config, database and services for one command invocation.
type app struct {
	cfg config.Config
	db  *sql.DB

	accounts     *repository.AccountRepo
	transactions *repository.TransactionRepo
	recurring    *repository.RecurringItemRepo

	ingester  *service.IngestService
	deduper   *service.DeduperService
	detector  *service.DetectorService
	projector *service.ProjectorService
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.RunMigrationsWithDB(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	a := &app{
		cfg:          cfg,
		db:           db,
		accounts:     repository.NewAccountRepo(db),
		transactions: repository.NewTransactionRepo(db),
		recurring:    repository.NewRecurringItemRepo(db),
	}
	a.ingester = &service.IngestService{Transactions: a.transactions, Accounts: a.accounts}
	a.deduper = &service.DeduperService{Transactions: a.transactions}
	a.detector = &service.DetectorService{DB: db, Transactions: a.transactions, Recurring: a.recurring, Accounts: a.accounts}
	a.projector = &service.ProjectorService{Recurring: a.recurring, Accounts: a.accounts}
	return a, nil
}

func (a *app) Close() error { return a.db.Close() }

func (a *app) accountNames(ctx context.Context) (map[string]string, error) {
	accounts, err := a.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(accounts))
	for _, acct := range accounts {
		names[acct.ID] = acct.Name
	}
	return names, nil
}
