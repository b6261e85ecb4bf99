package repository

import (
	"log/slog"

	"bankist/internal/domain"
	"bankist/internal/errors"
)

var (
	errTxDone                 = errors.NewAppError(errors.InternalError, "transaction already committed or rolled back")
	errCannotBeginTransaction = errors.NewAppError(errors.InternalError, "cannot begin a transaction inside a transaction")
)

// Store provides a unified interface for all repository operations with transaction support
type Store struct {
	executor Executor
	logger   *slog.Logger
}

// NewStore creates a new Store instance
func NewStore(db *DB, logger *slog.Logger) *Store {
	return &Store{
		executor: db,
		logger:   logger,
	}
}

// Account returns an AccountRepository using the current executor
func (s *Store) Account() domain.AccountRepository {
	return NewAccountRepository(s.executor, s.logger)
}

// WithTransaction executes fn with the table locked. Any error or panic
// restores the table to its state before fn ran.
func (s *Store) WithTransaction(fn func(*Store) error) error {
	// Only the DB can begin transactions
	db, ok := s.executor.(*DB)
	if !ok {
		return errCannotBeginTransaction
	}

	tx := db.Begin()

	txStore := &Store{
		executor: tx,
		logger:   s.logger,
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txStore); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
