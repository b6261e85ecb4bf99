package repository

import (
	"log/slog"

	"bankist/internal/domain"
	"bankist/internal/errors"
)

type accountRepository struct {
	db     Executor
	logger *slog.Logger
}

func NewAccountRepository(db Executor, logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) CreateAccount(account *domain.Account) error {
	if account.Username == "" {
		r.logger.Warn("Rejected account without username", "owner", account.Owner)
		return errors.ErrInvalidInput.WithDetails("owner must contain at least one word")
	}

	err := r.db.Exec(func(t *Table) error {
		if _, existing := t.find(account.Username); existing != nil {
			return errors.ErrDuplicateAccount
		}
		t.rows = append(t.rows, account.Clone())
		return nil
	})
	if err != nil {
		r.logger.Warn("Duplicate account creation attempt", "username", account.Username, "owner", account.Owner)
		return err
	}

	r.logger.Info("Account created successfully", "username", account.Username)
	return nil
}

func (r *accountRepository) GetAccount(username string) (*domain.Account, error) {
	var account *domain.Account

	err := r.db.Exec(func(t *Table) error {
		_, acc := t.find(username)
		if acc == nil {
			return errors.ErrAccountNotFound
		}
		account = acc.Clone()
		return nil
	})
	if err != nil {
		r.logger.Warn("Account not found", "username", username)
		return nil, err
	}

	return account, nil
}

func (r *accountRepository) ListAccounts() []domain.Account {
	var out []domain.Account

	_ = r.db.Exec(func(t *Table) error {
		out = make([]domain.Account, 0, len(t.rows))
		for _, acc := range t.rows {
			out = append(out, *acc.Clone())
		}
		return nil
	})

	return out
}

func (r *accountRepository) AppendMovement(username string, movement domain.Movement) error {
	err := r.db.Exec(func(t *Table) error {
		_, acc := t.find(username)
		if acc == nil {
			return errors.ErrAccountNotFound
		}
		acc.Movements = append(acc.Movements, movement)
		return nil
	})
	if err != nil {
		r.logger.Warn("No account found to append movement", "username", username)
		return err
	}

	r.logger.Info("Movement appended", "username", username, "amount", movement.Amount)
	return nil
}

func (r *accountRepository) DeleteAccount(username string) error {
	err := r.db.Exec(func(t *Table) error {
		i, acc := t.find(username)
		if acc == nil {
			return errors.ErrAccountNotFound
		}
		t.rows = append(t.rows[:i], t.rows[i+1:]...)
		return nil
	})
	if err != nil {
		r.logger.Warn("No account found to delete", "username", username)
		return err
	}

	r.logger.Info("Account deleted", "username", username)
	return nil
}
