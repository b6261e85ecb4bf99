package repository

import (
	"sync"

	"bankist/internal/domain"
)

// Table holds account rows in insertion order.
type Table struct {
	rows []*domain.Account
}

func (t *Table) find(username string) (int, *domain.Account) {
	for i, acc := range t.rows {
		if acc.Username == username {
			return i, acc
		}
	}
	return -1, nil
}

func (t *Table) clone() Table {
	rows := make([]*domain.Account, len(t.rows))
	for i, acc := range t.rows {
		rows[i] = acc.Clone()
	}
	return Table{rows: rows}
}

// Executor represents both DB and Tx
type Executor interface {
	Exec(fn func(t *Table) error) error
}

// DB is the in-memory account table. Every Exec takes the table lock.
type DB struct {
	mu    sync.Mutex
	table Table
}

func NewDB() *DB {
	return &DB{}
}

func (db *DB) Exec(fn func(t *Table) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(&db.table)
}

// Begin locks the table until Commit or Rollback and remembers its state so
// Rollback can restore it.
func (db *DB) Begin() *Tx {
	db.mu.Lock()
	return &Tx{db: db, snapshot: db.table.clone()}
}

// Tx runs statements against a table whose lock it already holds.
type Tx struct {
	db       *DB
	snapshot Table
	done     bool
}

func (tx *Tx) Exec(fn func(t *Table) error) error {
	if tx.done {
		return errTxDone
	}
	return fn(&tx.db.table)
}

func (tx *Tx) Commit() error {
	if tx.done {
		return errTxDone
	}
	tx.done = true
	tx.db.mu.Unlock()
	return nil
}

func (tx *Tx) Rollback() error {
	if tx.done {
		return errTxDone
	}
	tx.done = true
	tx.db.table = tx.snapshot
	tx.db.mu.Unlock()
	return nil
}

// Ensure both executors implement Executor
var (
	_ Executor = (*DB)(nil)
	_ Executor = (*Tx)(nil)
)
