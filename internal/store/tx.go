package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxRepos are the repositories that can take part in a transaction.
type TxRepos interface {
	PausedRepo() PausedRepo
	ProgressRepo() ProgressRepo
	ReportRepo() ReportRepo
}

// Transactor runs a function against repositories bound to one
// transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(TxRepos) error) error
}

// txRepos binds the repositories to an open transaction.
type txRepos struct {
	tx  *sql.Tx
	seq *sequenceCounter
}

func (t *txRepos) PausedRepo() PausedRepo {
	return &pausedRepo{db: t.tx}
}

func (t *txRepos) ProgressRepo() ProgressRepo {
	return &progressRepo{db: t.tx}
}

func (t *txRepos) ReportRepo() ReportRepo {
	return &reportRepo{db: t.tx, seq: t.seq}
}

// InTx runs fn in a transaction. The transaction commits when fn returns
// nil and rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(TxRepos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&txRepos{tx: tx, seq: s.seq}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Warn().Err(rbErr).Msg("rollback failed")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
