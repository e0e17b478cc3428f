package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *attemptRepo) Save(ctx context.Context, a *TestAttempt) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	detail := []byte(a.Detail)
	if detail == nil {
		detail = []byte("{}")
	}

	query, args := builder().Insert("test_attempts").
		Columns("sequence", "created_at", "tier", "score", "passed", "detail").
		Values(seq, toMillis(a.CreatedAt), a.Tier, a.Score, boolToInt(a.Passed), detail).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save test attempt: %w", err)
	}
	if a.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("save test attempt: %w", err)
	}
	a.Sequence = seq
	return nil
}

func (r *attemptRepo) List(ctx context.Context, opts QueryOpts) ([]TestAttempt, error) {
	sel := builder().Select("id", "sequence", "created_at", "tier", "score", "passed", "detail").
		From(entsql.Table("test_attempts"))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list test attempts: %w", err)
	}
	defer rows.Close()

	var out []TestAttempt
	for rows.Next() {
		var (
			a         TestAttempt
			createdAt int64
			passed    int
			detail    []byte
		)
		if err := rows.Scan(&a.ID, &a.Sequence, &createdAt, &a.Tier, &a.Score, &passed, &detail); err != nil {
			return nil, fmt.Errorf("scan test attempt: %w", err)
		}
		a.CreatedAt = fromMillis(createdAt)
		a.Passed = passed != 0
		a.Detail = detail
		out = append(out, a)
	}
	return out, rows.Err()
}
