package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const progressRow = 1

type progressRepo struct {
	db dbtx
}

func (r *progressRepo) Get(ctx context.Context) (*Progress, error) {
	query, args := builder().Select("tier", "interviews_completed", "updated_at").
		From(entsql.Table("progress")).
		Where(entsql.EQ("id", progressRow)).
		Query()

	var (
		p         Progress
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.Tier, &p.InterviewsCompleted, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	p.UpdatedAt = fromMillis(updatedAt)
	return &p, nil
}

func (r *progressRepo) Put(ctx context.Context, p *Progress) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	query, args := builder().Insert("progress").
		Columns("id", "tier", "interviews_completed", "updated_at").
		Values(progressRow, p.Tier, p.InterviewsCompleted, toMillis(p.UpdatedAt)).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context) error {
	query, args := builder().Delete("progress").Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
