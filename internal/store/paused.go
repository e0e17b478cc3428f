package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const pausedSlot = 1

type pausedRepo struct {
	db dbtx
}

func (r *pausedRepo) Save(ctx context.Context, p *PausedInterview) error {
	if len(p.Data) == 0 {
		return fmt.Errorf("save paused interview: empty snapshot")
	}
	query, args := builder().Insert("paused_interviews").
		Columns("id", "company_name", "job_role", "data", "paused_at").
		Values(pausedSlot, p.CompanyName, p.JobRole, []byte(p.Data), toMillis(p.PausedAt)).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save paused interview: %w", err)
	}
	return nil
}

func (r *pausedRepo) Load(ctx context.Context) (*PausedInterview, error) {
	query, args := builder().Select("company_name", "job_role", "data", "paused_at").
		From(entsql.Table("paused_interviews")).
		Where(entsql.EQ("id", pausedSlot)).
		Query()

	var (
		p        PausedInterview
		data     []byte
		pausedAt int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.CompanyName, &p.JobRole, &data, &pausedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load paused interview: %w", err)
	}
	p.Data = data
	p.PausedAt = fromMillis(pausedAt)
	return &p, nil
}

func (r *pausedRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete("paused_interviews").
		Where(entsql.EQ("id", pausedSlot)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear paused interview: %w", err)
	}
	return nil
}
