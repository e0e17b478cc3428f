package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var reportColumns = []string{
	"id", "sequence", "created_at", "company_name", "job_role",
	"company_url", "tier", "language", "feedback", "transcript",
}

type reportRepo struct {
	db  dbtx
	seq *sequenceCounter
}

func (r *reportRepo) Save(ctx context.Context, rep *Report) error {
	seq, err := r.seq.nextIn(ctx, r.db)
	if err != nil {
		return err
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	transcript := []byte(rep.Transcript)
	if transcript == nil {
		transcript = []byte("[]")
	}

	query, args := builder().Insert("reports").
		Columns(reportColumns[1:]...).
		Values(seq, toMillis(rep.CreatedAt), rep.CompanyName, rep.JobRole,
			rep.CompanyURL, rep.Tier, rep.Language, rep.Feedback, transcript).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	rep.ID = id
	rep.Sequence = seq
	return nil
}

func (r *reportRepo) List(ctx context.Context, opts QueryOpts) ([]Report, error) {
	sel := builder().Select(reportColumns...).From(entsql.Table("reports"))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		out = append(out, *rep)
	}
	return out, rows.Err()
}

func (r *reportRepo) Get(ctx context.Context, id int64) (*Report, error) {
	query, args := builder().Select(reportColumns...).
		From(entsql.Table("reports")).
		Where(entsql.EQ("id", id)).
		Query()

	rep, err := scanReport(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	return rep, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*Report, error) {
	var (
		rep        Report
		createdAt  int64
		transcript []byte
	)
	err := row.Scan(&rep.ID, &rep.Sequence, &createdAt, &rep.CompanyName, &rep.JobRole,
		&rep.CompanyURL, &rep.Tier, &rep.Language, &rep.Feedback, &transcript)
	if err != nil {
		return nil, err
	}
	rep.CreatedAt = fromMillis(createdAt)
	rep.Transcript = transcript
	return &rep, nil
}
