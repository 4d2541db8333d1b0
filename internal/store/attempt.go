package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// attemptRepo implements AttemptRepo using the ent SQL builders.
type attemptRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *attemptRepo) Record(ctx context.Context, a *Attempt) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.TimeStart.IsZero() {
		a.TimeStart = time.Now().UTC()
	}
	a.Sequence = seqNum

	var finish any
	if a.TimeFinish != nil {
		finish = a.TimeFinish.Unix()
	}

	q, args := sqlite().Insert(tableAttempts).
		Columns(colID, colGameID, colUserID, colSequence, "time_start", "time_finish", "score").
		Values(a.ID, a.GameID, a.UserID, a.Sequence, a.TimeStart.Unix(), finish, a.Score).
		Query()

	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) Count(ctx context.Context, gameID, userID int64) (int, error) {
	q, args := sqlite().Select(entsql.Count("*")).
		From(entsql.Table(tableAttempts)).
		Where(entsql.And(
			entsql.EQ(colGameID, gameID),
			entsql.EQ(colUserID, userID),
		)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	defer rows.Close()

	n, err := entsql.ScanInt(rows)
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return n, nil
}

func (r *attemptRepo) Learners(ctx context.Context, gameID int64) ([]int64, error) {
	q, args := sqlite().Select(colUserID).
		Distinct().
		From(entsql.Table(tableAttempts)).
		Where(entsql.EQ(colGameID, gameID)).
		OrderBy(colUserID).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query learners: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id sql.NullInt64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan learner: %w", err)
		}
		ids = append(ids, id.Int64)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate learners: %w", err)
	}
	return ids, nil
}
