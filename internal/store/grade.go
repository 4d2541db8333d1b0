package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// gradeRepo implements GradeRepo using the ent SQL builders.
type gradeRepo struct {
	drv *entsql.Driver
}

func (r *gradeRepo) UpsertItem(ctx context.Context, item *GradeItem) error {
	q, args := sqlite().Insert(tableGradeItems).
		Columns(colGameID, "grade_min", "grade_max", "grade_pass").
		Values(item.GameID, item.GradeMin, item.GradeMax, item.GradePass).
		OnConflict(
			entsql.ConflictColumns(colGameID),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save grade item: %w", err)
	}

	// LastInsertId is unreliable when the upsert took the update path.
	saved, err := r.ItemForGame(ctx, item.GameID)
	if err != nil {
		return err
	}
	if saved == nil {
		return fmt.Errorf("grade item for game %d: %w", item.GameID, ErrNotFound)
	}
	item.ID = saved.ID
	return nil
}

func (r *gradeRepo) ItemForGame(ctx context.Context, gameID int64) (*GradeItem, error) {
	q, args := sqlite().Select(colID, colGameID, "grade_min", "grade_max", "grade_pass").
		From(entsql.Table(tableGradeItems)).
		Where(entsql.EQ(colGameID, gameID)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query grade item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query grade item: %w", err)
		}
		return nil, nil
	}

	var item GradeItem
	if err := rows.Scan(&item.ID, &item.GameID, &item.GradeMin, &item.GradeMax, &item.GradePass); err != nil {
		return nil, fmt.Errorf("scan grade item: %w", err)
	}
	return &item, nil
}

func (r *gradeRepo) UpsertGrade(ctx context.Context, g *Grade) error {
	if g.TimeModified.IsZero() {
		g.TimeModified = time.Now().UTC()
	}

	q, args := sqlite().Insert(tableGradeGrades).
		Columns(colItemID, colUserID, "raw_grade", "final_grade", "time_modified").
		Values(g.ItemID, g.UserID, nullFloat(g.RawGrade), nullFloat(g.FinalGrade), g.TimeModified.Unix()).
		OnConflict(
			entsql.ConflictColumns(colItemID, colUserID),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save grade: %w", err)
	}
	return nil
}

func (r *gradeRepo) GradeFor(ctx context.Context, itemID, userID int64) (*Grade, error) {
	q, args := sqlite().Select(colID, colItemID, colUserID, "raw_grade", "final_grade", "time_modified").
		From(entsql.Table(tableGradeGrades)).
		Where(entsql.And(
			entsql.EQ(colItemID, itemID),
			entsql.EQ(colUserID, userID),
		)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query grade: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query grade: %w", err)
		}
		return nil, nil
	}

	var (
		g          Grade
		raw, final sql.NullFloat64
		modified   int64
	)
	if err := rows.Scan(&g.ID, &g.ItemID, &g.UserID, &raw, &final, &modified); err != nil {
		return nil, fmt.Errorf("scan grade: %w", err)
	}
	g.RawGrade = floatPtr(raw)
	g.FinalGrade = floatPtr(final)
	g.TimeModified = time.Unix(modified, 0).UTC()
	return &g, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
