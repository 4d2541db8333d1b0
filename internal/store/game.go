package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var gameColumns = []string{
	colID,
	"name",
	"grade",
	"max_attempts",
	"completion_tracking",
	"completion_view",
	"completion_use_grade",
	"completion_pass",
	"completion_attempts_exhausted",
	"time_created",
}

// sqlite returns a statement builder for the SQLite dialect.
func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// gameRepo implements GameRepo using the ent SQL builders.
type gameRepo struct {
	drv *entsql.Driver
}

func (r *gameRepo) Create(ctx context.Context, g *Game) error {
	if g.TimeCreated.IsZero() {
		g.TimeCreated = time.Now().UTC()
	}

	q, args := sqlite().Insert(tableGames).
		Columns(gameColumns[1:]...).
		Values(
			g.Name,
			g.Grade,
			g.MaxAttempts,
			int(g.Tracking),
			g.CompletionView,
			g.CompletionUseGrade,
			g.CompletionPass,
			g.CompletionAttemptsExhausted,
			g.TimeCreated.Unix(),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("game id: %w", err)
	}
	g.ID = id
	return nil
}

func (r *gameRepo) Get(ctx context.Context, id int64) (*Game, error) {
	q, args := sqlite().Select(gameColumns...).
		From(entsql.Table(tableGames)).
		Where(entsql.EQ(colID, id)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query game %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query game %d: %w", id, err)
		}
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	g, err := scanGame(rows)
	if err != nil {
		return nil, fmt.Errorf("scan game %d: %w", id, err)
	}
	return g, nil
}

func (r *gameRepo) List(ctx context.Context) ([]Game, error) {
	q, args := sqlite().Select(gameColumns...).
		From(entsql.Table(tableGames)).
		OrderBy(colID).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return games, nil
}

func scanGame(rows entsql.ColumnScanner) (*Game, error) {
	var (
		g        Game
		tracking int
		created  int64
	)
	err := rows.Scan(
		&g.ID,
		&g.Name,
		&g.Grade,
		&g.MaxAttempts,
		&tracking,
		&g.CompletionView,
		&g.CompletionUseGrade,
		&g.CompletionPass,
		&g.CompletionAttemptsExhausted,
		&created,
	)
	if err != nil {
		return nil, err
	}
	g.Tracking = Tracking(tracking)
	g.TimeCreated = time.Unix(created, 0).UTC()
	return &g, nil
}
