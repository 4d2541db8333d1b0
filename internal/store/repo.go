package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Tracking is the completion tracking mode configured on a game.
type Tracking int

const (
	TrackingNone      Tracking = 0
	TrackingManual    Tracking = 1
	TrackingAutomatic Tracking = 2
)

func (t Tracking) String() string {
	switch t {
	case TrackingNone:
		return "none"
	case TrackingManual:
		return "manual"
	case TrackingAutomatic:
		return "automatic"
	}
	return "unknown"
}

// ParseTracking parses the textual tracking mode used on the command line.
func ParseTracking(s string) (Tracking, error) {
	switch s {
	case "none", "":
		return TrackingNone, nil
	case "manual":
		return TrackingManual, nil
	case "automatic", "auto":
		return TrackingAutomatic, nil
	}
	return TrackingNone, errors.New("tracking must be one of none, manual, automatic")
}

// Game is a game activity instance together with its completion settings.
type Game struct {
	ID          int64
	Name        string
	Grade       float64 // maximum grade; 0 disables grading
	MaxAttempts int     // 0 = unlimited
	Tracking    Tracking

	CompletionView              bool
	CompletionUseGrade          bool
	CompletionPass              bool
	CompletionAttemptsExhausted bool

	TimeCreated time.Time
}

// Attempt is one recorded playthrough of a game by a learner.
type Attempt struct {
	ID         string
	GameID     int64
	UserID     int64
	Sequence   int64
	TimeStart  time.Time
	TimeFinish *time.Time
	Score      float64
}

// GradeItem is the gradebook column a game's grades attach to.
type GradeItem struct {
	ID        int64
	GameID    int64
	GradeMin  float64
	GradeMax  float64
	GradePass float64 // 0 = no pass threshold
}

// Grade is a learner's grade against a grade item.
type Grade struct {
	ID           int64
	ItemID       int64
	UserID       int64
	RawGrade     *float64
	FinalGrade   *float64
	TimeModified time.Time
}

// GameRepo manages game activity instances.
type GameRepo interface {
	// Create inserts the game and sets its ID.
	Create(ctx context.Context, g *Game) error

	// Get returns the game with the given ID or an error wrapping ErrNotFound.
	Get(ctx context.Context, id int64) (*Game, error)

	// List returns all games ordered by ID.
	List(ctx context.Context) ([]Game, error)
}

// AttemptRepo records and counts learner attempts.
type AttemptRepo interface {
	// Record inserts the attempt, assigning its ID and sequence.
	Record(ctx context.Context, a *Attempt) error

	// Count returns the number of attempts the learner made on the game.
	Count(ctx context.Context, gameID, userID int64) (int, error)

	// Learners returns the distinct learners with attempts on the game.
	Learners(ctx context.Context, gameID int64) ([]int64, error)
}

// GradeRepo stores grade items and learner grades.
type GradeRepo interface {
	// UpsertItem creates or replaces the grade item of item.GameID and
	// sets item.ID.
	UpsertItem(ctx context.Context, item *GradeItem) error

	// ItemForGame returns the game's grade item, or nil if none exists.
	ItemForGame(ctx context.Context, gameID int64) (*GradeItem, error)

	// UpsertGrade creates or replaces the learner's grade for g.ItemID.
	UpsertGrade(ctx context.Context, g *Grade) error

	// GradeFor returns the learner's grade, or nil if none exists.
	GradeFor(ctx context.Context, itemID, userID int64) (*Grade, error)
}
