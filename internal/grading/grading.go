// Package grading is the thin gradebook the completion rules read from. It
// owns grade items (with their pass threshold) and learner grades, and is
// the only place that decides whether a grade counts as passed.
package grading

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/gamecompletion/internal/store"
)

// ErrNoGradeItem is returned when writing a grade for a game that has no
// grade item.
var ErrNoGradeItem = errors.New("game has no grade item")

// Record is a learner's grade together with the item it was recorded against.
type Record struct {
	Item  store.GradeItem
	Grade store.Grade
}

// Passed reports whether the grade meets the item's pass threshold.
func (r *Record) Passed() bool {
	if r == nil {
		return false
	}
	passed, _ := IsPassed(r.Item, r.Grade)
	return passed
}

// IsPassed applies the gradebook pass semantics. ok is false when the
// outcome is undetermined: the item has no pass threshold or the learner
// has no final grade. An undetermined outcome is never a pass.
func IsPassed(item store.GradeItem, grade store.Grade) (passed, ok bool) {
	if item.GradePass <= 0 || grade.FinalGrade == nil {
		return false, false
	}
	return *grade.FinalGrade >= item.GradePass, true
}

// Bound clamps a raw grade into the item's [GradeMin, GradeMax] range.
func Bound(item store.GradeItem, raw float64) float64 {
	if raw < item.GradeMin {
		return item.GradeMin
	}
	if raw > item.GradeMax {
		return item.GradeMax
	}
	return raw
}

// ValidateItem checks that the grade range is sane and the pass threshold
// lies inside it.
func ValidateItem(item store.GradeItem) error {
	if item.GradeMax <= item.GradeMin {
		return fmt.Errorf("grade max %.2f must exceed grade min %.2f", item.GradeMax, item.GradeMin)
	}
	if item.GradePass < 0 || item.GradePass > item.GradeMax {
		return fmt.Errorf("grade pass %.2f must be between 0 and %.2f", item.GradePass, item.GradeMax)
	}
	return nil
}

// Service provides grade lookups and writes for game activities.
type Service struct {
	repo store.GradeRepo
}

// NewService creates a grading service backed by repo.
func NewService(repo store.GradeRepo) *Service {
	return &Service{repo: repo}
}

// Lookup returns the learner's grade record for the game, or nil when the
// game has no grade item or the learner has not been graded.
func (s *Service) Lookup(ctx context.Context, gameID, userID int64) (*Record, error) {
	item, err := s.repo.ItemForGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("lookup grade item: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	grade, err := s.repo.GradeFor(ctx, item.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup grade: %w", err)
	}
	if grade == nil {
		return nil, nil
	}

	return &Record{Item: *item, Grade: *grade}, nil
}

// EnsureItem validates and saves the grade item for item.GameID.
func (s *Service) EnsureItem(ctx context.Context, item *store.GradeItem) error {
	if err := ValidateItem(*item); err != nil {
		return err
	}
	return s.repo.UpsertItem(ctx, item)
}

// SetGrade records a raw grade for the learner. The final grade is the raw
// grade bounded to the item's range.
func (s *Service) SetGrade(ctx context.Context, gameID, userID int64, raw float64) (*Record, error) {
	item, err := s.repo.ItemForGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("lookup grade item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("game %d: %w", gameID, ErrNoGradeItem)
	}

	final := Bound(*item, raw)
	grade := store.Grade{
		ItemID:     item.ID,
		UserID:     userID,
		RawGrade:   &raw,
		FinalGrade: &final,
	}
	if err := s.repo.UpsertGrade(ctx, &grade); err != nil {
		return nil, err
	}
	return &Record{Item: *item, Grade: grade}, nil
}
