// Package report builds the per-learner completion overview of a game.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gamecompletion/internal/completion"
	"github.com/abhisek/gamecompletion/internal/store"
	"github.com/abhisek/gamecompletion/internal/ui/theme"
)

// Row is one learner's completion states.
type Row struct {
	UserID  int64
	States  map[completion.RuleID]completion.Status
	Overall completion.Status
}

// Report lists every learner who attempted a game.
type Report struct {
	Game  store.Game
	Rules []completion.RuleID
	Rows  []Row
}

// Build evaluates the game's available rules for every learner with
// attempts. Learners come back in ascending ID order.
func Build(ctx context.Context, ev *completion.Evaluator, games store.GameRepo, attempts store.AttemptRepo, gameID int64) (*Report, error) {
	game, err := games.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}

	learners, err := attempts.Learners(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}

	r := &Report{
		Game:  *game,
		Rules: ev.AvailableRules(completion.ConfigFromGame(*game)),
	}
	for _, userID := range learners {
		states, err := ev.States(ctx, gameID, userID)
		if err != nil {
			return nil, fmt.Errorf("learner %d: %w", userID, err)
		}
		overall, err := ev.OverallState(ctx, gameID, userID, completion.AggregateAll)
		if err != nil {
			return nil, fmt.Errorf("learner %d: %w", userID, err)
		}
		r.Rows = append(r.Rows, Row{UserID: userID, States: states, Overall: overall})
	}
	return r, nil
}

const (
	learnerWidth = 10
	columnGap    = 2
)

// Render writes r as a table, with labels resolved through strs.
func Render(w io.Writer, r *Report, strs completion.Localizer) error {
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("%s: %s (#%d)", strs.String("modulename"), r.Game.Name, r.Game.ID)))
	b.WriteString("\n\n")

	if len(r.Rows) == 0 {
		b.WriteString(theme.Hint.Render(strs.String("report_empty")))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	widths := columnWidths(r, strs)

	header := []string{strs.String("report_learner")}
	for _, rule := range r.Rules {
		header = append(header, ruleHeader(rule, strs))
	}
	header = append(header, strs.String("report_overall"))

	var cells []string
	for i, h := range header {
		cells = append(cells, pad(theme.Header.Render(h), widths[i]))
	}
	writeLine(&b, cells)

	total := 0
	for _, wd := range widths {
		total += wd + columnGap
	}
	b.WriteString(strings.Repeat("─", total-columnGap))
	b.WriteString("\n")

	for _, row := range r.Rows {
		cells = cells[:0]
		cells = append(cells, pad(strconv.FormatInt(row.UserID, 10), widths[0]))
		for i, rule := range r.Rules {
			cells = append(cells, pad(statusCell(row.States[rule], strs), widths[i+1]))
		}
		cells = append(cells, statusCell(row.Overall, strs))
		writeLine(&b, cells)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func columnWidths(r *Report, strs completion.Localizer) []int {
	statusWidth := 0
	for _, s := range []completion.Status{completion.StatusComplete, completion.StatusIncomplete, completion.StatusUnknown} {
		statusWidth = max(statusWidth, lipgloss.Width(StatusLabel(s, strs)))
	}

	widths := []int{max(learnerWidth, lipgloss.Width(strs.String("report_learner")))}
	for _, rule := range r.Rules {
		widths = append(widths, max(statusWidth, lipgloss.Width(ruleHeader(rule, strs))))
	}
	return append(widths, max(statusWidth, lipgloss.Width(strs.String("report_overall"))))
}

// ruleHeader is the short column heading of rule.
func ruleHeader(rule completion.RuleID, strs completion.Localizer) string {
	return strs.String("report_" + string(rule))
}

func writeLine(b *strings.Builder, cells []string) {
	b.WriteString(strings.TrimRight(strings.Join(cells, strings.Repeat(" ", columnGap)), " "))
	b.WriteString("\n")
}

// pad right-fills s to width visible cells.
func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// StatusLabel returns the localized label of s.
func StatusLabel(s completion.Status, strs completion.Localizer) string {
	switch s {
	case completion.StatusComplete:
		return strs.String("status_complete")
	case completion.StatusUnknown:
		return strs.String("status_unknown")
	default:
		return strs.String("status_incomplete")
	}
}

// StatusStyle returns the theme style for s.
func StatusStyle(s completion.Status) lipgloss.Style {
	switch s {
	case completion.StatusComplete:
		return theme.Complete
	case completion.StatusUnknown:
		return theme.Unknown
	default:
		return theme.Incomplete
	}
}

func statusCell(s completion.Status, strs completion.Localizer) string {
	return StatusStyle(s).Render(StatusLabel(s, strs))
}
