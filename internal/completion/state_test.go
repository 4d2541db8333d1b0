package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/gamecompletion/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluatorWithConfig(cfg ActivityConfig, grades *fakeGrades, attempts *fakeAttempts) *Evaluator {
	return NewEvaluator(Deps{
		Configs:  &fakeConfigs{cfgs: map[int64]ActivityConfig{cfg.GameID: cfg}},
		Grades:   grades,
		Attempts: attempts,
	})
}

func TestStateLoadsConfig(t *testing.T) {
	cfg := ActivityConfig{GameID: 4, TrackingEnabled: true, CompletionAttemptsExhausted: true, MaxAttempts: 3}
	e := evaluatorWithConfig(cfg, &fakeGrades{}, &fakeAttempts{n: 3})

	got, err := e.State(context.Background(), RuleAttemptsExhausted, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, got)
}

func TestStateMissingActivity(t *testing.T) {
	e := evaluatorWithConfig(ActivityConfig{GameID: 4}, &fakeGrades{}, &fakeAttempts{})

	_, err := e.State(context.Background(), RulePass, 99, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStateRejectsRuleBeforeReading(t *testing.T) {
	configs := &fakeConfigs{err: errors.New("should not be read")}
	e := NewEvaluator(Deps{Configs: configs})

	_, err := e.State(context.Background(), "completionrule", 1, 1)
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestStates(t *testing.T) {
	cfg := ActivityConfig{
		GameID:                      1,
		TrackingEnabled:             true,
		CompletionPass:              true,
		CompletionAttemptsExhausted: true,
		MaxAttempts:                 3,
		GradeEnabled:                true,
	}
	e := evaluatorWithConfig(cfg, &fakeGrades{rec: gradeRecord(80, 60)}, &fakeAttempts{n: 1})

	states, err := e.States(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, map[RuleID]Status{
		RulePass:              StatusComplete,
		RuleAttemptsExhausted: StatusIncomplete,
	}, states)
}

func TestOverallState(t *testing.T) {
	base := ActivityConfig{GameID: 1, TrackingEnabled: true, GradeEnabled: true, MaxAttempts: 3}

	with := func(mod func(*ActivityConfig)) ActivityConfig {
		cfg := base
		mod(&cfg)
		return cfg
	}

	tests := []struct {
		name     string
		cfg      ActivityConfig
		rec      *fakeGrades
		attempts int
		agg      Aggregation
		want     Status
	}{
		{
			name: "tracking disabled",
			cfg:  with(func(c *ActivityConfig) { c.TrackingEnabled = false; c.CompletionPass = true }),
			rec:  &fakeGrades{rec: gradeRecord(100, 60)},
			agg:  AggregateAll,
			want: StatusUnknown,
		},
		{
			name: "no conditions all",
			cfg:  base,
			rec:  &fakeGrades{},
			agg:  AggregateAll,
			want: StatusComplete,
		},
		{
			name: "no conditions any",
			cfg:  base,
			rec:  &fakeGrades{},
			agg:  AggregateAny,
			want: StatusIncomplete,
		},
		{
			name: "pass without grade",
			cfg:  with(func(c *ActivityConfig) { c.CompletionPass = true }),
			rec:  &fakeGrades{},
			agg:  AggregateAll,
			want: StatusIncomplete,
		},
		{
			name: "pass with failing grade",
			cfg:  with(func(c *ActivityConfig) { c.CompletionPass = true }),
			rec:  &fakeGrades{rec: gradeRecord(40, 60)},
			agg:  AggregateAll,
			want: StatusIncomplete,
		},
		{
			name: "pass with passing grade",
			cfg:  with(func(c *ActivityConfig) { c.CompletionPass = true }),
			rec:  &fakeGrades{rec: gradeRecord(80, 60)},
			agg:  AggregateAll,
			want: StatusComplete,
		},
		{
			name: "use grade with any grade",
			cfg:  with(func(c *ActivityConfig) { c.CompletionUseGrade = true }),
			rec:  &fakeGrades{rec: gradeRecord(50, 0)},
			agg:  AggregateAll,
			want: StatusComplete,
		},
		{
			name: "use grade without grade",
			cfg:  with(func(c *ActivityConfig) { c.CompletionUseGrade = true }),
			rec:  &fakeGrades{},
			agg:  AggregateAll,
			want: StatusIncomplete,
		},
		{
			name:     "all requires both",
			cfg:      with(func(c *ActivityConfig) { c.CompletionPass = true; c.CompletionAttemptsExhausted = true }),
			rec:      &fakeGrades{rec: gradeRecord(80, 60)},
			attempts: 1,
			agg:      AggregateAll,
			want:     StatusIncomplete,
		},
		{
			name:     "any accepts one",
			cfg:      with(func(c *ActivityConfig) { c.CompletionPass = true; c.CompletionAttemptsExhausted = true }),
			rec:      &fakeGrades{rec: gradeRecord(40, 60)},
			attempts: 3,
			agg:      AggregateAny,
			want:     StatusComplete,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := evaluatorWithConfig(tt.cfg, tt.rec, &fakeAttempts{n: tt.attempts})
			got, err := e.OverallState(context.Background(), 1, 7, tt.agg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFromGame(t *testing.T) {
	cfg := ConfigFromGame(store.Game{
		ID:                 5,
		Grade:              10,
		MaxAttempts:        2,
		Tracking:           store.TrackingAutomatic,
		CompletionPass:     true,
		CompletionUseGrade: true,
	})
	assert.Equal(t, ActivityConfig{
		GameID:             5,
		TrackingEnabled:    true,
		CompletionPass:     true,
		CompletionUseGrade: true,
		MaxAttempts:        2,
		GradeEnabled:       true,
	}, cfg)

	assert.False(t, ConfigFromGame(store.Game{}).TrackingEnabled)
	assert.False(t, ConfigFromGame(store.Game{}).GradeEnabled)
}

func TestActivityConfigValidate(t *testing.T) {
	assert.NoError(t, ActivityConfig{CompletionPass: true, GradeEnabled: true}.Validate())
	assert.NoError(t, ActivityConfig{CompletionAttemptsExhausted: true}.Validate())

	err := ActivityConfig{CompletionPass: true, CompletionUseGrade: true}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(RulePass))
	assert.Contains(t, err.Error(), string(RuleUseGrade))
}
