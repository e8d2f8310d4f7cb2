package dialogue

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringgitlab/duit/internal/model"
	"github.com/ringgitlab/duit/internal/testutil"
)

func TestGoalWizardHappyPath(t *testing.T) {
	store := &testutil.MockStorage{}
	machine := newTestMachine(t, store)
	ctx := context.Background()

	resp := machine.ProcessTurn(ctx, "I want to save for vacation", "u1")
	assert.Contains(t, resp, "vacation")
	assert.Contains(t, resp, "How much")
	session := machine.Session("u1")
	require.NotNil(t, session.State)
	assert.Equal(t, model.FlowGoalWizard, session.State.Flow)
	assert.Equal(t, "vacation", session.State.GoalName)

	resp = machine.ProcessTurn(ctx, "RM5000", "u1")
	assert.Contains(t, resp, "RM5000.00")
	assert.Contains(t, resp, "timeframe")

	resp = machine.ProcessTurn(ctx, "2 years", "u1")
	assert.Contains(t, resp, "24 months")
	assert.Contains(t, resp, "RM208.33")
	assert.Contains(t, resp, "(yes/no)")

	resp = machine.ProcessTurn(ctx, "yes", "u1")
	assert.Contains(t, resp, "Goal saved")
	assert.Nil(t, session.State)

	require.Len(t, store.Goals, 1)
	goal := store.Goals[0]
	assert.Equal(t, "vacation", goal.Name)
	assert.Equal(t, 24, goal.Months)
	assert.True(t, goal.Amount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, goal.MonthlyContribution.Equal(decimal.RequireFromString("208.33")))
}

func TestGoalWizardTimeframeMinimum(t *testing.T) {
	store := &testutil.MockStorage{}
	machine := newTestMachine(t, store)
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set a goal", "u1")
	machine.ProcessTurn(ctx, "RM1200", "u1")

	// 8 weeks rounds to 2 months, which is below the minimum; the wizard
	// stays on the timeframe question.
	resp := machine.ProcessTurn(ctx, "8 weeks", "u1")
	assert.Contains(t, resp, "at least 6 months")
	assert.Equal(t, model.StageGoalAskTimeframe, machine.Session("u1").State.Stage)

	// 24 weeks rounds to exactly 6 months and is accepted.
	resp = machine.ProcessTurn(ctx, "24 weeks", "u1")
	assert.Contains(t, resp, "6 months")
	assert.Equal(t, model.StageGoalConfirm, machine.Session("u1").State.Stage)
}

func TestGoalWizardRejectsInvalidAmount(t *testing.T) {
	machine := newTestMachine(t, &testutil.MockStorage{})
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set a goal", "u1")
	resp := machine.ProcessTurn(ctx, "lots of money", "u1")

	assert.Contains(t, resp, "valid amount")
	assert.Equal(t, model.StageGoalAskAmount, machine.Session("u1").State.Stage)
}

func TestGoalWizardCancelMidFlow(t *testing.T) {
	store := &testutil.MockStorage{}
	machine := newTestMachine(t, store)
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set a goal", "u1")
	machine.ProcessTurn(ctx, "RM5000", "u1")
	resp := machine.ProcessTurn(ctx, "never mind", "u1")

	assert.Contains(t, firstCancelResponses, resp)
	assert.Nil(t, machine.Session("u1").State)
	assert.Empty(t, store.Goals, "cancelled wizard must not persist a goal")
}

func TestGoalWizardDecline(t *testing.T) {
	store := &testutil.MockStorage{}
	machine := newTestMachine(t, store)
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set a goal", "u1")
	machine.ProcessTurn(ctx, "RM5000", "u1")
	machine.ProcessTurn(ctx, "12 months", "u1")
	resp := machine.ProcessTurn(ctx, "no", "u1")

	assert.Contains(t, resp, "won't save")
	assert.Nil(t, machine.Session("u1").State)
	assert.Empty(t, store.Goals)
}

func TestGoalSaveFailureKeepsWizard(t *testing.T) {
	store := &testutil.MockStorage{FailAddGoal: true}
	machine := newTestMachine(t, store)
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set a goal", "u1")
	machine.ProcessTurn(ctx, "RM6000", "u1")
	machine.ProcessTurn(ctx, "12 months", "u1")

	resp := machine.ProcessTurn(ctx, "yes", "u1")
	assert.Contains(t, storageFailureResponses, resp)

	// The wizard stays at confirm so the user can retry.
	session := machine.Session("u1")
	require.NotNil(t, session.State)
	assert.Equal(t, model.StageGoalConfirm, session.State.Stage)

	store.FailAddGoal = false
	resp = machine.ProcessTurn(ctx, "yes", "u1")
	assert.Contains(t, resp, "Goal saved")
	assert.Len(t, store.Goals, 1)
}

func TestMajorGoalTriggerInterruptsBudgetWizard(t *testing.T) {
	machine := newTestMachine(t, &testutil.MockStorage{})
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set budget", "u1")
	require.Equal(t, model.FlowBudgetWizard, machine.Session("u1").State.Flow)

	resp := machine.ProcessTurn(ctx, "actually I want to buy a car", "u1")
	assert.Contains(t, resp, "car")

	session := machine.Session("u1")
	require.NotNil(t, session.State)
	assert.Equal(t, model.FlowGoalWizard, session.State.Flow)
	assert.Equal(t, "car", session.State.GoalName)
}

func TestParseTimeframeMonths(t *testing.T) {
	tests := []struct {
		input      string
		wantMonths int
		wantOK     bool
	}{
		{"6 months", 6, true},
		{"1 month", 1, true},
		{"18 months", 18, true},
		{"1 year", 12, true},
		{"2 years", 24, true},
		{"24 weeks", 6, true},
		{"8 weeks", 2, true},
		{"3 weeks", 1, true},
		{"in about 12 months", 12, true},
		{"soon", 0, false},
		{"0 months", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			months, ok := parseTimeframeMonths(tt.input)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMonths, months)
		})
	}
}
