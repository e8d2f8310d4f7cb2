package dialogue

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringgitlab/duit/internal/model"
	"github.com/ringgitlab/duit/internal/testutil"
)

func TestBudgetWizardHappyPath(t *testing.T) {
	store := &testutil.MockStorage{}
	machine := newTestMachine(t, store)
	ctx := context.Background()

	resp := machine.ProcessTurn(ctx, "set budget", "u1")
	assert.Contains(t, resp, "Which category")
	session := machine.Session("u1")
	require.NotNil(t, session.State)
	assert.Equal(t, model.FlowBudgetWizard, session.State.Flow)

	resp = machine.ProcessTurn(ctx, "food", "u1")
	assert.Contains(t, resp, "Budget for food")

	resp = machine.ProcessTurn(ctx, "RM600", "u1")
	assert.Contains(t, resp, "which month")

	resp = machine.ProcessTurn(ctx, "march", "u1")
	assert.Contains(t, resp, "March")

	resp = machine.ProcessTurn(ctx, "2026", "u1")
	assert.Contains(t, resp, "RM600.00 for food in March 2026")

	resp = machine.ProcessTurn(ctx, "yes", "u1")
	assert.Contains(t, resp, "Done!")
	assert.Nil(t, session.State)

	require.Len(t, store.Budgets, 1)
	budget := store.Budgets[0]
	assert.Equal(t, model.CategoryFood, budget.Category)
	assert.True(t, budget.Amount.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, time.March, budget.Month)
	assert.Equal(t, 2026, budget.Year)
}

func TestBudgetWizardFreeTextCategory(t *testing.T) {
	machine := newTestMachine(t, &testutil.MockStorage{})
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set budget", "u1")
	machine.ProcessTurn(ctx, "eating out and groceries", "u1")

	assert.Equal(t, model.CategoryFood, machine.Session("u1").State.BudgetCategory)
}

func TestBudgetWizardRevise(t *testing.T) {
	store := &testutil.MockStorage{}
	machine := newTestMachine(t, store)
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set budget", "u1")
	machine.ProcessTurn(ctx, "transport", "u1")
	machine.ProcessTurn(ctx, "300", "u1")
	machine.ProcessTurn(ctx, "this month", "u1")
	machine.ProcessTurn(ctx, "2026", "u1")

	resp := machine.ProcessTurn(ctx, "change", "u1")
	assert.Contains(t, resp, "category, amount, month, or year")

	resp = machine.ProcessTurn(ctx, "the amount", "u1")
	assert.Contains(t, resp, "amount")

	resp = machine.ProcessTurn(ctx, "450", "u1")
	assert.Contains(t, resp, "RM450.00 for transport")

	machine.ProcessTurn(ctx, "yes", "u1")
	require.Len(t, store.Budgets, 1)
	assert.True(t, store.Budgets[0].Amount.Equal(decimal.NewFromInt(450)))
}

func TestBudgetWizardInvalidYearReprompts(t *testing.T) {
	machine := newTestMachine(t, &testutil.MockStorage{})
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set budget", "u1")
	machine.ProcessTurn(ctx, "food", "u1")
	machine.ProcessTurn(ctx, "200", "u1")
	machine.ProcessTurn(ctx, "june", "u1")

	resp := machine.ProcessTurn(ctx, "1999", "u1")
	assert.Contains(t, resp, "between 2020 and 2100")
	assert.Equal(t, model.StageBudgetAskYear, machine.Session("u1").State.Stage)
}

func TestBudgetSaveFailureKeepsWizard(t *testing.T) {
	store := &testutil.MockStorage{FailSetBudget: true}
	machine := newTestMachine(t, store)
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set budget", "u1")
	machine.ProcessTurn(ctx, "food", "u1")
	machine.ProcessTurn(ctx, "600", "u1")
	machine.ProcessTurn(ctx, "march", "u1")
	machine.ProcessTurn(ctx, "2026", "u1")

	resp := machine.ProcessTurn(ctx, "yes", "u1")
	assert.Contains(t, storageFailureResponses, resp)

	session := machine.Session("u1")
	require.NotNil(t, session.State)
	assert.Equal(t, model.StageBudgetConfirm, session.State.Stage)
	assert.Empty(t, store.Budgets)

	store.FailSetBudget = false
	resp = machine.ProcessTurn(ctx, "yes", "u1")
	assert.Contains(t, resp, "Done!")
	assert.Len(t, store.Budgets, 1)
}

func TestBudgetWizardCancel(t *testing.T) {
	store := &testutil.MockStorage{}
	machine := newTestMachine(t, store)
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set budget", "u1")
	machine.ProcessTurn(ctx, "food", "u1")
	resp := machine.ProcessTurn(ctx, "forget it", "u1")

	assert.Contains(t, firstCancelResponses, resp)
	assert.Nil(t, machine.Session("u1").State)
	assert.Empty(t, store.Budgets)
}

func TestResolveCategory(t *testing.T) {
	machine := newTestMachine(t, &testutil.MockStorage{})

	tests := []struct {
		input string
		want  model.Category
	}{
		{"food", model.CategoryFood},
		{"transport", model.CategoryTransport},
		{"other", model.CategoryOther},
		{"misc stuff", model.CategoryOther},
		{"groceries", model.CategoryFood},
		{"movies and games", model.CategoryEntertainment},
		{"zzz unknown zzz", model.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, machine.resolveCategory(tt.input, nil))
		})
	}
}

func TestParseMonth(t *testing.T) {
	assert.Equal(t, time.March, parseMonth("march please", time.January))
	assert.Equal(t, time.September, parseMonth("sept", time.January))
	assert.Equal(t, time.December, parseMonth("maybe dec.", time.January))
	assert.Equal(t, time.July, parseMonth("this month", time.July))
}

func TestParseYear(t *testing.T) {
	year, ok := parseYear("2026")
	require.True(t, ok)
	assert.Equal(t, 2026, year)

	year, ok = parseYear("in 2030 maybe")
	require.True(t, ok)
	assert.Equal(t, 2030, year)

	for _, input := range []string{"1999", "2150", "someday", ""} {
		_, ok := parseYear(input)
		assert.False(t, ok, "expected rejection for %q", input)
	}
}
