package dialogue

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringgitlab/duit/internal/category"
	"github.com/ringgitlab/duit/internal/extract"
	"github.com/ringgitlab/duit/internal/intent"
	"github.com/ringgitlab/duit/internal/model"
	"github.com/ringgitlab/duit/internal/respond"
	"github.com/ringgitlab/duit/internal/service"
	"github.com/ringgitlab/duit/internal/testutil"
)

func newTestMachine(t *testing.T, store service.Storage) *Machine {
	t.Helper()
	categorizer := category.NewCategorizer()
	return NewMachine(
		store,
		extract.NewExtractor(categorizer),
		categorizer,
		intent.NewClassifier(intent.DefaultCatalog()),
		respond.NewFormatter(store),
	)
}

func TestProcessTurnAlwaysResponds(t *testing.T) {
	machine := newTestMachine(t, &testutil.MockStorage{})
	ctx := context.Background()

	inputs := []string{
		"", "hi", "hello", "asdf", "RM10 for lunch", "set budget", "cancel",
		"purple monkey dishwasher", "?!?!", "i want to save for a trip",
	}
	for _, input := range inputs {
		assert.NotEmpty(t, machine.ProcessTurn(ctx, input, "u1"), "no response for %q", input)
	}
}

func TestIntentFallbackGreeting(t *testing.T) {
	machine := newTestMachine(t, &testutil.MockStorage{})

	resp := machine.ProcessTurn(context.Background(), "hello", "u1")
	greeting := intent.DefaultCatalog().Find("greeting")
	require.NotNil(t, greeting)
	assert.Contains(t, greeting.Responses.All(), resp)
	assert.Nil(t, machine.Session("u1").State)
}

func TestUnknownInputFallsBack(t *testing.T) {
	machine := newTestMachine(t, &testutil.MockStorage{})

	resp := machine.ProcessTurn(context.Background(), "purple monkey dishwasher", "u1")
	fallback := intent.DefaultCatalog().Find(model.FallbackTag)
	require.NotNil(t, fallback)
	assert.Contains(t, fallback.Responses.All(), resp)
}

func TestSessionIsolation(t *testing.T) {
	store := &testutil.MockStorage{}
	machine := newTestMachine(t, store)
	ctx := context.Background()

	machine.ProcessTurn(ctx, "set a goal", "alice")
	require.NotNil(t, machine.Session("alice").State)
	assert.Equal(t, model.FlowGoalWizard, machine.Session("alice").State.Flow)

	// A second user's turns run against a fresh session.
	machine.ProcessTurn(ctx, "hello", "bob")
	assert.Nil(t, machine.Session("bob").State)
	assert.Equal(t, model.FlowGoalWizard, machine.Session("alice").State.Flow)

	machine.ProcessTurn(ctx, "cancel", "bob")
	require.NotNil(t, machine.Session("alice").State, "bob's cancel must not touch alice's wizard")
}

func TestStorageReadFailureYieldsFriendlyMessage(t *testing.T) {
	machine := newTestMachine(t, &testutil.MockStorage{FailReads: true})

	// The budget_status response needs {budget_summary}, and every read fails;
	// the reply must be the friendly message, not a raw error or a template.
	resp := machine.ProcessTurn(context.Background(), "how is my budget", "u1")
	assert.Equal(t, "I couldn't pull up your records just now — try again in a moment.", resp)
}

func TestProcessTurnRecoversFromPanic(t *testing.T) {
	store := &testutil.MockStorage{}
	categorizer := category.NewCategorizer()
	// A nil classifier makes the fallback handler panic; the turn must still
	// produce a response.
	machine := NewMachine(store, extract.NewExtractor(categorizer), categorizer, nil,
		respond.NewFormatter(store))

	resp := machine.ProcessTurn(context.Background(), "purple monkey dishwasher", "u1")
	assert.Contains(t, clarificationResponses, resp)
}

func TestParsePositiveNumber(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"RM600", "600", true},
		{"600", "600", true},
		{"1,200.50", "1200.5", true},
		{"about 12 months", "12", true},
		{"0", "", false},
		{"no numbers here", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, ok := parsePositiveNumber(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.True(t, value.Equal(decimal.RequireFromString(tt.want)),
					"value = %s, want %s", value, tt.want)
			}
		})
	}
}
