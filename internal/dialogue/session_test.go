package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringgitlab/duit/internal/model"
)

func TestSessionContextFlowInvariants(t *testing.T) {
	session := &SessionContext{UserID: "u1"}

	session.StartFlow(model.NewConversationState(model.FlowGoalWizard, model.StageGoalAskAmount), true)
	require.NotNil(t, session.State)
	assert.Equal(t, model.FlowGoalWizard, session.State.Flow)

	// Starting another flow replaces the first wholesale.
	session.StartFlow(model.NewConversationState(model.FlowBudgetWizard, model.StageBudgetAskCategory), true)
	assert.Equal(t, model.FlowBudgetWizard, session.State.Flow)

	session.ClearFlow()
	assert.Nil(t, session.State)
	assert.Nil(t, session.Pending)
	assert.Nil(t, session.PendingBatch)
}

func TestSessionContextPendingIsExclusive(t *testing.T) {
	session := &SessionContext{UserID: "u1"}

	session.SetPendingBatch([]model.ExtractedEntity{{Description: "lunch"}})
	require.Len(t, session.PendingBatch, 1)

	// A single pending expense displaces the batch, and vice versa.
	session.SetPending(&model.PendingExpense{ID: "e1"})
	assert.Nil(t, session.PendingBatch)
	require.NotNil(t, session.Pending)

	session.SetPendingBatch([]model.ExtractedEntity{{Description: "kopi"}})
	assert.Nil(t, session.Pending)
}

func TestSessionContextStartFlowKeepsPendingUnlessCleared(t *testing.T) {
	session := &SessionContext{UserID: "u1"}
	session.SetPending(&model.PendingExpense{ID: "e1"})

	session.StartFlow(model.NewConversationState(model.FlowExpenseConfirm, model.StageExpenseConfirmCategory), false)
	assert.NotNil(t, session.Pending)

	session.StartFlow(model.NewConversationState(model.FlowGoalWizard, model.StageGoalAskAmount), true)
	assert.Nil(t, session.Pending)
}

func TestSessionAddCustomCategory(t *testing.T) {
	session := &SessionContext{UserID: "u1"}

	assert.True(t, session.AddCustomCategory("Mahjong"))
	assert.False(t, session.AddCustomCategory("mahjong"), "duplicates are rejected case-insensitively")
	assert.False(t, session.AddCustomCategory("   "))
	assert.True(t, session.AddCustomCategory("hobby"))
	assert.Equal(t, []string{"mahjong", "hobby"}, session.CustomCategories)
}

func TestSessionManagerHandsOutDistinctSessions(t *testing.T) {
	manager := NewSessionManager()

	alice := manager.Session("alice")
	bob := manager.Session("bob")
	assert.NotSame(t, alice, bob)
	assert.Equal(t, "alice", alice.UserID)

	// Same user gets the same context back.
	assert.Same(t, alice, manager.Session("alice"))
}
