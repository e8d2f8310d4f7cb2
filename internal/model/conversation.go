package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowKind tags the single multi-turn flow a session may have active.
type FlowKind string

// Flow kinds.
const (
	FlowGoalWizard     FlowKind = "goal_wizard"
	FlowBudgetWizard   FlowKind = "budget_wizard"
	FlowExpenseConfirm FlowKind = "expense_confirm"
	FlowMultiExpense   FlowKind = "multi_expense"
)

// Stage identifies the current step within a flow.
type Stage string

// Goal wizard stages.
const (
	StageGoalAskAmount    Stage = "ask_amount"
	StageGoalAskTimeframe Stage = "ask_timeframe"
	StageGoalConfirm      Stage = "confirm_goal"
)

// Budget wizard stages.
const (
	StageBudgetAskCategory    Stage = "ask_category"
	StageBudgetAskAmount      Stage = "ask_budget_amount"
	StageBudgetAskMonth       Stage = "ask_month"
	StageBudgetAskYear        Stage = "ask_year"
	StageBudgetConfirm        Stage = "confirm_budget"
	StageBudgetRevisePart     Stage = "revise_part"
	StageBudgetReviseCategory Stage = "revise_category"
	StageBudgetReviseAmount   Stage = "revise_amount"
	StageBudgetReviseMonth    Stage = "revise_month"
	StageBudgetReviseYear     Stage = "revise_year"
)

// Single pending-expense stages.
const (
	StageExpenseConfirmCategory Stage = "confirm_category"
	StageExpenseAskWhatToChange Stage = "ask_what_to_change"
	StageExpenseChangeCategory  Stage = "change_category"
	StageExpenseChangeAmount    Stage = "change_amount"
)

// Multi-expense batch stages.
const (
	StageBatchConfirm           Stage = "confirm_batch"
	StageBatchSelectExpense     Stage = "select_expense"
	StageBatchAskWhatToChange   Stage = "batch_ask_what_to_change"
	StageBatchChangeAmount      Stage = "batch_change_amount"
	StageBatchChangeDescription Stage = "batch_change_description"
	StageBatchChangeCategory    Stage = "batch_change_category"
)

// ConversationState is the tagged union of every multi-turn flow. At most one
// is active per session; starting a new flow replaces the previous state
// wholesale, which is what enforces the single-active-flow invariant.
type ConversationState struct {
	StartedAt time.Time
	Flow      FlowKind
	Stage     Stage

	// Goal wizard scratch.
	GoalName   string
	GoalAmount decimal.Decimal
	GoalMonths int

	// Budget wizard scratch.
	BudgetCategory Category
	BudgetAmount   decimal.Decimal
	BudgetMonth    time.Month
	BudgetYear     int

	// Multi-expense change-mode scratch.
	SelectedIndex int
}

// NewConversationState starts a flow at its first stage.
func NewConversationState(flow FlowKind, stage Stage) *ConversationState {
	return &ConversationState{Flow: flow, Stage: stage, StartedAt: time.Now()}
}

// PendingExpense is an optimistically persisted expense awaiting the user's
// confirmation of its auto-assigned category.
type PendingExpense struct {
	ID          string
	Description string
	Category    Category
	Amount      decimal.Decimal
}
