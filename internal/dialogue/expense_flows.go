package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/model"
)

// handlePendingConfirmation is chain step 4: a pending single expense whose
// category awaits a strict yes/no. Unrecognized input re-prompts rather than
// falling through.
func (m *Machine) handlePendingConfirmation(ctx context.Context, session *SessionContext, text string) (string, bool) {
	if session.State == nil || session.State.Flow != model.FlowExpenseConfirm ||
		session.State.Stage != model.StageExpenseConfirmCategory || session.Pending == nil {
		return "", false
	}
	if isCancel(text) {
		return cancelFlow(session), true
	}

	switch {
	case isYes(text):
		pending := session.Pending
		session.ClearFlow()
		return fmt.Sprintf("Great — RM%s for %s stays under '%s'.",
			pending.Amount.StringFixed(2), pending.Description, pending.Category), true
	case isNo(text):
		session.State.Stage = model.StageExpenseAskWhatToChange
		return "No problem. What should I change — the category or the amount?", true
	default:
		return fmt.Sprintf("Quick check: is '%s' the right category for %s? (yes/no)",
			session.Pending.Category, session.Pending.Description), true
	}
}

// handleExpenseCorrection is chain step 5: the correction sub-flow tied to a
// pending expense.
func (m *Machine) handleExpenseCorrection(ctx context.Context, session *SessionContext, text string) (string, bool) {
	if session.State == nil || session.State.Flow != model.FlowExpenseConfirm || session.Pending == nil {
		return "", false
	}
	if session.State.Stage == model.StageExpenseConfirmCategory {
		return "", false // step 4's job
	}
	if isCancel(text) {
		return cancelFlow(session), true
	}

	pending := session.Pending
	switch session.State.Stage {
	case model.StageExpenseAskWhatToChange:
		switch {
		case strings.Contains(text, "category"):
			session.State.Stage = model.StageExpenseChangeCategory
			return "What category should it be?", true
		case strings.Contains(text, "amount"):
			session.State.Stage = model.StageExpenseChangeAmount
			return "What's the right amount?", true
		default:
			return "I can fix the category or the amount — which one?", true
		}

	case model.StageExpenseChangeCategory:
		category := m.resolveCategory(text, session.CustomCategories)
		if err := m.store.UpdateExpenseCategory(ctx, pending.ID, category); err != nil {
			slog.Error("Expense category update failed", "user", session.UserID, "id", pending.ID, "error", err)
			return pick(storageFailureResponses), true
		}
		description := pending.Description
		session.ClearFlow()
		return fmt.Sprintf("Fixed — %s is now filed under '%s'.", description, category), true

	case model.StageExpenseChangeAmount:
		amount, ok := parsePositiveNumber(text)
		if !ok {
			return "I couldn't find a valid amount in that. What should it be, e.g. 'RM12.50'?", true
		}
		if err := m.store.UpdateExpenseAmount(ctx, pending.ID, amount); err != nil {
			slog.Error("Expense amount update failed", "user", session.UserID, "id", pending.ID, "error", err)
			return pick(storageFailureResponses), true
		}
		description := pending.Description
		session.ClearFlow()
		return fmt.Sprintf("Updated — %s is now RM%s.", description, amount.StringFixed(2)), true
	}
	return "", false
}

// handleBatchChangeMode is chain step 6: correcting items of a staged
// multi-expense batch before commit.
func (m *Machine) handleBatchChangeMode(_ context.Context, session *SessionContext, text string) (string, bool) {
	if session.State == nil || session.State.Flow != model.FlowMultiExpense ||
		session.State.Stage == model.StageBatchConfirm || len(session.PendingBatch) == 0 {
		return "", false
	}
	if isCancel(text) {
		return cancelFlow(session), true
	}

	state := session.State
	switch state.Stage {
	case model.StageBatchSelectExpense:
		index, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || index < 1 || index > len(session.PendingBatch) {
			return fmt.Sprintf("Pick a number between 1 and %d.", len(session.PendingBatch)), true
		}
		state.SelectedIndex = index - 1
		state.Stage = model.StageBatchAskWhatToChange
		item := session.PendingBatch[state.SelectedIndex]
		return fmt.Sprintf("Item %d is RM%s for %s (%s). Change the amount, description, or category?",
			index, item.Amount.StringFixed(2), item.Description, item.Category), true

	case model.StageBatchAskWhatToChange:
		switch {
		case strings.Contains(text, "amount"):
			state.Stage = model.StageBatchChangeAmount
			return "What's the right amount?", true
		case strings.Contains(text, "description"):
			state.Stage = model.StageBatchChangeDescription
			return "What should the description be?", true
		case strings.Contains(text, "category"):
			state.Stage = model.StageBatchChangeCategory
			return "What category should it be?", true
		default:
			return "Amount, description, or category — which should I change?", true
		}

	case model.StageBatchChangeAmount:
		amount, ok := parsePositiveNumber(text)
		if !ok {
			return "I couldn't find a valid amount in that. Try something like '12.50'.", true
		}
		session.PendingBatch[state.SelectedIndex].Amount = amount
		session.PendingBatch[state.SelectedIndex].HasAmount = true
		return m.reconfirmBatch(session), true

	case model.StageBatchChangeDescription:
		desc := strings.TrimSpace(text)
		if desc == "" {
			return "Give me a short description for it.", true
		}
		session.PendingBatch[state.SelectedIndex].Description = desc
		session.PendingBatch[state.SelectedIndex].Category = m.categorize(desc, session.CustomCategories)
		return m.reconfirmBatch(session), true

	case model.StageBatchChangeCategory:
		session.PendingBatch[state.SelectedIndex].Category = m.resolveCategory(text, session.CustomCategories)
		return m.reconfirmBatch(session), true
	}
	return "", false
}

// reconfirmBatch loops change mode back to the whole-batch yes/no.
func (m *Machine) reconfirmBatch(session *SessionContext) string {
	session.State.Stage = model.StageBatchConfirm
	return "Here's the updated list:\n" + formatBatch(session.PendingBatch) + "\nSave all of them? (yes/no)"
}

// handleBatchConfirmation is chain step 7: the whole-batch yes/no when change
// mode is not active.
func (m *Machine) handleBatchConfirmation(ctx context.Context, session *SessionContext, text string) (string, bool) {
	if session.State == nil || session.State.Flow != model.FlowMultiExpense ||
		session.State.Stage != model.StageBatchConfirm || len(session.PendingBatch) == 0 {
		return "", false
	}
	if isCancel(text) {
		return cancelFlow(session), true
	}

	switch {
	case isYes(text):
		expenses := make([]model.Expense, 0, len(session.PendingBatch))
		total := decimal.Zero
		for _, item := range session.PendingBatch {
			expenses = append(expenses, model.Expense{
				UserID:      session.UserID,
				Amount:      item.Amount,
				Description: item.Description,
				Category:    item.Category,
			})
			total = total.Add(item.Amount)
		}
		if _, err := m.store.AddExpensesBatch(ctx, expenses); err != nil {
			// All-or-nothing: nothing was saved, so keep the batch staged for
			// another attempt.
			slog.Error("Batch save failed", "user", session.UserID, "count", len(expenses), "error", err)
			return pick(storageFailureResponses), true
		}
		count := len(expenses)
		session.ClearFlow()
		return fmt.Sprintf("Saved all %d expenses — RM%s in total.", count, total.StringFixed(2)), true
	case isNo(text):
		session.State.Stage = model.StageBatchSelectExpense
		return "Okay, let's fix one. Which item?\n" + formatBatch(session.PendingBatch) +
			fmt.Sprintf("\nReply with a number (1-%d).", len(session.PendingBatch)), true
	default:
		return "Should I save all of them? (yes/no)", true
	}
}

// handleNewExpense is chain step 12: detect expenses in free text, multi
// first, then the single-expense extractor.
func (m *Machine) handleNewExpense(ctx context.Context, session *SessionContext, text string) (string, bool) {
	entities, err := m.extractor.ExtractMultiple(text, session.CustomCategories)
	if err != nil {
		slog.Debug("Multi-expense extraction error", "user", session.UserID, "error", err)
	}

	if len(entities) > 1 {
		for i := range entities {
			if entities[i].Description == "" {
				entities[i].Description = "expense"
				entities[i].Category = model.CategoryOther
			}
		}
		session.SetPendingBatch(entities)
		session.StartFlow(model.NewConversationState(model.FlowMultiExpense, model.StageBatchConfirm), false)
		return fmt.Sprintf("I found %d expenses:\n%s\nSave all of them? (yes/no)",
			len(entities), formatBatch(entities)), true
	}

	var entity model.ExtractedEntity
	if len(entities) == 1 {
		entity = entities[0]
	} else {
		entity, err = m.extractor.Extract(text, session.CustomCategories)
		if err != nil {
			slog.Debug("Single-expense extraction error", "user", session.UserID, "error", err)
			return "I spotted an amount in there but couldn't read it properly. Could you rephrase, like 'RM10 for lunch'?", true
		}
	}
	if entity.IsEmpty() || !entity.HasAmount {
		return "", false
	}
	if entity.Description == "" {
		entity.Description = "expense"
		entity.Category = model.CategoryOther
	}

	expense := &model.Expense{
		UserID:      session.UserID,
		Amount:      entity.Amount,
		Description: entity.Description,
		Category:    entity.Category,
	}
	// Saved optimistically; the category confirmation below can amend it.
	if err := m.store.AddExpense(ctx, expense); err != nil {
		slog.Error("Expense save failed", "user", session.UserID, "error", err)
		return pick(storageFailureResponses), true
	}

	session.SetPending(&model.PendingExpense{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Description: expense.Description,
		Category:    expense.Category,
	})
	session.StartFlow(model.NewConversationState(model.FlowExpenseConfirm, model.StageExpenseConfirmCategory), false)

	return fmt.Sprintf("Got it! RM%s for %s — I filed it under '%s'. Is that the right category? (yes/no)",
		expense.Amount.StringFixed(2), expense.Description, expense.Category), true
}

func formatBatch(batch []model.ExtractedEntity) string {
	var b strings.Builder
	for i, item := range batch {
		fmt.Fprintf(&b, "%d. RM%s for %s (%s)\n", i+1, item.Amount.StringFixed(2),
			item.Description, item.Category)
	}
	return strings.TrimRight(b.String(), "\n")
}
