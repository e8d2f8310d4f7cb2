package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/model"
)

// MinimumGoalMonths is the shortest accepted goal timeframe after
// normalization to whole months.
const MinimumGoalMonths = 6

// majorGoalTriggers start a goal wizard directly, superseding any active
// flow. Keys are trigger substrings; values name the goal.
var majorGoalTriggers = []struct {
	phrase string
	name   string
}{
	{"buy a car", "car"},
	{"buy car", "car"},
	{"buy a house", "house"},
	{"buy house", "house"},
	{"buy a home", "house"},
	{"go to travel", "travel"},
	{"go travelling", "travel"},
	{"go traveling", "travel"},
	{"travel the world", "travel"},
}

// handleMajorGoalTrigger is chain step 2: major-goal phrases start a new goal
// wizard even when another flow is active.
func (m *Machine) handleMajorGoalTrigger(_ context.Context, session *SessionContext, text string) (string, bool) {
	for _, trigger := range majorGoalTriggers {
		if strings.Contains(text, trigger.phrase) {
			return m.startGoalWizard(session, trigger.name), true
		}
	}
	return "", false
}

// handleGoalKeywordHeuristic is chain step 9: goal-adjacent keyword
// combinations not already consumed by the major triggers.
func (m *Machine) handleGoalKeywordHeuristic(_ context.Context, session *SessionContext, text string) (string, bool) {
	saving := strings.Contains(text, "save") || strings.Contains(text, "saving")
	wanting := strings.Contains(text, "want") || strings.Contains(text, "goal") ||
		strings.Contains(text, "target")
	if !saving || !wanting {
		return "", false
	}

	name := "savings"
	if _, after, found := strings.Cut(text, " for "); found {
		if cleaned := strings.Trim(after, " .,!?"); cleaned != "" {
			name = cleaned
		}
	}
	return m.startGoalWizard(session, name), true
}

func (m *Machine) startGoalWizard(session *SessionContext, name string) string {
	state := model.NewConversationState(model.FlowGoalWizard, model.StageGoalAskAmount)
	state.GoalName = name
	session.StartFlow(state, true)
	slog.Debug("Goal wizard started", "user", session.UserID, "goal", name)
	return fmt.Sprintf("A %s fund — love it! How much do you want to save in total?", name)
}

// handleActiveGoalWizard is chain step 1: while the goal wizard is active all
// input routes here, except cancellation phrases.
func (m *Machine) handleActiveGoalWizard(ctx context.Context, session *SessionContext, text string) (string, bool) {
	if session.State == nil || session.State.Flow != model.FlowGoalWizard {
		return "", false
	}
	if isCancel(text) {
		return cancelFlow(session), true
	}

	state := session.State
	switch state.Stage {
	case model.StageGoalAskAmount:
		amount, ok := parsePositiveNumber(text)
		if !ok {
			return "I couldn't find a valid amount in that. How much do you want to save, e.g. 'RM5000'?", true
		}
		state.GoalAmount = amount
		state.Stage = model.StageGoalAskTimeframe
		return fmt.Sprintf("RM%s for your %s fund. Over what timeframe? e.g. '12 months', '2 years'.",
			amount.StringFixed(2), state.GoalName), true

	case model.StageGoalAskTimeframe:
		months, ok := parseTimeframeMonths(text)
		if !ok {
			return "Tell me the timeframe as a number of weeks, months or years, like '18 months'.", true
		}
		if months < MinimumGoalMonths {
			return fmt.Sprintf("That works out to about %d month(s) — I need at least %d months to plan a goal. Try a longer timeframe?",
				months, MinimumGoalMonths), true
		}
		state.GoalMonths = months
		state.Stage = model.StageGoalConfirm
		monthly := state.GoalAmount.Div(decimal.NewFromInt(int64(months))).Round(2)
		return fmt.Sprintf("Save RM%s for %s over %d months — that's RM%s a month. Shall I save this goal? (yes/no)",
			state.GoalAmount.StringFixed(2), state.GoalName, months, monthly.StringFixed(2)), true

	case model.StageGoalConfirm:
		switch {
		case isYes(text):
			goal := &model.Goal{
				UserID:              session.UserID,
				Name:                state.GoalName,
				Amount:              state.GoalAmount,
				Months:              state.GoalMonths,
				MonthlyContribution: state.GoalAmount.Div(decimal.NewFromInt(int64(state.GoalMonths))).Round(2),
			}
			if err := m.store.AddGoal(ctx, goal); err != nil {
				// Keep the wizard at confirm so the user can retry or cancel.
				slog.Error("Goal save failed", "user", session.UserID, "error", err)
				return pick(storageFailureResponses), true
			}
			session.ClearFlow()
			return fmt.Sprintf("Goal saved! Put aside RM%s each month and your %s fund hits RM%s in %d months.",
				goal.MonthlyContribution.StringFixed(2), goal.Name, goal.Amount.StringFixed(2), goal.Months), true
		case isNo(text):
			session.ClearFlow()
			return "Okay, I won't save that goal. We can set one up anytime.", true
		default:
			return "Just a yes or no — should I save this goal?", true
		}
	}
	return "", false
}

var timeframeRe = regexp.MustCompile(`(\d+)\s*(month|year|week)s?`)

// parseTimeframeMonths normalizes a "<N> week|month|year" expression to whole
// months. Weeks round to the nearest month with a minimum of 1.
func parseTimeframeMonths(text string) (int, bool) {
	match := timeframeRe.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n <= 0 {
		return 0, false
	}

	switch match[2] {
	case "month":
		return n, true
	case "year":
		return n * 12, true
	case "week":
		months := int(math.Round(float64(n) * 12.0 / 52.0))
		if months < 1 {
			months = 1
		}
		return months, true
	}
	return 0, false
}
