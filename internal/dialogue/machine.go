package dialogue

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/duit/internal/common"
	"github.com/ringgitlab/duit/internal/intent"
	"github.com/ringgitlab/duit/internal/model"
	"github.com/ringgitlab/duit/internal/respond"
	"github.com/ringgitlab/duit/internal/service"
)

// Extractor is the entity-extraction collaborator.
type Extractor interface {
	Extract(text string, custom []string) (model.ExtractedEntity, error)
	ExtractMultiple(text string, custom []string) ([]model.ExtractedEntity, error)
}

// Categorizer maps descriptions to categories; used directly by the
// correction flows and the budget wizard.
type Categorizer interface {
	Categorize(description string, custom []string) model.Category
}

// Machine is the dialogue state machine. One instance serves many sessions;
// all mutable conversation state lives in the per-user SessionContext.
type Machine struct {
	store       service.Storage
	extractor   Extractor
	categorizer Categorizer
	classifier  *intent.Classifier
	formatter   *respond.Formatter
	sessions    *SessionManager
}

// NewMachine wires the dialogue machine to its collaborators.
func NewMachine(store service.Storage, extractor Extractor, categorizer Categorizer, classifier *intent.Classifier, formatter *respond.Formatter) *Machine {
	return &Machine{
		store:       store,
		extractor:   extractor,
		categorizer: categorizer,
		classifier:  classifier,
		formatter:   formatter,
		sessions:    NewSessionManager(),
	}
}

// categorize is a nil-safe shorthand over the categorizer collaborator.
func (m *Machine) categorize(text string, custom []string) model.Category {
	if m.categorizer == nil {
		return model.CategoryOther
	}
	return m.categorizer.Categorize(text, custom)
}

// Session exposes the session context for a user. Intended for tests and the
// presentation layer's session inspection.
func (m *Machine) Session(userID string) *SessionContext {
	return m.sessions.Session(userID)
}

// handler fully handles a turn (returning a response and true) or falls
// through to the next handler in the chain.
type handler func(ctx context.Context, session *SessionContext, text string) (string, bool)

// ProcessTurn routes one utterance through the priority chain and always
// returns a non-empty response; it never panics or propagates an error to
// the caller.
func (m *Machine) ProcessTurn(ctx context.Context, rawText, userID string) (response string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Turn processing panicked", "user", userID, "panic", r)
			response = pick(clarificationResponses)
		}
	}()

	session := m.sessions.Session(userID)
	text := strings.ToLower(strings.TrimSpace(rawText))
	slog.Debug("Processing turn", "user", userID, "flow", activeFlow(session))

	// Priority order is load-bearing: active wizards interrupt everything,
	// new-flow triggers supersede pending confirmations, and intent
	// classification is the last resort.
	chain := []handler{
		m.handleActiveGoalWizard,      // 1
		m.handleMajorGoalTrigger,      // 2
		m.handleActiveBudgetWizard,    // 3
		m.handlePendingConfirmation,   // 4
		m.handleExpenseCorrection,     // 5
		m.handleBatchChangeMode,       // 6
		m.handleBatchConfirmation,     // 7
		m.handleGuardrails,            // 8
		m.handleGoalKeywordHeuristic,  // 9
		m.handleExplicitCommands,      // 10
		m.handleReports,               // 11
		m.handleNewExpense,            // 12
		m.handleBudgetQuery,           // 13
		m.handleIntentFallback,        // 14
	}

	for _, h := range chain {
		if resp, handled := h(ctx, session, text); handled {
			return resp
		}
	}

	// The fallback handler always handles, but keep the chain total anyway.
	return pick(clarificationResponses)
}

func activeFlow(session *SessionContext) model.FlowKind {
	if session.State == nil {
		return ""
	}
	return session.State.Flow
}

// handleGuardrails is chain step 8.
func (m *Machine) handleGuardrails(_ context.Context, _ *SessionContext, text string) (string, bool) {
	return checkGuardrails(text)
}

// handleIntentFallback is chain step 14: classification plus template
// formatting, with every failure converted to a clarification message.
func (m *Machine) handleIntentFallback(ctx context.Context, session *SessionContext, text string) (string, bool) {
	tag, confidence := m.classifier.Classify(text)
	slog.Debug("Intent classified", "user", session.UserID, "tag", tag, "confidence", confidence)

	in := m.classifier.Catalog().Find(tag)
	if in == nil {
		in = m.classifier.Catalog().Find(model.FallbackTag)
	}
	if in == nil {
		return pick(clarificationResponses), true
	}

	templates := in.Responses.All()
	if len(templates) == 0 {
		return pick(clarificationResponses), true
	}

	resp, err := m.formatter.Format(ctx, pick(templates), session.UserID, model.ExtractedEntity{})
	if err != nil {
		slog.Error("Response formatting failed", "user", session.UserID, "tag", tag, "error", err)
		var uerr *common.UserError
		if errors.As(err, &uerr) {
			return uerr.UserMessage, true
		}
		return pick(clarificationResponses), true
	}
	return resp, true
}

var numberRe = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// parsePositiveNumber finds the first number in text, tolerating currency
// markers and thousands separators, and requires it to be positive.
func parsePositiveNumber(text string) (decimal.Decimal, bool) {
	raw := numberRe.FindString(text)
	if raw == "" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil || !value.IsPositive() {
		return decimal.Zero, false
	}
	return value, true
}
