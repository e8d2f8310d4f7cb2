// Package dialogue implements the conversational state machine that routes
// each utterance through a priority-ordered chain of handlers: active
// wizards, pending-expense confirmations, guardrails, expense detection, and
// finally intent classification.
package dialogue

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/ringgitlab/duit/internal/model"
)

// SessionContext holds the per-user conversation state. It owns at most one
// active ConversationState and at most one of PendingExpense/PendingBatch at
// any time; the Start/Clear helpers keep that invariant.
type SessionContext struct {
	State            *model.ConversationState
	Pending          *model.PendingExpense
	UserID           string
	CustomCategories []string
	PendingBatch     []model.ExtractedEntity
	CancelCount      int
}

// StartFlow activates a new flow, clearing any previous conversation state.
// Pending expense state survives unless clearPending is set, since a wizard
// started mid-confirmation supersedes the confirmation.
func (s *SessionContext) StartFlow(state *model.ConversationState, clearPending bool) {
	if s.State != nil {
		slog.Debug("Flow superseded", "user", s.UserID, "old", s.State.Flow, "new", state.Flow)
	}
	s.State = state
	if clearPending {
		s.Pending = nil
		s.PendingBatch = nil
	}
}

// SetPending stages a single pending expense, displacing any batch.
func (s *SessionContext) SetPending(pending *model.PendingExpense) {
	s.Pending = pending
	s.PendingBatch = nil
}

// SetPendingBatch stages a multi-expense batch, displacing any single pending
// expense.
func (s *SessionContext) SetPendingBatch(batch []model.ExtractedEntity) {
	s.PendingBatch = batch
	s.Pending = nil
}

// ClearFlow ends the active flow and drops pending state.
func (s *SessionContext) ClearFlow() {
	s.State = nil
	s.Pending = nil
	s.PendingBatch = nil
}

// AddCustomCategory registers a session-scoped category, lower-cased and
// de-duplicated. It reports whether the category was new.
func (s *SessionContext) AddCustomCategory(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, existing := range s.CustomCategories {
		if existing == name {
			return false
		}
	}
	s.CustomCategories = append(s.CustomCategories, name)
	return true
}

// SessionManager hands out independent SessionContext instances keyed by
// user. Sessions never share mutable state.
type SessionManager struct {
	sessions map[string]*SessionContext
	mu       sync.Mutex
}

// NewSessionManager creates an empty session registry.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*SessionContext)}
}

// Session returns the context for a user, creating it on first use.
func (sm *SessionManager) Session(userID string) *SessionContext {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if s, ok := sm.sessions[userID]; ok {
		return s
	}
	s := &SessionContext{UserID: userID}
	sm.sessions[userID] = s
	return s
}
