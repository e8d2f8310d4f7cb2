package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringgitlab/duit/internal/category"
	"github.com/ringgitlab/duit/internal/dialogue"
	"github.com/ringgitlab/duit/internal/extract"
	"github.com/ringgitlab/duit/internal/intent"
	"github.com/ringgitlab/duit/internal/respond"
	"github.com/ringgitlab/duit/internal/testutil"
)

func newChatModel(t *testing.T) Model {
	t.Helper()
	store := &testutil.MockStorage{}
	categorizer := category.NewCategorizer()
	machine := dialogue.NewMachine(
		store,
		extract.NewExtractor(categorizer),
		categorizer,
		intent.NewClassifier(intent.DefaultCatalog()),
		respond.NewFormatter(store),
	)
	return NewModel(context.Background(), machine, "u1")
}

func TestSubmitRunsTurnAndRendersReply(t *testing.T) {
	m := newChatModel(t)
	m.input.SetValue("hello")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, model.waiting)
	assert.Equal(t, "hello", model.transcript[len(model.transcript)-1].text)

	reply, ok := cmd().(replyMsg)
	require.True(t, ok)
	assert.NotEmpty(t, reply.text)

	updated, _ = model.Update(reply)
	model = updated.(Model)
	assert.False(t, model.waiting)

	view := model.View()
	assert.Contains(t, view, "you: hello")
	assert.Contains(t, view, "duit: "+reply.text)
}

func TestEmptyInputIsIgnored(t *testing.T) {
	m := newChatModel(t)
	m.input.SetValue("   ")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)
	assert.Nil(t, cmd)
	assert.False(t, model.waiting)
}

func TestEscQuits(t *testing.T) {
	m := newChatModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model := updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, model.quitting)
	assert.Contains(t, model.View(), "Jumpa lagi")
}
