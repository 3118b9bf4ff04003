package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/investmateai/imctl/internal/cli/conversation"
	"github.com/investmateai/imctl/internal/cli/roster"
	"github.com/investmateai/imctl/internal/cli/types"
)

// fakeBackend serves a fixed roster and chat answer
type fakeBackend struct {
	agents    []types.Agent
	agentsErr error
	resp      *types.ChatResponse
	chatErr   error
	chatCalls int
}

func (b *fakeBackend) ListAgents(ctx context.Context) ([]types.Agent, error) {
	return b.agents, b.agentsErr
}

func (b *fakeBackend) Chat(ctx context.Context, question, agentID string) (*types.ChatResponse, error) {
	b.chatCalls++
	if b.chatErr != nil {
		return nil, b.chatErr
	}
	return b.resp, nil
}

func readyModel(t *testing.T, backend *fakeBackend) chatModel {
	t.Helper()
	m := initialModel(backend, "https://t.me/test_bot")

	res := roster.Result{Phase: roster.PhaseReady, Agents: backend.agents}
	if len(backend.agents) > 0 {
		res.Selected = &backend.agents[0]
	}
	updated, _ := m.Update(rosterResultMsg{result: res})
	return updated.(chatModel)
}

func TestRosterResultTransitions(t *testing.T) {
	backend := &fakeBackend{agents: []types.Agent{
		{ID: "a1", FullName: "Dana Levi"},
		{ID: "a2", FullName: "Yossi Mizrahi"},
	}}

	m := readyModel(t, backend)

	if m.phase != roster.PhaseReady {
		t.Fatalf("phase = %v, want PhaseReady", m.phase)
	}
	if m.engine.AgentID() != "a1" {
		t.Errorf("selected agent = %q, want first roster entry a1", m.engine.AgentID())
	}
}

func TestStaleRosterResultIgnored(t *testing.T) {
	backend := &fakeBackend{}
	m := initialModel(backend, "")

	updated, _ := m.Update(rosterResultMsg{result: roster.Result{Phase: roster.PhaseTimedOut}})
	m = updated.(chatModel)
	if m.phase != roster.PhaseTimedOut {
		t.Fatalf("phase = %v, want PhaseTimedOut", m.phase)
	}

	// A second roster message must not transition a settled phase
	late := roster.Result{Phase: roster.PhaseReady, Agents: []types.Agent{{ID: "late"}}}
	updated, _ = m.Update(rosterResultMsg{result: late})
	m = updated.(chatModel)
	if m.phase != roster.PhaseTimedOut {
		t.Errorf("phase = %v after stale result, want PhaseTimedOut", m.phase)
	}
}

func TestSuggestionKeySubmits(t *testing.T) {
	backend := &fakeBackend{agents: []types.Agent{{ID: "a1", FullName: "Dana Levi"}}}
	m := readyModel(t, backend)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF1})
	m = updated.(chatModel)

	if cmd == nil {
		t.Fatal("F1 in ready phase should issue a chat command")
	}
	turns := m.engine.Transcript()
	if len(turns) != 1 || turns[0].Content != conversation.Suggestions[0] {
		t.Errorf("transcript = %+v, want the first suggestion as the user turn", turns)
	}
	if !m.engine.Busy() {
		t.Error("engine should be awaiting the answer")
	}
}

func TestSubmitWhileBusyRejected(t *testing.T) {
	backend := &fakeBackend{agents: []types.Agent{{ID: "a1"}}}
	m := readyModel(t, backend)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyF1})
	m = updated.(chatModel)

	// Second submission while the first is in flight appends nothing
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF2})
	m = updated.(chatModel)
	if cmd != nil {
		t.Error("submission while busy should issue no command")
	}
	if len(m.engine.Transcript()) != 1 {
		t.Errorf("transcript has %d turns, want 1", len(m.engine.Transcript()))
	}
}

func TestAnswerResolvesExchange(t *testing.T) {
	backend := &fakeBackend{agents: []types.Agent{{ID: "a1"}}}
	m := readyModel(t, backend)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyF1})
	m = updated.(chatModel)

	resp := &types.ChatResponse{Message: "Found 2 listings", Results: []types.Property{
		{ID: "p1", Address: "12 Herzl St", City: "Netanya", Price: 1850000, Rooms: 3.5},
		{ID: "p2", Address: "3 HaYarkon St", City: "Netanya", Price: 1200000, Rooms: 2},
	}}
	updated, _ = m.Update(answerMsg{resp: resp})
	m = updated.(chatModel)

	turns := m.engine.Transcript()
	if len(turns) != 2 {
		t.Fatalf("transcript has %d turns, want 2", len(turns))
	}
	if turns[1].Content != "Found 2 listings" || len(turns[1].Properties) != 2 {
		t.Errorf("assistant turn = %+v", turns[1])
	}
	if m.engine.Busy() {
		t.Error("engine should be idle after the answer")
	}
}

func TestAnswerErrorYieldsApology(t *testing.T) {
	backend := &fakeBackend{agents: []types.Agent{{ID: "a1"}}}
	m := readyModel(t, backend)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyF1})
	m = updated.(chatModel)

	updated, _ = m.Update(answerMsg{err: errors.New("gateway down")})
	m = updated.(chatModel)

	turns := m.engine.Transcript()
	if len(turns) != 2 || turns[1].Content != conversation.FailureMessage {
		t.Errorf("transcript = %+v, want apology assistant turn", turns)
	}
	if m.engine.Busy() {
		t.Error("engine should accept new submissions after failure")
	}
}

func TestTabCyclesAgents(t *testing.T) {
	backend := &fakeBackend{agents: []types.Agent{
		{ID: "a1", FullName: "Dana Levi"},
		{ID: "a2", FullName: "Yossi Mizrahi"},
	}}
	m := readyModel(t, backend)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(chatModel)
	if m.engine.AgentID() != "a2" {
		t.Errorf("agent after Tab = %q, want a2", m.engine.AgentID())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(chatModel)
	if m.engine.AgentID() != "a1" {
		t.Errorf("agent after second Tab = %q, want wrap to a1", m.engine.AgentID())
	}
}

func TestFallbackViewOffersTelegram(t *testing.T) {
	backend := &fakeBackend{}
	m := initialModel(backend, "https://t.me/test_bot")

	updated, _ := m.Update(rosterResultMsg{result: roster.Result{Phase: roster.PhaseTimedOut}})
	m = updated.(chatModel)

	view := m.View()
	if !strings.Contains(view, "https://t.me/test_bot") {
		t.Error("fallback view should show the Telegram channel link")
	}
	if !strings.Contains(view, "retry") {
		t.Error("fallback view should offer a retry")
	}
}

func TestRetryKeyRestartsLoad(t *testing.T) {
	backend := &fakeBackend{}
	m := initialModel(backend, "")

	updated, _ := m.Update(rosterResultMsg{result: roster.Result{Phase: roster.PhaseTimedOut}})
	m = updated.(chatModel)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(chatModel)

	if m.phase != roster.PhaseInitializing {
		t.Errorf("phase after retry = %v, want PhaseInitializing", m.phase)
	}
	if cmd == nil {
		t.Error("retry should issue a new roster load command")
	}
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		maxWidth int
		want     string
	}{
		{name: "short line untouched", line: "hello", maxWidth: 10, want: "hello"},
		{name: "long line wrapped", line: "abcdefghij", maxWidth: 5, want: "abcde\nfghij"},
		{name: "exact width untouched", line: "abcde", maxWidth: 5, want: "abcde"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapLine(tt.line, tt.maxWidth); got != tt.want {
				t.Errorf("wrapLine(%q, %d) = %q, want %q", tt.line, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestFormatRooms(t *testing.T) {
	if got := formatRooms(3); got != "3" {
		t.Errorf("formatRooms(3) = %q, want 3", got)
	}
	if got := formatRooms(3.5); got != "3.5" {
		t.Errorf("formatRooms(3.5) = %q, want 3.5", got)
	}
}
