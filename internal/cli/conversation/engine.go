// Package conversation owns the visible chat transcript and drives one
// exchange at a time. Each submission starts a fresh two-turn exchange: the
// transcript is replaced by the new user turn and, on resolution, exactly one
// assistant turn. Prior turns are intentionally discarded rather than
// accumulated.
package conversation

import (
	"context"
	"strings"

	"github.com/investmateai/imctl/internal/cli/types"
)

// State is the engine's exchange state.
type State int

const (
	// StateIdle means no request is in flight; submissions are accepted.
	StateIdle State = iota
	// StateAwaitingAnswer means a request is in flight; submissions are blocked.
	StateAwaitingAnswer
)

// FailureMessage is the assistant turn substituted when an exchange fails.
const FailureMessage = "Sorry, I encountered an error. Please try again."

// Suggestions are pre-authored questions offered on the chat surface.
// Selecting one goes through the exact same path as typing it.
var Suggestions = []string{
	"Show me apartments in Netanya under 2M",
	"Which properties have the best rental yield?",
	"Penthouse in Haifa",
}

// Gateway is the backend capability the engine needs for a chat turn.
type Gateway interface {
	Chat(ctx context.Context, question, agentID string) (*types.ChatResponse, error)
}

// Engine manages the transcript and serializes chat exchanges. It is not
// safe for concurrent use; the single UI surface drives it.
type Engine struct {
	gw         Gateway
	state      State
	agentID    string
	transcript []types.ChatTurn
}

// NewEngine creates an idle engine with an empty transcript
func NewEngine(gw Gateway) *Engine {
	return &Engine{gw: gw}
}

// SelectAgent sets the roster agent chat turns are filtered by
func (e *Engine) SelectAgent(agentID string) {
	e.agentID = agentID
}

// AgentID returns the selected agent, or "" when none is selected
func (e *Engine) AgentID() string {
	return e.agentID
}

// State returns the current exchange state
func (e *Engine) State() State {
	return e.state
}

// Busy reports whether a request is in flight
func (e *Engine) Busy() bool {
	return e.state == StateAwaitingAnswer
}

// Transcript returns a copy of the rendered turns
func (e *Engine) Transcript() []types.ChatTurn {
	out := make([]types.ChatTurn, len(e.transcript))
	copy(out, e.transcript)
	return out
}

// Submit starts a new exchange. A submission is valid only when the question
// is non-empty after trimming, an agent is selected, and no request is in
// flight; invalid submissions append no turn and report false. On a valid
// submission the transcript is replaced by the single new user turn.
func (e *Engine) Submit(question string) (string, bool) {
	question = strings.TrimSpace(question)
	if question == "" || e.agentID == "" || e.state == StateAwaitingAnswer {
		return "", false
	}

	e.transcript = []types.ChatTurn{{Role: types.RoleUser, Content: question}}
	e.state = StateAwaitingAnswer
	return question, true
}

// Suggest submits a pre-authored suggestion. Behavior is identical to typing
// the same text and submitting.
func (e *Engine) Suggest(text string) (string, bool) {
	return e.Submit(text)
}

// Resolve completes the in-flight exchange with the backend's answer. The
// response's property list is attached verbatim; an empty list is a valid
// "no matches" outcome.
func (e *Engine) Resolve(resp *types.ChatResponse) {
	if e.state != StateAwaitingAnswer {
		return
	}
	e.transcript = append(e.transcript, types.ChatTurn{
		Role:       types.RoleAssistant,
		Content:    resp.Message,
		Properties: resp.Results,
	})
	e.state = StateIdle
}

// Fail completes the in-flight exchange with a generic apology turn. The
// user turn is retained and another question may be submitted immediately.
func (e *Engine) Fail() {
	if e.state != StateAwaitingAnswer {
		return
	}
	e.transcript = append(e.transcript, types.ChatTurn{
		Role:    types.RoleAssistant,
		Content: FailureMessage,
	})
	e.state = StateIdle
}

// Exchange runs one full blocking turn through the gateway. It reports
// whether a request was issued at all.
func (e *Engine) Exchange(ctx context.Context, question string) bool {
	q, ok := e.Submit(question)
	if !ok {
		return false
	}

	resp, err := e.gw.Chat(ctx, q, e.agentID)
	if err != nil {
		e.Fail()
		return true
	}
	e.Resolve(resp)
	return true
}
