package types

// Turn roles. A user turn is always followed by exactly one assistant turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn represents one message in a conversation, with optional
// property results attached to assistant turns.
type ChatTurn struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	Properties []Property `json:"properties,omitempty"`
}

// ChatRequest represents a chat request
type ChatRequest struct {
	Question string `json:"question"`
	AgentID  string `json:"agent_id,omitempty"`
}

// ChatResponse represents the answer to one chat turn.
// Results may be empty; that is a valid "no matches" outcome, not a failure.
type ChatResponse struct {
	Message string     `json:"message"`
	Results []Property `json:"results,omitempty"`
}
