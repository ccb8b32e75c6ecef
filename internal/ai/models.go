package ai

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one prior message of the conversation.
type Turn struct {
	Role    string
	Content string
}

// Context carries the session state an extractor may use.
type Context struct {
	SessionID string

	// History holds previous turns, oldest first, excluding the current utterance.
	History []Turn

	// Slots holds the session's non-null slot values.
	Slots map[string]any

	Now time.Time
}

// Extraction captures the structured output from the model.
type Extraction struct {
	// Intent is one of the router's intent labels; unrecognised labels route to Unknown.
	Intent string `json:"intent"`

	// Slots are newly extracted values. Null values never erase session state.
	Slots map[string]any `json:"slots"`

	// UserReply, when set, is returned to the user verbatim and routing is skipped.
	UserReply *string `json:"user_reply"`
}
