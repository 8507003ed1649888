package models

import "strings"

// Role identifies the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the wire/display name of the role
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message represents one turn in the conversation.
// Values are never mutated after construction.
type Message struct {
	Text string
	Role Role
}

// NewUserMessage creates a user message with surrounding whitespace removed
func NewUserMessage(text string) Message {
	return Message{Text: strings.TrimSpace(text), Role: RoleUser}
}

// NewAssistantMessage creates an assistant message with the reply text as received
func NewAssistantMessage(text string) Message {
	return Message{Text: text, Role: RoleAssistant}
}

// NewFallbackMessage creates the assistant message shown when an exchange fails
func NewFallbackMessage() Message {
	return NewAssistantMessage(FallbackText)
}

// IsUser reports whether the message was authored by the user
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsAssistant reports whether the message was authored by the assistant
func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}
