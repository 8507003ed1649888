// Package models contains data types and constants for the nexichat client.
package models

// Endpoints for the chat collaborator
const (
	DefaultEndpoint = "http://localhost:3000/api/chat"
	ChatPath        = "/api/chat"
)

// Display strings
const (
	AppName        = "Nexi AI"
	AppTitle       = "Nexi AI Chat Assistant"
	AssistantLabel = "Nexi AI Assistant"
	UserLabel      = "You"

	// FallbackText is appended as the assistant reply whenever an exchange fails
	FallbackText = "Sorry, there was an error processing your request."

	InputPlaceholder = "Type your message..."
	InputHelp        = "Press Enter to send your message"

	EmptyTitle    = "Start a conversation"
	EmptySubtitle = "Ask me anything!"
)

// Header names used by the chat client
const (
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
	HeaderRequestID   = "X-Request-ID"
	HeaderUserAgent   = "User-Agent"
)

// ContentTypeJSON is the only content type the collaborator speaks
const ContentTypeJSON = "application/json"

// DefaultHeaders returns the headers sent with every chat request
func DefaultHeaders() map[string]string {
	return map[string]string{
		HeaderContentType: ContentTypeJSON,
		HeaderAccept:      ContentTypeJSON,
		HeaderUserAgent:   "nexichat",
	}
}
