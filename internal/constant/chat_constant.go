package constant

// Message roles as stored in a conversation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Websocket stream event types.
const (
	StreamEventFragment = "fragment"
	StreamEventDone     = "done"
	StreamEventError    = "error"
)
