package model

// Message entry types
const (
	EntryMessage   = "message"
	EntryAssistant = "assistant"
)

// Fallback identifiers
const (
	ModelUnknown   = "unknown"
	SessionUnknown = "unknown"
)
