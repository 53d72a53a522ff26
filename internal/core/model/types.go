package model

import "time"

// UsageLog is one raw line of a Claude Code JSONL conversation log.
// Only the fields the engine consumes are decoded; everything else on the
// line is ignored.
type UsageLog struct {
	Type      string     `json:"type"`
	SessionId string     `json:"sessionId"`
	RequestId string     `json:"requestId,omitempty"`
	Timestamp string     `json:"timestamp"`
	Cwd       string     `json:"cwd,omitempty"`
	Message   LogMessage `json:"message"`
}

type LogMessage struct {
	Id    string     `json:"id,omitempty"`
	Model string     `json:"model,omitempty"`
	Role  string     `json:"role,omitempty"`
	Usage TokenUsage `json:"usage,omitempty"`
}

type TokenUsage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
}

// Total returns the sum of all four token kinds.
func (u TokenUsage) Total() int {
	return u.InputTokens + u.OutputTokens + u.CacheCreationInputTokens + u.CacheReadInputTokens
}

// UsageEvent is one observed API call, normalized from a UsageLog.
// Events are immutable once parsed; the aggregation pipeline never
// mutates them.
type UsageEvent struct {
	Timestamp           time.Time // always UTC
	SessionID           string
	Model               string
	InputTokens         int
	OutputTokens        int
	CacheCreationTokens int
	CacheReadTokens     int
}

// TotalTokens returns the event's token count across all four kinds.
func (e UsageEvent) TotalTokens() int {
	return e.InputTokens + e.OutputTokens + e.CacheCreationTokens + e.CacheReadTokens
}

// ToEvent converts a raw log line into a UsageEvent. It returns false
// when the line carries no billable usage: wrong entry type, empty
// usage, a negative count, or an unparseable timestamp.
func (l UsageLog) ToEvent() (UsageEvent, bool) {
	if l.Type != EntryMessage && l.Type != EntryAssistant {
		return UsageEvent{}, false
	}

	usage := l.Message.Usage
	if usage.InputTokens < 0 || usage.OutputTokens < 0 ||
		usage.CacheCreationInputTokens < 0 || usage.CacheReadInputTokens < 0 {
		return UsageEvent{}, false
	}
	if usage.Total() == 0 {
		return UsageEvent{}, false
	}

	ts, err := time.Parse(time.RFC3339, l.Timestamp)
	if err != nil {
		return UsageEvent{}, false
	}

	sessionID := l.SessionId
	if sessionID == "" {
		sessionID = SessionUnknown
	}

	return UsageEvent{
		Timestamp:           ts.UTC(),
		SessionID:           sessionID,
		Model:               normalizeModelName(l.Message.Model),
		InputTokens:         usage.InputTokens,
		OutputTokens:        usage.OutputTokens,
		CacheCreationTokens: usage.CacheCreationInputTokens,
		CacheReadTokens:     usage.CacheReadInputTokens,
	}, true
}

func normalizeModelName(model string) string {
	if model == "" {
		return ModelUnknown
	}
	return model
}

// ModelStats accumulates token counts and call count for one distinct
// model identifier. Raw identifiers are kept at this layer; tier
// grouping is a presentation concern.
type ModelStats struct {
	Model               string
	InputTokens         int
	OutputTokens        int
	CacheCreationTokens int
	CacheReadTokens     int
	CallCount           int
}

// Add folds one event's counts into the stats.
func (s *ModelStats) Add(e UsageEvent) {
	s.InputTokens += e.InputTokens
	s.OutputTokens += e.OutputTokens
	s.CacheCreationTokens += e.CacheCreationTokens
	s.CacheReadTokens += e.CacheReadTokens
	s.CallCount++
}

// TotalTokens returns the per-model token total across all kinds.
func (s *ModelStats) TotalTokens() int {
	return s.InputTokens + s.OutputTokens + s.CacheCreationTokens + s.CacheReadTokens
}

// FileEvent represents a file system event from the watcher.
type FileEvent struct {
	Path      string
	Operation string
}
