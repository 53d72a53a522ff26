package formatter

import (
	"encoding/json"
	"os"

	"github.com/claudewatch/claudewatch/internal/application/dashboard"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(snapshot *dashboard.Snapshot) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snapshot)
}
