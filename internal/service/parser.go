package service

import (
	"encoding/json"
	"strings"

	"github.com/LazizjanAsatov/Catra/internal/domain"
)

// ParseStructuredJSON parses the span between the first '{' and the last '}'
// of text. The span is not brace-balanced, so prose after the object that
// contains a closing brace makes the result nil. Returns nil when no valid
// object is found.
func ParseStructuredJSON(text string) *domain.AnalysisPayload {
	start := strings.Index(text, "{")
	if start == -1 {
		return nil
	}
	end := strings.LastIndex(text, "}")
	if end <= start {
		return nil
	}

	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil
	}
	return domain.NewAnalysisPayload(candidate)
}
