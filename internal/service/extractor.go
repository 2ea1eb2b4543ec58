package service

import (
	"strings"

	"github.com/LazizjanAsatov/Catra/internal/domain"
)

const MsgEmptyResponse = "Gemini returned an empty response."

// ExtractText joins the text of every part of every candidate with newlines.
func ExtractText(resp *domain.ModelResponse) (string, error) {
	var texts []string
	if resp != nil {
		for _, candidate := range resp.Candidates {
			for _, part := range candidate.Parts {
				texts = append(texts, part.Text)
			}
		}
	}

	text := strings.TrimSpace(strings.Join(texts, "\n"))
	if text == "" {
		return "", domain.NewError(domain.KindEmptyResponse, MsgEmptyResponse, nil)
	}
	return text, nil
}
