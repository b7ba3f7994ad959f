package gemini

import "strings"

// ExtractText returns the text of the first candidate. Text-bearing parts are
// joined with newlines in their original order and parts without text are
// skipped. An empty result is reported as ErrNoContent.
func ExtractText(resp *GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoContent
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", ErrNoContent
	}

	texts := make([]string, 0, len(content.Parts))
	for _, p := range content.Parts {
		if p.Text == "" {
			continue
		}
		texts = append(texts, p.Text)
	}

	text := strings.TrimSpace(strings.Join(texts, "\n"))
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}
