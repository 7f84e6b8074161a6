package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vesaliusapp/vesalius-llm/internal/tutor"
	"google.golang.org/genai"
)

// responseText checks a raw model response step by step and returns its
// text payload. Safety-filter stops come back as tutor.ErrContentBlocked;
// every structural defect wraps tutor.ErrInvalidResponse.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", tutor.ErrInvalidResponse)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", tutor.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response stopped by safety filters", tutor.ErrContentBlocked)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response text", tutor.ErrInvalidResponse)
	}

	return text, nil
}

// stripFences removes a wrapping markdown code fence. JSON mode should keep
// fences out of responses, but models still emit them often enough that
// parsing without this cleanup is flaky.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// decodeInto parses the model's fence-stripped text into out.
func decodeInto(text string, out any) error {
	if err := json.Unmarshal([]byte(stripFences(text)), out); err != nil {
		return fmt.Errorf("%w: malformed JSON payload: %v", tutor.ErrInvalidResponse, err)
	}
	return nil
}
