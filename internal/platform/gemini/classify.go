package gemini

import (
	"errors"
	"net/http"

	"github.com/vesaliusapp/vesalius-llm/internal/platform/retry"
	"google.golang.org/genai"
)

// classifyError decides whether a failed Gemini call is worth retrying. The
// structured status code wins when the SDK provides one: 429 and 503 are the
// codes the service uses for rate limiting and overload, and every other
// code is a request or server fault a retry cannot fix. Errors without a
// structured code, such as transport failures, fall back to the message
// marker scan.
func classifyError(err error) retry.Kind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests, http.StatusServiceUnavailable:
			return retry.KindTransient
		default:
			return retry.KindFatal
		}
	}

	return retry.DefaultClassifier(err)
}
