package prompt

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/vesaliusapp/vesalius-llm/internal/domain"
	"github.com/vesaliusapp/vesalius-llm/internal/metrics"
)

const (
	// AttachmentCharPenalty is the fixed number of characters a binary
	// attachment charges against its category budget. Attachment bytes are
	// not character-counted; the flat penalty keeps image-heavy categories
	// from starving the text that follows them.
	AttachmentCharPenalty = 25000

	// TruncationSuffix is appended to a text fragment that was cut to fit
	// its category budget.
	TruncationSuffix = "\n[...content truncated]"

	// attachmentOmittedNote replaces a binary item whose payload could not
	// be decoded.
	attachmentOmittedNote = "[attachment omitted: payload could not be decoded]"

	// dataURLSeparator splits the media type from the payload in a data URL.
	dataURLSeparator = ";base64,"
)

// Source is one labeled category of study material to pack. Budget is the
// character ceiling for this category's text; Items keep the learner's
// ordering.
type Source struct {
	Label  string
	Budget int
	Items  []domain.ContentItem
}

// Attachment is a decoded binary payload with its media type.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Segment is one unit of packed prompt content. Exactly one of Text or
// Attachment is set.
type Segment struct {
	Text       string
	Attachment *Attachment
}

// Pack assembles the ordered prompt segments for the given sources.
//
// Categories are processed in caller order and never interleaved: each
// category's segments sit between a begin and an end marker. Within a
// category, items are visited in input order against a running character
// counter. A text item that no longer fits is truncated to the remaining
// budget; once the budget is spent, the next text item is replaced by a
// single truncation marker and the rest of the category is dropped. Binary
// items are always attached when visited and charge AttachmentCharPenalty.
//
// The emitted item text of a category never exceeds its budget plus one
// TruncationSuffix. Output is deterministic; truncation only ever drops a
// tail. Categories without items are skipped entirely.
func Pack(sources []Source) []Segment {
	segments := make([]Segment, 0, 2*len(sources))

	for _, src := range sources {
		if len(src.Items) == 0 {
			continue
		}

		segments = append(segments, Segment{Text: beginMarker(src.Label)})

		used := 0
		truncated := false
		for _, item := range src.Items {
			if item.Content == "" {
				continue
			}

			if !item.IsText {
				att, err := DecodeAttachment(item.Content)
				if err != nil {
					// A payload that cannot be decoded becomes a short note
					// instead of garbage bytes and charges nothing.
					segments = append(segments, Segment{Text: attachmentOmittedNote})
					continue
				}
				segments = append(segments, Segment{Attachment: att})
				used += AttachmentCharPenalty
				continue
			}

			if used >= src.Budget {
				segments = append(segments, Segment{Text: truncationMarker(src.Label)})
				truncated = true
				break
			}

			remaining := src.Budget - used
			if utf8.RuneCountInString(item.Content) <= remaining {
				segments = append(segments, Segment{Text: item.Content})
				used += utf8.RuneCountInString(item.Content)
				continue
			}

			// Counting is in runes so multi-byte text never splits mid
			// character.
			runes := []rune(item.Content)
			segments = append(segments, Segment{Text: string(runes[:remaining]) + TruncationSuffix})
			used = src.Budget
			truncated = true
		}

		if truncated {
			metrics.PromptTruncations.WithLabelValues(src.Label).Inc()
		}

		segments = append(segments, Segment{Text: endMarker(src.Label)})
	}

	return segments
}

// DecodeAttachment turns an encoded binary payload into an Attachment. The
// payload may carry a "data:<mime>;base64," prefix; the media type comes
// from that prefix when present, otherwise from sniffing the decoded bytes.
func DecodeAttachment(encoded string) (*Attachment, error) {
	payload := encoded
	mimeType := ""

	if strings.HasPrefix(encoded, "data:") {
		rest := strings.TrimPrefix(encoded, "data:")
		if idx := strings.Index(rest, dataURLSeparator); idx >= 0 {
			mimeType = rest[:idx]
			payload = rest[idx+len(dataURLSeparator):]
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some encoders strip padding.
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode attachment payload: %w", err)
		}
	}

	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return &Attachment{MIMEType: mimeType, Data: data}, nil
}

func beginMarker(label string) string {
	return fmt.Sprintf("--- BEGIN %s ---", strings.ToUpper(label))
}

func endMarker(label string) string {
	return fmt.Sprintf("--- END %s ---", strings.ToUpper(label))
}

func truncationMarker(label string) string {
	return fmt.Sprintf("[%s truncated to fit the context budget; remaining items omitted]", strings.ToUpper(label))
}
