package domain

import "errors"

// Validation errors for study material
var (
	ErrContentEmpty          = errors.New("content item cannot be empty")
	ErrInvalidSourceCategory = errors.New("invalid source material category")
)

// SourceCategory identifies which of the learner's study-material collections
// a content item belongs to. Each category carries its own character budget
// when material is packed into a prompt.
type SourceCategory string

// The three material collections the application maintains per topic.
const (
	SourceTheory    SourceCategory = "theory"
	SourcePractical SourceCategory = "practical"
	SourceReference SourceCategory = "reference"
)

// ContentItem is a single user-supplied study document: a text excerpt when
// IsText is true, otherwise a base64-encoded binary attachment such as an
// atlas image or a scanned page. Binary payloads may carry a
// "data:<mime>;base64," prefix. Items are immutable values; nothing
// downstream mutates them.
type ContentItem struct {
	Content string `json:"content"`
	IsText  bool   `json:"isText"`
}

// NewTextItem creates a text content item.
func NewTextItem(text string) ContentItem {
	return ContentItem{Content: text, IsText: true}
}

// NewBinaryItem creates a binary content item from an encoded payload.
func NewBinaryItem(encoded string) ContentItem {
	return ContentItem{Content: encoded, IsText: false}
}

// Validate checks that the item carries content.
func (c ContentItem) Validate() error {
	if c.Content == "" {
		return ErrContentEmpty
	}
	return nil
}

// SourceMaterial groups the content items of one category, in the order the
// learner arranged them. Order is preserved all the way into the prompt.
type SourceMaterial struct {
	Category SourceCategory `json:"category"`
	Items    []ContentItem  `json:"items"`
}

// Validate checks the category and every item it contains.
func (s SourceMaterial) Validate() error {
	if !isValidSourceCategory(s.Category) {
		return ErrInvalidSourceCategory
	}
	for _, item := range s.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// isValidSourceCategory checks if the given category is one of the known
// material collections.
func isValidSourceCategory(c SourceCategory) bool {
	switch c {
	case SourceTheory, SourcePractical, SourceReference:
		return true
	default:
		return false
	}
}
