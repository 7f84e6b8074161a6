package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty grades how demanding a generated question should be.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
)

// Validation errors for quiz questions and generation requests
var (
	ErrQuestionTextEmpty    = errors.New("question text cannot be empty")
	ErrQuestionOptionCount  = errors.New("question must offer between 2 and 6 answer options")
	ErrQuestionAnswerIndex  = errors.New("question answer index is out of range")
	ErrInvalidDifficulty    = errors.New("invalid question difficulty")
	ErrQuestionSetEmpty     = errors.New("question set cannot be empty")
	ErrTopicEmpty           = errors.New("generation topic cannot be empty")
	ErrQuestionCountInvalid = errors.New("question count must be between 1 and 50")
	ErrDuplicateCategory    = errors.New("duplicate source material category")
)

// Question is one multiple-choice quiz question produced by the model.
// JSON tags match the keys the model is instructed to emit.
type Question struct {
	Question     string     `json:"question"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctIndex"`
	Explanation  string     `json:"explanation"`
	Difficulty   Difficulty `json:"difficulty"`
}

// Validate checks if the Question has valid data.
// Returns an error if any field fails validation.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return ErrQuestionTextEmpty
	}

	if len(q.Options) < 2 || len(q.Options) > 6 {
		return ErrQuestionOptionCount
	}

	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ErrQuestionAnswerIndex
	}

	if q.Difficulty != "" && !isValidDifficulty(q.Difficulty) {
		return ErrInvalidDifficulty
	}

	return nil
}

// QuestionSet is the parsed result of one quiz-generation call.
type QuestionSet struct {
	Questions []Question `json:"questions"`
}

// Validate checks that the set is non-empty and every question is valid.
func (s QuestionSet) Validate() error {
	if len(s.Questions) == 0 {
		return ErrQuestionSetEmpty
	}

	for i := range s.Questions {
		if err := s.Questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	return nil
}

// GenerationRequest describes one quiz-generation call: the anatomical topic,
// how many questions to produce, the requested difficulty mix, and the
// learner's own study material grouped by category. Materials are optional;
// difficulty defaults to a mix chosen by the model when none is given.
type GenerationRequest struct {
	Topic        string           `json:"topic"`
	Count        int              `json:"count"`
	Difficulties []Difficulty     `json:"difficulties,omitempty"`
	Materials    []SourceMaterial `json:"materials,omitempty"`
}

// Validate checks if the GenerationRequest has valid data.
// Returns an error if any field fails validation.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return ErrTopicEmpty
	}

	if r.Count < 1 || r.Count > 50 {
		return ErrQuestionCountInvalid
	}

	for _, d := range r.Difficulties {
		if !isValidDifficulty(d) {
			return ErrInvalidDifficulty
		}
	}

	seen := make(map[SourceCategory]bool, len(r.Materials))
	for _, m := range r.Materials {
		if err := m.Validate(); err != nil {
			return err
		}
		if seen[m.Category] {
			return ErrDuplicateCategory
		}
		seen[m.Category] = true
	}

	return nil
}

// isValidDifficulty checks if the given difficulty is a valid Difficulty.
func isValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyHard:
		return true
	default:
		return false
	}
}
