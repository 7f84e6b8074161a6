package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors for performance summaries
var (
	ErrNoTopics           = errors.New("performance summary must contain at least one topic")
	ErrTopicNameEmpty     = errors.New("topic name cannot be empty")
	ErrTopicCountsInvalid = errors.New("topic counts must satisfy 0 <= correct <= total")
)

// TopicPerformance is one row of a learner's results: how many questions on
// a topic were answered correctly out of how many attempted.
type TopicPerformance struct {
	Topic   string `json:"topic"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// Validate checks if the TopicPerformance has valid data.
func (p TopicPerformance) Validate() error {
	if strings.TrimSpace(p.Topic) == "" {
		return ErrTopicNameEmpty
	}

	if p.Correct < 0 || p.Total < p.Correct {
		return ErrTopicCountsInvalid
	}

	return nil
}

// PerformanceSummary aggregates a learner's recent quiz results for mentor
// feedback.
type PerformanceSummary struct {
	Topics []TopicPerformance `json:"topics"`
}

// Validate checks that the summary is non-empty and every row is valid.
func (s PerformanceSummary) Validate() error {
	if len(s.Topics) == 0 {
		return ErrNoTopics
	}

	for i, topic := range s.Topics {
		if err := topic.Validate(); err != nil {
			return fmt.Errorf("topic %d: %w", i+1, err)
		}
	}

	return nil
}

// MentorReport is the structured study feedback generated from a performance
// summary.
type MentorReport struct {
	Analysis   string   `json:"analysis"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Roadmap    string   `json:"roadmap"`
}

// FallbackMentorReport returns the safe default delivered when feedback
// cannot be generated, so the review screen always has something to show.
func FallbackMentorReport() *MentorReport {
	return &MentorReport{
		Analysis:   "Your mentor could not review this session. Keep practicing; a fresh analysis will be ready next time.",
		Strengths:  []string{},
		Weaknesses: []string{},
		Roadmap:    "Retry the review from the performance screen in a little while.",
	}
}
