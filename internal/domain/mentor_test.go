package domain

import (
	"errors"
	"testing"
)

func TestPerformanceSummaryValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Test empty summary
	summary := PerformanceSummary{}
	if err := summary.Validate(); !errors.Is(err, ErrNoTopics) {
		t.Errorf("Expected error %v, got %v", ErrNoTopics, err)
	}

	// Test valid summary
	summary = PerformanceSummary{Topics: []TopicPerformance{
		{Topic: "Heart", Correct: 7, Total: 10},
		{Topic: "Lungs", Correct: 10, Total: 10},
		{Topic: "Mediastinum", Correct: 0, Total: 4},
	}}
	if err := summary.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test blank topic name
	summary.Topics[1].Topic = "  "
	if err := summary.Validate(); !errors.Is(err, ErrTopicNameEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTopicNameEmpty, err)
	}

	// Test correct greater than total
	summary.Topics[1] = TopicPerformance{Topic: "Lungs", Correct: 11, Total: 10}
	if err := summary.Validate(); !errors.Is(err, ErrTopicCountsInvalid) {
		t.Errorf("Expected error %v, got %v", ErrTopicCountsInvalid, err)
	}

	// Test negative correct count
	summary.Topics[1] = TopicPerformance{Topic: "Lungs", Correct: -1, Total: 10}
	if err := summary.Validate(); !errors.Is(err, ErrTopicCountsInvalid) {
		t.Errorf("Expected error %v, got %v", ErrTopicCountsInvalid, err)
	}
}

func TestFallbackMentorReport(t *testing.T) {
	t.Parallel() // Enable parallel execution

	report := FallbackMentorReport()

	if report.Analysis == "" {
		t.Error("Expected fallback analysis text, got empty string")
	}
	if report.Strengths == nil || report.Weaknesses == nil {
		t.Error("Expected empty slices in fallback report, got nil")
	}
	if len(report.Strengths) != 0 || len(report.Weaknesses) != 0 {
		t.Error("Expected no strengths or weaknesses in fallback report")
	}
}
