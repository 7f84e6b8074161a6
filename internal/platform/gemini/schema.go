package gemini

import "google.golang.org/genai"

// Response schemas sent with every JSON-shaped call. Gemini's JSON mode
// constrains decoding on the server side; domain Validate methods still run
// on everything that comes back.

// questionSchema describes one multiple-choice question. Shared by the
// question-set and station-report schemas.
var questionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"question": {
			Type:        genai.TypeString,
			Description: "The question text.",
		},
		"options": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Exactly 4 answer options.",
		},
		"correctIndex": {
			Type:        genai.TypeInteger,
			Description: "Zero-based index of the correct option.",
		},
		"explanation": {
			Type:        genai.TypeString,
			Description: "Why the correct answer is right, teaching the underlying anatomy.",
		},
		"difficulty": {
			Type: genai.TypeString,
			Enum: []string{"easy", "moderate", "hard"},
		},
	},
	Required: []string{"question", "options", "correctIndex", "explanation"},
}

// questionSetSchema is the response shape for quiz generation.
var questionSetSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"questions": {
			Type:  genai.TypeArray,
			Items: questionSchema,
		},
	},
	Required: []string{"questions"},
}

// stationReportSchema is the response shape for station-photograph checks.
var stationReportSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"isValid": {
			Type:        genai.TypeBoolean,
			Description: "Whether the photograph clearly shows identifiable anatomical material.",
		},
		"questions": {
			Type:        genai.TypeArray,
			Items:       questionSchema,
			Description: "Empty when isValid is false.",
		},
	},
	Required: []string{"isValid", "questions"},
}

// mentorReportSchema is the response shape for performance reviews.
var mentorReportSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"analysis": {
			Type:        genai.TypeString,
			Description: "Short overall read of the learner's performance.",
		},
		"strengths": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"weaknesses": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"roadmap": {
			Type:        genai.TypeString,
			Description: "Ordered study plan for the coming weeks.",
		},
	},
	Required: []string{"analysis", "strengths", "weaknesses", "roadmap"},
}
