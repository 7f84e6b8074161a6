package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/vesaliusapp/vesalius-llm/internal/domain"
)

// System instructions for the tutor operations. They ride in the model's
// system slot; the per-request instruction text comes from the builders
// below.
const (
	// QuestionSystemPrompt frames quiz generation.
	QuestionSystemPrompt = "You are Vesalius, an experienced anatomy educator writing exam questions " +
		"for medical students. You are rigorous about anatomical accuracy, use standard " +
		"Terminologia Anatomica names, and never invent structures. You answer only in the " +
		"JSON shape you are asked for."

	// StationSystemPrompt frames station-photograph checks.
	StationSystemPrompt = "You are Vesalius, an anatomy practical examiner reviewing station " +
		"photographs. You only accept images that clearly show identifiable human anatomical " +
		"material: cadaveric specimens, anatomical models, or medical imaging. Drawings of " +
		"unrelated subjects, memes, and unreadable photos are rejected. You answer only in " +
		"the JSON shape you are asked for."

	// MentorSystemPrompt frames performance reviews.
	MentorSystemPrompt = "You are Vesalius, a supportive anatomy mentor. You talk to the learner " +
		"directly, praise genuine strengths, name weaknesses plainly, and give concrete, " +
		"sequenced study advice. You answer only in the JSON shape you are asked for."

	// ChatSystemPrompt frames the free-form tutoring conversation.
	ChatSystemPrompt = "You are Vesalius, a friendly anatomy tutor chatting with a medical " +
		"student. Keep answers precise and compact, cite anatomical relations rather than " +
		"trivia, and when the student sends an image, describe what is actually visible " +
		"before interpreting it. Plain text only, no markdown tables."
)

// difficultyGuidance expands a difficulty label into the instruction the
// model sees for it.
var difficultyGuidance = map[domain.Difficulty]string{
	domain.DifficultyEasy:     "plain recall of names, positions and simple relations",
	domain.DifficultyModerate: "applied reasoning about relations, innervation and blood supply",
	domain.DifficultyHard:     "clinical vignettes requiring multi-step reasoning",
}

const generationTemplate = `Write {{.Count}} multiple-choice anatomy questions about "{{.Topic}}".

{{.DifficultyLine}}
Every question offers exactly 4 answer options with a single correct answer, and an explanation that teaches the underlying anatomy rather than restating the answer.
{{if .HasMaterial}}
Ground the questions in the learner's own study material between the BEGIN and END markers that follow. Prefer its terminology and emphases where they are accurate; do not quiz on material that was cut off.
{{else}}
Draw on standard anatomical teaching for this topic.
{{end}}
Respond with a single JSON object of the form
{"questions":[{"question":"...","options":["...","...","...","..."],"correctIndex":0,"explanation":"...","difficulty":"easy|moderate|hard"}]}
and nothing else: no prose around it, no code fences.`

const mentorTemplate = `Review this learner's recent quiz results and write mentor feedback.

Results by topic:
{{range .Topics}}- {{.Topic}}: {{.Correct}}/{{.Total}} correct ({{.Percent}}%)
{{end}}
Weigh topics with more attempts more heavily. Speak to the learner directly.

Respond with a single JSON object of the form
{"analysis":"...","strengths":["..."],"weaknesses":["..."],"roadmap":"..."}
where analysis is a short overall read, strengths and weaknesses name specific topics, and roadmap lays out the next two weeks of study in order. No prose around the JSON, no code fences.`

// Templates are parsed once; Must panics at init on a bad template, which a
// test would catch immediately.
var (
	generationTmpl = template.Must(template.New("generation").Parse(generationTemplate))
	mentorTmpl     = template.Must(template.New("mentor").Parse(mentorTemplate))
)

// generationData carries the fields the generation template needs.
type generationData struct {
	Topic          string
	Count          int
	DifficultyLine string
	HasMaterial    bool
}

// GenerationInstruction renders the instruction text for a quiz-generation
// call. Study material is packed separately and follows this text in the
// outbound request.
func GenerationInstruction(req domain.GenerationRequest) (string, error) {
	hasMaterial := false
	for _, m := range req.Materials {
		if len(m.Items) > 0 {
			hasMaterial = true
			break
		}
	}

	data := generationData{
		Topic:          req.Topic,
		Count:          req.Count,
		DifficultyLine: difficultyLine(req.Difficulties),
		HasMaterial:    hasMaterial,
	}

	var buf bytes.Buffer
	if err := generationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute generation template: %w", err)
	}
	return buf.String(), nil
}

// difficultyLine renders the requested difficulty mix, or a sensible default
// when the caller did not constrain it.
func difficultyLine(difficulties []domain.Difficulty) string {
	if len(difficulties) == 0 {
		return "Mix easy, moderate and hard questions sensibly across the set."
	}

	parts := make([]string, 0, len(difficulties))
	for _, d := range difficulties {
		if guidance, ok := difficultyGuidance[d]; ok {
			parts = append(parts, fmt.Sprintf("%s (%s)", d, guidance))
		} else {
			parts = append(parts, string(d))
		}
	}
	return "Requested difficulty mix: " + strings.Join(parts, ", ") + "."
}

// StationInstruction renders the instruction text for a station-photograph
// check. The image itself is attached as a separate part.
func StationInstruction(topic string) string {
	subject := "identifiable human anatomical material"
	if topic != "" {
		subject = fmt.Sprintf("%q or closely related structures", topic)
	}

	return fmt.Sprintf(`Examine the attached station photograph.

Decide whether it clearly shows %s. If it does not, or the image is unreadable, report it as invalid.

If it is valid, write exactly 3 multiple-choice questions about structures actually visible in this photograph, each with 4 answer options, a single correctIndex, and an explanation anchored to what the image shows.

Respond with a single JSON object of the form
{"isValid":true,"questions":[{"question":"...","options":["...","...","...","..."],"correctIndex":0,"explanation":"...","difficulty":"easy|moderate|hard"}]}
or {"isValid":false,"questions":[]} when invalid. Nothing else: no prose, no code fences.`, subject)
}

// mentorTopicRow is one rendered line of the results table.
type mentorTopicRow struct {
	Topic   string
	Correct int
	Total   int
	Percent int
}

// mentorData carries the fields the mentor template needs.
type mentorData struct {
	Topics []mentorTopicRow
}

// MentorInstruction renders the instruction text for a performance review.
func MentorInstruction(summary domain.PerformanceSummary) (string, error) {
	rows := make([]mentorTopicRow, 0, len(summary.Topics))
	for _, topic := range summary.Topics {
		percent := 0
		if topic.Total > 0 {
			percent = topic.Correct * 100 / topic.Total
		}
		rows = append(rows, mentorTopicRow{
			Topic:   topic.Topic,
			Correct: topic.Correct,
			Total:   topic.Total,
			Percent: percent,
		})
	}

	var buf bytes.Buffer
	if err := mentorTmpl.Execute(&buf, mentorData{Topics: rows}); err != nil {
		return "", fmt.Errorf("execute mentor template: %w", err)
	}
	return buf.String(), nil
}
