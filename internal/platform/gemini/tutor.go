package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/vesaliusapp/vesalius-llm/internal/config"
	"github.com/vesaliusapp/vesalius-llm/internal/domain"
	"github.com/vesaliusapp/vesalius-llm/internal/metrics"
	"github.com/vesaliusapp/vesalius-llm/internal/platform/retry"
	"github.com/vesaliusapp/vesalius-llm/internal/prompt"
	"github.com/vesaliusapp/vesalius-llm/internal/redact"
	"github.com/vesaliusapp/vesalius-llm/internal/tutor"
	"google.golang.org/genai"
)

// Operation names used in logs and metric labels.
const (
	opGenerateQuestions  = "generate_questions"
	opCheckStation       = "check_station"
	opAnalyzePerformance = "analyze_performance"
	opChat               = "chat"
)

// chatFallbackReply is the safe default returned when a chat answer cannot
// be produced for a reason other than quota or overload.
const chatFallbackReply = "I'm sorry, I couldn't put an answer together just now. " +
	"Please ask me again in a moment."

// Tutor implements the tutor.Service interface using Google's Gemini API.
type Tutor struct {
	// logger is used for structured logging
	logger *slog.Logger

	// llm contains LLM-specific configuration
	llm config.LLMConfig

	// budget contains the per-category character ceilings for packed material
	budget config.BudgetConfig

	// client is the Gemini API client for making requests
	client *genai.Client

	// generate performs the raw model call; tests replace it to inject
	// responses and failures without a network.
	generate func(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewTutor creates a new instance of Tutor with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - llm: LLM configuration containing API key, model name, and retry settings
//   - budget: Per-category character budgets applied when packing study material
//
// Returns:
//   - A properly initialized Tutor or an error if initialization fails
func NewTutor(
	ctx context.Context,
	logger *slog.Logger,
	llm config.LLMConfig,
	budget config.BudgetConfig,
) (*Tutor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	// Validate configuration
	if llm.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", tutor.ErrInvalidConfig)
	}

	if llm.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", tutor.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  llm.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", tutor.ErrInvalidConfig, err)
	}

	t := &Tutor{
		logger: logger,
		llm:    llm,
		budget: budget,
		client: client,
	}
	t.generate = t.callModel

	return t, nil
}

// GenerateQuestions implements tutor.Service. This is the primary operation:
// every failure propagates to the caller.
func (t *Tutor) GenerateQuestions(
	ctx context.Context,
	req domain.GenerationRequest,
) (*domain.QuestionSet, error) {
	logger := t.opLogger(opGenerateQuestions)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation request: %w", err)
	}

	instruction, err := prompt.GenerationInstruction(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tutor.ErrGenerationFailed, err)
	}

	parts := []*genai.Part{genai.NewPartFromText(instruction)}
	parts = append(parts, partsFromSegments(prompt.Pack(t.packSources(req.Materials)))...)
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	logger.InfoContext(ctx, "Generating quiz questions",
		"topic", req.Topic,
		"count", req.Count,
		"material_categories", len(req.Materials))

	resp, err := t.call(ctx, logger, opGenerateQuestions, contents,
		t.jsonCallConfig(prompt.QuestionSystemPrompt, questionSetSchema))
	if err != nil {
		return nil, err
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	var set domain.QuestionSet
	if err := decodeInto(text, &set); err != nil {
		logger.WarnContext(ctx, "Question set failed to parse",
			"error", redact.Error(err),
			"response_length", len(text))
		if len(req.Materials) > 0 {
			return nil, fmt.Errorf("%w; oversized study material is the usual culprit", err)
		}
		return nil, err
	}

	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%w: generated question set failed validation: %v",
			tutor.ErrInvalidResponse, err)
	}

	logger.InfoContext(ctx, "Question generation successful",
		"questions", len(set.Questions))

	return &set, nil
}

// CheckStation implements tutor.Service. Unusable responses degrade to
// domain.EmptyStationReport; quota and overload failures propagate.
func (t *Tutor) CheckStation(
	ctx context.Context,
	req domain.StationCheckRequest,
) (*domain.StationReport, error) {
	logger := t.opLogger(opCheckStation)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid station check request: %w", err)
	}

	att, err := prompt.DecodeAttachment(req.Image)
	if err != nil {
		// An image the adapter cannot even decode would only come back as a
		// model refusal, so skip the call and degrade immediately.
		return safeDefault(ctx, logger, opCheckStation,
			fmt.Errorf("%w: station image could not be decoded: %v", tutor.ErrInvalidResponse, err),
			domain.EmptyStationReport())
	}

	contents := []*genai.Content{genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(att.Data, att.MIMEType),
		genai.NewPartFromText(prompt.StationInstruction(req.Topic)),
	}, genai.RoleUser)}

	logger.InfoContext(ctx, "Checking station photograph",
		"topic", req.Topic,
		"image_bytes", len(att.Data),
		"mime_type", att.MIMEType)

	resp, err := t.call(ctx, logger, opCheckStation, contents,
		t.jsonCallConfig(prompt.StationSystemPrompt, stationReportSchema))
	if err != nil {
		return safeDefault(ctx, logger, opCheckStation, err, domain.EmptyStationReport())
	}

	text, err := responseText(resp)
	if err != nil {
		return safeDefault(ctx, logger, opCheckStation, err, domain.EmptyStationReport())
	}

	var report domain.StationReport
	if err := decodeInto(text, &report); err != nil {
		return safeDefault(ctx, logger, opCheckStation, err, domain.EmptyStationReport())
	}

	if report.Questions == nil {
		report.Questions = []domain.Question{}
	}
	for i := range report.Questions {
		if err := report.Questions[i].Validate(); err != nil {
			return safeDefault(ctx, logger, opCheckStation,
				fmt.Errorf("%w: station question %d failed validation: %v",
					tutor.ErrInvalidResponse, i+1, err),
				domain.EmptyStationReport())
		}
	}

	logger.InfoContext(ctx, "Station check complete",
		"is_valid", report.IsValid,
		"questions", len(report.Questions))

	return &report, nil
}

// AnalyzePerformance implements tutor.Service. Unusable responses degrade to
// domain.FallbackMentorReport; quota and overload failures propagate.
func (t *Tutor) AnalyzePerformance(
	ctx context.Context,
	summary domain.PerformanceSummary,
) (*domain.MentorReport, error) {
	logger := t.opLogger(opAnalyzePerformance)

	if err := summary.Validate(); err != nil {
		return nil, fmt.Errorf("invalid performance summary: %w", err)
	}

	instruction, err := prompt.MentorInstruction(summary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tutor.ErrGenerationFailed, err)
	}

	contents := []*genai.Content{genai.NewContentFromText(instruction, genai.RoleUser)}

	logger.InfoContext(ctx, "Analyzing learner performance",
		"topics", len(summary.Topics))

	resp, err := t.call(ctx, logger, opAnalyzePerformance, contents,
		t.jsonCallConfig(prompt.MentorSystemPrompt, mentorReportSchema))
	if err != nil {
		return safeDefault(ctx, logger, opAnalyzePerformance, err, domain.FallbackMentorReport())
	}

	text, err := responseText(resp)
	if err != nil {
		return safeDefault(ctx, logger, opAnalyzePerformance, err, domain.FallbackMentorReport())
	}

	var report domain.MentorReport
	if err := decodeInto(text, &report); err != nil {
		return safeDefault(ctx, logger, opAnalyzePerformance, err, domain.FallbackMentorReport())
	}

	if strings.TrimSpace(report.Analysis) == "" {
		return safeDefault(ctx, logger, opAnalyzePerformance,
			fmt.Errorf("%w: mentor report carries no analysis", tutor.ErrInvalidResponse),
			domain.FallbackMentorReport())
	}
	if report.Strengths == nil {
		report.Strengths = []string{}
	}
	if report.Weaknesses == nil {
		report.Weaknesses = []string{}
	}

	logger.InfoContext(ctx, "Performance analysis complete",
		"strengths", len(report.Strengths),
		"weaknesses", len(report.Weaknesses))

	return &report, nil
}

// Chat implements tutor.Service. Unusable responses degrade to a canned
// reply; quota and overload failures propagate.
func (t *Tutor) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	logger := t.opLogger(opChat)

	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("invalid chat request: %w", err)
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, t.turnContent(ctx, logger, turn))
	}
	contents = append(contents, t.turnContent(ctx, logger, domain.ChatTurn{
		Role:  domain.ChatRoleUser,
		Text:  req.Message,
		Image: req.Image,
	}))

	logger.InfoContext(ctx, "Continuing tutoring chat",
		"history_turns", len(req.History),
		"has_image", req.Image != "")

	resp, err := t.call(ctx, logger, opChat, contents, t.textCallConfig(prompt.ChatSystemPrompt))
	if err != nil {
		return safeDefault(ctx, logger, opChat, err, chatFallbackReply)
	}

	text, err := responseText(resp)
	if err != nil {
		return safeDefault(ctx, logger, opChat, err, chatFallbackReply)
	}

	return strings.TrimSpace(text), nil
}

// call dispatches one model call through the retry wrapper.
func (t *Tutor) call(
	ctx context.Context,
	logger *slog.Logger,
	operation string,
	contents []*genai.Content,
	genCfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	cfg := retry.Config{
		Operation:    operation,
		MaxRetries:   t.llm.MaxRetries,
		InitialDelay: t.llm.InitialDelay(),
		Classify:     classifyError,
		Logger:       logger,
	}

	return retry.Do(ctx, cfg, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return t.generate(ctx, contents, genCfg)
	})
}

// callModel is the real transport call behind the generate field.
func (t *Tutor) callModel(
	ctx context.Context,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	return t.client.Models.GenerateContent(ctx, t.llm.ModelName, contents, cfg)
}

// jsonCallConfig assembles the generation config for a JSON-shaped operation.
func (t *Tutor) jsonCallConfig(system string, schema *genai.Schema) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(t.llm.Temperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	}
}

// textCallConfig assembles the generation config for the plain-text chat
// operation.
func (t *Tutor) textCallConfig(system string) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(t.llm.Temperature),
	}
}

// opLogger derives a logger carrying the operation name and a fresh request
// id, so all entries of one invocation correlate.
func (t *Tutor) opLogger(operation string) *slog.Logger {
	return t.logger.With(
		"operation", operation,
		"request_id", uuid.New().String())
}

// packSources maps the request's study material onto packer sources with the
// configured per-category budgets. Order is the caller's.
func (t *Tutor) packSources(materials []domain.SourceMaterial) []prompt.Source {
	sources := make([]prompt.Source, 0, len(materials))
	for _, m := range materials {
		sources = append(sources, prompt.Source{
			Label:  sourceLabel(m.Category),
			Budget: t.sourceBudget(m.Category),
			Items:  m.Items,
		})
	}
	return sources
}

// sourceBudget returns the configured character ceiling for a category.
func (t *Tutor) sourceBudget(category domain.SourceCategory) int {
	switch category {
	case domain.SourceTheory:
		return t.budget.TheoryChars
	case domain.SourcePractical:
		return t.budget.PracticalChars
	case domain.SourceReference:
		return t.budget.ReferenceChars
	default:
		// Unknown categories cannot pass request validation; the smallest
		// ceiling keeps this branch harmless anyway.
		return t.budget.ReferenceChars
	}
}

// sourceLabel returns the marker label for a category.
func sourceLabel(category domain.SourceCategory) string {
	switch category {
	case domain.SourceTheory:
		return "theory material"
	case domain.SourcePractical:
		return "practical material"
	case domain.SourceReference:
		return "reference material"
	default:
		return string(category)
	}
}

// partsFromSegments converts packed prompt segments into genai parts.
func partsFromSegments(segments []prompt.Segment) []*genai.Part {
	parts := make([]*genai.Part, 0, len(segments))
	for _, seg := range segments {
		if seg.Attachment != nil {
			parts = append(parts, genai.NewPartFromBytes(seg.Attachment.Data, seg.Attachment.MIMEType))
			continue
		}
		parts = append(parts, genai.NewPartFromText(seg.Text))
	}
	return parts
}

// turnContent renders one conversation turn as genai content. An image that
// fails to decode is logged and skipped so one bad payload does not sink the
// whole conversation.
func (t *Tutor) turnContent(ctx context.Context, logger *slog.Logger, turn domain.ChatTurn) *genai.Content {
	var role genai.Role = genai.RoleUser
	if turn.Role == domain.ChatRoleMentor {
		role = genai.RoleModel
	}

	parts := make([]*genai.Part, 0, 2)
	if turn.Image != "" {
		att, err := prompt.DecodeAttachment(turn.Image)
		if err != nil {
			logger.WarnContext(ctx, "Skipping undecodable chat image",
				"error", redact.Error(err))
		} else {
			parts = append(parts, genai.NewPartFromBytes(att.Data, att.MIMEType))
		}
	}
	if turn.Text != "" {
		parts = append(parts, genai.NewPartFromText(turn.Text))
	}
	if len(parts) == 0 {
		// Validation guarantees text or an image; if the only image was
		// undecodable the turn still needs a part.
		parts = append(parts, genai.NewPartFromText("[image unavailable]"))
	}

	return genai.NewContentFromParts(parts, role)
}

// safeDefault resolves a secondary-path failure. Quota and overload terminal
// errors propagate so callers stop issuing doomed requests; anything else is
// logged and replaced by the operation's fallback value.
func safeDefault[T any](
	ctx context.Context,
	logger *slog.Logger,
	operation string,
	err error,
	fallback T,
) (T, error) {
	if errors.Is(err, tutor.ErrTransientService) {
		var zero T
		return zero, err
	}

	logger.WarnContext(ctx, "Falling back to safe default",
		"error", redact.Error(err))
	metrics.SafeDefaults.WithLabelValues(operation).Inc()

	return fallback, nil
}
