package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/examhub/config"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	defaultGeneratedCount = 5
	maxGeneratedCount     = 20
	minGeneratedPairs     = 4
)

type QuestionGenerator interface {
	Generate(ctx context.Context, req dto.GenerateQuestionsRequest) ([]dto.QuestionResponse, error)
}

type generatedQuestion struct {
	QuestionText  string       `json:"QuestionText"`
	CorrectAnswer *string      `json:"CorrectAnswer"`
	Options       []string     `json:"Options"`
	IsTrue        *bool        `json:"IsTrue"`
	Pairs         []model.Pair `json:"Pairs"`
}

type geminiQuestionGenerator struct {
	model     contentGenerator
	questions QuestionService
}

// NewQuestionGenerator returns a generator that reports ErrUnavailable when
// client is nil.
func NewQuestionGenerator(cfg *config.Config, client *genai.Client, questions QuestionService) QuestionGenerator {
	g := &geminiQuestionGenerator{questions: questions}
	if client != nil {
		m := client.GenerativeModel(cfg.Gemini.Model)
		m.ResponseMIMEType = "application/json"
		m.SetTemperature(0.7)
		g.model = m
	}
	return g
}

func buildGenerationPrompt(qt model.QuestionType, topic string, count int) string {
	var sb strings.Builder
	sb.WriteString("You write exam questions for teachers.\n")
	sb.WriteString(fmt.Sprintf("Write %d distinct questions of type %q about the topic: %s\n\n", count, qt, topic))
	sb.WriteString("Return ONLY a JSON array. Every element is an object with the fields below; leave out fields that do not apply.\n")

	switch qt {
	case model.QuestionTypeMC:
		sb.WriteString(`{"QuestionText": "...", "Options": ["...", "...", "...", "..."], "CorrectAnswer": "<exactly one of Options>"}`)
	case model.QuestionTypeTrueFalse:
		sb.WriteString(`{"QuestionText": "<a statement>", "IsTrue": true|false}`)
	case model.QuestionTypeMatching:
		sb.WriteString(fmt.Sprintf(`{"QuestionText": "...", "Pairs": [{"Left": "...", "Right": "..."}]} with at least %d pairs`, minGeneratedPairs))
	default:
		sb.WriteString(`{"QuestionText": "...", "CorrectAnswer": "<short model answer>"}`)
	}
	sb.WriteString("\n")
	return sb.String()
}

// parseGeneratedQuestions accepts a bare array or an object wrapping one under
// "questions".
func parseGeneratedQuestions(raw string) ([]generatedQuestion, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var list []generatedQuestion
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Questions []generatedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, fmt.Errorf("parse generated questions: %w", err)
	}
	return wrapped.Questions, nil
}

func (g *geminiQuestionGenerator) Generate(ctx context.Context, req dto.GenerateQuestionsRequest) ([]dto.QuestionResponse, error) {
	if g.model == nil {
		return nil, fmt.Errorf("%w: question generation needs GEMINI_API_KEY", apperror.ErrUnavailable)
	}
	qt, ok := model.ParseQuestionType(req.QuestionType)
	if !ok {
		return nil, apperror.Validation("Invalid question type")
	}
	if qt.HasImage() {
		return nil, apperror.Validation("%s questions need an image and cannot be generated", qt)
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, apperror.Validation("Topic is required")
	}
	count := req.Count
	if count <= 0 {
		count = defaultGeneratedCount
	}
	if count > maxGeneratedCount {
		count = maxGeneratedCount
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildGenerationPrompt(qt, topic, count)))
	if err != nil {
		log.Error().Err(err).Str("type", string(qt)).Msg("Gemini API error during question generation")
		return nil, fmt.Errorf("gemini question generation: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	generated, err := parseGeneratedQuestions(text)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", text).Msg("Gemini returned unparseable questions")
		return nil, err
	}
	if len(generated) == 0 {
		return nil, fmt.Errorf("gemini returned no questions")
	}

	reqs := make([]dto.QuestionRequest, 0, len(generated))
	for i, gq := range generated {
		if qt == model.QuestionTypeMatching && len(gq.Pairs) < minGeneratedPairs {
			return nil, apperror.Validation("generated question %d has %d pairs, need at least %d", i+1, len(gq.Pairs), minGeneratedPairs)
		}
		reqs = append(reqs, gq.request(req.ClassExamID, qt))
	}
	return g.questions.CreateQuestions(reqs)
}

// request keeps only the fields that belong to qt.
func (gq generatedQuestion) request(classExamID uint, qt model.QuestionType) dto.QuestionRequest {
	r := dto.QuestionRequest{
		ClassExamID:  classExamID,
		QuestionType: string(qt),
		QuestionText: gq.QuestionText,
	}
	switch qt {
	case model.QuestionTypeMC:
		r.Options = gq.Options
		r.CorrectAnswer = gq.CorrectAnswer
	case model.QuestionTypeTrueFalse:
		r.IsTrue = gq.IsTrue
	case model.QuestionTypeMatching:
		r.Pairs = gq.Pairs
	default:
		r.CorrectAnswer = gq.CorrectAnswer
	}
	return r
}
