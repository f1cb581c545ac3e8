package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lshigami/examhub/internal/model"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

type openAIGradeReply struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// openAIGrader talks to any OpenAI-compatible chat completions endpoint.
type openAIGrader struct {
	api   *openai.Client
	model string
}

func NewOpenAIGrader(baseURL, apiKey, modelName string) GradingProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &openAIGrader{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

func (g *openAIGrader) Name() string { return "openai" }

func buildOpenAIGradingPrompt(q model.Question, a model.StudentAnswer) string {
	var sb strings.Builder
	sb.WriteString("You are an exam grader. Compare the student's answer with the reference answer.\n\n")
	sb.WriteString(describeForGrader(q, a))
	sb.WriteString("\nINSTRUCTIONS:\n")
	sb.WriteString("- Award 100 for a fully correct answer and 0 for a wrong or empty one.\n")
	sb.WriteString("- Partial credit is allowed for partially correct answers.\n")
	sb.WriteString("\nRespond ONLY with a JSON object:\n")
	sb.WriteString(`{"score": <number 0 to 100>, "feedback": "<brief feedback>"}`)
	sb.WriteString("\n")
	return sb.String()
}

func (g *openAIGrader) Score(ctx context.Context, in GradingInput) (*GradingResult, error) {
	resp, err := g.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildOpenAIGradingPrompt(in.Question, in.Answer)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM grading API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices for grading")
	}

	raw := resp.Choices[0].Message.Content
	log.Debug().Str("raw", raw).Msg("LLM grading response")

	var reply openAIGradeReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, fmt.Errorf("parse grading response: %w (raw: %s)", err, raw)
	}
	return &GradingResult{Score: ClampScore(reply.Score), Feedback: reply.Feedback, Method: model.GradingMethodAI}, nil
}
