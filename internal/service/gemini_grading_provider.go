package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/examhub/internal/model"
	"github.com/rs/zerolog/log"
)

// imageFetcher loads an image reference and reports its MIME type.
type imageFetcher func(ctx context.Context, imageURL string) ([]byte, string, error)

type geminiGrader struct {
	model      contentGenerator
	fetchImage imageFetcher
}

func NewGeminiGrader(m *genai.GenerativeModel) GradingProvider {
	m.SetTemperature(0.2)
	return &geminiGrader{model: m, fetchImage: fetchImageData}
}

func (g *geminiGrader) Name() string { return "gemini" }

var imageClient = &http.Client{Timeout: 20 * time.Second}

var supportedImageTypes = map[string]bool{
	"image/png": true, "image/jpeg": true, "image/webp": true,
	"image/gif": true, "image/heic": true, "image/heif": true,
}

func fetchImageData(ctx context.Context, imageURL string) ([]byte, string, error) {
	if imageURL == "" {
		return nil, "", fmt.Errorf("image URL is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid image URL %s: %w", imageURL, err)
	}
	resp, err := imageClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image from URL %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch image (status %d) from URL %s", resp.StatusCode, imageURL)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image data from URL %s: %w", imageURL, err)
	}

	var mimeType string
	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		if parsed, _, err := mime.ParseMediaType(contentType); err == nil && strings.HasPrefix(parsed, "image/") {
			mimeType = parsed
		}
	}
	if mimeType == "" {
		ext := filepath.Ext(imageURL)
		mimeType = mime.TypeByExtension(ext)
		if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
			return nil, "", fmt.Errorf("unsupported or undeterminable image MIME type for %s", imageURL)
		}
	}
	if !supportedImageTypes[mimeType] {
		log.Warn().Str("mimeType", mimeType).Str("url", imageURL).Msg("Image MIME type may not be supported by Gemini")
	}
	return imageData, mimeType, nil
}

func buildGeminiGradingPrompt(q model.Question, a model.StudentAnswer) string {
	var sb strings.Builder
	sb.WriteString("You are a fair and concise exam grader.\n")
	sb.WriteString("Grade the student's answer against the question and the reference answer.\n\n")
	sb.WriteString(describeForGrader(q, a))
	sb.WriteString("\nScore from 0 to 100, where 100 means fully correct and complete.\n")
	sb.WriteString("Format your response strictly as:\n")
	sb.WriteString("Score: [number from 0 to 100]\n")
	sb.WriteString("Feedback:\n[one or two sentences on what is right or missing]\n")
	return sb.String()
}

// parseScoreAndFeedback reads a "Score: N" line and everything after
// "Feedback:".
func parseScoreAndFeedback(rawResponse string) (scoreStr string, feedbackStr string, err error) {
	scorePrefix := "Score:"
	feedbackPrefix := "Feedback:"

	scoreIndex := strings.Index(rawResponse, scorePrefix)
	if scoreIndex == -1 {
		return "", rawResponse, fmt.Errorf("response does not contain %q prefix", scorePrefix)
	}
	feedbackIndex := strings.Index(rawResponse, feedbackPrefix)

	endOfScoreLine := strings.Index(rawResponse[scoreIndex:], "\n")
	if endOfScoreLine == -1 {
		scoreStr = strings.TrimSpace(rawResponse[scoreIndex+len(scorePrefix):])
	} else {
		scoreStr = strings.TrimSpace(rawResponse[scoreIndex+len(scorePrefix) : scoreIndex+endOfScoreLine])
	}

	switch {
	case feedbackIndex > scoreIndex:
		feedbackStr = strings.TrimSpace(rawResponse[feedbackIndex+len(feedbackPrefix):])
	case endOfScoreLine != -1:
		feedbackStr = strings.TrimSpace(rawResponse[scoreIndex+endOfScoreLine+1:])
	}

	// "85/100" or "85 points" keep the leading number only.
	if fields := strings.FieldsFunc(scoreStr, func(r rune) bool { return r == ' ' || r == '/' }); len(fields) > 0 {
		scoreStr = fields[0]
	}
	return scoreStr, feedbackStr, nil
}

func (g *geminiGrader) Score(ctx context.Context, in GradingInput) (*GradingResult, error) {
	var parts []genai.Part
	if in.Question.QuestionType.HasImage() && in.Question.ImageURL != nil {
		imageData, mimeType, err := g.fetchImage(ctx, *in.Question.ImageURL)
		if err != nil {
			log.Error().Err(err).Str("imageUrl", *in.Question.ImageURL).Msg("Failed to fetch image for grading")
			return nil, err
		}
		parts = append(parts, genai.Blob{MIMEType: mimeType, Data: imageData})
	}
	parts = append(parts, genai.Text(buildGeminiGradingPrompt(in.Question, in.Answer)))

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		log.Error().Err(err).Str("questionId", in.Question.ID).Msg("Gemini API error during grading")
		return nil, fmt.Errorf("gemini grading: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	scoreStr, feedback, err := parseScoreAndFeedback(text)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", text).Msg("Failed to parse score and feedback from Gemini response")
		return nil, err
	}
	raw, err := strconv.ParseFloat(strings.TrimSpace(scoreStr), 64)
	if err != nil {
		return nil, fmt.Errorf("could not parse score value %q from AI response", scoreStr)
	}

	return &GradingResult{Score: ClampScore(raw), Feedback: feedback, Method: model.GradingMethodAI}, nil
}
