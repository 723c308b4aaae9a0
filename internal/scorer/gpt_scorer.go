package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type GPTScore struct {
	TotalScore float64 `json:"total_score"`
	Reasoning  string  `json:"reasoning"`
}

// GPTScorer asks a chat model to grade the response. Any API or parse
// failure falls back to the keyword scorer, so Score never fails.
type GPTScorer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	fallback    *KeywordScorer
	logger      *zap.Logger
}

func NewGPTScorer(apiKey string, model string, maxTokens int, temperature float64, logger *zap.Logger) *GPTScorer {
	return &GPTScorer{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		fallback:    NewKeywordScorer(),
		logger:      logger,
	}
}

func (s *GPTScorer) Score(response, concept string) float64 {
	ctx := context.Background()

	prompt := fmt.Sprintf(`Grade the following student response on its understanding of the concept %q.
Score from 0 to 100 based on accuracy, depth, and coverage of the concept's key ideas.

Return the response as a JSON object with this structure:
{
    "total_score": 0.0,
    "reasoning": "brief_explanation"
}

Response: %s`, concept, response)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   s.maxTokens,
			Temperature: float32(s.temperature),
		},
	)

	if err != nil {
		s.logger.Error("Failed to get GPT score", zap.Error(err))
		return s.fallback.Score(response, concept)
	}

	var gptScore GPTScore
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &gptScore); err != nil {
		s.logger.Error("Failed to parse GPT score",
			zap.Error(err),
			zap.String("response", content))
		return s.fallback.Score(response, concept)
	}

	if gptScore.TotalScore > 100 {
		gptScore.TotalScore = 100
	}
	if gptScore.TotalScore < 0 {
		gptScore.TotalScore = 0
	}
	return gptScore.TotalScore
}
