package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/annotation-workflow-api/internal/constants"
)

// CandidateGenerator produces a candidate response for a prompt body.
type CandidateGenerator interface {
	GenerateCandidate(ctx context.Context, model, title, body string) (*GeneratedOutput, error)
}

type AIService struct {
	client       *openai.Client
	defaultModel string
	temperature  float64
}

// GeneratedOutput is one candidate response returned by the model.
type GeneratedOutput struct {
	ModelVersion string
	Response     string
	Temperature  float64
}

func NewAIService(apiKey, defaultModel string) *AIService {
	if defaultModel == "" {
		defaultModel = constants.DefaultOpenAIModel
	}
	return &AIService{
		client:       openai.NewClient(apiKey),
		defaultModel: defaultModel,
		temperature:  0.7,
	}
}

// GenerateCandidate asks the chat completion API to answer the prompt as an
// assistant would, so the answer can be reviewed by annotators.
func (s *AIService) GenerateCandidate(ctx context.Context, model, title, body string) (*GeneratedOutput, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if model == "" {
		model = s.defaultModel
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: fmt.Sprintf("You are answering a prompt titled %q. Reply with the answer only.", title),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: body,
				},
			},
			Temperature: float32(s.temperature),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrAINoOutputGenerated
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, ErrAINoOutputGenerated
	}

	version := resp.Model
	if version == "" {
		version = model
	}

	return &GeneratedOutput{
		ModelVersion: version,
		Response:     content,
		Temperature:  s.temperature,
	}, nil
}
