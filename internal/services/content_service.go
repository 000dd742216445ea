package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/annotation-workflow-api/internal/constants"
	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/repository"
	"gorm.io/gorm"
)

// ContentService records prompts and their candidate model outputs.
type ContentService struct {
	generator CandidateGenerator
}

// NewContentService creates a new ContentService. generator may be nil, in
// which case prompts asking for generated outputs are rejected.
func NewContentService(generator CandidateGenerator) *ContentService {
	return &ContentService{generator: generator}
}

// ModelOutputInput is one candidate response supplied with a prompt.
type ModelOutputInput struct {
	ModelVersion string
	Response     string
	Parameters   jsonvalue.Object
}

// CreatePromptInput represents input for creating a prompt.
type CreatePromptInput struct {
	Title        string
	Body         string
	Category     *string
	Metadata     jsonvalue.Object
	Outputs      []ModelOutputInput
	GenerateWith []string
}

// CreatePrompt creates the prompt and all of its outputs in one transaction.
// Generated outputs are fetched before the transaction opens and appended
// after the supplied ones.
func (s *ContentService) CreatePrompt(ctx context.Context, db *gorm.DB, input CreatePromptInput) (*models.Prompt, error) {
	if err := validatePromptInput(input); err != nil {
		return nil, err
	}

	outputs := make([]ModelOutputInput, 0, len(input.Outputs)+len(input.GenerateWith))
	outputs = append(outputs, input.Outputs...)

	generated, err := s.generateOutputs(ctx, input)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, generated...)

	prompt := &models.Prompt{
		Title:    input.Title,
		Body:     input.Body,
		Category: input.Category,
		Metadata: input.Metadata,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		promptRepo := repository.NewPromptRepository(tx)

		if err := promptRepo.Create(prompt); err != nil {
			return translateStoreError(err, "create prompt")
		}

		rows := make([]models.ModelOutput, len(outputs))
		for i, out := range outputs {
			rows[i] = models.ModelOutput{
				PromptID:     prompt.ID,
				ModelVersion: out.ModelVersion,
				Response:     out.Response,
				Parameters:   out.Parameters,
			}
		}

		if err := promptRepo.CreateOutputs(rows); err != nil {
			return translateStoreError(err, "create model outputs")
		}
		prompt.Outputs = rows

		return nil
	})
	if err != nil {
		return nil, err
	}

	return prompt, nil
}

// GetPrompt returns a prompt with its outputs ordered by ID.
func (s *ContentService) GetPrompt(ctx context.Context, db *gorm.DB, id uint64) (*models.Prompt, error) {
	prompt, err := repository.NewPromptRepository(db.WithContext(ctx)).FindByID(id, "Outputs")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("prompt", id)
		}
		return nil, fmt.Errorf("failed to find prompt: %w", err)
	}

	return prompt, nil
}

func (s *ContentService) generateOutputs(ctx context.Context, input CreatePromptInput) ([]ModelOutputInput, error) {
	if len(input.GenerateWith) == 0 {
		return nil, nil
	}
	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}

	outputs := make([]ModelOutputInput, 0, len(input.GenerateWith))
	for _, model := range input.GenerateWith {
		out, err := s.generator.GenerateCandidate(ctx, strings.TrimSpace(model), input.Title, input.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to generate output with %q: %w", model, err)
		}

		params := jsonvalue.Object{}
		params.Set("source", jsonvalue.String("openai"))
		params.Set("temperature", jsonvalue.Number(out.Temperature))

		outputs = append(outputs, ModelOutputInput{
			ModelVersion: out.ModelVersion,
			Response:     out.Response,
			Parameters:   params,
		})
	}

	return outputs, nil
}

func validatePromptInput(input CreatePromptInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return validationError("title is required")
	}
	if strings.TrimSpace(input.Body) == "" {
		return validationError("body is required")
	}
	for i, out := range input.Outputs {
		if strings.TrimSpace(out.ModelVersion) == "" {
			return validationError("model_outputs[%d].model_version is required", i)
		}
		if out.Response == "" {
			return validationError("model_outputs[%d].response is required", i)
		}
	}
	if len(input.GenerateWith) > constants.MaxGeneratedOutputs {
		return validationError("at most %d outputs can be generated per prompt", constants.MaxGeneratedOutputs)
	}
	return nil
}
