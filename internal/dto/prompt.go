package dto

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
)

// PromptDTO represents a prompt in API responses
type PromptDTO struct {
	ID        uint64           `json:"id"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Category  *string          `json:"category"`
	Metadata  jsonvalue.Object `json:"metadata"`
	CreatedAt time.Time        `json:"created_at"`
}

// ModelOutputDTO represents a candidate model response in API responses
type ModelOutputDTO struct {
	ID           uint64           `json:"id"`
	PromptID     uint64           `json:"prompt_id"`
	ModelVersion string           `json:"model_version"`
	Response     string           `json:"response"`
	Parameters   jsonvalue.Object `json:"parameters"`
	CreatedAt    time.Time        `json:"created_at"`
}

// PromptWithOutputsDTO is a prompt together with its outputs
type PromptWithOutputsDTO struct {
	PromptDTO
	ModelOutputs []ModelOutputDTO `json:"model_outputs"`
}

// ToPromptDTO converts a Prompt model to PromptDTO
func ToPromptDTO(prompt models.Prompt) PromptDTO {
	return PromptDTO{
		ID:        prompt.ID,
		Title:     prompt.Title,
		Body:      prompt.Body,
		Category:  prompt.Category,
		Metadata:  prompt.Metadata,
		CreatedAt: prompt.CreatedAt,
	}
}

// ToModelOutputDTO converts a ModelOutput model to ModelOutputDTO
func ToModelOutputDTO(output models.ModelOutput) ModelOutputDTO {
	return ModelOutputDTO{
		ID:           output.ID,
		PromptID:     output.PromptID,
		ModelVersion: output.ModelVersion,
		Response:     output.Response,
		Parameters:   output.Parameters,
		CreatedAt:    output.CreatedAt,
	}
}

// ToModelOutputDTOs converts a slice of outputs; the result is never nil
func ToModelOutputDTOs(outputs []models.ModelOutput) []ModelOutputDTO {
	items := make([]ModelOutputDTO, len(outputs))
	for i, output := range outputs {
		items[i] = ToModelOutputDTO(output)
	}
	return items
}

// ToPromptWithOutputsDTO converts a prompt and its loaded outputs
func ToPromptWithOutputsDTO(prompt models.Prompt) PromptWithOutputsDTO {
	return PromptWithOutputsDTO{
		PromptDTO:    ToPromptDTO(prompt),
		ModelOutputs: ToModelOutputDTOs(prompt.Outputs),
	}
}
