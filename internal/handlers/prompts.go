package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/annotation-workflow-api/internal/dto"
	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/services"
	"gorm.io/gorm"
)

// PromptHandler serves the content registry
type PromptHandler struct {
	db      *gorm.DB
	content *services.ContentService
}

// NewPromptHandler creates a new PromptHandler
func NewPromptHandler(db *gorm.DB, content *services.ContentService) *PromptHandler {
	return &PromptHandler{
		db:      db,
		content: content,
	}
}

// CreatePrompt records a prompt together with its candidate outputs
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
	type ModelOutputRequest struct {
		ModelVersion string           `json:"model_version" binding:"required"`
		Response     string           `json:"response" binding:"required"`
		Parameters   jsonvalue.Object `json:"parameters"`
	}

	type CreatePromptRequest struct {
		Title        string               `json:"title" binding:"required"`
		Body         string               `json:"body" binding:"required"`
		Category     *string              `json:"category"`
		Metadata     jsonvalue.Object     `json:"metadata"`
		ModelOutputs []ModelOutputRequest `json:"model_outputs" binding:"dive"`
		GenerateWith []string             `json:"generate_with" binding:"max=5,dive,required"`
	}

	var req CreatePromptRequest
	if !bindJSON(c, &req) {
		return
	}

	outputs := make([]services.ModelOutputInput, len(req.ModelOutputs))
	for i, out := range req.ModelOutputs {
		outputs[i] = services.ModelOutputInput{
			ModelVersion: out.ModelVersion,
			Response:     out.Response,
			Parameters:   out.Parameters,
		}
	}

	prompt, err := h.content.CreatePrompt(c.Request.Context(), h.db, services.CreatePromptInput{
		Title:        req.Title,
		Body:         req.Body,
		Category:     req.Category,
		Metadata:     req.Metadata,
		Outputs:      outputs,
		GenerateWith: req.GenerateWith,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPromptWithOutputsDTO(*prompt))
}

// GetPrompt returns a prompt with its outputs
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	promptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	prompt, err := h.content.GetPrompt(c.Request.Context(), h.db, promptID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPromptWithOutputsDTO(*prompt))
}
