package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/datapoolml/outreach-crm/internal/logger"
	"github.com/datapoolml/outreach-crm/internal/repository"
)

type CustomFieldHandler struct {
	repo   *repository.CustomFieldRepository
	logger logger.Logger
}

func NewCustomFieldHandler(repo *repository.CustomFieldRepository, log logger.Logger) *CustomFieldHandler {
	return &CustomFieldHandler{
		repo:   repo,
		logger: log,
	}
}

func (h *CustomFieldHandler) List(c *gin.Context) {
	fields, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list custom fields", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list custom fields"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"custom_fields": fields,
		"count":         len(fields),
	})
}

func (h *CustomFieldHandler) Create(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Field name is required"})
		return
	}

	field, err := h.repo.Create(c.Request.Context(), name)
	if errors.Is(err, repository.ErrDuplicate) {
		c.JSON(http.StatusConflict, gin.H{"error": "Field already exists"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to create custom field",
			logger.String("name", name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create field"})
		return
	}

	h.logger.Info("Custom field created",
		logger.String("field_id", field.ID),
		logger.String("name", field.Name),
	)

	c.JSON(http.StatusCreated, gin.H{"custom_field": field})
}
