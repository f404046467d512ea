package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datapoolml/outreach-crm/internal/logger"
	"github.com/datapoolml/outreach-crm/internal/metadata"
)

type MetadataHandler struct {
	extractor *metadata.Extractor
	logger    logger.Logger
}

func NewMetadataHandler(extractor *metadata.Extractor, log logger.Logger) *MetadataHandler {
	return &MetadataHandler{
		extractor: extractor,
		logger:    log,
	}
}

// Extract fetches the given website and returns suggested form values.
func (h *MetadataHandler) Extract(c *gin.Context) {
	siteURL := c.Query("url")
	if siteURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	suggestion, err := h.extractor.Extract(c.Request.Context(), siteURL)
	if err != nil {
		h.logger.Debug("Metadata extraction failed",
			logger.String("url", siteURL),
			logger.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to extract metadata", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
