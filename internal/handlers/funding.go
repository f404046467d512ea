package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/datapoolml/outreach-crm/internal/csvcodec"
	"github.com/datapoolml/outreach-crm/internal/email"
	"github.com/datapoolml/outreach-crm/internal/events"
	"github.com/datapoolml/outreach-crm/internal/filter"
	"github.com/datapoolml/outreach-crm/internal/importer"
	"github.com/datapoolml/outreach-crm/internal/logger"
	"github.com/datapoolml/outreach-crm/internal/models"
	"github.com/datapoolml/outreach-crm/internal/repository"
	"github.com/datapoolml/outreach-crm/internal/scoring"
)

type FundingHandler struct {
	repo       *repository.FundingLeadRepository
	publisher  *events.Publisher
	logger     logger.Logger
	senderName string
}

func NewFundingHandler(
	repo *repository.FundingLeadRepository,
	publisher *events.Publisher,
	log logger.Logger,
	senderName string,
) *FundingHandler {
	return &FundingHandler{
		repo:       repo,
		publisher:  publisher,
		logger:     log,
		senderName: senderName,
	}
}

func (h *FundingHandler) List(c *gin.Context) {
	leads, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list funding leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list funding leads"})
		return
	}

	filters := filter.ParseFundingFilters(c.Request.URL.Query())
	leads = filter.FundingLeads(leads, filters, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"funding_leads": leads,
		"count":         len(leads),
	})
}

func (h *FundingHandler) Create(c *gin.Context) {
	var input models.FundingLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Debug("Invalid request body", logger.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if errs := input.Validate(); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": errs})
		return
	}

	lead := input.ToFundingLead()
	scoring.RecomputeFundingLead(&lead)

	if err := h.repo.Create(c.Request.Context(), &lead); err != nil {
		h.logger.Error("Failed to create funding lead",
			logger.String("name", lead.Name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create funding lead"})
		return
	}

	h.logger.Info("Funding lead created",
		logger.String("funding_lead_id", lead.ID),
		logger.String("name", lead.Name),
	)
	h.publisher.PublishAsync(events.LeadEvent{EventType: events.FundingLeadCreated, RecordID: lead.ID})

	c.JSON(http.StatusCreated, lead)
}

func (h *FundingHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	lead, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Funding lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get funding lead", logger.String("funding_lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get funding lead"})
		return
	}

	c.JSON(http.StatusOK, lead)
}

func (h *FundingHandler) Patch(c *gin.Context) {
	id := c.Param("id")

	var patch models.FundingLeadPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("funding_lead_id", id),
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if errs := patch.Validate(); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": errs})
		return
	}

	lead, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Funding lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get funding lead", logger.String("funding_lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update funding lead"})
		return
	}

	patch.Apply(lead)
	scoring.RecomputeFundingLead(lead)

	if err := h.repo.Update(c.Request.Context(), lead); err != nil {
		h.logger.Error("Failed to update funding lead", logger.String("funding_lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update funding lead"})
		return
	}

	h.logger.Info("Funding lead updated", logger.String("funding_lead_id", id))
	h.publisher.PublishAsync(events.LeadEvent{EventType: events.FundingLeadUpdated, RecordID: id})

	c.JSON(http.StatusOK, lead)
}

func (h *FundingHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Funding lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to delete funding lead", logger.String("funding_lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete funding lead"})
		return
	}

	h.logger.Info("Funding lead deleted", logger.String("funding_lead_id", id))
	h.publisher.PublishAsync(events.LeadEvent{EventType: events.FundingLeadDeleted, RecordID: id})

	c.JSON(http.StatusNoContent, nil)
}

// DraftEmail renders a funding outreach email, including the GRANT style
// for public programs, and stores it as draft history.
func (h *FundingHandler) DraftEmail(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		Style string `json:"style"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lead, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Funding lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get funding lead", logger.String("funding_lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to draft email"})
		return
	}

	style := models.EmailStyle(body.Style)
	rendered := email.RenderFunding(*lead, style, h.senderName)

	draft := models.FundingEmailDraft{
		FundingLeadID: id,
		Style:         style,
		Subject:       rendered.Subject,
		Body:          rendered.Body,
	}
	if err := h.repo.AddEmailDraft(c.Request.Context(), &draft); err != nil {
		h.logger.Error("Failed to store email draft", logger.String("funding_lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to draft email"})
		return
	}

	c.JSON(http.StatusCreated, draft)
}

// Export streams all funding leads as CSV; template=1 returns the header
// line only.
func (h *FundingHandler) Export(c *gin.Context) {
	if c.Query("template") == "1" {
		serveCSV(c, "funding-leads-template.csv", csvcodec.FundingTemplate())
		return
	}

	leads, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to export funding leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export funding leads"})
		return
	}

	serveCSV(c, "funding-leads.csv", csvcodec.EncodeFundingLeads(leads))
}

// Import ingests a funding CSV. Rows matching existing records or earlier
// rows in the same file are skipped, not duplicated.
func (h *FundingHandler) Import(c *gin.Context) {
	var body struct {
		CSV string `json:"csv"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if body.CSV == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "csv is required"})
		return
	}

	existing, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load existing funding leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import funding leads"})
		return
	}

	prepared := importer.PrepareFundingCSV(body.CSV, existing)

	imported, err := h.repo.ImportTx(c.Request.Context(), prepared.Leads)
	if err != nil {
		h.logger.Error("Failed to import funding leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import funding leads"})
		return
	}

	h.logger.Info("Funding leads imported",
		logger.Int("imported", imported),
		logger.Int("skipped_duplicates", prepared.SkippedDuplicates),
	)
	h.publisher.PublishAsync(events.LeadEvent{EventType: events.FundingImported, Count: imported})

	c.JSON(http.StatusOK, gin.H{
		"imported":           imported,
		"skipped_duplicates": prepared.SkippedDuplicates,
	})
}
