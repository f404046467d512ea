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
	"github.com/datapoolml/outreach-crm/internal/hypothesis"
	"github.com/datapoolml/outreach-crm/internal/importer"
	"github.com/datapoolml/outreach-crm/internal/logger"
	"github.com/datapoolml/outreach-crm/internal/models"
	"github.com/datapoolml/outreach-crm/internal/repository"
	"github.com/datapoolml/outreach-crm/internal/scoring"
)

const maxImportUpload = 10 << 20 // 10 MiB

type LeadHandler struct {
	repo       *repository.LeadRepository
	fields     *repository.CustomFieldRepository
	publisher  *events.Publisher
	logger     logger.Logger
	senderName string
}

func NewLeadHandler(
	repo *repository.LeadRepository,
	fields *repository.CustomFieldRepository,
	publisher *events.Publisher,
	log logger.Logger,
	senderName string,
) *LeadHandler {
	return &LeadHandler{
		repo:       repo,
		fields:     fields,
		publisher:  publisher,
		logger:     log,
		senderName: senderName,
	}
}

func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leads"})
		return
	}

	filters := filter.ParseLeadFilters(c.Request.URL.Query())
	leads = filter.Leads(leads, filters, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"count": len(leads),
	})
}

func (h *LeadHandler) Create(c *gin.Context) {
	var input models.LeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Debug("Invalid request body", logger.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if errs := input.Validate(); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": errs})
		return
	}

	lead := input.ToLead()
	scoring.RecomputeLead(&lead)
	hypothesis.Regenerate(&lead)

	if err := h.repo.Create(c.Request.Context(), &lead); err != nil {
		h.logger.Error("Failed to create lead",
			logger.String("company_name", lead.CompanyName),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lead"})
		return
	}

	if err := h.fields.EnsureMany(c.Request.Context(), lead.CustomFieldValues.Keys()); err != nil {
		h.logger.Warn("Failed to register custom fields", logger.Error(err))
	}

	h.logger.Info("Lead created",
		logger.String("lead_id", lead.ID),
		logger.String("company_name", lead.CompanyName),
	)
	h.publisher.PublishAsync(events.LeadEvent{EventType: events.LeadCreated, RecordID: lead.ID})

	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	lead, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get lead", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lead"})
		return
	}

	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Patch(c *gin.Context) {
	id := c.Param("id")

	var patch models.LeadPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("lead_id", id),
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
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get lead", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead"})
		return
	}

	patch.Apply(lead)
	scoring.RecomputeLead(lead)
	hypothesis.Regenerate(lead)

	if err := h.repo.Update(c.Request.Context(), lead); err != nil {
		h.logger.Error("Failed to update lead", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead"})
		return
	}

	if patch.CustomFieldValues != nil {
		if err := h.fields.EnsureMany(c.Request.Context(), lead.CustomFieldValues.Keys()); err != nil {
			h.logger.Warn("Failed to register custom fields", logger.Error(err))
		}
	}

	h.logger.Info("Lead updated", logger.String("lead_id", id))
	h.publisher.PublishAsync(events.LeadEvent{EventType: events.LeadUpdated, RecordID: id})

	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to delete lead", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lead"})
		return
	}

	h.logger.Info("Lead deleted", logger.String("lead_id", id))
	h.publisher.PublishAsync(events.LeadEvent{EventType: events.LeadDeleted, RecordID: id})

	c.JSON(http.StatusNoContent, nil)
}

// RegenerateHypothesis recomputes the derived cluster and narrative for a
// lead, keeping any manual cluster override in place.
func (h *LeadHandler) RegenerateHypothesis(c *gin.Context) {
	id := c.Param("id")

	lead, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get lead", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate hypothesis"})
		return
	}

	scoring.RecomputeLead(lead)
	hypothesis.Regenerate(lead)

	if err := h.repo.Update(c.Request.Context(), lead); err != nil {
		h.logger.Error("Failed to update lead", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate hypothesis"})
		return
	}

	c.JSON(http.StatusOK, lead)
}

// DraftEmail renders an outreach email in the requested style and stores
// it as draft history on the lead.
func (h *LeadHandler) DraftEmail(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get lead", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to draft email"})
		return
	}

	style := models.EmailStyle(body.Style)
	rendered := email.RenderOutreach(*lead, style, h.senderName)

	draft := models.EmailDraft{
		LeadID:  id,
		Style:   style,
		Subject: rendered.Subject,
		Body:    rendered.Body,
	}
	if err := h.repo.AddEmailDraft(c.Request.Context(), &draft); err != nil {
		h.logger.Error("Failed to store email draft", logger.String("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to draft email"})
		return
	}

	c.JSON(http.StatusCreated, draft)
}

// Export streams all leads as CSV. With template=1 only the header line
// is returned, ready to fill in and re-import.
func (h *LeadHandler) Export(c *gin.Context) {
	if c.Query("template") == "1" {
		serveCSV(c, "leads-template.csv", csvcodec.LeadTemplate())
		return
	}

	leads, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to export leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export leads"})
		return
	}

	serveCSV(c, "leads.csv", csvcodec.EncodeLeads(leads))
}

// Import ingests a CSV document from the request body. Rows that fail the
// required-field check are dropped; everything else is recomputed and
// inserted in one transaction.
func (h *LeadHandler) Import(c *gin.Context) {
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

	prepared := importer.PrepareLeadCSV(body.CSV)

	imported, err := h.repo.ImportTx(c.Request.Context(), prepared.Leads)
	if err != nil {
		h.logger.Error("Failed to import leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import leads"})
		return
	}

	if err := h.fields.EnsureMany(c.Request.Context(), prepared.CustomFieldNames); err != nil {
		h.logger.Warn("Failed to register custom fields", logger.Error(err))
	}

	h.logger.Info("Leads imported", logger.Int("imported", imported))
	h.publisher.PublishAsync(events.LeadEvent{EventType: events.LeadImported, Count: imported})

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// ImportExcel ingests an .xlsx upload. Invalid rows are reported with
// their workbook row numbers instead of failing the whole file.
func (h *LeadHandler) ImportExcel(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required"})
		return
	}
	defer file.Close()

	result, err := importer.ParseLeadWorkbook(http.MaxBytesReader(c.Writer, file, maxImportUpload))
	if err != nil {
		h.logger.Debug("Failed to parse workbook", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workbook", "details": err.Error()})
		return
	}

	imported, err := h.repo.ImportTx(c.Request.Context(), result.Leads)
	if err != nil {
		h.logger.Error("Failed to import leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import leads"})
		return
	}

	h.logger.Info("Leads imported from workbook",
		logger.Int("imported", imported),
		logger.Int("invalid_rows", len(result.Errors)),
	)
	h.publisher.PublishAsync(events.LeadEvent{EventType: events.LeadImported, Count: imported})

	c.JSON(http.StatusOK, gin.H{
		"imported": imported,
		"errors":   result.Errors,
	})
}

func serveCSV(c *gin.Context, filename, payload string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(payload))
}
