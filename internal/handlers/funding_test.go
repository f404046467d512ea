package handlers

import (
	"database/sql/driver"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datapoolml/outreach-crm/internal/repository"
	"github.com/datapoolml/outreach-crm/internal/testhelpers"
)

var fundingRowColumns = []string{
	"id", "name", "fund_type", "category",
	"primary_contact_name", "primary_contact_role", "contact_email", "linkedin_url", "website_url",
	"stage_focus", "target_stage", "ticket_min", "ticket_max", "currency", "typical_instrument",
	"grant_deadline", "grant_requirements", "thesis_tags", "industry_focus", "geo_focus",
	"warm_intro_possible", "intro_path",
	"stage_match", "thesis_match", "geo_match", "ticket_match", "fit_score", "priority",
	"fit_cluster", "fit_cluster_override", "status",
	"first_contacted_at", "last_contacted_at", "next_follow_up_at", "cadence_step",
	"outcome_notes", "reason_lost", "objections", "next_steps", "attachments",
	"owner", "source_text", "source_url", "last_verified_at", "notes",
	"created_at", "updated_at",
}

func fundingRowValues(id, name string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, name, "VC", "DeepTech",
		"Anna Schmidt", "Partner", "anna@nordlicht.example", nil, nil,
		[]byte(`["PRE_SEED","SEED"]`), "PRE_SEED", int64(500000), int64(2000000), "EUR", nil,
		nil, nil, []byte(`["ml"]`), []byte(`["industrial"]`), []byte(`["DACH"]`),
		true, nil,
		3, 2, 2, 1, 8, 4,
		"HIGH", nil, "RESEARCHED",
		nil, nil, nil, 0,
		nil, nil, nil, nil, []byte(`[]`),
		nil, nil, nil, nil, nil,
		now, now,
	}
}

var fundingDraftColumns = []string{"id", "funding_lead_id", "style", "subject", "body", "created_at"}

func newFundingRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := testhelpers.NewTestLogger()
	h := NewFundingHandler(repository.NewFundingLeadRepository(db, log), nil, log, "Niklas")

	router := gin.New()
	router.GET("/funding-leads", h.List)
	router.POST("/funding-leads", h.Create)
	router.GET("/funding-leads/export", h.Export)
	router.POST("/funding-leads/import", h.Import)
	router.GET("/funding-leads/:id", h.GetByID)
	router.PATCH("/funding-leads/:id", h.Patch)
	router.DELETE("/funding-leads/:id", h.Delete)
	router.POST("/funding-leads/:id/email", h.DraftEmail)
	return router, mock
}

func TestFundingHandler_Create(t *testing.T) {
	router, mock := newFundingRouter(t)

	mock.ExpectExec("INSERT INTO funding_leads").WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{
		"name": "Nordlicht Ventures",
		"fund_type": "VC",
		"stage_match": 3,
		"thesis_match": 2,
		"geo_match": 2,
		"ticket_match": 1
	}`
	w := doJSON(router, http.MethodPost, "/funding-leads", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"fit_score":8`)
	assert.Contains(t, w.Body.String(), `"fit_cluster":"HIGH"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFundingHandler_Create_ValidationFailed(t *testing.T) {
	router, _ := newFundingRouter(t)

	w := doJSON(router, http.MethodPost, "/funding-leads", `{"fund_type":"VC"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name")
}

func TestFundingHandler_List(t *testing.T) {
	router, mock := newFundingRouter(t)

	mock.ExpectQuery("FROM funding_leads ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(fundingRowColumns).
			AddRow(fundingRowValues("fl-1", "Nordlicht Ventures")...).
			AddRow(fundingRowValues("fl-2", "EIC Accelerator")...))

	w := doJSON(router, http.MethodGet, "/funding-leads", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFundingHandler_GetByID_NotFound(t *testing.T) {
	router, mock := newFundingRouter(t)

	mock.ExpectQuery(`FROM funding_leads WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(fundingRowColumns))

	w := doJSON(router, http.MethodGet, "/funding-leads/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFundingHandler_Patch(t *testing.T) {
	router, mock := newFundingRouter(t)

	mock.ExpectQuery(`FROM funding_leads WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(fundingRowColumns).AddRow(fundingRowValues("fl-1", "Nordlicht Ventures")...))
	mock.ExpectQuery("FROM funding_email_drafts").
		WillReturnRows(sqlmock.NewRows(fundingDraftColumns))
	mock.ExpectExec("UPDATE funding_leads").WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(router, http.MethodPatch, "/funding-leads/fl-1", `{"thesis_match":0}`)

	assert.Equal(t, http.StatusOK, w.Code)
	// 3+0+2+1 drops the fit score below the HIGH threshold.
	assert.Contains(t, w.Body.String(), `"fit_score":6`)
	assert.Contains(t, w.Body.String(), `"fit_cluster":"MEDIUM"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFundingHandler_Delete_NotFound(t *testing.T) {
	router, mock := newFundingRouter(t)

	mock.ExpectExec("DELETE FROM funding_leads").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := doJSON(router, http.MethodDelete, "/funding-leads/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFundingHandler_DraftEmail(t *testing.T) {
	router, mock := newFundingRouter(t)

	mock.ExpectQuery(`FROM funding_leads WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(fundingRowColumns).AddRow(fundingRowValues("fl-1", "Nordlicht Ventures")...))
	mock.ExpectQuery("FROM funding_email_drafts").
		WillReturnRows(sqlmock.NewRows(fundingDraftColumns))
	mock.ExpectExec("INSERT INTO funding_email_drafts").WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(router, http.MethodPost, "/funding-leads/fl-1/email", `{"style":"SHORT"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Nordlicht Ventures")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFundingHandler_Export_Template(t *testing.T) {
	router, _ := newFundingRouter(t)

	w := doJSON(router, http.MethodGet, "/funding-leads/export?template=1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "funding-leads-template.csv")
	assert.Contains(t, w.Body.String(), "fundType")
}

func TestFundingHandler_Import(t *testing.T) {
	router, mock := newFundingRouter(t)

	// Existing records are loaded first so duplicates can be skipped.
	mock.ExpectQuery("FROM funding_leads ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(fundingRowColumns).
			AddRow(fundingRowValues("fl-1", "Nordlicht Ventures")...))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO funding_leads").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	csv := "name,fundType,category\n" +
		"Nordlicht Ventures,VC,DeepTech\n" +
		"EIC Accelerator,GRANT,Grants\n"
	w := doJSON(router, http.MethodPost, "/funding-leads/import", `{"csv":"`+strings.ReplaceAll(csv, "\n", `\n`)+`"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"imported":1`)
	assert.Contains(t, w.Body.String(), `"skipped_duplicates":1`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFundingHandler_Import_MissingCSV(t *testing.T) {
	router, _ := newFundingRouter(t)

	w := doJSON(router, http.MethodPost, "/funding-leads/import", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "csv is required")
}
