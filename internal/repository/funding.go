package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/datapoolml/outreach-crm/internal/logger"
	"github.com/datapoolml/outreach-crm/internal/models"
)

const fundingColumns = `
	id, name, fund_type, category,
	primary_contact_name, primary_contact_role, contact_email, linkedin_url, website_url,
	stage_focus, target_stage, ticket_min, ticket_max, currency, typical_instrument,
	grant_deadline, grant_requirements, thesis_tags, industry_focus, geo_focus,
	warm_intro_possible, intro_path,
	stage_match, thesis_match, geo_match, ticket_match, fit_score, priority,
	fit_cluster, fit_cluster_override, status,
	first_contacted_at, last_contacted_at, next_follow_up_at, cadence_step,
	outcome_notes, reason_lost, objections, next_steps, attachments,
	owner, source_text, source_url, last_verified_at, notes,
	created_at, updated_at`

const fundingPlaceholders = `$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
	$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
	$31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
	$41, $42, $43, $44, $45, $46, $47`

type FundingLeadRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewFundingLeadRepository(db *sql.DB, log logger.Logger) *FundingLeadRepository {
	return &FundingLeadRepository{
		db:     db,
		logger: log,
	}
}

func (r *FundingLeadRepository) Create(ctx context.Context, lead *models.FundingLead) error {
	lead.ID = uuid.New().String()
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = time.Now()

	query := `INSERT INTO funding_leads (` + fundingColumns + `) VALUES (` + fundingPlaceholders + `)`

	_, err := r.db.ExecContext(ctx, query, r.fundingArgs(lead)...)
	if err != nil {
		return fmt.Errorf("insert funding lead: %w", err)
	}
	return nil
}

func (r *FundingLeadRepository) GetByID(ctx context.Context, id string) (*models.FundingLead, error) {
	query := `SELECT ` + fundingColumns + ` FROM funding_leads WHERE id = $1`

	lead, err := scanFundingLead(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query funding lead: %w", err)
	}

	drafts, err := r.listEmailDrafts(ctx, id)
	if err != nil {
		return nil, err
	}
	lead.EmailDrafts = drafts
	return lead, nil
}

func (r *FundingLeadRepository) List(ctx context.Context) ([]models.FundingLead, error) {
	query := `SELECT ` + fundingColumns + ` FROM funding_leads ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query funding leads: %w", err)
	}
	defer rows.Close()

	leads := make([]models.FundingLead, 0)
	for rows.Next() {
		lead, scanErr := scanFundingLead(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan funding lead: %w", scanErr)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate funding leads: %w", err)
	}
	return leads, nil
}

func (r *FundingLeadRepository) Update(ctx context.Context, lead *models.FundingLead) error {
	lead.UpdatedAt = time.Now()

	query := `
		UPDATE funding_leads
		SET name = $2, fund_type = $3, category = $4,
		    primary_contact_name = $5, primary_contact_role = $6, contact_email = $7,
		    linkedin_url = $8, website_url = $9,
		    stage_focus = $10, target_stage = $11, ticket_min = $12, ticket_max = $13,
		    currency = $14, typical_instrument = $15, grant_deadline = $16,
		    grant_requirements = $17, thesis_tags = $18, industry_focus = $19,
		    geo_focus = $20, warm_intro_possible = $21, intro_path = $22,
		    stage_match = $23, thesis_match = $24, geo_match = $25, ticket_match = $26,
		    fit_score = $27, priority = $28, fit_cluster = $29, fit_cluster_override = $30,
		    status = $31, first_contacted_at = $32, last_contacted_at = $33,
		    next_follow_up_at = $34, cadence_step = $35, outcome_notes = $36,
		    reason_lost = $37, objections = $38, next_steps = $39, attachments = $40,
		    owner = $41, source_text = $42, source_url = $43, last_verified_at = $44,
		    notes = $45, updated_at = $46
		WHERE id = $1
	`

	args := r.fundingArgs(lead)
	// Reuse the insert binding minus created_at; id stays first.
	args = append(args[:45], lead.UpdatedAt)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update funding lead: %w", err)
	}
	return checkAffected(result)
}

// Delete removes a funding lead; draft history follows via FK cascade.
func (r *FundingLeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM funding_leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete funding lead: %w", err)
	}
	return checkAffected(result)
}

// ImportTx inserts a deduplicated batch in one transaction.
func (r *FundingLeadRepository) ImportTx(ctx context.Context, leads []models.FundingLead) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("rollback funding import", logger.Error(rbErr))
			}
		}
	}()

	query := `INSERT INTO funding_leads (` + fundingColumns + `) VALUES (` + fundingPlaceholders + `)`
	for i := range leads {
		lead := &leads[i]
		lead.ID = uuid.New().String()
		lead.CreatedAt = time.Now()
		lead.UpdatedAt = time.Now()
		if _, err = tx.ExecContext(ctx, query, r.fundingArgs(lead)...); err != nil {
			err = fmt.Errorf("insert funding lead %q: %w", lead.Name, err)
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return len(leads), nil
}

func (r *FundingLeadRepository) AddEmailDraft(ctx context.Context, draft *models.FundingEmailDraft) error {
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()

	query := `
		INSERT INTO funding_email_drafts (id, funding_lead_id, style, subject, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		draft.ID, draft.FundingLeadID, draft.Style, draft.Subject, draft.Body, draft.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert funding email draft: %w", err)
	}
	return nil
}

func (r *FundingLeadRepository) listEmailDrafts(ctx context.Context, leadID string) ([]models.FundingEmailDraft, error) {
	query := `
		SELECT id, funding_lead_id, style, subject, body, created_at
		FROM funding_email_drafts
		WHERE funding_lead_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("query funding email drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]models.FundingEmailDraft, 0)
	for rows.Next() {
		var d models.FundingEmailDraft
		if err := rows.Scan(&d.ID, &d.FundingLeadID, &d.Style, &d.Subject, &d.Body, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan funding email draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate funding email drafts: %w", err)
	}
	return drafts, nil
}

func (r *FundingLeadRepository) fundingArgs(lead *models.FundingLead) []any {
	return []any{
		lead.ID,
		lead.Name,
		lead.FundType,
		lead.Category,
		lead.PrimaryContactName,
		lead.PrimaryContactRole,
		lead.ContactEmail,
		lead.LinkedinURL,
		lead.WebsiteURL,
		lead.StageFocus,
		lead.TargetStage,
		lead.TicketMin,
		lead.TicketMax,
		lead.Currency,
		lead.TypicalInstrument,
		lead.GrantDeadline,
		lead.GrantRequirements,
		lead.ThesisTags.Normalize(),
		lead.IndustryFocus.Normalize(),
		lead.GeoFocus.Normalize(),
		lead.WarmIntroPossible,
		lead.IntroPath,
		lead.StageMatch,
		lead.ThesisMatch,
		lead.GeoMatch,
		lead.TicketMatch,
		lead.FitScore,
		lead.Priority,
		lead.FitCluster,
		lead.FitClusterOverride,
		lead.Status,
		lead.FirstContactedAt,
		lead.LastContactedAt,
		lead.NextFollowUpAt,
		lead.CadenceStep,
		lead.OutcomeNotes,
		lead.ReasonLost,
		lead.Objections,
		lead.NextSteps,
		lead.Attachments.Normalize(),
		lead.Owner,
		lead.SourceText,
		lead.SourceURL,
		lead.LastVerifiedAt,
		lead.Notes,
		lead.CreatedAt,
		lead.UpdatedAt,
	}
}

func scanFundingLead(row rowScanner) (*models.FundingLead, error) {
	var lead models.FundingLead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.FundType,
		&lead.Category,
		&lead.PrimaryContactName,
		&lead.PrimaryContactRole,
		&lead.ContactEmail,
		&lead.LinkedinURL,
		&lead.WebsiteURL,
		&lead.StageFocus,
		&lead.TargetStage,
		&lead.TicketMin,
		&lead.TicketMax,
		&lead.Currency,
		&lead.TypicalInstrument,
		&lead.GrantDeadline,
		&lead.GrantRequirements,
		&lead.ThesisTags,
		&lead.IndustryFocus,
		&lead.GeoFocus,
		&lead.WarmIntroPossible,
		&lead.IntroPath,
		&lead.StageMatch,
		&lead.ThesisMatch,
		&lead.GeoMatch,
		&lead.TicketMatch,
		&lead.FitScore,
		&lead.Priority,
		&lead.FitCluster,
		&lead.FitClusterOverride,
		&lead.Status,
		&lead.FirstContactedAt,
		&lead.LastContactedAt,
		&lead.NextFollowUpAt,
		&lead.CadenceStep,
		&lead.OutcomeNotes,
		&lead.ReasonLost,
		&lead.Objections,
		&lead.NextSteps,
		&lead.Attachments,
		&lead.Owner,
		&lead.SourceText,
		&lead.SourceURL,
		&lead.LastVerifiedAt,
		&lead.Notes,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
