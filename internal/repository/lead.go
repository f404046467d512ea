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

const leadColumns = `
	id, company_name, industry, size_employees,
	digital_maturity, data_intensity, competitive_pressure, coop_likelihood,
	ml_activity, ml_activity_description, association_memberships, data_types,
	contact_name, contact_role, contact_email, linkedin_url, warm_intro_possible,
	priority_score, priority_label, industry_cluster, cluster_override, hypothesis,
	status, last_contacted_at, next_follow_up_at, notes, custom_field_values,
	created_at, updated_at`

type LeadRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewLeadRepository(db *sql.DB, log logger.Logger) *LeadRepository {
	return &LeadRepository{
		db:     db,
		logger: log,
	}
}

func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	lead.ID = uuid.New().String()
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = time.Now()
	lead.AssociationMemberships = lead.AssociationMemberships.Normalize()
	lead.DataTypes = lead.DataTypes.Normalize()
	lead.CustomFieldValues = lead.CustomFieldValues.Normalize()

	query := `
		INSERT INTO leads (` + leadColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
	`

	_, err := r.db.ExecContext(ctx, query, r.leadArgs(lead)...)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query lead: %w", err)
	}

	drafts, err := r.listEmailDrafts(ctx, id)
	if err != nil {
		return nil, err
	}
	lead.EmailDrafts = drafts
	return lead, nil
}

// List returns all leads, newest first. Filtering and sorting happen in
// memory so the search, window and cluster semantics live in one place.
func (r *LeadRepository) List(ctx context.Context) ([]models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	leads := make([]models.Lead, 0)
	for rows.Next() {
		lead, scanErr := scanLead(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan lead: %w", scanErr)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *models.Lead) error {
	lead.UpdatedAt = time.Now()

	query := `
		UPDATE leads
		SET company_name = $2, industry = $3, size_employees = $4,
		    digital_maturity = $5, data_intensity = $6, competitive_pressure = $7,
		    coop_likelihood = $8, ml_activity = $9, ml_activity_description = $10,
		    association_memberships = $11, data_types = $12,
		    contact_name = $13, contact_role = $14, contact_email = $15,
		    linkedin_url = $16, warm_intro_possible = $17,
		    priority_score = $18, priority_label = $19, industry_cluster = $20,
		    cluster_override = $21, hypothesis = $22, status = $23,
		    last_contacted_at = $24, next_follow_up_at = $25, notes = $26,
		    custom_field_values = $27, updated_at = $28
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		lead.ID,
		lead.CompanyName,
		lead.Industry,
		lead.SizeEmployees,
		lead.DigitalMaturity,
		lead.DataIntensity,
		lead.CompetitivePressure,
		lead.CoopLikelihood,
		lead.MLActivity,
		lead.MLActivityDescription,
		lead.AssociationMemberships.Normalize(),
		lead.DataTypes.Normalize(),
		lead.ContactName,
		lead.ContactRole,
		lead.ContactEmail,
		lead.LinkedinURL,
		lead.WarmIntroPossible,
		lead.PriorityScore,
		lead.PriorityLabel,
		lead.IndustryCluster,
		lead.ClusterOverride,
		lead.Hypothesis,
		lead.Status,
		lead.LastContactedAt,
		lead.NextFollowUpAt,
		lead.Notes,
		lead.CustomFieldValues.Normalize(),
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return checkAffected(result)
}

// Delete removes a lead; its email drafts go with it via the FK cascade.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return checkAffected(result)
}

// ImportTx inserts a batch of leads in one transaction and returns the
// inserted count. Any failure rolls back the whole batch.
func (r *LeadRepository) ImportTx(ctx context.Context, leads []models.Lead) (int, error) {
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
				r.logger.Error("rollback lead import", logger.Error(rbErr))
			}
		}
	}()

	query := `
		INSERT INTO leads (` + leadColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
	`
	for i := range leads {
		lead := &leads[i]
		lead.ID = uuid.New().String()
		lead.CreatedAt = time.Now()
		lead.UpdatedAt = time.Now()
		if _, err = tx.ExecContext(ctx, query, r.leadArgs(lead)...); err != nil {
			err = fmt.Errorf("insert lead %q: %w", lead.CompanyName, err)
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return len(leads), nil
}

func (r *LeadRepository) AddEmailDraft(ctx context.Context, draft *models.EmailDraft) error {
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now()

	query := `
		INSERT INTO lead_email_drafts (id, lead_id, style, subject, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		draft.ID, draft.LeadID, draft.Style, draft.Subject, draft.Body, draft.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert email draft: %w", err)
	}
	return nil
}

func (r *LeadRepository) listEmailDrafts(ctx context.Context, leadID string) ([]models.EmailDraft, error) {
	query := `
		SELECT id, lead_id, style, subject, body, created_at
		FROM lead_email_drafts
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("query email drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]models.EmailDraft, 0)
	for rows.Next() {
		var d models.EmailDraft
		if err := rows.Scan(&d.ID, &d.LeadID, &d.Style, &d.Subject, &d.Body, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan email draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email drafts: %w", err)
	}
	return drafts, nil
}

func (r *LeadRepository) leadArgs(lead *models.Lead) []any {
	return []any{
		lead.ID,
		lead.CompanyName,
		lead.Industry,
		lead.SizeEmployees,
		lead.DigitalMaturity,
		lead.DataIntensity,
		lead.CompetitivePressure,
		lead.CoopLikelihood,
		lead.MLActivity,
		lead.MLActivityDescription,
		lead.AssociationMemberships.Normalize(),
		lead.DataTypes.Normalize(),
		lead.ContactName,
		lead.ContactRole,
		lead.ContactEmail,
		lead.LinkedinURL,
		lead.WarmIntroPossible,
		lead.PriorityScore,
		lead.PriorityLabel,
		lead.IndustryCluster,
		lead.ClusterOverride,
		lead.Hypothesis,
		lead.Status,
		lead.LastContactedAt,
		lead.NextFollowUpAt,
		lead.Notes,
		lead.CustomFieldValues.Normalize(),
		lead.CreatedAt,
		lead.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	var lead models.Lead
	err := row.Scan(
		&lead.ID,
		&lead.CompanyName,
		&lead.Industry,
		&lead.SizeEmployees,
		&lead.DigitalMaturity,
		&lead.DataIntensity,
		&lead.CompetitivePressure,
		&lead.CoopLikelihood,
		&lead.MLActivity,
		&lead.MLActivityDescription,
		&lead.AssociationMemberships,
		&lead.DataTypes,
		&lead.ContactName,
		&lead.ContactRole,
		&lead.ContactEmail,
		&lead.LinkedinURL,
		&lead.WarmIntroPossible,
		&lead.PriorityScore,
		&lead.PriorityLabel,
		&lead.IndustryCluster,
		&lead.ClusterOverride,
		&lead.Hypothesis,
		&lead.Status,
		&lead.LastContactedAt,
		&lead.NextFollowUpAt,
		&lead.Notes,
		&lead.CustomFieldValues,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
