package database

import (
	"context"
	"fmt"
)

// schema holds the idempotent DDL applied on startup. Statements use
// IF NOT EXISTS so repeated boots are safe without a migration tool.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id UUID PRIMARY KEY,
		company_name TEXT NOT NULL,
		industry TEXT NOT NULL,
		size_employees INTEGER NOT NULL DEFAULT 1,
		digital_maturity INTEGER NOT NULL DEFAULT 0,
		data_intensity INTEGER NOT NULL DEFAULT 0,
		competitive_pressure INTEGER NOT NULL DEFAULT 0,
		coop_likelihood INTEGER NOT NULL DEFAULT 0,
		ml_activity BOOLEAN NOT NULL DEFAULT FALSE,
		ml_activity_description TEXT,
		association_memberships JSONB NOT NULL DEFAULT '[]',
		data_types JSONB NOT NULL DEFAULT '[]',
		contact_name TEXT NOT NULL,
		contact_role TEXT NOT NULL,
		contact_email TEXT NOT NULL,
		linkedin_url TEXT,
		warm_intro_possible BOOLEAN NOT NULL DEFAULT FALSE,
		priority_score INTEGER NOT NULL DEFAULT 0,
		priority_label INTEGER NOT NULL DEFAULT 1,
		industry_cluster TEXT NOT NULL DEFAULT 'LOW',
		cluster_override TEXT,
		hypothesis TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'NEW',
		last_contacted_at TIMESTAMPTZ,
		next_follow_up_at TIMESTAMPTZ,
		notes TEXT,
		custom_field_values JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS lead_email_drafts (
		id UUID PRIMARY KEY,
		lead_id UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
		style TEXT NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS funding_leads (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		fund_type TEXT NOT NULL DEFAULT 'OTHER',
		category TEXT,
		primary_contact_name TEXT,
		primary_contact_role TEXT,
		contact_email TEXT,
		linkedin_url TEXT,
		website_url TEXT,
		stage_focus JSONB NOT NULL DEFAULT '[]',
		target_stage TEXT NOT NULL DEFAULT 'PRE_SEED',
		ticket_min BIGINT,
		ticket_max BIGINT,
		currency TEXT NOT NULL DEFAULT 'EUR',
		typical_instrument TEXT,
		grant_deadline TIMESTAMPTZ,
		grant_requirements TEXT,
		thesis_tags JSONB NOT NULL DEFAULT '[]',
		industry_focus JSONB NOT NULL DEFAULT '[]',
		geo_focus JSONB NOT NULL DEFAULT '[]',
		warm_intro_possible BOOLEAN NOT NULL DEFAULT FALSE,
		intro_path TEXT,
		stage_match INTEGER NOT NULL DEFAULT 0,
		thesis_match INTEGER NOT NULL DEFAULT 0,
		geo_match INTEGER NOT NULL DEFAULT 0,
		ticket_match INTEGER NOT NULL DEFAULT 0,
		fit_score INTEGER NOT NULL DEFAULT 0,
		priority INTEGER NOT NULL DEFAULT 1,
		fit_cluster TEXT NOT NULL DEFAULT 'LOW',
		fit_cluster_override TEXT,
		status TEXT NOT NULL DEFAULT 'NEW',
		first_contacted_at TIMESTAMPTZ,
		last_contacted_at TIMESTAMPTZ,
		next_follow_up_at TIMESTAMPTZ,
		cadence_step INTEGER,
		outcome_notes TEXT,
		reason_lost TEXT,
		objections TEXT,
		next_steps TEXT,
		attachments JSONB NOT NULL DEFAULT '[]',
		owner TEXT,
		source_text TEXT,
		source_url TEXT,
		last_verified_at TIMESTAMPTZ,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS funding_email_drafts (
		id UUID PRIMARY KEY,
		funding_lead_id UUID NOT NULL REFERENCES funding_leads(id) ON DELETE CASCADE,
		style TEXT NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS custom_fields (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,
	`CREATE INDEX IF NOT EXISTS idx_funding_leads_status ON funding_leads(status)`,
	`CREATE INDEX IF NOT EXISTS idx_funding_leads_fund_type ON funding_leads(fund_type)`,
}

// Migrate applies the schema statements in order.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	d.logger.Info("Database schema is up to date")
	return nil
}
