package models

import (
	"strings"
	"time"
)

// FundingLead is an investor or grant program tracked through the funding
// pipeline. fitScore, priority, and fitCluster are derived from the four
// match dimensions and recomputed on every write.
type FundingLead struct {
	ID                 string              `json:"id" db:"id"`
	Name               string              `json:"name" db:"name"`
	FundType           FundType            `json:"fund_type" db:"fund_type"`
	Category           *string             `json:"category,omitempty" db:"category"`
	PrimaryContactName *string             `json:"primary_contact_name,omitempty" db:"primary_contact_name"`
	PrimaryContactRole *string             `json:"primary_contact_role,omitempty" db:"primary_contact_role"`
	ContactEmail       *string             `json:"contact_email,omitempty" db:"contact_email"`
	LinkedinURL        *string             `json:"linkedin_url,omitempty" db:"linkedin_url"`
	WebsiteURL         *string             `json:"website_url,omitempty" db:"website_url"`
	StageFocus         StageList           `json:"stage_focus" db:"stage_focus"`
	TargetStage        Stage               `json:"target_stage" db:"target_stage"`
	TicketMin          *int64              `json:"ticket_min,omitempty" db:"ticket_min"`
	TicketMax          *int64              `json:"ticket_max,omitempty" db:"ticket_max"`
	Currency           string              `json:"currency" db:"currency"`
	TypicalInstrument  *string             `json:"typical_instrument,omitempty" db:"typical_instrument"`
	GrantDeadline      *time.Time          `json:"grant_deadline,omitempty" db:"grant_deadline"`
	GrantRequirements  *string             `json:"grant_requirements,omitempty" db:"grant_requirements"`
	ThesisTags         StringList          `json:"thesis_tags" db:"thesis_tags"`
	IndustryFocus      StringList          `json:"industry_focus" db:"industry_focus"`
	GeoFocus           StringList          `json:"geo_focus" db:"geo_focus"`
	WarmIntroPossible  bool                `json:"warm_intro_possible" db:"warm_intro_possible"`
	IntroPath          *string             `json:"intro_path,omitempty" db:"intro_path"`
	StageMatch         int                 `json:"stage_match" db:"stage_match"`
	ThesisMatch        int                 `json:"thesis_match" db:"thesis_match"`
	GeoMatch           int                 `json:"geo_match" db:"geo_match"`
	TicketMatch        int                 `json:"ticket_match" db:"ticket_match"`
	FitScore           int                 `json:"fit_score" db:"fit_score"`
	Priority           int                 `json:"priority" db:"priority"`
	FitCluster         Cluster             `json:"fit_cluster" db:"fit_cluster"`
	FitClusterOverride *Cluster            `json:"fit_cluster_override,omitempty" db:"fit_cluster_override"`
	Status             FundingStatus       `json:"status" db:"status"`
	FirstContactedAt   *time.Time          `json:"first_contacted_at,omitempty" db:"first_contacted_at"`
	LastContactedAt    *time.Time          `json:"last_contacted_at,omitempty" db:"last_contacted_at"`
	NextFollowUpAt     *time.Time          `json:"next_follow_up_at,omitempty" db:"next_follow_up_at"`
	CadenceStep        *int                `json:"cadence_step,omitempty" db:"cadence_step"`
	OutcomeNotes       *string             `json:"outcome_notes,omitempty" db:"outcome_notes"`
	ReasonLost         *ReasonLost         `json:"reason_lost,omitempty" db:"reason_lost"`
	Objections         *string             `json:"objections,omitempty" db:"objections"`
	NextSteps          *string             `json:"next_steps,omitempty" db:"next_steps"`
	Attachments        StringList          `json:"attachments" db:"attachments"`
	Owner              *string             `json:"owner,omitempty" db:"owner"`
	SourceText         *string             `json:"source_text,omitempty" db:"source_text"`
	SourceURL          *string             `json:"source_url,omitempty" db:"source_url"`
	LastVerifiedAt     *time.Time          `json:"last_verified_at,omitempty" db:"last_verified_at"`
	Notes              *string             `json:"notes,omitempty" db:"notes"`
	CreatedAt          time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" db:"updated_at"`
	EmailDrafts        []FundingEmailDraft `json:"email_drafts,omitempty" db:"-"`
}

// EffectiveCluster returns the override when set, else the derived cluster.
func (f *FundingLead) EffectiveCluster() Cluster {
	if f.FitClusterOverride != nil {
		return *f.FitClusterOverride
	}
	return f.FitCluster
}

// FundingEmailDraft is a generated funding email kept as history.
type FundingEmailDraft struct {
	ID            string     `json:"id" db:"id"`
	FundingLeadID string     `json:"funding_lead_id" db:"funding_lead_id"`
	Style         EmailStyle `json:"style" db:"style"`
	Subject       string     `json:"subject" db:"subject"`
	Body          string     `json:"body" db:"body"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// FundingLeadInput is the create payload for funding leads.
type FundingLeadInput struct {
	Name               string     `json:"name"`
	FundType           string     `json:"fund_type"`
	Category           *string    `json:"category"`
	PrimaryContactName *string    `json:"primary_contact_name"`
	PrimaryContactRole *string    `json:"primary_contact_role"`
	ContactEmail       *string    `json:"contact_email"`
	LinkedinURL        *string    `json:"linkedin_url"`
	WebsiteURL         *string    `json:"website_url"`
	StageFocus         []string   `json:"stage_focus"`
	TargetStage        string     `json:"target_stage"`
	TicketMin          *int64     `json:"ticket_min"`
	TicketMax          *int64     `json:"ticket_max"`
	Currency           string     `json:"currency"`
	TypicalInstrument  *string    `json:"typical_instrument"`
	GrantDeadline      *time.Time `json:"grant_deadline"`
	GrantRequirements  *string    `json:"grant_requirements"`
	ThesisTags         StringList `json:"thesis_tags"`
	IndustryFocus      StringList `json:"industry_focus"`
	GeoFocus           StringList `json:"geo_focus"`
	WarmIntroPossible  bool       `json:"warm_intro_possible"`
	IntroPath          *string    `json:"intro_path"`
	StageMatch         int        `json:"stage_match"`
	ThesisMatch        int        `json:"thesis_match"`
	GeoMatch           int        `json:"geo_match"`
	TicketMatch        int        `json:"ticket_match"`
	FitClusterOverride *string    `json:"fit_cluster_override"`
	Status             string     `json:"status"`
	FirstContactedAt   *time.Time `json:"first_contacted_at"`
	LastContactedAt    *time.Time `json:"last_contacted_at"`
	NextFollowUpAt     *time.Time `json:"next_follow_up_at"`
	CadenceStep        *int       `json:"cadence_step"`
	OutcomeNotes       *string    `json:"outcome_notes"`
	ReasonLost         *string    `json:"reason_lost"`
	Objections         *string    `json:"objections"`
	NextSteps          *string    `json:"next_steps"`
	Attachments        StringList `json:"attachments"`
	Owner              *string    `json:"owner"`
	SourceText         *string    `json:"source_text"`
	SourceURL          *string    `json:"source_url"`
	LastVerifiedAt     *time.Time `json:"last_verified_at"`
	Notes              *string    `json:"notes"`
}

// Validate checks the required name and match dimension ranges.
func (in *FundingLeadInput) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(in.Name) == "" {
		errs.Add("name", "name is required")
	}
	validateRange(errs, "stage_match", in.StageMatch, maxLevel3)
	validateRange(errs, "thesis_match", in.ThesisMatch, maxLevel3)
	validateRange(errs, "geo_match", in.GeoMatch, maxLevel2)
	validateRange(errs, "ticket_match", in.TicketMatch, maxLevel2)
	if in.TicketMin != nil && *in.TicketMin < 0 {
		errs.Add("ticket_min", "must be non-negative")
	}
	if in.TicketMax != nil && *in.TicketMax < 0 {
		errs.Add("ticket_max", "must be non-negative")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToFundingLead builds a FundingLead from a validated input. Fit fields
// stay zero; the caller recomputes them in the same write.
func (in *FundingLeadInput) ToFundingLead() FundingLead {
	currency := strings.TrimSpace(in.Currency)
	if currency == "" {
		currency = "EUR"
	}
	return FundingLead{
		Name:               strings.TrimSpace(in.Name),
		FundType:           ParseFundType(in.FundType),
		Category:           optionalPtr(in.Category),
		PrimaryContactName: optionalPtr(in.PrimaryContactName),
		PrimaryContactRole: optionalPtr(in.PrimaryContactRole),
		ContactEmail:       optionalPtr(in.ContactEmail),
		LinkedinURL:        optionalPtr(in.LinkedinURL),
		WebsiteURL:         optionalPtr(in.WebsiteURL),
		StageFocus:         ParseStageSlice(in.StageFocus),
		TargetStage:        ParseTargetStage(in.TargetStage),
		TicketMin:          in.TicketMin,
		TicketMax:          in.TicketMax,
		Currency:           currency,
		TypicalInstrument:  optionalPtr(in.TypicalInstrument),
		GrantDeadline:      in.GrantDeadline,
		GrantRequirements:  optionalPtr(in.GrantRequirements),
		ThesisTags:         in.ThesisTags.Normalize(),
		IndustryFocus:      in.IndustryFocus.Normalize(),
		GeoFocus:           in.GeoFocus.Normalize(),
		WarmIntroPossible:  in.WarmIntroPossible,
		IntroPath:          optionalPtr(in.IntroPath),
		StageMatch:         in.StageMatch,
		ThesisMatch:        in.ThesisMatch,
		GeoMatch:           in.GeoMatch,
		TicketMatch:        in.TicketMatch,
		FitClusterOverride: parseClusterPtr(in.FitClusterOverride),
		Status:             ParseFundingStatus(in.Status),
		FirstContactedAt:   in.FirstContactedAt,
		LastContactedAt:    in.LastContactedAt,
		NextFollowUpAt:     in.NextFollowUpAt,
		CadenceStep:        in.CadenceStep,
		OutcomeNotes:       optionalPtr(in.OutcomeNotes),
		ReasonLost:         parseReasonLostPtr(in.ReasonLost),
		Objections:         optionalPtr(in.Objections),
		NextSteps:          optionalPtr(in.NextSteps),
		Attachments:        in.Attachments.Normalize(),
		Owner:              optionalPtr(in.Owner),
		SourceText:         optionalPtr(in.SourceText),
		SourceURL:          optionalPtr(in.SourceURL),
		LastVerifiedAt:     in.LastVerifiedAt,
		Notes:              optionalPtr(in.Notes),
	}
}

func parseReasonLostPtr(value *string) *ReasonLost {
	if value == nil {
		return nil
	}
	return ParseReasonLost(*value)
}

// FundingLeadPatch is a partial update with the same semantics as LeadPatch.
type FundingLeadPatch struct {
	Name               *string     `json:"name"`
	FundType           *string     `json:"fund_type"`
	Category           *string     `json:"category"`
	PrimaryContactName *string     `json:"primary_contact_name"`
	PrimaryContactRole *string     `json:"primary_contact_role"`
	ContactEmail       *string     `json:"contact_email"`
	LinkedinURL        *string     `json:"linkedin_url"`
	WebsiteURL         *string     `json:"website_url"`
	StageFocus         *[]string   `json:"stage_focus"`
	TargetStage        *string     `json:"target_stage"`
	TicketMin          *int64      `json:"ticket_min"`
	TicketMax          *int64      `json:"ticket_max"`
	Currency           *string     `json:"currency"`
	TypicalInstrument  *string     `json:"typical_instrument"`
	GrantDeadline      *time.Time  `json:"grant_deadline"`
	GrantRequirements  *string     `json:"grant_requirements"`
	ThesisTags         *StringList `json:"thesis_tags"`
	IndustryFocus      *StringList `json:"industry_focus"`
	GeoFocus           *StringList `json:"geo_focus"`
	WarmIntroPossible  *bool       `json:"warm_intro_possible"`
	IntroPath          *string     `json:"intro_path"`
	StageMatch         *int        `json:"stage_match"`
	ThesisMatch        *int        `json:"thesis_match"`
	GeoMatch           *int        `json:"geo_match"`
	TicketMatch        *int        `json:"ticket_match"`
	FitClusterOverride *string     `json:"fit_cluster_override"`
	Status             *string     `json:"status"`
	FirstContactedAt   *time.Time  `json:"first_contacted_at"`
	LastContactedAt    *time.Time  `json:"last_contacted_at"`
	NextFollowUpAt     *time.Time  `json:"next_follow_up_at"`
	CadenceStep        *int        `json:"cadence_step"`
	OutcomeNotes       *string     `json:"outcome_notes"`
	ReasonLost         *string     `json:"reason_lost"`
	Objections         *string     `json:"objections"`
	NextSteps          *string     `json:"next_steps"`
	Attachments        *StringList `json:"attachments"`
	Owner              *string     `json:"owner"`
	SourceText         *string     `json:"source_text"`
	SourceURL          *string     `json:"source_url"`
	LastVerifiedAt     *time.Time  `json:"last_verified_at"`
	Notes              *string     `json:"notes"`
}

// Validate checks only the fields present in the patch.
func (p *FundingLeadPatch) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs.Add("name", "name cannot be blank")
	}
	if p.StageMatch != nil {
		validateRange(errs, "stage_match", *p.StageMatch, maxLevel3)
	}
	if p.ThesisMatch != nil {
		validateRange(errs, "thesis_match", *p.ThesisMatch, maxLevel3)
	}
	if p.GeoMatch != nil {
		validateRange(errs, "geo_match", *p.GeoMatch, maxLevel2)
	}
	if p.TicketMatch != nil {
		validateRange(errs, "ticket_match", *p.TicketMatch, maxLevel2)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Apply merges the patch into the lead. The caller recomputes the derived
// fields in the same write.
func (p *FundingLeadPatch) Apply(lead *FundingLead) {
	if p.Name != nil {
		lead.Name = strings.TrimSpace(*p.Name)
	}
	if p.FundType != nil {
		lead.FundType = ParseFundType(*p.FundType)
	}
	if p.Category != nil {
		lead.Category = optional(*p.Category)
	}
	if p.PrimaryContactName != nil {
		lead.PrimaryContactName = optional(*p.PrimaryContactName)
	}
	if p.PrimaryContactRole != nil {
		lead.PrimaryContactRole = optional(*p.PrimaryContactRole)
	}
	if p.ContactEmail != nil {
		lead.ContactEmail = optional(*p.ContactEmail)
	}
	if p.LinkedinURL != nil {
		lead.LinkedinURL = optional(*p.LinkedinURL)
	}
	if p.WebsiteURL != nil {
		lead.WebsiteURL = optional(*p.WebsiteURL)
	}
	if p.StageFocus != nil {
		lead.StageFocus = ParseStageSlice(*p.StageFocus)
	}
	if p.TargetStage != nil {
		lead.TargetStage = ParseTargetStage(*p.TargetStage)
	}
	if p.TicketMin != nil {
		lead.TicketMin = p.TicketMin
	}
	if p.TicketMax != nil {
		lead.TicketMax = p.TicketMax
	}
	if p.Currency != nil && strings.TrimSpace(*p.Currency) != "" {
		lead.Currency = strings.TrimSpace(*p.Currency)
	}
	if p.TypicalInstrument != nil {
		lead.TypicalInstrument = optional(*p.TypicalInstrument)
	}
	if p.GrantDeadline != nil {
		lead.GrantDeadline = p.GrantDeadline
	}
	if p.GrantRequirements != nil {
		lead.GrantRequirements = optional(*p.GrantRequirements)
	}
	if p.ThesisTags != nil {
		lead.ThesisTags = p.ThesisTags.Normalize()
	}
	if p.IndustryFocus != nil {
		lead.IndustryFocus = p.IndustryFocus.Normalize()
	}
	if p.GeoFocus != nil {
		lead.GeoFocus = p.GeoFocus.Normalize()
	}
	if p.WarmIntroPossible != nil {
		lead.WarmIntroPossible = *p.WarmIntroPossible
	}
	if p.IntroPath != nil {
		lead.IntroPath = optional(*p.IntroPath)
	}
	if p.StageMatch != nil {
		lead.StageMatch = *p.StageMatch
	}
	if p.ThesisMatch != nil {
		lead.ThesisMatch = *p.ThesisMatch
	}
	if p.GeoMatch != nil {
		lead.GeoMatch = *p.GeoMatch
	}
	if p.TicketMatch != nil {
		lead.TicketMatch = *p.TicketMatch
	}
	if p.FitClusterOverride != nil {
		lead.FitClusterOverride = ParseCluster(*p.FitClusterOverride)
	}
	if p.Status != nil {
		lead.Status = ParseFundingStatus(*p.Status)
	}
	if p.FirstContactedAt != nil {
		lead.FirstContactedAt = p.FirstContactedAt
	}
	if p.LastContactedAt != nil {
		lead.LastContactedAt = p.LastContactedAt
	}
	if p.NextFollowUpAt != nil {
		lead.NextFollowUpAt = p.NextFollowUpAt
	}
	if p.CadenceStep != nil {
		lead.CadenceStep = p.CadenceStep
	}
	if p.OutcomeNotes != nil {
		lead.OutcomeNotes = optional(*p.OutcomeNotes)
	}
	if p.ReasonLost != nil {
		lead.ReasonLost = ParseReasonLost(*p.ReasonLost)
	}
	if p.Objections != nil {
		lead.Objections = optional(*p.Objections)
	}
	if p.NextSteps != nil {
		lead.NextSteps = optional(*p.NextSteps)
	}
	if p.Attachments != nil {
		lead.Attachments = p.Attachments.Normalize()
	}
	if p.Owner != nil {
		lead.Owner = optional(*p.Owner)
	}
	if p.SourceText != nil {
		lead.SourceText = optional(*p.SourceText)
	}
	if p.SourceURL != nil {
		lead.SourceURL = optional(*p.SourceURL)
	}
	if p.LastVerifiedAt != nil {
		lead.LastVerifiedAt = p.LastVerifiedAt
	}
	if p.Notes != nil {
		lead.Notes = optional(*p.Notes)
	}
}

// ParseStageSlice normalizes a plain string slice into a StageList,
// dropping unknown entries and duplicates.
func ParseStageSlice(values []string) StageList {
	seen := make(map[Stage]bool)
	var out StageList
	for _, raw := range values {
		token := strings.ReplaceAll(normalizeToken(raw), "+", "_PLUS")
		token = strings.ReplaceAll(token, "-", "_")
		stage := Stage(token)
		if !stages[stage] || seen[stage] {
			continue
		}
		seen[stage] = true
		out = append(out, stage)
	}
	return out
}
