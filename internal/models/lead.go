package models

import (
	"strings"
	"time"
)

// Lead is an outreach (B2B) lead. The derived fields priorityScore,
// priorityLabel, industryCluster, and hypothesis are pure functions of the
// other fields and are recomputed on every write; they are never accepted
// from clients.
type Lead struct {
	ID                     string         `json:"id" db:"id"`
	CompanyName            string         `json:"company_name" db:"company_name"`
	Industry               string         `json:"industry" db:"industry"`
	SizeEmployees          int            `json:"size_employees" db:"size_employees"`
	DigitalMaturity        int            `json:"digital_maturity" db:"digital_maturity"`
	DataIntensity          int            `json:"data_intensity" db:"data_intensity"`
	CompetitivePressure    int            `json:"competitive_pressure" db:"competitive_pressure"`
	CoopLikelihood         int            `json:"coop_likelihood" db:"coop_likelihood"`
	MLActivity             bool           `json:"ml_activity" db:"ml_activity"`
	MLActivityDescription  *string        `json:"ml_activity_description,omitempty" db:"ml_activity_description"`
	AssociationMemberships StringList     `json:"association_memberships" db:"association_memberships"`
	DataTypes              StringList     `json:"data_types" db:"data_types"`
	ContactName            string         `json:"contact_name" db:"contact_name"`
	ContactRole            string         `json:"contact_role" db:"contact_role"`
	ContactEmail           string         `json:"contact_email" db:"contact_email"`
	LinkedinURL            *string        `json:"linkedin_url,omitempty" db:"linkedin_url"`
	WarmIntroPossible      bool           `json:"warm_intro_possible" db:"warm_intro_possible"`
	PriorityScore          int            `json:"priority_score" db:"priority_score"`
	PriorityLabel          int            `json:"priority_label" db:"priority_label"`
	IndustryCluster        Cluster        `json:"industry_cluster" db:"industry_cluster"`
	ClusterOverride        *Cluster       `json:"cluster_override,omitempty" db:"cluster_override"`
	Hypothesis             string         `json:"hypothesis" db:"hypothesis"`
	Status                 PipelineStatus `json:"status" db:"status"`
	LastContactedAt        *time.Time     `json:"last_contacted_at,omitempty" db:"last_contacted_at"`
	NextFollowUpAt         *time.Time     `json:"next_follow_up_at,omitempty" db:"next_follow_up_at"`
	Notes                  *string        `json:"notes,omitempty" db:"notes"`
	CustomFieldValues      StringMap      `json:"custom_field_values" db:"custom_field_values"`
	CreatedAt              time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at" db:"updated_at"`
	EmailDrafts            []EmailDraft   `json:"email_drafts,omitempty" db:"-"`
}

// EffectiveCluster returns the manual override when set, otherwise the
// derived cluster. Every read, filter, and display path must use this value.
func (l *Lead) EffectiveCluster() Cluster {
	if l.ClusterOverride != nil {
		return *l.ClusterOverride
	}
	return l.IndustryCluster
}

// EmailDraft is a generated outreach email kept as history on a lead.
// Drafts are deleted with their parent lead.
type EmailDraft struct {
	ID        string     `json:"id" db:"id"`
	LeadID    string     `json:"lead_id" db:"lead_id"`
	Style     EmailStyle `json:"style" db:"style"`
	Subject   string     `json:"subject" db:"subject"`
	Body      string     `json:"body" db:"body"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// CustomFieldDefinition is a registered custom field name. Names are unique
// case-insensitively and auto-registered on first use.
type CustomFieldDefinition struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LeadInput is the create payload for outreach leads. Derived fields are
// absent: they are computed server-side.
type LeadInput struct {
	CompanyName            string     `json:"company_name"`
	Industry               string     `json:"industry"`
	SizeEmployees          int        `json:"size_employees"`
	DigitalMaturity        int        `json:"digital_maturity"`
	DataIntensity          int        `json:"data_intensity"`
	CompetitivePressure    int        `json:"competitive_pressure"`
	CoopLikelihood         int        `json:"coop_likelihood"`
	MLActivity             bool       `json:"ml_activity"`
	MLActivityDescription  *string    `json:"ml_activity_description"`
	AssociationMemberships StringList `json:"association_memberships"`
	DataTypes              StringList `json:"data_types"`
	ContactName            string     `json:"contact_name"`
	ContactRole            string     `json:"contact_role"`
	ContactEmail           string     `json:"contact_email"`
	LinkedinURL            *string    `json:"linkedin_url"`
	WarmIntroPossible      bool       `json:"warm_intro_possible"`
	ClusterOverride        *string    `json:"cluster_override"`
	Status                 string     `json:"status"`
	LastContactedAt        *time.Time `json:"last_contacted_at"`
	NextFollowUpAt         *time.Time `json:"next_follow_up_at"`
	Notes                  *string    `json:"notes"`
	CustomFieldValues      StringMap  `json:"custom_field_values"`
}

const (
	maxLevel3 = 3
	maxLevel2 = 2
)

// Validate checks required fields and dimension ranges. Returns nil when
// the input is acceptable.
func (in *LeadInput) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(in.CompanyName) == "" {
		errs.Add("company_name", "company name is required")
	}
	if strings.TrimSpace(in.Industry) == "" {
		errs.Add("industry", "industry is required")
	}
	if in.SizeEmployees < 1 {
		errs.Add("size_employees", "must be at least 1")
	}
	validateRange(errs, "digital_maturity", in.DigitalMaturity, maxLevel3)
	validateRange(errs, "data_intensity", in.DataIntensity, maxLevel3)
	validateRange(errs, "competitive_pressure", in.CompetitivePressure, maxLevel2)
	validateRange(errs, "coop_likelihood", in.CoopLikelihood, maxLevel2)
	if strings.TrimSpace(in.ContactName) == "" {
		errs.Add("contact_name", "contact name is required")
	}
	if strings.TrimSpace(in.ContactRole) == "" {
		errs.Add("contact_role", "contact role is required")
	}
	if !looksLikeEmail(in.ContactEmail) {
		errs.Add("contact_email", "valid email is required")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToLead builds a Lead from a validated input. Derived fields stay zero;
// the caller recomputes them in the same write.
func (in *LeadInput) ToLead() Lead {
	return Lead{
		CompanyName:            strings.TrimSpace(in.CompanyName),
		Industry:               strings.TrimSpace(in.Industry),
		SizeEmployees:          in.SizeEmployees,
		DigitalMaturity:        in.DigitalMaturity,
		DataIntensity:          in.DataIntensity,
		CompetitivePressure:    in.CompetitivePressure,
		CoopLikelihood:         in.CoopLikelihood,
		MLActivity:             in.MLActivity,
		MLActivityDescription:  optionalPtr(in.MLActivityDescription),
		AssociationMemberships: in.AssociationMemberships.Normalize(),
		DataTypes:              in.DataTypes.Normalize(),
		ContactName:            strings.TrimSpace(in.ContactName),
		ContactRole:            strings.TrimSpace(in.ContactRole),
		ContactEmail:           strings.TrimSpace(in.ContactEmail),
		LinkedinURL:            optionalPtr(in.LinkedinURL),
		WarmIntroPossible:      in.WarmIntroPossible,
		ClusterOverride:        parseClusterPtr(in.ClusterOverride),
		Status:                 ParsePipelineStatus(in.Status),
		LastContactedAt:        in.LastContactedAt,
		NextFollowUpAt:         in.NextFollowUpAt,
		Notes:                  optionalPtr(in.Notes),
		CustomFieldValues:      in.CustomFieldValues.Normalize(),
	}
}

// LeadPatch is a partial update: only non-nil fields change. Dimension
// changes trigger a full recompute of the derived fields.
type LeadPatch struct {
	CompanyName            *string     `json:"company_name"`
	Industry               *string     `json:"industry"`
	SizeEmployees          *int        `json:"size_employees"`
	DigitalMaturity        *int        `json:"digital_maturity"`
	DataIntensity          *int        `json:"data_intensity"`
	CompetitivePressure    *int        `json:"competitive_pressure"`
	CoopLikelihood         *int        `json:"coop_likelihood"`
	MLActivity             *bool       `json:"ml_activity"`
	MLActivityDescription  *string     `json:"ml_activity_description"`
	AssociationMemberships *StringList `json:"association_memberships"`
	DataTypes              *StringList `json:"data_types"`
	ContactName            *string     `json:"contact_name"`
	ContactRole            *string     `json:"contact_role"`
	ContactEmail           *string     `json:"contact_email"`
	LinkedinURL            *string     `json:"linkedin_url"`
	WarmIntroPossible      *bool       `json:"warm_intro_possible"`
	ClusterOverride        *string     `json:"cluster_override"`
	Status                 *string     `json:"status"`
	LastContactedAt        *time.Time  `json:"last_contacted_at"`
	NextFollowUpAt         *time.Time  `json:"next_follow_up_at"`
	Notes                  *string     `json:"notes"`
	CustomFieldValues      *StringMap  `json:"custom_field_values"`
}

// Validate checks only the fields present in the patch.
func (p *LeadPatch) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if p.CompanyName != nil && strings.TrimSpace(*p.CompanyName) == "" {
		errs.Add("company_name", "company name cannot be blank")
	}
	if p.Industry != nil && strings.TrimSpace(*p.Industry) == "" {
		errs.Add("industry", "industry cannot be blank")
	}
	if p.SizeEmployees != nil && *p.SizeEmployees < 1 {
		errs.Add("size_employees", "must be at least 1")
	}
	if p.DigitalMaturity != nil {
		validateRange(errs, "digital_maturity", *p.DigitalMaturity, maxLevel3)
	}
	if p.DataIntensity != nil {
		validateRange(errs, "data_intensity", *p.DataIntensity, maxLevel3)
	}
	if p.CompetitivePressure != nil {
		validateRange(errs, "competitive_pressure", *p.CompetitivePressure, maxLevel2)
	}
	if p.CoopLikelihood != nil {
		validateRange(errs, "coop_likelihood", *p.CoopLikelihood, maxLevel2)
	}
	if p.ContactEmail != nil && !looksLikeEmail(*p.ContactEmail) {
		errs.Add("contact_email", "valid email is required")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Apply merges the patch into the lead. Derived fields are left to the
// caller, which must recompute them in the same logical write.
func (p *LeadPatch) Apply(lead *Lead) {
	if p.CompanyName != nil {
		lead.CompanyName = strings.TrimSpace(*p.CompanyName)
	}
	if p.Industry != nil {
		lead.Industry = strings.TrimSpace(*p.Industry)
	}
	if p.SizeEmployees != nil {
		lead.SizeEmployees = *p.SizeEmployees
	}
	if p.DigitalMaturity != nil {
		lead.DigitalMaturity = *p.DigitalMaturity
	}
	if p.DataIntensity != nil {
		lead.DataIntensity = *p.DataIntensity
	}
	if p.CompetitivePressure != nil {
		lead.CompetitivePressure = *p.CompetitivePressure
	}
	if p.CoopLikelihood != nil {
		lead.CoopLikelihood = *p.CoopLikelihood
	}
	if p.MLActivity != nil {
		lead.MLActivity = *p.MLActivity
	}
	if p.MLActivityDescription != nil {
		lead.MLActivityDescription = optional(*p.MLActivityDescription)
	}
	if p.AssociationMemberships != nil {
		lead.AssociationMemberships = p.AssociationMemberships.Normalize()
	}
	if p.DataTypes != nil {
		lead.DataTypes = p.DataTypes.Normalize()
	}
	if p.ContactName != nil {
		lead.ContactName = strings.TrimSpace(*p.ContactName)
	}
	if p.ContactRole != nil {
		lead.ContactRole = strings.TrimSpace(*p.ContactRole)
	}
	if p.ContactEmail != nil {
		lead.ContactEmail = strings.TrimSpace(*p.ContactEmail)
	}
	if p.LinkedinURL != nil {
		lead.LinkedinURL = optional(*p.LinkedinURL)
	}
	if p.WarmIntroPossible != nil {
		lead.WarmIntroPossible = *p.WarmIntroPossible
	}
	if p.ClusterOverride != nil {
		lead.ClusterOverride = ParseCluster(*p.ClusterOverride)
	}
	if p.Status != nil {
		lead.Status = ParsePipelineStatus(*p.Status)
	}
	if p.LastContactedAt != nil {
		lead.LastContactedAt = p.LastContactedAt
	}
	if p.NextFollowUpAt != nil {
		lead.NextFollowUpAt = p.NextFollowUpAt
	}
	if p.Notes != nil {
		lead.Notes = optional(*p.Notes)
	}
	if p.CustomFieldValues != nil {
		lead.CustomFieldValues = p.CustomFieldValues.Normalize()
	}
}

func validateRange(errs ValidationErrors, field string, value, max int) {
	if value < 0 || value > max {
		errs.Add(field, "out of range")
	}
}

// looksLikeEmail applies a minimal shape check: non-empty local part and a
// dotted domain. Full RFC validation is deliberately out of scope.
func looksLikeEmail(value string) bool {
	value = strings.TrimSpace(value)
	at := strings.Index(value, "@")
	if at < 1 || at == len(value)-1 {
		return false
	}
	domain := value[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func optionalPtr(value *string) *string {
	if value == nil {
		return nil
	}
	return optional(*value)
}

func parseClusterPtr(value *string) *Cluster {
	if value == nil {
		return nil
	}
	return ParseCluster(*value)
}
