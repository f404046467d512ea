package csvcodec

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/datapoolml/outreach-crm/internal/models"
)

// leadHeaders is the fixed outreach export column order. Headers are
// camelCase for compatibility with previously exported files.
var leadHeaders = []string{
	"id",
	"companyName",
	"industry",
	"sizeEmployees",
	"digitalMaturity",
	"mlActivity",
	"mlActivityDescription",
	"associationMemberships",
	"dataTypes",
	"customFieldValues",
	"contactName",
	"contactRole",
	"contactEmail",
	"linkedinUrl",
	"warmIntroPossible",
	"dataIntensity",
	"competitivePressure",
	"coopLikelihood",
	"priorityScore",
	"priorityLabel",
	"industryCluster",
	"status",
	"lastContactedAt",
	"nextFollowUpAt",
	"notes",
	"hypothesis",
}

// EncodeLeads renders leads as CSV in the fixed column order.
func EncodeLeads(leads []models.Lead) string {
	rows := make([][]string, len(leads))
	for i, lead := range leads {
		rows[i] = leadRow(lead)
	}
	return document(leadHeaders, rows)
}

// LeadTemplate returns the header-only import template.
func LeadTemplate() string {
	return document(leadHeaders, nil)
}

func leadRow(lead models.Lead) []string {
	customJSON := "{}"
	if len(lead.CustomFieldValues) > 0 {
		if data, err := json.Marshal(lead.CustomFieldValues); err == nil {
			customJSON = string(data)
		}
	}
	return []string{
		lead.ID,
		lead.CompanyName,
		lead.Industry,
		strconv.Itoa(lead.SizeEmployees),
		strconv.Itoa(lead.DigitalMaturity),
		strconv.FormatBool(lead.MLActivity),
		derefString(lead.MLActivityDescription),
		joinList(lead.AssociationMemberships),
		joinList(lead.DataTypes),
		customJSON,
		lead.ContactName,
		lead.ContactRole,
		lead.ContactEmail,
		derefString(lead.LinkedinURL),
		strconv.FormatBool(lead.WarmIntroPossible),
		strconv.Itoa(lead.DataIntensity),
		strconv.Itoa(lead.CompetitivePressure),
		strconv.Itoa(lead.CoopLikelihood),
		strconv.Itoa(lead.PriorityScore),
		strconv.Itoa(lead.PriorityLabel),
		string(lead.EffectiveCluster()),
		string(lead.Status),
		formatDate(lead.LastContactedAt),
		formatDate(lead.NextFollowUpAt),
		derefString(lead.Notes),
		lead.Hypothesis,
	}
}

// DecodeLeadRows parses raw CSV text into coerced outreach rows. Rows are
// returned as-is; required-field checks happen in the importer so skipped
// rows can be tallied there.
func DecodeLeadRows(input string) []models.Lead {
	doc := parseDocument(input)
	leads := make([]models.Lead, 0, len(doc.rows))
	for _, row := range doc.rows {
		leads = append(leads, models.Lead{
			CompanyName:            strings.TrimSpace(doc.get(row, "companyName")),
			Industry:               strings.TrimSpace(doc.get(row, "industry")),
			SizeEmployees:          toInt(doc.get(row, "sizeEmployees"), 1),
			DigitalMaturity:        toInt(doc.get(row, "digitalMaturity"), 0),
			DataIntensity:          toInt(doc.get(row, "dataIntensity"), 0),
			CompetitivePressure:    toInt(doc.get(row, "competitivePressure"), 0),
			CoopLikelihood:         toInt(doc.get(row, "coopLikelihood"), 0),
			MLActivity:             toBool(doc.get(row, "mlActivity")),
			MLActivityDescription:  optionalCell(doc.get(row, "mlActivityDescription")),
			AssociationMemberships: splitList(doc.get(row, "associationMemberships")),
			DataTypes:              splitList(doc.get(row, "dataTypes")),
			ContactName:            strings.TrimSpace(doc.get(row, "contactName")),
			ContactRole:            strings.TrimSpace(doc.get(row, "contactRole")),
			ContactEmail:           strings.TrimSpace(doc.get(row, "contactEmail")),
			LinkedinURL:            optionalCell(doc.get(row, "linkedinUrl")),
			WarmIntroPossible:      toBool(doc.get(row, "warmIntroPossible")),
			// An explicit cluster in the file becomes a manual override;
			// the derived cluster is recomputed from the industry rule.
			ClusterOverride:   models.ParseCluster(doc.get(row, "industryCluster")),
			Status:            models.ParsePipelineStatus(doc.get(row, "status")),
			LastContactedAt:   toDate(doc.get(row, "lastContactedAt")),
			NextFollowUpAt:    toDate(doc.get(row, "nextFollowUpAt")),
			Notes:             optionalCell(doc.get(row, "notes")),
			CustomFieldValues: parseCustomFields(doc.get(row, "customFieldValues")),
		})
	}
	return leads
}

// parseCustomFields decodes the JSON custom-field cell, dropping anything
// that is not a flat string map.
func parseCustomFields(value string) models.StringMap {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil
	}
	out := make(models.StringMap, len(raw))
	for key, v := range raw {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out[key] = s
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func optionalCell(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
