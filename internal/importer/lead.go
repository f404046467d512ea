package importer

import (
	"sort"
	"strings"

	"github.com/datapoolml/outreach-crm/internal/csvcodec"
	"github.com/datapoolml/outreach-crm/internal/hypothesis"
	"github.com/datapoolml/outreach-crm/internal/models"
	"github.com/datapoolml/outreach-crm/internal/scoring"
)

// LeadImport is the outcome of preparing a lead CSV for persistence.
type LeadImport struct {
	Leads []models.Lead
	// CustomFieldNames lists every custom field key seen across the
	// imported rows, deduplicated and sorted, so the registry can be
	// updated alongside the rows.
	CustomFieldNames []string
}

// PrepareLeadCSV decodes a lead CSV document and returns the rows that
// pass the required-field check, with derived fields recomputed. Rows
// missing companyName, industry, contactName, contactRole or contactEmail
// are dropped. Scores, labels, clusters and hypotheses from the file are
// ignored; only an explicit industryCluster cell survives, as a manual
// override.
func PrepareLeadCSV(input string) LeadImport {
	rows := csvcodec.DecodeLeadRows(input)

	result := LeadImport{Leads: make([]models.Lead, 0, len(rows))}
	fieldNames := map[string]struct{}{}
	for _, lead := range rows {
		if !leadRowComplete(lead) {
			continue
		}
		scoring.RecomputeLead(&lead)
		hypothesis.Regenerate(&lead)
		for name := range lead.CustomFieldValues {
			fieldNames[name] = struct{}{}
		}
		result.Leads = append(result.Leads, lead)
	}

	for name := range fieldNames {
		result.CustomFieldNames = append(result.CustomFieldNames, name)
	}
	sort.Strings(result.CustomFieldNames)
	return result
}

func leadRowComplete(lead models.Lead) bool {
	required := []string{
		lead.CompanyName,
		lead.Industry,
		lead.ContactName,
		lead.ContactRole,
		lead.ContactEmail,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
