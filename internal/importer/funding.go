package importer

import (
	"strings"

	"github.com/datapoolml/outreach-crm/internal/csvcodec"
	"github.com/datapoolml/outreach-crm/internal/models"
	"github.com/datapoolml/outreach-crm/internal/scoring"
)

// FundingImport is the outcome of preparing a funding CSV for persistence.
type FundingImport struct {
	Leads             []models.FundingLead
	SkippedDuplicates int
}

// PrepareFundingCSV decodes a funding CSV document, drops rows without a
// name, and skips rows whose identity keys match existing records or an
// earlier row in the same file. Fit scores and clusters are recomputed
// from the match dimensions; an explicit fitCluster cell survives as a
// manual override.
func PrepareFundingCSV(input string, existing []models.FundingLead) FundingImport {
	rows := csvcodec.DecodeFundingRows(input)
	index := NewDeduplicationIndex(existing)

	result := FundingImport{Leads: make([]models.FundingLead, 0, len(rows))}
	for _, lead := range rows {
		if strings.TrimSpace(lead.Name) == "" {
			continue
		}
		if index.Seen(lead) {
			result.SkippedDuplicates++
			continue
		}
		scoring.RecomputeFundingLead(&lead)
		index.Add(lead)
		result.Leads = append(result.Leads, lead)
	}
	return result
}
