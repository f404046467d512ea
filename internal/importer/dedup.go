package importer

import (
	"strings"

	"github.com/datapoolml/outreach-crm/internal/models"
)

// DeduplicationIndex tracks identity keys for funding leads so repeated
// imports of the same fund are skipped instead of duplicated.
//
// Each record contributes up to two keys: name joined with website, and
// name joined with category (or the first geo focus entry when category
// is empty). A key with an empty segment is never indexed, so two records
// that both lack a website do not collide on name alone.
type DeduplicationIndex struct {
	keys map[string]struct{}
}

// NewDeduplicationIndex builds an index seeded from existing records.
func NewDeduplicationIndex(existing []models.FundingLead) *DeduplicationIndex {
	idx := &DeduplicationIndex{keys: make(map[string]struct{}, len(existing)*2)}
	for i := range existing {
		idx.Add(existing[i])
	}
	return idx
}

// Seen reports whether any identity key of lead is already indexed.
func (idx *DeduplicationIndex) Seen(lead models.FundingLead) bool {
	for _, key := range identityKeys(lead) {
		if _, ok := idx.keys[key]; ok {
			return true
		}
	}
	return false
}

// Add indexes the identity keys of lead.
func (idx *DeduplicationIndex) Add(lead models.FundingLead) {
	for _, key := range identityKeys(lead) {
		idx.keys[key] = struct{}{}
	}
}

func identityKeys(lead models.FundingLead) []string {
	name := normalizeKeyPart(lead.Name)
	if name == "" {
		return nil
	}

	var keys []string
	if website := normalizeKeyPart(derefOr(lead.WebsiteURL)); website != "" {
		keys = append(keys, name+"::"+website)
	}

	secondary := normalizeKeyPart(derefOr(lead.Category))
	if secondary == "" && len(lead.GeoFocus) > 0 {
		secondary = normalizeKeyPart(lead.GeoFocus[0])
	}
	if secondary != "" {
		keys = append(keys, name+"::"+secondary)
	}
	return keys
}

func normalizeKeyPart(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func derefOr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
