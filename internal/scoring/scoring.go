// Package scoring derives priority scores, labels, and fit clusters from
// manually entered qualitative dimensions. All functions are pure; callers
// must invoke them in the same logical write as any dimension change so
// stored derived fields never go stale.
package scoring

import "github.com/datapoolml/outreach-crm/internal/models"

// Dimension ranges. The two major dimensions run 0..3, the two minor 0..2,
// giving a 0..10 total for both domains.
const (
	maxMajor = 3
	maxMinor = 2
)

// Label thresholds over the 0..10 score.
const (
	labelCeil1 = 2
	labelCeil2 = 4
	labelCeil3 = 6
	labelCeil4 = 8
)

// Cluster thresholds (funding domain).
const (
	clusterHighMin   = 8
	clusterMediumMin = 5
)

// LeadDimensions are the four outreach sub-scores.
type LeadDimensions struct {
	DigitalMaturity     int
	DataIntensity       int
	CompetitivePressure int
	CoopLikelihood      int
}

// FundingDimensions are the four funding match sub-scores.
type FundingDimensions struct {
	StageMatch  int
	ThesisMatch int
	GeoMatch    int
	TicketMatch int
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// PriorityScore sums the clamped outreach dimensions into a 0..10 score.
func PriorityScore(d LeadDimensions) int {
	return clamp(d.DigitalMaturity, 0, maxMajor) +
		clamp(d.DataIntensity, 0, maxMajor) +
		clamp(d.CompetitivePressure, 0, maxMinor) +
		clamp(d.CoopLikelihood, 0, maxMinor)
}

// FitScore sums the clamped funding dimensions into a 0..10 score.
func FitScore(d FundingDimensions) int {
	return clamp(d.StageMatch, 0, maxMajor) +
		clamp(d.ThesisMatch, 0, maxMajor) +
		clamp(d.GeoMatch, 0, maxMinor) +
		clamp(d.TicketMatch, 0, maxMinor)
}

// PriorityLabel maps a 0..10 score onto the 1..5 priority scale. The same
// thresholds apply to both domains.
func PriorityLabel(score int) int {
	switch {
	case score <= labelCeil1:
		return 1
	case score <= labelCeil2:
		return 2
	case score <= labelCeil3:
		return 3
	case score <= labelCeil4:
		return 4
	default:
		return 5
	}
}

// FitCluster maps a funding fit score onto HIGH/MEDIUM/LOW.
func FitCluster(score int) models.Cluster {
	switch {
	case score >= clusterHighMin:
		return models.ClusterHigh
	case score >= clusterMediumMin:
		return models.ClusterMedium
	default:
		return models.ClusterLow
	}
}

// RecomputeLead refreshes every derived field on an outreach lead except the
// hypothesis and industry cluster, which belong to the classification engine.
func RecomputeLead(lead *models.Lead) {
	lead.PriorityScore = PriorityScore(LeadDimensions{
		DigitalMaturity:     lead.DigitalMaturity,
		DataIntensity:       lead.DataIntensity,
		CompetitivePressure: lead.CompetitivePressure,
		CoopLikelihood:      lead.CoopLikelihood,
	})
	lead.PriorityLabel = PriorityLabel(lead.PriorityScore)
}

// RecomputeFundingLead refreshes every derived field on a funding lead.
func RecomputeFundingLead(lead *models.FundingLead) {
	lead.FitScore = FitScore(FundingDimensions{
		StageMatch:  lead.StageMatch,
		ThesisMatch: lead.ThesisMatch,
		GeoMatch:    lead.GeoMatch,
		TicketMatch: lead.TicketMatch,
	})
	lead.Priority = PriorityLabel(lead.FitScore)
	lead.FitCluster = FitCluster(lead.FitScore)
}
