// Package hypothesis classifies outreach leads by industry and assembles
// the outreach narrative shown to the user. Both entry points are pure and
// idempotent: regenerating a hypothesis for unchanged inputs yields the
// same text.
package hypothesis

import (
	"fmt"

	"github.com/datapoolml/outreach-crm/internal/models"
)

// Data-intensity tiers used by both the cluster adjustment and the
// narrative.
const (
	lowIntensityCeil  = 1
	midIntensity      = 2
	highIntensityTier = 3
)

// DeriveCluster returns the industry cluster for a lead, adjusting the
// rule's base cluster by data intensity: high-fit industries demote one
// step when the lead has little data, and low-fit industries promote when
// the lead is highly data-intensive.
func DeriveCluster(industry string, dataIntensity int) models.Cluster {
	rule := RuleFor(industry)

	switch {
	case rule.BaseCluster == models.ClusterHigh && dataIntensity <= lowIntensityCeil:
		return models.ClusterMedium
	case rule.BaseCluster == models.ClusterMedium && dataIntensity <= lowIntensityCeil:
		return models.ClusterLow
	case rule.BaseCluster == models.ClusterLow && dataIntensity >= highIntensityTier:
		return models.ClusterMedium
	default:
		return rule.BaseCluster
	}
}

// Input carries the lead fields the narrative depends on.
type Input struct {
	CompanyName           string
	Industry              string
	DataIntensity         int
	MLActivity            bool
	MLActivityDescription *string
}

// Generate assembles the hypothesis text: a fit sentence, the likely use
// case, potential partners, a data-intensity signal, and an ML-activity
// signal.
func Generate(in Input) string {
	rule := RuleFor(in.Industry)

	var dataSignal string
	switch {
	case in.DataIntensity >= highIntensityTier:
		dataSignal = "The company appears highly data-intensive, improving the probability of measurable early ROI."
	case in.DataIntensity == midIntensity:
		dataSignal = "There is enough operational data to launch a focused pilot with measurable business value."
	default:
		dataSignal = "A narrow pilot should be selected first to validate value before scaling."
	}

	var mlSignal string
	switch {
	case in.MLActivity && in.MLActivityDescription != nil && *in.MLActivityDescription != "":
		mlSignal = fmt.Sprintf("Existing ML momentum (%s) lowers adoption friction.", *in.MLActivityDescription)
	case in.MLActivity:
		mlSignal = "Existing ML activity lowers adoption friction."
	default:
		mlSignal = "A federated setup can de-risk the first production ML use cases through partner learning."
	}

	return fmt.Sprintf(
		"%s in %s is a strong FL candidate because %s. Likely use case: %s. Potential partners: %s. %s %s",
		in.CompanyName, in.Industry, rule.Reason, rule.UseCase, rule.PartnerTypes, dataSignal, mlSignal,
	)
}

// Regenerate recomputes the derived classification fields on a lead in
// place. Used on every create, update, and import, and by the explicit
// regenerate endpoint.
func Regenerate(lead *models.Lead) {
	lead.IndustryCluster = DeriveCluster(lead.Industry, lead.DataIntensity)
	lead.Hypothesis = Generate(Input{
		CompanyName:           lead.CompanyName,
		Industry:              lead.Industry,
		DataIntensity:         lead.DataIntensity,
		MLActivity:            lead.MLActivity,
		MLActivityDescription: lead.MLActivityDescription,
	})
}
