package hypothesis

import (
	"strings"

	"github.com/datapoolml/outreach-crm/internal/models"
)

// IndustryRule is a playbook entry for one industry: why federated learning
// fits, the likely first use case, who the partners would be, and the base
// fit cluster before the data-intensity adjustment.
type IndustryRule struct {
	Reason       string
	UseCase      string
	PartnerTypes string
	BaseCluster  models.Cluster
}

// industryRules is keyed on the normalized (trimmed, lowercased) industry
// string. Keys are the German industry names the intake form uses.
var industryRules = map[string]IndustryRule{
	"maschinenbau": {
		Reason:       "distributed machine telemetry across plants can improve model quality without exposing process IP",
		UseCase:      "predictive maintenance and quality anomaly detection",
		PartnerTypes: "OEM equipment makers, MES providers, and maintenance partners",
		BaseCluster:  models.ClusterHigh,
	},
	"energie": {
		Reason:       "critical infrastructure operators need collaborative forecasting while preserving operational security",
		UseCase:      "load forecasting, grid anomaly detection, and asset failure prediction",
		PartnerTypes: "grid operators, smart meter providers, and forecasting consultants",
		BaseCluster:  models.ClusterHigh,
	},
	"automotive zulieferer": {
		Reason:       "suppliers benefit from shared quality signals across production lines without sharing sensitive customer data",
		UseCase:      "defect prediction, process drift detection, and supply-chain risk scoring",
		PartnerTypes: "tier-1 suppliers, plant system integrators, and quality software vendors",
		BaseCluster:  models.ClusterHigh,
	},
	"lebensmittelproduktion": {
		Reason:       "multi-site production data can raise consistency while respecting recipe confidentiality",
		UseCase:      "yield optimization, quality variance prediction, and cold-chain anomaly detection",
		PartnerTypes: "production sites, food safety labs, and packaging automation vendors",
		BaseCluster:  models.ClusterMedium,
	},
	"industrie 4.0 software": {
		Reason:       "platform players can unlock stronger benchmarks by learning across customer environments privately",
		UseCase:      "cross-client anomaly detection, process benchmarking, and downtime prediction",
		PartnerTypes: "industrial SaaS vendors, cloud-edge providers, and system integrators",
		BaseCluster:  models.ClusterHigh,
	},
}

var softwareRule = IndustryRule{
	Reason:       "software providers can create stronger collaborative models without exposing tenant-level data",
	UseCase:      "cross-customer anomaly and demand prediction",
	PartnerTypes: "data platform vendors, implementation partners, and lighthouse customers",
	BaseCluster:  models.ClusterMedium,
}

var manufacturingRule = IndustryRule{
	Reason:       "production networks gain from multi-plant learning while protecting proprietary processes",
	UseCase:      "quality prediction and predictive maintenance",
	PartnerTypes: "equipment OEMs, sensor vendors, and plant analytics teams",
	BaseCluster:  models.ClusterHigh,
}

var genericRule = IndustryRule{
	Reason:       "sensitive enterprise data can still be leveraged collaboratively through privacy-preserving training",
	UseCase:      "anomaly detection and planning optimization",
	PartnerTypes: "industry associations, peer companies, and specialized data partners",
	BaseCluster:  models.ClusterLow,
}

// RuleFor resolves the playbook rule for an industry: exact match on the
// normalized name first, then ordered substring fallbacks, then the generic
// low-cluster rule.
func RuleFor(industry string) IndustryRule {
	normalized := strings.ToLower(strings.TrimSpace(industry))

	if rule, ok := industryRules[normalized]; ok {
		return rule
	}
	if strings.Contains(normalized, "software") || strings.Contains(normalized, "saas") {
		return softwareRule
	}
	if strings.Contains(normalized, "manufactur") || strings.Contains(normalized, "produktion") {
		return manufacturingRule
	}
	return genericRule
}
