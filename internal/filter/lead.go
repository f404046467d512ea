package filter

import (
	"net/url"
	"strings"
	"time"

	"github.com/datapoolml/outreach-crm/internal/models"
)

// LeadFilters holds the parsed outreach list criteria.
type LeadFilters struct {
	Query    string
	Statuses []string
	Clusters []string
}

// ParseLeadFilters reads the outreach filter spec from query parameters.
// "ALL" tokens are treated as no filter for backwards compatibility with
// the frontend select widgets.
func ParseLeadFilters(params url.Values) LeadFilters {
	return LeadFilters{
		Query:    params.Get("q"),
		Statuses: dropAll(ParseList(params.Get("status"))),
		Clusters: dropAll(ParseList(params.Get("cluster"))),
	}
}

func dropAll(values []string) []string {
	var out []string
	for _, v := range values {
		if !strings.EqualFold(v, "ALL") {
			out = append(out, v)
		}
	}
	return out
}

// Leads filters outreach leads and sorts them by priority score descending,
// next follow-up ascending (missing dates last), then company name.
// Cluster filtering uses the effective cluster.
func Leads(leads []models.Lead, filters LeadFilters, now time.Time) []models.Lead {
	predicates := []Predicate[models.Lead]{
		TextSearch(filters.Query, leadSearchPool),
		InSet(filters.Statuses, func(l models.Lead) string { return string(l.Status) }),
		InSet(filters.Clusters, func(l models.Lead) string { return string(l.EffectiveCluster()) }),
	}

	farFuture := now.AddDate(nilFollowUpHorizonYr, 0, 0)
	return Apply(leads, predicates, func(a, b models.Lead) bool {
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		aNext, bNext := timeOr(a.NextFollowUpAt, farFuture), timeOr(b.NextFollowUpAt, farFuture)
		if !aNext.Equal(bNext) {
			return aNext.Before(bNext)
		}
		return a.CompanyName < b.CompanyName
	})
}

func leadSearchPool(l models.Lead) []string {
	pool := []string{
		l.CompanyName,
		l.Industry,
		l.ContactName,
		l.ContactEmail,
	}
	pool = append(pool, l.AssociationMemberships...)
	pool = append(pool, l.DataTypes...)
	return pool
}
