package filter

import (
	"net/url"
	"strconv"
	"time"

	"github.com/datapoolml/outreach-crm/internal/models"
)

// Funding sort keys. A single key is active at a time.
const (
	SortPriorityDesc     = "PRIORITY_DESC"
	SortNextFollowUpAsc  = "NEXT_FOLLOW_UP_ASC"
	SortTicketMaxDesc    = "TICKET_MAX_DESC"
	SortLastContactDesc  = "LAST_CONTACTED_DESC"
	SortFitScoreDesc     = "FIT_SCORE_DESC"
	nilFollowUpHorizonYr = 10
)

// FundingFilters holds the parsed funding list criteria. Zero values
// mean "no filter" throughout.
type FundingFilters struct {
	Query          string
	FundTypes      []string
	Statuses       []string
	StageFocus     []string
	TicketMin      *int64
	TicketMax      *int64
	GeoFocus       []string
	ThesisTags     []string
	WarmIntroOnly  bool
	DeadlineWindow string
	VerifiedWindow string
	FitClusters    []string
	Priorities     []int
	FollowUpWindow string
	Sort           string
}

// ParseFundingFilters reads the filter spec from query parameters. Multi
// value parameters are comma-joined; unrecognized window or sort tokens
// fall back silently.
func ParseFundingFilters(params url.Values) FundingFilters {
	var priorities []int
	for _, raw := range ParseList(params.Get("priority")) {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 5 {
			priorities = append(priorities, n)
		}
	}

	return FundingFilters{
		Query:          params.Get("q"),
		FundTypes:      ParseList(params.Get("fund_type")),
		Statuses:       ParseList(params.Get("status")),
		StageFocus:     ParseList(params.Get("stage_focus")),
		TicketMin:      parseInt64(params.Get("ticket_min")),
		TicketMax:      parseInt64(params.Get("ticket_max")),
		GeoFocus:       ParseList(params.Get("geo")),
		ThesisTags:     ParseList(params.Get("thesis")),
		WarmIntroOnly:  params.Get("warm_intro") == "1",
		DeadlineWindow: validWindow(params.Get("deadline_window"), Deadline0To30, Deadline31To90, Deadline90Plus, DeadlineNone),
		VerifiedWindow: validWindow(params.Get("last_verified"), Verified0To90, Verified90To180, Verified180Plus),
		FitClusters:    ParseList(params.Get("fit_cluster")),
		Priorities:     priorities,
		FollowUpWindow: validWindow(params.Get("next_follow_up"), FollowUpThisWeek, FollowUpOverdue, FollowUpNone),
		Sort:           validSort(params.Get("sort")),
	}
}

func validSort(token string) string {
	switch token {
	case SortPriorityDesc, SortNextFollowUpAsc, SortTicketMaxDesc, SortLastContactDesc, SortFitScoreDesc:
		return token
	}
	return SortPriorityDesc
}

func parseInt64(value string) *int64 {
	if value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// FundingLeads filters and sorts funding leads by the given criteria. Cluster
// filtering uses the effective cluster, so a manual override wins over the
// derived value.
func FundingLeads(leads []models.FundingLead, filters FundingFilters, now time.Time) []models.FundingLead {
	predicates := []Predicate[models.FundingLead]{
		TextSearch(filters.Query, fundingSearchPool),
		InSet(filters.FundTypes, func(l models.FundingLead) string { return string(l.FundType) }),
		InSet(filters.Statuses, func(l models.FundingLead) string { return string(l.Status) }),
		Intersects(filters.StageFocus, func(l models.FundingLead) []string { return stageStrings(l.StageFocus) }),
		Intersects(filters.GeoFocus, func(l models.FundingLead) []string { return l.GeoFocus }),
		Intersects(filters.ThesisTags, func(l models.FundingLead) []string { return l.ThesisTags }),
		FlagTrue(filters.WarmIntroOnly, func(l models.FundingLead) bool { return l.WarmIntroPossible }),
		DeadlineWindow(filters.DeadlineWindow, now, func(l models.FundingLead) *time.Time { return l.GrantDeadline }),
		VerifiedWindow(filters.VerifiedWindow, now, func(l models.FundingLead) *time.Time { return l.LastVerifiedAt }),
		FollowUpWindow(filters.FollowUpWindow, now, func(l models.FundingLead) *time.Time { return l.NextFollowUpAt }),
		InSet(filters.FitClusters, func(l models.FundingLead) string { return string(l.EffectiveCluster()) }),
		IntInSet(filters.Priorities, func(l models.FundingLead) int { return l.Priority }),
		TicketRange(filters.TicketMin, filters.TicketMax, func(l models.FundingLead) (*int64, *int64) {
			return l.TicketMin, l.TicketMax
		}),
	}

	return Apply(leads, predicates, fundingLess(filters.Sort, now))
}

func fundingSearchPool(l models.FundingLead) []string {
	pool := []string{
		l.Name,
		deref(l.Category),
		deref(l.PrimaryContactName),
		deref(l.PrimaryContactRole),
		deref(l.ContactEmail),
		deref(l.WebsiteURL),
		deref(l.Owner),
	}
	pool = append(pool, l.GeoFocus...)
	pool = append(pool, l.ThesisTags...)
	return pool
}

func fundingLess(sortKey string, now time.Time) func(a, b models.FundingLead) bool {
	farFuture := now.AddDate(nilFollowUpHorizonYr, 0, 0)
	switch sortKey {
	case SortFitScoreDesc:
		return func(a, b models.FundingLead) bool { return a.FitScore > b.FitScore }
	case SortTicketMaxDesc:
		return func(a, b models.FundingLead) bool {
			return int64OrZero(a.TicketMax) > int64OrZero(b.TicketMax)
		}
	case SortLastContactDesc:
		// Missing dates sort as earliest, i.e. last.
		return func(a, b models.FundingLead) bool {
			return timeOrZero(a.LastContactedAt).After(timeOrZero(b.LastContactedAt))
		}
	case SortNextFollowUpAsc:
		// Missing dates sort last, treated as far future.
		return func(a, b models.FundingLead) bool {
			return timeOr(a.NextFollowUpAt, farFuture).Before(timeOr(b.NextFollowUpAt, farFuture))
		}
	default:
		return func(a, b models.FundingLead) bool { return a.Priority > b.Priority }
	}
}

func stageStrings(stages models.StageList) []string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = string(s)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func int64OrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func timeOr(t *time.Time, fallback time.Time) time.Time {
	if t == nil {
		return fallback
	}
	return *t
}
