package filter

import (
	"net/url"
	"testing"
	"time"

	"github.com/datapoolml/outreach-crm/internal/models"
)

func TestParseLeadFilters(t *testing.T) {
	params := url.Values{}
	params.Set("q", "acme")
	params.Set("status", "NEW,CONTACTED")
	params.Set("cluster", "ALL")

	got := ParseLeadFilters(params)

	if got.Query != "acme" {
		t.Errorf("Query = %q, want acme", got.Query)
	}
	if len(got.Statuses) != 2 {
		t.Errorf("Statuses = %v, want two entries", got.Statuses)
	}
	if got.Clusters != nil {
		t.Errorf("Clusters = %v, ALL token must mean no filter", got.Clusters)
	}
}

func leadFixture(name string, score int, status models.PipelineStatus) models.Lead {
	return models.Lead{
		CompanyName:     name,
		Industry:        "Maschinenbau",
		PriorityScore:   score,
		Status:          status,
		IndustryCluster: models.ClusterMedium,
	}
}

func TestLeads_FilterAndSort(t *testing.T) {
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	soon := now.AddDate(0, 0, 2)
	later := now.AddDate(0, 0, 9)

	a := leadFixture("Alpha", 7, models.StatusNew)
	a.NextFollowUpAt = &later
	b := leadFixture("Beta", 7, models.StatusNew)
	b.NextFollowUpAt = &soon
	c := leadFixture("Gamma", 9, models.StatusNew)
	d := leadFixture("Delta", 10, models.StatusWon)

	got := Leads([]models.Lead{a, b, c, d}, LeadFilters{Statuses: []string{"NEW"}}, now)

	if len(got) != 3 {
		t.Fatalf("Leads() returned %d records, want 3", len(got))
	}
	// Score desc first, then follow-up asc with missing dates last.
	if got[0].CompanyName != "Gamma" {
		t.Errorf("got[0] = %s, want Gamma (highest score)", got[0].CompanyName)
	}
	if got[1].CompanyName != "Beta" {
		t.Errorf("got[1] = %s, want Beta (earlier follow-up)", got[1].CompanyName)
	}
	if got[2].CompanyName != "Alpha" {
		t.Errorf("got[2] = %s, want Alpha", got[2].CompanyName)
	}
}

func TestLeads_MissingFollowUpSortsLast(t *testing.T) {
	now := time.Now()
	soon := now.AddDate(0, 0, 1)

	withDate := leadFixture("Dated", 5, models.StatusNew)
	withDate.NextFollowUpAt = &soon
	without := leadFixture("Undated", 5, models.StatusNew)

	got := Leads([]models.Lead{without, withDate}, LeadFilters{}, now)
	if got[0].CompanyName != "Dated" {
		t.Errorf("got[0] = %s, want Dated before missing follow-up", got[0].CompanyName)
	}
}

func TestLeads_ClusterFilterUsesOverride(t *testing.T) {
	now := time.Now()
	override := models.ClusterHigh

	derived := leadFixture("DerivedMedium", 5, models.StatusNew)
	overridden := leadFixture("OverriddenHigh", 5, models.StatusNew)
	overridden.ClusterOverride = &override

	got := Leads([]models.Lead{derived, overridden}, LeadFilters{Clusters: []string{"HIGH"}}, now)
	if len(got) != 1 || got[0].CompanyName != "OverriddenHigh" {
		t.Errorf("Leads() = %v, want only the overridden lead", got)
	}
}

func TestLeads_TextSearchCoversContactAndLists(t *testing.T) {
	now := time.Now()

	lead := leadFixture("Acme", 5, models.StatusNew)
	lead.ContactName = "Max Mustermann"
	lead.DataTypes = models.StringList{"Sensor Telemetry"}

	if got := Leads([]models.Lead{lead}, LeadFilters{Query: "mustermann"}, now); len(got) != 1 {
		t.Error("query must match the contact name")
	}
	if got := Leads([]models.Lead{lead}, LeadFilters{Query: "telemetry"}, now); len(got) != 1 {
		t.Error("query must match data types")
	}
	if got := Leads([]models.Lead{lead}, LeadFilters{Query: "blockchain"}, now); len(got) != 0 {
		t.Error("non-matching query must filter the lead out")
	}
}
