package email

import (
	"strings"
	"testing"

	"github.com/datapoolml/outreach-crm/internal/models"
)

func fundingLead() models.FundingLead {
	contact := "Anna Schmidt"
	min := int64(500_000)
	max := int64(2_000_000)
	return models.FundingLead{
		Name:               "Nordlicht Ventures",
		PrimaryContactName: &contact,
		TargetStage:        models.StagePreSeed,
		TicketMin:          &min,
		TicketMax:          &max,
		Currency:           "EUR",
		ThesisTags:         models.StringList{"federated learning", "privacy"},
		GeoFocus:           models.StringList{"DACH"},
		FitScore:           8,
		Priority:           4,
	}
}

func TestRenderFunding_Short(t *testing.T) {
	draft := RenderFunding(fundingLead(), models.EmailShort, "")

	if draft.Subject != "Kurzer Intro-Ping: datapool.ml x Nordlicht Ventures" {
		t.Errorf("Subject = %q", draft.Subject)
	}
	for _, want := range []string{
		"Hi Anna Schmidt,",
		"Nordlicht Ventures sehr gut zu datapool.ml passen könnte",
		"Score 8/10 (Priority 4/5), Tags: federated learning, privacy, Geo: DACH.",
		"Beste Grüße\nNiklas",
	} {
		if !strings.Contains(draft.Body, want) {
			t.Errorf("Body missing %q:\n%s", want, draft.Body)
		}
	}
}

func TestRenderFunding_MediumIncludesStageAndTicket(t *testing.T) {
	draft := RenderFunding(fundingLead(), models.EmailMedium, "Niklas")

	if !strings.Contains(draft.Body, "Zielstage: PRE SEED") {
		t.Errorf("Body missing stage label:\n%s", draft.Body)
	}
	if !strings.Contains(draft.Body, "Ticket-Wunsch: 500.000 - 2.000.000 EUR") {
		t.Errorf("Body missing ticket range:\n%s", draft.Body)
	}
}

func TestRenderFunding_GrantUsesGeoFocus(t *testing.T) {
	lead := fundingLead()
	draft := RenderFunding(lead, models.EmailGrant, "Niklas")

	if !strings.Contains(draft.Subject, "Förderfit Anfrage") {
		t.Errorf("Subject = %q", draft.Subject)
	}
	if !strings.Contains(draft.Body, "Geografie: DACH") {
		t.Errorf("Body missing geo focus:\n%s", draft.Body)
	}

	lead.GeoFocus = nil
	draft = RenderFunding(lead, models.EmailGrant, "Niklas")
	if !strings.Contains(draft.Body, "Geografie: EU") {
		t.Error("missing geo focus must fall back to EU")
	}
}

func TestRenderFunding_MissingContactRendersTeam(t *testing.T) {
	lead := fundingLead()
	lead.PrimaryContactName = nil

	draft := RenderFunding(lead, models.EmailShort, "Niklas")
	if !strings.Contains(draft.Body, "Hi Team,") {
		t.Errorf("Body = %q, want Team fallback", draft.Body)
	}
}

func TestRenderFunding_UnknownStyleFallsBackToShort(t *testing.T) {
	lead := fundingLead()
	unknown := RenderFunding(lead, models.EmailStyle("FAX"), "Niklas")
	short := RenderFunding(lead, models.EmailShort, "Niklas")

	if unknown.Subject != short.Subject {
		t.Error("unknown style must render the SHORT template")
	}
}

func TestFitSummary_Defaults(t *testing.T) {
	lead := models.FundingLead{FitScore: 3, Priority: 2}
	got := FitSummary(lead)
	want := "Score 3/10 (Priority 2/5), Tags: Federated Learning, Industrial AI, Geo: EU."
	if got != want {
		t.Errorf("FitSummary() = %q, want %q", got, want)
	}
}

func TestTicketRange(t *testing.T) {
	min := int64(500_000)
	max := int64(1_000_000)

	tests := []struct {
		name string
		lead models.FundingLead
		want string
	}{
		{"both bounds", models.FundingLead{TicketMin: &min, TicketMax: &max, Currency: "EUR"}, "500.000 - 1.000.000 EUR"},
		{"min only", models.FundingLead{TicketMin: &min, Currency: "EUR"}, "ab 500.000 EUR"},
		{"max only", models.FundingLead{TicketMax: &max, Currency: "USD"}, "bis 1.000.000 USD"},
		{"no bounds", models.FundingLead{Currency: "EUR"}, "n/a (EUR)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TicketRange(tt.lead); got != tt.want {
				t.Errorf("TicketRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{25_000, "25.000"},
		{1_000_000, "1.000.000"},
		{-1_500_000, "-1.500.000"},
	}

	for _, tt := range tests {
		if got := groupThousands(tt.in); got != tt.want {
			t.Errorf("groupThousands(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
