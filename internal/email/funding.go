package email

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/datapoolml/outreach-crm/internal/models"
)

const fundingSender = "Niklas"

// fundingCompany is the sender organisation named in funding templates.
const fundingCompany = "datapool.ml"

var fundingTemplates = map[models.EmailStyle]template{
	models.EmailShort: {
		subject: "Kurzer Intro-Ping: {companyName} x {name}",
		body: `Hi {contactName},

ich melde mich kurz, weil {name} sehr gut zu {companyName} passen könnte.

Wir bauen bei datapool.ml Federated-Learning-Infrastruktur für industrielle B2B-Use-Cases.
Kurz-Thesis: {fitSummary}

Wenn relevant, schicke ich euch gern ein 1-Pager Update.

Beste Grüße
{senderName}`,
	},
	models.EmailMedium: {
		subject: "Funding Fit: {companyName} für {name}",
		body: `Hi {contactName},

ich wollte mich melden, weil wir bei datapool.ml einen starken Fit mit {name} sehen.

Kontext:
- Zielstage: {targetStage}
- Ticket-Wunsch: {ticketRange}
- Fokus: Federated Learning für industrielle B2B-Workflows

Fit-Hypothese:
{fitSummary}

Wenn es passt, schicke ich euch gerne Deck + kurzes KPI-Update und wir stimmen einen Call ab.

Viele Grüße
{senderName}`,
	},
	models.EmailTechnical: {
		subject: "Technical fit note: {companyName} x {name}",
		body: `Hello {contactName},

we are building a federated learning platform for cross-company model training without centralizing sensitive data.

Why this might be relevant for {name}:
{fitSummary}

Current stage: {targetStage}
Ticket context: {ticketRange}

Happy to share a concise technical memo (architecture + pilot KPI framework) before a first call.

Best
{senderName}`,
	},
	models.EmailGrant: {
		subject: "Förderfit Anfrage: {companyName} für {name}",
		body: `Guten Tag {contactName},

wir prüfen aktuell passende Förderprogramme für datapool.ml und sehen bei {name} potenziellen Fit.

Kurzprofil:
- Stage: {targetStage}
- Fokus: Federated Learning, Industrial AI
- Geografie: {geoFocus}

Relevante Notiz:
{fitSummary}

Falls passend, würden wir gerne die Eligibility/Requirements kurz abstimmen.

Beste Grüße
{senderName}`,
	},
}

// RenderFunding renders a funding outreach draft for lead. Unknown styles
// fall back to SHORT; a missing contact renders as "Team".
func RenderFunding(lead models.FundingLead, style models.EmailStyle, senderName string) Draft {
	tpl, ok := fundingTemplates[style]
	if !ok {
		tpl = fundingTemplates[models.EmailShort]
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = fundingSender
	}
	contactName := "Team"
	if lead.PrimaryContactName != nil && strings.TrimSpace(*lead.PrimaryContactName) != "" {
		contactName = strings.TrimSpace(*lead.PrimaryContactName)
	}
	geo := "EU"
	if len(lead.GeoFocus) > 0 {
		geo = strings.Join(lead.GeoFocus, ", ")
	}

	replacer := strings.NewReplacer(
		"{name}", lead.Name,
		"{companyName}", fundingCompany,
		"{contactName}", contactName,
		"{fitSummary}", FitSummary(lead),
		"{targetStage}", stageLabel(lead.TargetStage),
		"{ticketRange}", TicketRange(lead),
		"{geoFocus}", geo,
		"{senderName}", senderName,
	)
	return Draft{
		Subject: replacer.Replace(tpl.subject),
		Body:    replacer.Replace(tpl.body),
	}
}

// FitSummary is the one-line thesis used in funding templates.
func FitSummary(lead models.FundingLead) string {
	tags := "Federated Learning, Industrial AI"
	if len(lead.ThesisTags) > 0 {
		tags = strings.Join(lead.ThesisTags, ", ")
	}
	geo := "EU"
	if len(lead.GeoFocus) > 0 {
		geo = strings.Join(lead.GeoFocus, ", ")
	}
	return fmt.Sprintf("Score %d/10 (Priority %d/5), Tags: %s, Geo: %s.",
		lead.FitScore, lead.Priority, tags, geo)
}

// TicketRange renders the ticket window with German thousand grouping.
func TicketRange(lead models.FundingLead) string {
	switch {
	case lead.TicketMin != nil && lead.TicketMax != nil:
		return fmt.Sprintf("%s - %s %s", groupThousands(*lead.TicketMin), groupThousands(*lead.TicketMax), lead.Currency)
	case lead.TicketMin != nil:
		return fmt.Sprintf("ab %s %s", groupThousands(*lead.TicketMin), lead.Currency)
	case lead.TicketMax != nil:
		return fmt.Sprintf("bis %s %s", groupThousands(*lead.TicketMax), lead.Currency)
	default:
		return fmt.Sprintf("n/a (%s)", lead.Currency)
	}
}

func stageLabel(stage models.Stage) string {
	return strings.ReplaceAll(string(stage), "_", " ")
}

func groupThousands(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
