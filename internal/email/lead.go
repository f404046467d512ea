// Package email renders outreach drafts from token templates. Tokens use
// the {name} form and are replaced verbatim, so templates stay editable
// without format-verb escaping.
package email

import (
	"strings"

	"github.com/datapoolml/outreach-crm/internal/models"
)

// Draft is a rendered subject/body pair.
type Draft struct {
	Subject string
	Body    string
}

type template struct {
	subject string
	body    string
}

const defaultSender = "Your Name"

var outreachTemplates = map[models.EmailStyle]template{
	models.EmailShort: {
		subject: "Federated Learning idea for {companyName}",
		body: `Hi {contactName},

I noticed {companyName} is active in {industry}. We help teams launch federated learning pilots without sharing sensitive plant data.

Based on your context, a first step could be: {useCaseSummary}.

Would you be open to a 20-minute exchange next week?

Best,
{senderName}`,
	},
	models.EmailMedium: {
		subject: "Pilot concept: privacy-preserving ML for {companyName}",
		body: `Hi {contactName},

I am reaching out because {companyName} appears to be a strong candidate for federated learning in {industry}.

Hypothesis:
{hypothesis}

Our team supports Mittelstand companies in validating FL value with a pragmatic pilot plan, governance setup, and measurable business KPI targets.

If relevant, I can share a pilot blueprint tailored to your setup.

Would Tuesday or Thursday work for a short call?

Best regards,
{senderName}`,
	},
	models.EmailTechnical: {
		subject: "Technical FL pilot blueprint for {companyName}",
		body: `Hello {contactName},

We are building FL infrastructure for B2B operators that need cross-site learning while preserving local data control.

For {companyName}, a practical pilot in {industry} could center on {useCaseSummary}. The setup can be phased:
1) data readiness + feature contract,
2) local training nodes,
3) secure aggregation + evaluation,
4) KPI readout for pilot-go decision.

Key reason this is relevant:
{hypothesis}

If useful, I can send a one-page architecture draft before a technical intro call.

Regards,
{senderName}`,
	},
}

// RenderOutreach renders a lead outreach draft. Unknown styles fall back
// to SHORT. An empty sender renders as the generic placeholder.
func RenderOutreach(lead models.Lead, style models.EmailStyle, senderName string) Draft {
	tpl, ok := outreachTemplates[style]
	if !ok {
		tpl = outreachTemplates[models.EmailShort]
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = defaultSender
	}

	replacer := strings.NewReplacer(
		"{companyName}", lead.CompanyName,
		"{industry}", lead.Industry,
		"{contactName}", lead.ContactName,
		"{hypothesis}", lead.Hypothesis,
		"{useCaseSummary}", ExtractUseCaseSummary(lead.Hypothesis),
		"{senderName}", senderName,
	)
	return Draft{
		Subject: replacer.Replace(tpl.subject),
		Body:    replacer.Replace(tpl.body),
	}
}

// ExtractUseCaseSummary pulls the "Likely use case" clause out of a
// generated hypothesis. Hypotheses that lack the marker get a generic
// pilot suggestion.
func ExtractUseCaseSummary(hypothesis string) string {
	const marker = "Likely use case:"
	idx := strings.Index(hypothesis, marker)
	if idx == -1 {
		return "a federated anomaly and forecasting pilot"
	}

	tail := strings.TrimSpace(hypothesis[idx+len(marker):])
	if stop := strings.Index(tail, "Potential partners:"); stop != -1 {
		tail = tail[:stop]
	}
	return strings.TrimSuffix(strings.TrimSpace(tail), ".")
}
