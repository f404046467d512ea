package csvcodec

import (
	"strconv"
	"strings"

	"github.com/datapoolml/outreach-crm/internal/models"
)

// fundingHeaders is the fixed funding export column order.
var fundingHeaders = []string{
	"id",
	"name",
	"fundType",
	"category",
	"primaryContactName",
	"primaryContactRole",
	"contactEmail",
	"linkedinUrl",
	"websiteUrl",
	"stageFocus",
	"targetStage",
	"ticketMin",
	"ticketMax",
	"currency",
	"typicalInstrument",
	"grantDeadline",
	"grantRequirements",
	"thesisTags",
	"industryFocus",
	"geoFocus",
	"warmIntroPossible",
	"introPath",
	"stageMatch",
	"thesisMatch",
	"geoMatch",
	"ticketMatch",
	"fitScore",
	"priority",
	"fitCluster",
	"status",
	"firstContactedAt",
	"lastContactedAt",
	"nextFollowUpAt",
	"cadenceStep",
	"outcomeNotes",
	"reasonLost",
	"objections",
	"nextSteps",
	"owner",
	"sourceText",
	"sourceUrl",
	"lastVerifiedAt",
	"attachments",
	"notes",
}

// EncodeFundingLeads renders funding leads as CSV in the fixed column order.
func EncodeFundingLeads(leads []models.FundingLead) string {
	rows := make([][]string, len(leads))
	for i, lead := range leads {
		rows[i] = fundingRow(lead)
	}
	return document(fundingHeaders, rows)
}

// FundingTemplate returns the header-only import template.
func FundingTemplate() string {
	return document(fundingHeaders, nil)
}

func fundingRow(lead models.FundingLead) []string {
	reasonLost := ""
	if lead.ReasonLost != nil {
		reasonLost = string(*lead.ReasonLost)
	}
	stages := make([]string, len(lead.StageFocus))
	for i, s := range lead.StageFocus {
		stages[i] = string(s)
	}
	return []string{
		lead.ID,
		lead.Name,
		string(lead.FundType),
		derefString(lead.Category),
		derefString(lead.PrimaryContactName),
		derefString(lead.PrimaryContactRole),
		derefString(lead.ContactEmail),
		derefString(lead.LinkedinURL),
		derefString(lead.WebsiteURL),
		joinList(stages),
		string(lead.TargetStage),
		formatInt64Ptr(lead.TicketMin),
		formatInt64Ptr(lead.TicketMax),
		lead.Currency,
		derefString(lead.TypicalInstrument),
		formatDate(lead.GrantDeadline),
		derefString(lead.GrantRequirements),
		joinList(lead.ThesisTags),
		joinList(lead.IndustryFocus),
		joinList(lead.GeoFocus),
		strconv.FormatBool(lead.WarmIntroPossible),
		derefString(lead.IntroPath),
		strconv.Itoa(lead.StageMatch),
		strconv.Itoa(lead.ThesisMatch),
		strconv.Itoa(lead.GeoMatch),
		strconv.Itoa(lead.TicketMatch),
		strconv.Itoa(lead.FitScore),
		strconv.Itoa(lead.Priority),
		string(lead.EffectiveCluster()),
		string(lead.Status),
		formatDate(lead.FirstContactedAt),
		formatDate(lead.LastContactedAt),
		formatDate(lead.NextFollowUpAt),
		formatIntPtr(lead.CadenceStep),
		derefString(lead.OutcomeNotes),
		reasonLost,
		derefString(lead.Objections),
		derefString(lead.NextSteps),
		derefString(lead.Owner),
		derefString(lead.SourceText),
		derefString(lead.SourceURL),
		formatDate(lead.LastVerifiedAt),
		joinList(lead.Attachments),
		derefString(lead.Notes),
	}
}

// DecodeFundingRows parses raw CSV text into coerced funding rows. Unknown
// enum tokens coerce to their documented defaults; an explicit fitCluster
// cell becomes a manual override while the derived cluster is recomputed.
func DecodeFundingRows(input string) []models.FundingLead {
	doc := parseDocument(input)
	leads := make([]models.FundingLead, 0, len(doc.rows))
	for _, row := range doc.rows {
		currency := strings.TrimSpace(doc.get(row, "currency"))
		if currency == "" {
			currency = "EUR"
		}
		leads = append(leads, models.FundingLead{
			Name:               strings.TrimSpace(doc.get(row, "name")),
			FundType:           models.ParseFundType(doc.get(row, "fundType")),
			Category:           optionalCell(doc.get(row, "category")),
			PrimaryContactName: optionalCell(doc.get(row, "primaryContactName")),
			PrimaryContactRole: optionalCell(doc.get(row, "primaryContactRole")),
			ContactEmail:       optionalCell(doc.get(row, "contactEmail")),
			LinkedinURL:        optionalCell(doc.get(row, "linkedinUrl")),
			WebsiteURL:         optionalCell(doc.get(row, "websiteUrl")),
			StageFocus:         models.ParseStageList(doc.get(row, "stageFocus")),
			TargetStage:        models.ParseTargetStage(doc.get(row, "targetStage")),
			TicketMin:          toInt64Ptr(doc.get(row, "ticketMin")),
			TicketMax:          toInt64Ptr(doc.get(row, "ticketMax")),
			Currency:           currency,
			TypicalInstrument:  optionalCell(doc.get(row, "typicalInstrument")),
			GrantDeadline:      toDate(doc.get(row, "grantDeadline")),
			GrantRequirements:  optionalCell(doc.get(row, "grantRequirements")),
			ThesisTags:         splitList(doc.get(row, "thesisTags")),
			IndustryFocus:      splitList(doc.get(row, "industryFocus")),
			GeoFocus:           splitList(doc.get(row, "geoFocus")),
			WarmIntroPossible:  toBool(doc.get(row, "warmIntroPossible")),
			IntroPath:          optionalCell(doc.get(row, "introPath")),
			StageMatch:         toInt(doc.get(row, "stageMatch"), 0),
			ThesisMatch:        toInt(doc.get(row, "thesisMatch"), 0),
			GeoMatch:           toInt(doc.get(row, "geoMatch"), 0),
			TicketMatch:        toInt(doc.get(row, "ticketMatch"), 0),
			FitClusterOverride: models.ParseCluster(doc.get(row, "fitCluster")),
			Status:             models.ParseFundingStatus(doc.get(row, "status")),
			FirstContactedAt:   toDate(doc.get(row, "firstContactedAt")),
			LastContactedAt:    toDate(doc.get(row, "lastContactedAt")),
			NextFollowUpAt:     toDate(doc.get(row, "nextFollowUpAt")),
			CadenceStep:        toIntPtr(doc.get(row, "cadenceStep")),
			OutcomeNotes:       optionalCell(doc.get(row, "outcomeNotes")),
			ReasonLost:         models.ParseReasonLost(doc.get(row, "reasonLost")),
			Objections:         optionalCell(doc.get(row, "objections")),
			NextSteps:          optionalCell(doc.get(row, "nextSteps")),
			Owner:              optionalCell(doc.get(row, "owner")),
			SourceText:         optionalCell(doc.get(row, "sourceText")),
			SourceURL:          optionalCell(doc.get(row, "sourceUrl")),
			LastVerifiedAt:     toDate(doc.get(row, "lastVerifiedAt")),
			Attachments:        splitList(doc.get(row, "attachments")),
			Notes:              optionalCell(doc.get(row, "notes")),
		})
	}
	return leads
}
