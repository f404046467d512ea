package csvcodec

import (
	"strings"
	"testing"
	"time"

	"github.com/datapoolml/outreach-crm/internal/models"
)

func sampleLead() models.Lead {
	desc := "CV pilot in plant 2"
	notes := "met at Hannover Messe, who says \"hi\""
	followUp := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return models.Lead{
		ID:                     "lead-1",
		CompanyName:            "Acme Maschinen, GmbH",
		Industry:               "Maschinenbau",
		SizeEmployees:          250,
		DigitalMaturity:        2,
		DataIntensity:          3,
		CompetitivePressure:    1,
		CoopLikelihood:         2,
		MLActivity:             true,
		MLActivityDescription:  &desc,
		AssociationMemberships: models.StringList{"VDMA", "Bitkom"},
		DataTypes:              models.StringList{"sensor", "erp"},
		ContactName:            "Max Mustermann",
		ContactRole:            "CTO",
		ContactEmail:           "max@acme.example",
		WarmIntroPossible:      true,
		PriorityScore:          8,
		PriorityLabel:          4,
		IndustryCluster:        models.ClusterHigh,
		Hypothesis:             "Acme is a strong candidate.",
		Status:                 models.StatusContacted,
		NextFollowUpAt:         &followUp,
		Notes:                  &notes,
		CustomFieldValues:      models.StringMap{"region": "DACH"},
	}
}

func TestLeadTemplate(t *testing.T) {
	got := LeadTemplate()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("LeadTemplate() has %d lines, want header only", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,companyName,industry") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[0], "hypothesis") {
		t.Error("header missing hypothesis column")
	}
}

func TestEncodeDecodeLeadRoundTrip(t *testing.T) {
	lead := sampleLead()

	decoded := DecodeLeadRows(EncodeLeads([]models.Lead{lead}))
	if len(decoded) != 1 {
		t.Fatalf("decoded %d rows, want 1", len(decoded))
	}
	got := decoded[0]

	if got.CompanyName != lead.CompanyName {
		t.Errorf("CompanyName = %q, want %q", got.CompanyName, lead.CompanyName)
	}
	if got.SizeEmployees != 250 || got.DigitalMaturity != 2 || got.DataIntensity != 3 {
		t.Errorf("dimensions = %d/%d/%d", got.SizeEmployees, got.DigitalMaturity, got.DataIntensity)
	}
	if !got.MLActivity || got.MLActivityDescription == nil || *got.MLActivityDescription != "CV pilot in plant 2" {
		t.Errorf("ML fields = %v/%v", got.MLActivity, got.MLActivityDescription)
	}
	if len(got.AssociationMemberships) != 2 || got.AssociationMemberships[1] != "Bitkom" {
		t.Errorf("AssociationMemberships = %v", got.AssociationMemberships)
	}
	if got.CustomFieldValues["region"] != "DACH" {
		t.Errorf("CustomFieldValues = %v", got.CustomFieldValues)
	}
	if got.Status != models.StatusContacted {
		t.Errorf("Status = %v", got.Status)
	}
	if got.Notes == nil || !strings.Contains(*got.Notes, `"hi"`) {
		t.Errorf("Notes = %v, embedded quotes must survive", got.Notes)
	}
	if got.NextFollowUpAt == nil || !got.NextFollowUpAt.Equal(*lead.NextFollowUpAt) {
		t.Errorf("NextFollowUpAt = %v", got.NextFollowUpAt)
	}
	// The exported cluster cell comes back as a manual override.
	if got.ClusterOverride == nil || *got.ClusterOverride != models.ClusterHigh {
		t.Errorf("ClusterOverride = %v, want HIGH", got.ClusterOverride)
	}
}

func TestEncodeLeads_ExportsEffectiveCluster(t *testing.T) {
	lead := sampleLead()
	override := models.ClusterLow
	lead.ClusterOverride = &override

	out := EncodeLeads([]models.Lead{lead})
	if !strings.Contains(out, ",LOW,") {
		t.Error("export must use the effective (overridden) cluster")
	}
}

func TestDecodeLeadRows_ReorderedColumns(t *testing.T) {
	input := "industry,companyName,contactEmail\nMaschinenbau,Acme,info@acme.example\n"
	got := DecodeLeadRows(input)
	if len(got) != 1 {
		t.Fatalf("decoded %d rows, want 1", len(got))
	}
	if got[0].CompanyName != "Acme" || got[0].Industry != "Maschinenbau" {
		t.Errorf("row = %+v, columns must map by header name", got[0])
	}
}

func TestDecodeLeadRows_Defaults(t *testing.T) {
	input := "companyName,sizeEmployees,status,industryCluster\nAcme,,BOGUS,PURPLE\n"
	got := DecodeLeadRows(input)
	if len(got) != 1 {
		t.Fatalf("decoded %d rows, want 1", len(got))
	}
	if got[0].SizeEmployees != 1 {
		t.Errorf("SizeEmployees = %d, want fallback 1", got[0].SizeEmployees)
	}
	if got[0].Status != models.StatusNew {
		t.Errorf("Status = %v, want NEW fallback", got[0].Status)
	}
	if got[0].ClusterOverride != nil {
		t.Errorf("ClusterOverride = %v, unknown token must mean no override", got[0].ClusterOverride)
	}
}

func TestDecodeLeadRows_EmptyInput(t *testing.T) {
	if got := DecodeLeadRows(""); len(got) != 0 {
		t.Errorf("DecodeLeadRows(empty) = %v, want none", got)
	}
	if got := DecodeLeadRows("id,companyName\n"); len(got) != 0 {
		t.Errorf("DecodeLeadRows(header only) = %v, want none", got)
	}
}
