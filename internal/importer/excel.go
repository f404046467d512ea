package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/datapoolml/outreach-crm/internal/hypothesis"
	"github.com/datapoolml/outreach-crm/internal/models"
	"github.com/datapoolml/outreach-crm/internal/scoring"
)

// ImportError reports a validation failure for a specific workbook row.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ExcelImport is the outcome of parsing a lead workbook.
type ExcelImport struct {
	Leads  []models.Lead
	Errors []ImportError
}

// ParseLeadWorkbook reads an .xlsx workbook and returns the valid lead
// rows with derived fields recomputed. The first sheet is used; row 1 is
// the header and maps columns by name, so column order does not matter.
// Invalid rows are reported with their Excel row number and skipped.
func ParseLeadWorkbook(r io.Reader) (ExcelImport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ExcelImport{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ExcelImport{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ExcelImport{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return ExcelImport{}, nil
	}

	index := map[string]int{}
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}

	var result ExcelImport
	for i, row := range rows[1:] {
		rowNum := i + 2 // Excel rows are 1-based, header is row 1
		cell := func(name string) string {
			col, ok := index[name]
			if !ok || col >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[col])
		}
		if rowEmpty(row) {
			continue
		}

		lead, rowErr := leadFromCells(cell)
		if rowErr != "" {
			result.Errors = append(result.Errors, ImportError{Row: rowNum, Error: rowErr})
			continue
		}
		scoring.RecomputeLead(&lead)
		hypothesis.Regenerate(&lead)
		result.Leads = append(result.Leads, lead)
	}
	return result, nil
}

func leadFromCells(cell func(string) string) (models.Lead, string) {
	required := []string{"companyName", "industry", "contactName", "contactRole", "contactEmail"}
	for _, name := range required {
		if cell(name) == "" {
			return models.Lead{}, name + " is required"
		}
	}

	sizeEmployees, err := cellInt(cell("sizeEmployees"), 1)
	if err != nil {
		return models.Lead{}, "sizeEmployees must be a number"
	}
	if sizeEmployees < 1 {
		return models.Lead{}, "sizeEmployees must be at least 1"
	}

	dims := []struct {
		name string
		max  int
	}{
		{"digitalMaturity", 3},
		{"dataIntensity", 3},
		{"competitivePressure", 2},
		{"coopLikelihood", 2},
	}
	values := make([]int, len(dims))
	for i, d := range dims {
		v, err := cellInt(cell(d.name), 0)
		if err != nil {
			return models.Lead{}, d.name + " must be a number"
		}
		if v < 0 || v > d.max {
			return models.Lead{}, fmt.Sprintf("%s must be between 0 and %d", d.name, d.max)
		}
		values[i] = v
	}

	lead := models.Lead{
		CompanyName:            cell("companyName"),
		Industry:               cell("industry"),
		SizeEmployees:          sizeEmployees,
		DigitalMaturity:        values[0],
		DataIntensity:          values[1],
		CompetitivePressure:    values[2],
		CoopLikelihood:         values[3],
		MLActivity:             cellBool(cell("mlActivity")),
		AssociationMemberships: splitCellList(cell("associationMemberships")),
		DataTypes:              splitCellList(cell("dataTypes")),
		ContactName:            cell("contactName"),
		ContactRole:            cell("contactRole"),
		ContactEmail:           cell("contactEmail"),
		WarmIntroPossible:      cellBool(cell("warmIntroPossible")),
		Status:                 models.ParsePipelineStatus(cell("status")),
		ClusterOverride:        models.ParseCluster(cell("industryCluster")),
	}
	if v := cell("mlActivityDescription"); v != "" {
		lead.MLActivityDescription = &v
	}
	if v := cell("linkedinUrl"); v != "" {
		lead.LinkedinURL = &v
	}
	if v := cell("notes"); v != "" {
		lead.Notes = &v
	}
	return lead, ""
}

func cellInt(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func cellBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "y", "ja":
		return true
	}
	return false
}

func splitCellList(value string) models.StringList {
	if value == "" {
		return models.StringList{}
	}
	parts := strings.Split(value, "|")
	out := make(models.StringList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func rowEmpty(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
