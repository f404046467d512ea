// Command gentemplate generates the Excel import template for leads.
// Usage: go run cmd/gentemplate/main.go
package main

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	f := excelize.NewFile()

	// Rename Sheet1 to Leads
	if err := f.SetSheetName("Sheet1", "Leads"); err != nil {
		log.Fatal(err)
	}

	// Add headers
	headers := []string{
		"companyName", "industry", "sizeEmployees",
		"digitalMaturity", "dataIntensity", "competitivePressure", "coopLikelihood",
		"mlActivity", "mlActivityDescription", "associationMemberships", "dataTypes",
		"contactName", "contactRole", "contactEmail", "linkedinUrl",
		"warmIntroPossible", "industryCluster", "status", "notes",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Leads", cell, h); err != nil {
			log.Fatal(err)
		}
	}

	// Add example row 1
	row1 := []string{
		"Acme Maschinen GmbH",
		"Maschinenbau",
		"250",
		"2", "3", "1", "2",
		"false", "",
		"VDMA",
		"sensor data|maintenance logs",
		"Eva Beispiel", "Head of Production", "eva@acme-maschinen.de",
		"https://linkedin.com/in/eva-beispiel",
		"true", "", "NEW", "",
	}
	for i, v := range row1 {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Leads", cell, v); err != nil {
			log.Fatal(err)
		}
	}

	// Add example row 2
	row2 := []string{
		"DataWerk AG",
		"Industrie 4.0 Software",
		"80",
		"3", "3", "2", "1",
		"true", "predictive maintenance prototype",
		"", "telemetry",
		"Jonas Muster", "CTO", "jonas@datawerk.io",
		"",
		"false", "HIGH", "CONTACTED", "met at Hannover Messe",
	}
	for i, v := range row2 {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Leads", cell, v); err != nil {
			log.Fatal(err)
		}
	}

	// Create Instructions sheet
	if _, err := f.NewSheet("Instructions"); err != nil {
		log.Fatal(err)
	}
	instructions := []string{
		"Column Descriptions:",
		"",
		"companyName - Required. Company name",
		"industry - Required. Free-text industry; known industries map to a cluster automatically",
		"sizeEmployees - Optional. Employee count, minimum 1 (default: 1)",
		"digitalMaturity - Optional. 0-3 (default: 0)",
		"dataIntensity - Optional. 0-3 (default: 0)",
		"competitivePressure - Optional. 0-2 (default: 0)",
		"coopLikelihood - Optional. 0-2 (default: 0)",
		"mlActivity - Optional. true/false/1/0/yes/no/ja (default: false)",
		"mlActivityDescription - Optional. What ML work exists today",
		"associationMemberships - Optional. Pipe-separated list (e.g. 'VDMA|Bitkom')",
		"dataTypes - Optional. Pipe-separated list of available data types",
		"contactName - Required. Primary contact",
		"contactRole - Required. Contact's role",
		"contactEmail - Required. Contact email address",
		"linkedinUrl - Optional. LinkedIn profile URL",
		"warmIntroPossible - Optional. true/false (default: false)",
		"industryCluster - Optional. HIGH/MEDIUM/LOW manual override; leave blank to derive",
		"status - Optional. Pipeline status (default: NEW)",
		"notes - Optional. Free-text notes",
		"",
		"Scores, labels, and hypotheses are computed on import and never read from the file.",
	}
	for i, line := range instructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Instructions", cell, line); err != nil {
			log.Fatal(err)
		}
	}

	// Ensure examples directory exists
	if err := os.MkdirAll("examples", 0755); err != nil {
		log.Fatal(err)
	}

	// Save the file
	if err := f.SaveAs("examples/lead-import-template.xlsx"); err != nil {
		log.Fatal(err)
	}
	log.Println("Created examples/lead-import-template.xlsx")
}
