package services

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/xuri/excelize/v2"
)

// ProposalExcelRow is one proposal rendered into a spreadsheet row.
type ProposalExcelRow struct {
	Reference       string
	Status          string
	SourceName      string
	AgencyName      string
	SalesPersonName string
	Destinations    string
	LineItemCount   int
	GrandSubtotal   float64
	FinalSalePrice  float64
	CreatedDate     string
}

// BuildProposalsExcelRows assembles one row per proposal, newest first,
// with totals recomputed from the line items.
func BuildProposalsExcelRows(app *pocketbase.PocketBase) []ProposalExcelRow {
	proposals, err := app.FindRecordsByFilter("proposals", "id != ''", "-created", 0, 0)
	if err != nil {
		log.Printf("proposals_excel: could not query proposals: %v", err)
		proposals = nil
	}

	var rows []ProposalExcelRow
	for _, p := range proposals {
		items := FetchProposalLineItems(app, p.Id)
		totals := CalcProposalTotals(items, p.GetString("overall_margin"), p.GetString("commission"))

		destNames := ""
		for i, destID := range p.GetStringSlice("destinations") {
			if i > 0 {
				destNames += ", "
			}
			destNames += resolveName(app, "destinations", destID, "Unknown")
		}

		agencyName := ""
		if agencyID := p.GetString("agency"); agencyID != "" {
			agencyName = resolveName(app, "agencies", agencyID, "Unknown")
		}

		rows = append(rows, ProposalExcelRow{
			Reference:       p.GetString("reference"),
			Status:          p.GetString("status"),
			SourceName:      resolveName(app, "sources", p.GetString("source"), "Unknown"),
			AgencyName:      agencyName,
			SalesPersonName: resolveName(app, "staff", p.GetString("sales_person"), "Unknown"),
			Destinations:    destNames,
			LineItemCount:   len(items),
			GrandSubtotal:   totals.GrandSubtotal,
			FinalSalePrice:  totals.FinalSalePrice,
			CreatedDate:     p.GetDateTime("created").Time().Format("2006-01-02"),
		})
	}
	return rows
}

// GenerateProposalsExcel creates an Excel workbook listing proposals with
// their computed totals.
func GenerateProposalsExcel(rows []ProposalExcelRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Proposals"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{
		NumFmt: 4, // #,##0.00
	})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "Proposals")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetCellValue(sheetName, "A2", "Exported "+time.Now().Format("02 Jan 2006"))

	headers := []string{
		"Reference", "Status", "Source", "Agency", "Sales Person",
		"Destinations", "Items", "Net Subtotal", "Final Sale Price", "Created",
	}
	widths := []float64{18, 12, 18, 22, 20, 30, 8, 14, 16, 12}

	const headerRow = 4
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, h)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, widths[i])
	}
	firstHeader, _ := excelize.CoordinatesToCellName(1, headerRow)
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	f.SetCellStyle(sheetName, firstHeader, lastHeader, headerStyle)

	for i, r := range rows {
		rowNum := headerRow + 1 + i
		values := []any{
			r.Reference, r.Status, r.SourceName, r.AgencyName, r.SalesPersonName,
			r.Destinations, r.LineItemCount, r.GrandSubtotal, r.FinalSalePrice, r.CreatedDate,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			f.SetCellValue(sheetName, cell, v)
		}
		subtotalCell, _ := excelize.CoordinatesToCellName(8, rowNum)
		finalCell, _ := excelize.CoordinatesToCellName(9, rowNum)
		f.SetCellStyle(sheetName, subtotalCell, finalCell, moneyStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
