package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateProposalPDF creates the quotation PDF for a proposal using
// maroto/v2. It returns the raw PDF bytes or an error.
func GenerateProposalPDF(data *ProposalExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addProposalHeader(m, data)
	addProposalDetails(m, data)
	for _, section := range data.Sections {
		addServiceSection(m, data, section)
	}
	if data.ShowPricing {
		addProposalTotals(m, data)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate proposal PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addProposalHeader adds the company name, "TRAVEL PROPOSAL" title,
// company contact line and the proposal reference.
func addProposalHeader(m core.Maroto, data *ProposalExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("TRAVEL PROPOSAL", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("%s | %s", data.CompanyAddress, data.CompanyEmail), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Ref: %s", data.Reference), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addProposalDetails adds the source/agency/sales person/destinations block.
func addProposalDetails(m core.Maroto, data *ProposalExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	rows := []struct {
		label string
		value string
	}{
		{"Date", data.CreatedDate},
		{"Source / Channel", data.SourceName},
		{"Agency", data.AgencyName},
		{"Sales Person", data.SalesPersonName},
		{"Destinations", data.Destinations},
	}

	for _, r := range rows {
		if r.value == "" {
			continue
		}
		m.AddRows(
			row.New(6).Add(
				col.New(3).Add(text.New(r.label, labelStyle)),
				col.New(9).Add(text.New(r.value, valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addServiceSection adds a category heading plus a row table for one
// service category.
func addServiceSection(m core.Maroto, data *ProposalExportData, section ExportSection) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(text.New(section.Label, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Details", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Quantity", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}
	bodyText := props.Text{Size: 8, Align: align.Left}
	bodyRight := props.Text{Size: 8, Align: align.Right}

	for i, r := range section.Rows {
		cell := props.Cell{}
		if i%2 == 1 {
			cell.BackgroundColor = altBg
		}

		total := ""
		if data.ShowPricing {
			total = fmt.Sprintf("%s %.2f", r.Currency, r.LineTotal)
		}

		m.AddRows(
			row.New(7).Add(
				col.New(4).Add(text.New(r.Description, bodyText)).WithStyle(&cell),
				col.New(4).Add(text.New(r.Details, bodyText)).WithStyle(&cell),
				col.New(2).Add(text.New(r.Quantity, bodyText)).WithStyle(&cell),
				col.New(2).Add(text.New(total, bodyRight)).WithStyle(&cell),
			),
		)
	}

	if data.ShowPricing {
		m.AddRows(
			row.New(7).Add(
				col.New(10).Add(text.New("Subtotal", props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Right,
				})),
				col.New(2).Add(text.New(fmt.Sprintf("%.2f", section.Subtotal), props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Right,
				})),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addProposalTotals adds the subtotal / margin / commission / sale price
// block at the end of the document.
func addProposalTotals(m core.Maroto, data *ProposalExportData) {
	labelStyle := props.Text{Size: 9, Align: align.Right}
	valueStyle := props.Text{Size: 9, Align: align.Right}
	boldLabel := props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}
	boldValue := props.Text{
		Size:  11,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 22, Green: 101, Blue: 52},
	}

	symbol := CurrencySymbol(data.DisplayCurrency)
	totals := data.Totals

	m.AddRows(
		row.New(6).Add(
			col.New(9).Add(text.New("Subtotal (Net Cost)", labelStyle)),
			col.New(3).Add(text.New(FormatMoney(data.DisplayCurrency, totals.GrandSubtotal), valueStyle)),
		),
		row.New(6).Add(
			col.New(9).Add(text.New(fmt.Sprintf("Margin (%s%%)", zeroIfEmpty(data.OverallMargin)), labelStyle)),
			col.New(3).Add(text.New("+"+symbol+fmt.Sprintf("%.2f", totals.MarginAmount), valueStyle)),
		),
		row.New(6).Add(
			col.New(9).Add(text.New(fmt.Sprintf("Commission (%s%%)", zeroIfEmpty(data.Commission)), labelStyle)),
			col.New(3).Add(text.New("+"+symbol+fmt.Sprintf("%.2f", totals.CommissionAmount), valueStyle)),
		),
		row.New(9).Add(
			col.New(9).Add(text.New("Total Sale Price", boldLabel)),
			col.New(3).Add(text.New(FormatMoney(data.DisplayCurrency, totals.FinalSalePrice), boldValue)),
		),
	)
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
