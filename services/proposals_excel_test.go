package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"toms/testhelpers"
)

func TestBuildProposalsExcelRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	hotel := testhelpers.CreateTestHotel(t, app, destination.Id, "Grand Tarabya")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	testhelpers.CreateTestHotelItem(t, app, proposal.Id, hotel.Id, "2024-06-01", "2024-06-04", "100", 2)

	rows := BuildProposalsExcelRows(app)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.Reference != "TOMS-2024-0001" {
		t.Errorf("reference = %q, want TOMS-2024-0001", row.Reference)
	}
	if row.Status != "NEW" {
		t.Errorf("status = %q, want NEW", row.Status)
	}
	if row.LineItemCount != 1 {
		t.Errorf("line item count = %d, want 1", row.LineItemCount)
	}
	if row.GrandSubtotal != 600 {
		t.Errorf("grand subtotal = %v, want 600", row.GrandSubtotal)
	}
	// 600 * (1 + 0.15 + 0.05)
	if row.FinalSalePrice != 720 {
		t.Errorf("final sale price = %v, want 720", row.FinalSalePrice)
	}
}

func TestGenerateProposalsExcel(t *testing.T) {
	rows := []ProposalExcelRow{
		{
			Reference:       "TOMS-2024-0001",
			Status:          "NEW",
			SourceName:      "Website",
			SalesPersonName: "Ayşe Demir",
			Destinations:    "Istanbul, Cappadocia",
			LineItemCount:   3,
			GrandSubtotal:   1400,
			FinalSalePrice:  1680,
			CreatedDate:     "2024-06-01",
		},
		{
			Reference:      "TOMS-2024-0002",
			Status:         "CONFIRMED",
			SourceName:     "Travel Agency (B2B)",
			AgencyName:     "Desert Rose Travel",
			LineItemCount:  1,
			GrandSubtotal:  500,
			FinalSalePrice: 600,
			CreatedDate:    "2024-06-02",
		},
	}

	excelBytes, err := GenerateProposalsExcel(rows)
	if err != nil {
		t.Fatalf("GenerateProposalsExcel returned error: %v", err)
	}
	if len(excelBytes) == 0 {
		t.Fatal("expected non-empty workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(excelBytes))
	if err != nil {
		t.Fatalf("generated workbook does not open: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue("Proposals", "A4")
	if err != nil {
		t.Fatalf("failed to read header cell: %v", err)
	}
	if header != "Reference" {
		t.Errorf("header cell A4 = %q, want Reference", header)
	}

	got, err := f.GetCellValue("Proposals", "A5")
	if err != nil {
		t.Fatalf("failed to read reference cell: %v", err)
	}
	if got != "TOMS-2024-0001" {
		t.Errorf("first data row reference = %q, want TOMS-2024-0001", got)
	}
}

func TestGenerateProposalsExcel_Empty(t *testing.T) {
	excelBytes, err := GenerateProposalsExcel(nil)
	if err != nil {
		t.Fatalf("GenerateProposalsExcel returned error for empty rows: %v", err)
	}
	if len(excelBytes) == 0 {
		t.Fatal("expected non-empty workbook even with no rows")
	}
}
