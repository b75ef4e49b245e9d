package services

import (
	"bytes"
	"testing"

	"toms/testhelpers"
)

func TestBuildVoucherExportData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	hotel := testhelpers.CreateTestHotel(t, app, destination.Id, "Grand Tarabya")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")

	voucher := testhelpers.CreateTestVoucher(t, app, proposal.Id, "TOMS-V-2024-0001", "hotel", "PENDING_PAYMENT")
	voucher.Set("service_data", map[string]any{
		"destinationId": destination.Id,
		"hotelId":       hotel.Id,
		"checkin":       "2024-06-01",
		"checkout":      "2024-06-04",
		"nights":        3,
		"numRooms":      2,
		"roomType":      "Double",
		"boardType":     "BB",
		"currency":      "USD",
		"totalPrice":    600.0,
	})
	voucher.Set("guests", []Guest{
		{ID: "g1", FirstName: "Ali", LastName: "Hassan", Nationality: "SA"},
	})
	if err := app.Save(voucher); err != nil {
		t.Fatalf("failed to save voucher: %v", err)
	}

	data, err := BuildVoucherExportData(app, voucher.Id)
	if err != nil {
		t.Fatalf("BuildVoucherExportData returned error: %v", err)
	}

	if data.VoucherNumber != "TOMS-V-2024-0001" {
		t.Errorf("voucher number = %q, want TOMS-V-2024-0001", data.VoucherNumber)
	}
	if data.ProposalReference != "TOMS-2024-0001" {
		t.Errorf("proposal reference = %q, want TOMS-2024-0001", data.ProposalReference)
	}
	if data.ServiceType != "Hotel" {
		t.Errorf("service type label = %q, want Hotel", data.ServiceType)
	}
	if len(data.Guests) != 1 || data.Guests[0].FirstName != "Ali" {
		t.Errorf("guests = %+v, want the one saved guest", data.Guests)
	}

	fieldValues := map[string]string{}
	for _, f := range data.Fields {
		fieldValues[f.Label] = f.Value
	}
	if fieldValues["Hotel"] != "Grand Tarabya" {
		t.Errorf("Hotel field = %q, want Grand Tarabya", fieldValues["Hotel"])
	}
	if fieldValues["Nights"] != "3" {
		t.Errorf("Nights field = %q, want 3", fieldValues["Nights"])
	}
	if fieldValues["Total Price"] != "USD 600.00" {
		t.Errorf("Total Price field = %q, want USD 600.00", fieldValues["Total Price"])
	}
}

func TestBuildVoucherExportData_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if _, err := BuildVoucherExportData(app, "missing123"); err == nil {
		t.Error("expected error for missing voucher")
	}
}

func TestGenerateVoucherPDF(t *testing.T) {
	data := &VoucherExportData{
		VoucherNumber:     "TOMS-V-2024-0001",
		Status:            "PENDING_PAYMENT",
		ServiceType:       "Hotel",
		ProposalReference: "TOMS-2024-0001",
		CompanyName:       "TOMS Travel & Tourism",
		Fields: []VoucherField{
			{"Hotel", "Grand Tarabya"},
			{"Check-in", "2024-06-01"},
			{"Check-out", "2024-06-04"},
			{"Total Price", "USD 600.00"},
		},
		Guests: []Guest{
			{ID: "g1", FirstName: "Ali", LastName: "Hassan", PassportNumber: "A1234567", Nationality: "SA"},
			{ID: "g2", FirstName: "Sara", LastName: "Hassan", Nationality: "SA"},
		},
	}

	pdfBytes, err := GenerateVoucherPDF(data)
	if err != nil {
		t.Fatalf("GenerateVoucherPDF returned error: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

func TestGenerateVoucherPDF_NoGuests(t *testing.T) {
	data := &VoucherExportData{
		VoucherNumber: "TOMS-V-2024-0002",
		Status:        "PAID",
		ServiceType:   "Flight",
		Fields:        []VoucherField{{"Route", "IST - ASR"}},
	}

	pdfBytes, err := GenerateVoucherPDF(data)
	if err != nil {
		t.Fatalf("GenerateVoucherPDF returned error: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
}
