// Package testhelpers provides utilities for testing PocketBase-based
// applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test
// finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestDestination creates a destination record and returns it.
func CreateTestDestination(t *testing.T, app *pocketbase.PocketBase, code, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("destinations")
	if err != nil {
		t.Fatalf("failed to find destinations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", name)
	record.Set("country", "Turkey")
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test destination: %v", err)
	}

	return record
}

// CreateTestHotel creates a hotel record linked to a destination.
func CreateTestHotel(t *testing.T, app *pocketbase.PocketBase, destinationID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("hotels")
	if err != nil {
		t.Fatalf("failed to find hotels collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("destination", destinationID)
	record.Set("star_rating", 5)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test hotel: %v", err)
	}

	return record
}

// CreateTestAgency creates an agency record with the given name.
func CreateTestAgency(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("agencies")
	if err != nil {
		t.Fatalf("failed to find agencies collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("country", "Saudi Arabia")
	record.Set("contact_person", "Test Contact")
	record.Set("commission_rate", "10")
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test agency: %v", err)
	}

	return record
}

// CreateTestSource creates a source record; isAgency marks the B2B
// channel that requires an agency on proposals.
func CreateTestSource(t *testing.T, app *pocketbase.PocketBase, name string, isAgency bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("sources")
	if err != nil {
		t.Fatalf("failed to find sources collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("is_agency", isAgency)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test source: %v", err)
	}

	return record
}

// CreateTestStaff creates a staff record with the given name and role.
func CreateTestStaff(t *testing.T, app *pocketbase.PocketBase, name, role string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		t.Fatalf("failed to find staff collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("email", "test@toms.example")
	record.Set("role", role)
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test staff: %v", err)
	}

	return record
}

// CreateTestProposal creates a NEW proposal linked to a source and a
// destination.
func CreateTestProposal(t *testing.T, app *pocketbase.PocketBase, sourceID, destinationID, reference string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("proposals")
	if err != nil {
		t.Fatalf("failed to find proposals collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("reference", reference)
	record.Set("source", sourceID)
	record.Set("destinations", []string{destinationID})
	record.Set("overall_margin", "15")
	record.Set("commission", "5")
	record.Set("status", "NEW")
	record.Set("pdf_language", "arabic")
	record.Set("display_currency", "usd")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test proposal: %v", err)
	}

	return record
}

// CreateTestHotelItem creates a hotel line item on a proposal.
func CreateTestHotelItem(t *testing.T, app *pocketbase.PocketBase, proposalID, hotelID, checkin, checkout, pricePerNight string, numRooms int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		t.Fatalf("failed to find line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("proposal", proposalID)
	record.Set("service_type", "hotel")
	record.Set("sort_order", 1)
	record.Set("hotel", hotelID)
	record.Set("checkin", checkin)
	record.Set("checkout", checkout)
	record.Set("room_type", "Double")
	record.Set("board_type", "BB")
	record.Set("num_rooms", numRooms)
	record.Set("currency", "USD")
	record.Set("unit_price", pricePerNight)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test hotel item: %v", err)
	}

	return record
}

// CreateTestFlightItem creates a flight line item on a proposal.
func CreateTestFlightItem(t *testing.T, app *pocketbase.PocketBase, proposalID, pricePerPax string, pax int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		t.Fatalf("failed to find line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("proposal", proposalID)
	record.Set("service_type", "flight")
	record.Set("sort_order", 1)
	record.Set("date", "2024-06-01")
	record.Set("departure", "IST")
	record.Set("arrival", "ASR")
	record.Set("pax", pax)
	record.Set("currency", "USD")
	record.Set("unit_price", pricePerPax)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test flight item: %v", err)
	}

	return record
}

// CreateTestVoucher creates a voucher record tied to a proposal.
func CreateTestVoucher(t *testing.T, app *pocketbase.PocketBase, proposalID, number, serviceType, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("vouchers")
	if err != nil {
		t.Fatalf("failed to find vouchers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("voucher_number", number)
	record.Set("proposal", proposalID)
	record.Set("service_type", serviceType)
	record.Set("service_data", map[string]any{"currency": "USD", "totalPrice": 100.0})
	record.Set("guests", []any{})
	record.Set("status", status)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test voucher: %v", err)
	}

	return record
}
