package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"toms/testhelpers"
)

func TestHandleProposalListStatusFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	source := testhelpers.CreateTestSource(t, app, "Direct", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")

	testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	confirmed := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0002")
	confirmed.Set("status", "CONFIRMED")
	if err := app.Save(confirmed); err != nil {
		t.Fatalf("failed to confirm proposal: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/toms/proposals?status=CONFIRMED", nil)
	rec := httptest.NewRecorder()

	if err := HandleProposalList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	items := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 confirmed proposal, got %d", len(items))
	}
	proposal := items[0].(map[string]any)
	if proposal["reference"] != "TOMS-2024-0002" {
		t.Errorf("unexpected proposal: %v", proposal["reference"])
	}
}

func TestHandleProposalListInvalidStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/toms/proposals?status=DRAFT", nil)
	rec := httptest.NewRecorder()

	if err := HandleProposalList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleProposalViewIncludesItemsAndTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	source := testhelpers.CreateTestSource(t, app, "Direct", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	hotel := testhelpers.CreateTestHotel(t, app, destination.Id, "Grand Tarabya")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	testhelpers.CreateTestHotelItem(t, app, proposal.Id, hotel.Id, "2024-06-01", "2024-06-04", "100", 2)
	testhelpers.CreateTestFlightItem(t, app, proposal.Id, "150", 4)

	req := httptest.NewRequest(http.MethodGet, "/api/toms/proposals/"+proposal.Id, nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	if err := HandleProposalView(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	items, ok := body["line_items"].([]any)
	if !ok {
		t.Fatalf("expected line_items array, got %v", body["line_items"])
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}

	// Stored order is alphabetical by service type: flight before hotel.
	first := items[0].(map[string]any)
	if first["service_type"] != "flight" {
		t.Errorf("expected flight first, got %v", first["service_type"])
	}
	if first["line_total"] != 600.0 {
		t.Errorf("unexpected flight line total: %v", first["line_total"])
	}
	second := items[1].(map[string]any)
	if second["nights"] != 3.0 {
		t.Errorf("unexpected nights: %v", second["nights"])
	}

	totals, ok := body["totals"].(map[string]any)
	if !ok {
		t.Fatalf("expected totals object, got %v", body["totals"])
	}
	if totals["grand_subtotal"] != 1200.0 {
		t.Errorf("unexpected grand_subtotal: %v", totals["grand_subtotal"])
	}
	// 15% margin and 5% commission, both on the net subtotal.
	if totals["final_sale_price"] != 1440.0 {
		t.Errorf("unexpected final_sale_price: %v", totals["final_sale_price"])
	}
	if body["item_count"] != 2.0 {
		t.Errorf("unexpected item_count: %v", body["item_count"])
	}
}

func TestHandleProposalDeleteConfirmedBlocked(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	source := testhelpers.CreateTestSource(t, app, "Direct", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	proposal.Set("status", "CONFIRMED")
	if err := app.Save(proposal); err != nil {
		t.Fatalf("failed to confirm proposal: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/toms/proposals/"+proposal.Id, nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	if err := HandleProposalDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rec.Code, rec.Body.String())
	}

	if _, err := app.FindRecordById("proposals", proposal.Id); err != nil {
		t.Error("expected confirmed proposal to survive delete")
	}
}

func TestHandleProposalDeleteCascadesLineItems(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	source := testhelpers.CreateTestSource(t, app, "Direct", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	hotel := testhelpers.CreateTestHotel(t, app, destination.Id, "Grand Tarabya")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	item := testhelpers.CreateTestHotelItem(t, app, proposal.Id, hotel.Id, "2024-06-01", "2024-06-04", "100", 2)

	req := httptest.NewRequest(http.MethodDelete, "/api/toms/proposals/"+proposal.Id, nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	if err := HandleProposalDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if _, err := app.FindRecordById("proposals", proposal.Id); err == nil {
		t.Error("expected proposal to be deleted")
	}
	if _, err := app.FindRecordById("line_items", item.Id); err == nil {
		t.Error("expected line items to be deleted with the proposal")
	}
}
