package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"toms/testhelpers"
)

func TestHandleProposalDuplicate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	hotel := testhelpers.CreateTestHotel(t, app, destination.Id, "Grand Tarabya")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	proposal.Set("status", "CONFIRMED")
	if err := app.Save(proposal); err != nil {
		t.Fatalf("failed to confirm original: %v", err)
	}
	testhelpers.CreateTestHotelItem(t, app, proposal.Id, hotel.Id, "2024-06-01", "2024-06-04", "100", 2)
	testhelpers.CreateTestFlightItem(t, app, proposal.Id, "150", 4)

	handler := HandleProposalDuplicate(app)
	req := newFormRequest("/api/toms/proposals/"+proposal.Id+"/duplicate", url.Values{})
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	copyID := body["id"].(string)
	if copyID == proposal.Id {
		t.Fatal("duplicate must get a fresh id")
	}
	if body["reference"] == "TOMS-2024-0001" {
		t.Error("duplicate must get a fresh reference")
	}
	if body["status"] != "NEW" {
		t.Errorf("duplicate status = %v, want NEW regardless of original", body["status"])
	}
	if body["overall_margin"] != "15" || body["commission"] != "5" {
		t.Errorf("duplicate pricing fields = %v / %v, want copied 15 / 5",
			body["overall_margin"], body["commission"])
	}

	// Line items are deep copies tied to the new proposal
	copiedItems, err := app.FindRecordsByFilter("line_items", "proposal = {:proposalId}", "", 0, 0,
		map[string]any{"proposalId": copyID})
	if err != nil {
		t.Fatalf("failed to load copied items: %v", err)
	}
	if len(copiedItems) != 2 {
		t.Fatalf("expected 2 copied line items, got %d", len(copiedItems))
	}

	originalItems, _ := app.FindRecordsByFilter("line_items", "proposal = {:proposalId}", "", 0, 0,
		map[string]any{"proposalId": proposal.Id})
	if len(originalItems) != 2 {
		t.Errorf("original items should be untouched, got %d", len(originalItems))
	}

	for _, copied := range copiedItems {
		for _, orig := range originalItems {
			if copied.Id == orig.Id {
				t.Error("copied line item shares an id with the original")
			}
		}
	}
}

func TestHandleProposalDuplicate_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalDuplicate(app)

	req := newFormRequest("/api/toms/proposals/missing123/duplicate", url.Values{})
	req.SetPathValue("id", "missing123")
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}
