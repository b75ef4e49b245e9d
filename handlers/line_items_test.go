package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"toms/testhelpers"
)

func TestHandleLineItemAdd_Defaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	handler := HandleLineItemAdd(app)

	form := url.Values{}
	form.Set("service_type", "flight")

	req := newFormRequest("/api/toms/proposals/"+proposal.Id+"/items", form)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	if body["service_type"] != "flight" {
		t.Errorf("service_type = %v, want flight", body["service_type"])
	}
	if body["currency"] != "USD" {
		t.Errorf("default currency = %v, want USD", body["currency"])
	}
	if body["pax"] != 1.0 {
		t.Errorf("default pax = %v, want 1", body["pax"])
	}
	if body["sort_order"] != 1.0 {
		t.Errorf("sort_order = %v, want 1", body["sort_order"])
	}
	if body["line_total"] != 0.0 {
		t.Errorf("line_total of blank item = %v, want 0", body["line_total"])
	}
}

func TestHandleLineItemAdd_SortOrderPerCategory(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	handler := HandleLineItemAdd(app)

	add := func(serviceType string) map[string]any {
		form := url.Values{}
		form.Set("service_type", serviceType)
		req := newFormRequest("/api/toms/proposals/"+proposal.Id+"/items", form)
		req.SetPathValue("id", proposal.Id)
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		return decodeJSON(t, rec)
	}

	first := add("flight")
	second := add("flight")
	otherCategory := add("hotel")

	if first["sort_order"] != 1.0 || second["sort_order"] != 2.0 {
		t.Errorf("flight sort orders = %v, %v, want 1, 2", first["sort_order"], second["sort_order"])
	}
	if otherCategory["sort_order"] != 1.0 {
		t.Errorf("hotel sort order = %v, want independent 1", otherCategory["sort_order"])
	}
}

func TestHandleLineItemAdd_InvalidServiceType(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	handler := HandleLineItemAdd(app)

	form := url.Values{}
	form.Set("service_type", "cruise")

	req := newFormRequest("/api/toms/proposals/"+proposal.Id+"/items", form)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", rec.Code)
	}
}

func TestHandleLineItemUpdate_NormalizesQuantities(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	item := testhelpers.CreateTestFlightItem(t, app, proposal.Id, "150", 4)
	handler := HandleLineItemUpdate(app)

	form := url.Values{}
	form.Set("unit_price", "200")
	form.Set("pax", "-3")

	req := newFormRequest("/api/toms/proposals/"+proposal.Id+"/items/"+item.Id, form)
	req.SetPathValue("id", proposal.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, _ := app.FindRecordById("line_items", item.Id)
	if updated.GetString("unit_price") != "200" {
		t.Errorf("unit_price = %q, want 200", updated.GetString("unit_price"))
	}
	if updated.GetInt("pax") != 1 {
		t.Errorf("pax = %d, want normalized 1", updated.GetInt("pax"))
	}
	// Fields not in the form keep their values
	if updated.GetString("departure") != "IST" {
		t.Errorf("departure = %q, want untouched IST", updated.GetString("departure"))
	}
}

func TestHandleLineItemUpdate_StoresRawPriceString(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	item := testhelpers.CreateTestFlightItem(t, app, proposal.Id, "150", 4)
	handler := HandleLineItemUpdate(app)

	form := url.Values{}
	form.Set("unit_price", "not a number")

	req := newFormRequest("/api/toms/proposals/"+proposal.Id+"/items/"+item.Id, form)
	req.SetPathValue("id", proposal.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	// The raw string is kept; it prices at zero instead of being rejected
	body := decodeJSON(t, rec)
	if body["unit_price"] != "not a number" {
		t.Errorf("unit_price = %v, want the raw string", body["unit_price"])
	}
	if body["line_total"] != 0.0 {
		t.Errorf("line_total = %v, want 0", body["line_total"])
	}
}

func TestHandleLineItemDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	item := testhelpers.CreateTestFlightItem(t, app, proposal.Id, "150", 4)
	handler := HandleLineItemDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/toms/proposals/"+proposal.Id+"/items/"+item.Id, nil)
	req.SetPathValue("id", proposal.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("line_items", item.Id); err == nil {
		t.Error("expected line item to be deleted")
	}
}

func TestHandleLineItemDuplicate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	item := testhelpers.CreateTestFlightItem(t, app, proposal.Id, "150", 4)
	handler := HandleLineItemDuplicate(app)

	req := newFormRequest("/api/toms/proposals/"+proposal.Id+"/items/"+item.Id+"/duplicate", url.Values{})
	req.SetPathValue("id", proposal.Id)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeJSON(t, rec)
	if body["id"] == item.Id {
		t.Error("duplicate must get a fresh id")
	}
	if body["unit_price"] != "150" || body["pax"] != 4.0 {
		t.Errorf("duplicate fields = price %v pax %v, want copied 150 / 4", body["unit_price"], body["pax"])
	}
	if body["sort_order"] != 2.0 {
		t.Errorf("duplicate sort_order = %v, want appended 2", body["sort_order"])
	}

	items, _ := app.FindRecordsByFilter("line_items", "proposal = {:proposalId}", "", 0, 0,
		map[string]any{"proposalId": proposal.Id})
	if len(items) != 2 {
		t.Errorf("expected 2 line items after duplicate, got %d", len(items))
	}
}

func TestHandleLineItem_RejectsForeignProposal(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	owner := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	other := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0002")
	item := testhelpers.CreateTestFlightItem(t, app, owner.Id, "150", 4)

	tests := []struct {
		name    string
		method  string
		path    string
		handler func(*core.RequestEvent) error
	}{
		{"Update", http.MethodPost, "/api/toms/proposals/" + other.Id + "/items/" + item.Id, HandleLineItemUpdate(app)},
		{"Delete", http.MethodDelete, "/api/toms/proposals/" + other.Id + "/items/" + item.Id, HandleLineItemDelete(app)},
		{"Duplicate", http.MethodPost, "/api/toms/proposals/" + other.Id + "/items/" + item.Id + "/duplicate", HandleLineItemDuplicate(app)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.method == http.MethodPost {
				form := url.Values{}
				form.Set("unit_price", "999")
				req = newFormRequest(tt.path, form)
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			req.SetPathValue("id", other.Id)
			req.SetPathValue("itemId", item.Id)
			rec := httptest.NewRecorder()

			if err := tt.handler(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusForbidden {
				t.Errorf("expected status 403, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}

	// The item survives untouched under its real proposal
	stored, err := app.FindRecordById("line_items", item.Id)
	if err != nil {
		t.Fatalf("line item should still exist: %v", err)
	}
	if stored.GetString("unit_price") != "150" {
		t.Errorf("unit_price = %q, want unchanged 150", stored.GetString("unit_price"))
	}
	items, _ := app.FindRecordsByFilter("line_items", "proposal = {:proposalId}", "", 0, 0,
		map[string]any{"proposalId": owner.Id})
	if len(items) != 1 {
		t.Errorf("expected 1 line item, got %d", len(items))
	}
}
