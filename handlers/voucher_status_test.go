package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"toms/testhelpers"
)

func voucherStatusRequest(t *testing.T, voucherID, target string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	form := url.Values{}
	form.Set("status", target)
	req := newFormRequest("/api/toms/vouchers/"+voucherID+"/status", form)
	req.SetPathValue("id", voucherID)
	return httptest.NewRecorder(), req
}

func TestHandleVoucherStatus_ForwardPath(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	voucher := testhelpers.CreateTestVoucher(t, app, proposal.Id, "TOMS-V-2024-0001", "hotel", "PENDING_PAYMENT")
	handler := HandleVoucherStatus(app)

	for _, target := range []string{"PAID", "COMPLETED"} {
		rec, req := voucherStatusRequest(t, voucher.Id, target)
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("transition to %s: expected status 200, got %d: %s", target, rec.Code, rec.Body.String())
		}
	}

	updated, _ := app.FindRecordById("vouchers", voucher.Id)
	if updated.GetString("status") != "COMPLETED" {
		t.Errorf("status = %q, want COMPLETED", updated.GetString("status"))
	}
}

func TestHandleVoucherStatus_SkippingAStageIsRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	voucher := testhelpers.CreateTestVoucher(t, app, proposal.Id, "TOMS-V-2024-0001", "hotel", "PENDING_PAYMENT")
	handler := HandleVoucherStatus(app)

	rec, req := voucherStatusRequest(t, voucher.Id, "COMPLETED")
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}

	updated, _ := app.FindRecordById("vouchers", voucher.Id)
	if updated.GetString("status") != "PENDING_PAYMENT" {
		t.Errorf("status = %q, want unchanged PENDING_PAYMENT", updated.GetString("status"))
	}
}

func TestHandleVoucherStatus_CancelFromAnyState(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	handler := HandleVoucherStatus(app)

	for i, from := range []string{"PENDING_PAYMENT", "PAID", "COMPLETED"} {
		voucher := testhelpers.CreateTestVoucher(t, app, proposal.Id,
			"TOMS-V-2024-000"+string(rune('1'+i)), "hotel", from)

		rec, req := voucherStatusRequest(t, voucher.Id, "CANCELLED")
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("cancel from %s: expected status 200, got %d", from, rec.Code)
		}
	}
}

func TestHandleVoucherStatus_CancelledIsTerminal(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	voucher := testhelpers.CreateTestVoucher(t, app, proposal.Id, "TOMS-V-2024-0001", "hotel", "CANCELLED")
	handler := HandleVoucherStatus(app)

	rec, req := voucherStatusRequest(t, voucher.Id, "PAID")
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
}

func TestHandleVoucherStatus_InvalidTarget(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	source := testhelpers.CreateTestSource(t, app, "Website", false)
	destination := testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")
	proposal := testhelpers.CreateTestProposal(t, app, source.Id, destination.Id, "TOMS-2024-0001")
	voucher := testhelpers.CreateTestVoucher(t, app, proposal.Id, "TOMS-V-2024-0001", "hotel", "PENDING_PAYMENT")
	handler := HandleVoucherStatus(app)

	rec, req := voucherStatusRequest(t, voucher.Id, "REFUNDED")
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
