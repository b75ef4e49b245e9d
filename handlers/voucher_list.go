package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/services"
)

func voucherResponse(r *core.Record) map[string]any {
	serviceData := map[string]any{}
	if err := r.UnmarshalJSONField("service_data", &serviceData); err != nil {
		log.Printf("voucher_list: voucher %s has malformed service_data: %v", r.Id, err)
	}

	guests := []services.Guest{}
	if err := r.UnmarshalJSONField("guests", &guests); err != nil {
		log.Printf("voucher_list: voucher %s has malformed guests: %v", r.Id, err)
	}

	return map[string]any{
		"id":             r.Id,
		"voucher_number": r.GetString("voucher_number"),
		"proposal":       r.GetString("proposal"),
		"line_item_id":   r.GetString("line_item_id"),
		"service_type":   r.GetString("service_type"),
		"service_data":   serviceData,
		"guests":         guests,
		"status":         r.GetString("status"),
		"created":        r.GetDateTime("created").String(),
		"updated":        r.GetDateTime("updated").String(),
	}
}

// HandleVoucherList lists vouchers newest first, optionally filtered by
// status (?status=PAID) and/or proposal (?proposal=<id>).
func HandleVoucherList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}

		if status := e.Request.URL.Query().Get("status"); status != "" {
			if !services.ValidVoucherStatus(status) {
				return apiError(e, http.StatusBadRequest, "Invalid status filter")
			}
			filter += " && status = {:status}"
			params["status"] = status
		}
		if proposalID := e.Request.URL.Query().Get("proposal"); proposalID != "" {
			filter += " && proposal = {:proposalId}"
			params["proposalId"] = proposalID
		}

		records, err := app.FindRecordsByFilter("vouchers", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("voucher_list: failed to load vouchers: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load vouchers")
		}

		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, voucherResponse(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

func HandleVoucherView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing voucher ID")
		}

		record, err := app.FindRecordById("vouchers", id)
		if err != nil {
			log.Printf("voucher_list: HandleVoucherView: could not find voucher %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Voucher not found")
		}

		return e.JSON(http.StatusOK, voucherResponse(record))
	}
}
