package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/services"
)

// proposalResponse serializes a proposal together with its computed totals.
// Totals are always derived from the current line items, never stored.
func proposalResponse(app *pocketbase.PocketBase, r *core.Record) map[string]any {
	items := services.FetchProposalLineItems(app, r.Id)
	totals := services.CalcProposalTotals(items, r.GetString("overall_margin"), r.GetString("commission"))

	return map[string]any{
		"id":               r.Id,
		"reference":        r.GetString("reference"),
		"source":           r.GetString("source"),
		"agency":           r.GetString("agency"),
		"sales_person":     r.GetString("sales_person"),
		"destinations":     r.GetStringSlice("destinations"),
		"estimated_nights": r.GetString("estimated_nights"),
		"overall_margin":   r.GetString("overall_margin"),
		"commission":       r.GetString("commission"),
		"status":           r.GetString("status"),
		"pdf_language":     r.GetString("pdf_language"),
		"display_currency": r.GetString("display_currency"),
		"created":          r.GetDateTime("created").String(),
		"updated":          r.GetDateTime("updated").String(),
		"item_count":       len(items),
		"totals": map[string]any{
			"hotel":             totals.HotelTotal,
			"transportation":    totals.TransportTotal,
			"flight":            totals.FlightTotal,
			"rentacar":          totals.CarTotal,
			"additional":        totals.AdditionalTotal,
			"grand_subtotal":    totals.GrandSubtotal,
			"margin_amount":     totals.MarginAmount,
			"commission_amount": totals.CommissionAmount,
			"final_sale_price":  totals.FinalSalePrice,
		},
	}
}

func lineItemResponse(r *core.Record) map[string]any {
	item := services.RecordToLineItem(r)
	return map[string]any{
		"id":               r.Id,
		"proposal":         r.GetString("proposal"),
		"service_type":     string(item.Type),
		"sort_order":       r.GetInt("sort_order"),
		"destination":      item.DestinationID,
		"currency":         item.Currency,
		"unit_price":       item.UnitPrice,
		"hotel":            item.HotelID,
		"checkin":          item.Checkin,
		"checkout":         item.Checkout,
		"nights":           services.Nights(item.Checkin, item.Checkout),
		"room_type":        item.RoomType,
		"board_type":       item.BoardType,
		"num_rooms":        item.NumRooms,
		"date":             item.Date,
		"description":      item.Description,
		"num_days":         item.NumDays,
		"num_vehicles":     item.NumVehicles,
		"num_people":       item.NumPeople,
		"departure":        item.Departure,
		"arrival":          item.Arrival,
		"departure_time":   item.DepartureTime,
		"arrival_time":     item.ArrivalTime,
		"pax":              item.Pax,
		"type_name":        item.TypeName,
		"pickup_location":  item.PickupLocation,
		"dropoff_location": item.DropoffLocation,
		"line_total":       services.CalcLineTotal(item),
	}
}

// HandleProposalList lists proposals newest first, optionally filtered by
// status (?status=NEW).
func HandleProposalList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}

		if status := e.Request.URL.Query().Get("status"); status != "" {
			if !services.ValidProposalStatus(status) {
				return apiError(e, http.StatusBadRequest, "Invalid status filter")
			}
			filter = "status = {:status}"
			params["status"] = status
		}

		records, err := app.FindRecordsByFilter("proposals", filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("proposal_list: failed to load proposals: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load proposals")
		}

		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, proposalResponse(app, r))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

// HandleProposalView returns one proposal with its line items and totals.
func HandleProposalView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing proposal ID")
		}

		record, err := app.FindRecordById("proposals", id)
		if err != nil {
			log.Printf("proposal_list: HandleProposalView: could not find proposal %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Proposal not found")
		}

		itemRecords, err := app.FindRecordsByFilter(
			"line_items",
			"proposal = {:proposalId}",
			"service_type,sort_order", 0, 0,
			map[string]any{"proposalId": id},
		)
		if err != nil {
			log.Printf("proposal_list: HandleProposalView: failed to load line items for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to load line items")
		}

		items := make([]map[string]any, 0, len(itemRecords))
		for _, r := range itemRecords {
			items = append(items, lineItemResponse(r))
		}

		resp := proposalResponse(app, record)
		resp["line_items"] = items
		return e.JSON(http.StatusOK, resp)
	}
}

func HandleProposalDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing proposal ID")
		}

		record, err := app.FindRecordById("proposals", id)
		if err != nil {
			log.Printf("proposal_list: HandleProposalDelete: could not find proposal %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Proposal not found")
		}

		if record.GetString("status") == string(services.ProposalConfirmed) {
			return apiError(e, http.StatusConflict, "Cannot delete a confirmed proposal — cancel it instead")
		}

		// Line items cascade with the proposal.
		if err := app.Delete(record); err != nil {
			log.Printf("proposal_list: HandleProposalDelete: failed to delete proposal %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("proposal_list: HandleProposalDelete: deleted proposal %s\n", id)
		return apiMessage(e, http.StatusOK, "Proposal deleted successfully")
	}
}
