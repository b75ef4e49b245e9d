package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/services"
)

// HandleProposalDuplicate copies a proposal into a fresh NEW proposal with
// its own reference. Every line item is deep-copied; vouchers are never
// copied — they belong to the confirmed original.
func HandleProposalDuplicate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing proposal ID")
		}

		original, err := app.FindRecordById("proposals", id)
		if err != nil {
			log.Printf("proposal_duplicate: could not find proposal %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Proposal not found")
		}

		proposalsCol, err := app.FindCollectionByNameOrId("proposals")
		if err != nil {
			log.Printf("proposal_duplicate: could not find proposals collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		copy := core.NewRecord(proposalsCol)
		copy.Set("reference", services.GenerateProposalReference(app, time.Now()))
		copy.Set("status", string(services.ProposalNew))
		copy.Set("source", original.GetString("source"))
		copy.Set("agency", original.GetString("agency"))
		copy.Set("sales_person", original.GetString("sales_person"))
		copy.Set("destinations", original.GetStringSlice("destinations"))
		copy.Set("estimated_nights", original.GetString("estimated_nights"))
		copy.Set("overall_margin", original.GetString("overall_margin"))
		copy.Set("commission", original.GetString("commission"))
		copy.Set("pdf_language", original.GetString("pdf_language"))
		copy.Set("display_currency", original.GetString("display_currency"))

		if err := app.Save(copy); err != nil {
			log.Printf("proposal_duplicate: could not save proposal copy: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		itemsCol, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			log.Printf("proposal_duplicate: could not find line_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		itemRecords, err := app.FindRecordsByFilter(
			"line_items",
			"proposal = {:proposalId}",
			"service_type,sort_order", 0, 0,
			map[string]any{"proposalId": id},
		)
		if err != nil {
			log.Printf("proposal_duplicate: failed to load line items for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to copy line items")
		}

		for _, itemRecord := range itemRecords {
			itemCopy := core.NewRecord(itemsCol)
			copyLineItemFields(itemCopy, itemRecord)
			itemCopy.Set("proposal", copy.Id)

			if err := app.Save(itemCopy); err != nil {
				log.Printf("proposal_duplicate: could not copy line item %s: %v", itemRecord.Id, err)
				return apiError(e, http.StatusInternalServerError, "Failed to copy line items")
			}
		}

		log.Printf("proposal_duplicate: duplicated proposal %s as %s (%s)\n",
			id, copy.Id, copy.GetString("reference"))
		return e.JSON(http.StatusOK, proposalResponse(app, copy))
	}
}

// copyLineItemFields copies every line item field except id and proposal.
func copyLineItemFields(dst, src *core.Record) {
	dst.Set("service_type", src.GetString("service_type"))
	dst.Set("sort_order", src.GetInt("sort_order"))
	dst.Set("destination", src.GetString("destination"))
	dst.Set("currency", src.GetString("currency"))
	dst.Set("unit_price", src.GetString("unit_price"))
	dst.Set("hotel", src.GetString("hotel"))
	dst.Set("checkin", src.GetString("checkin"))
	dst.Set("checkout", src.GetString("checkout"))
	dst.Set("room_type", src.GetString("room_type"))
	dst.Set("board_type", src.GetString("board_type"))
	dst.Set("num_rooms", src.GetInt("num_rooms"))
	dst.Set("date", src.GetString("date"))
	dst.Set("description", src.GetString("description"))
	dst.Set("num_days", src.GetInt("num_days"))
	dst.Set("num_vehicles", src.GetInt("num_vehicles"))
	dst.Set("num_people", src.GetInt("num_people"))
	dst.Set("departure", src.GetString("departure"))
	dst.Set("arrival", src.GetString("arrival"))
	dst.Set("departure_time", src.GetString("departure_time"))
	dst.Set("arrival_time", src.GetString("arrival_time"))
	dst.Set("pax", src.GetInt("pax"))
	dst.Set("type_name", src.GetString("type_name"))
	dst.Set("pickup_location", src.GetString("pickup_location"))
	dst.Set("dropoff_location", src.GetString("dropoff_location"))
}
