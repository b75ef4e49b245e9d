package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/services"
)

// lineItemFormFields maps the submitted form onto a line item record.
// Quantities that parse to zero or negative are normalized to 1; prices are
// stored as the raw submitted strings and parsed fail-soft at calculation
// time.
func lineItemFormFields(record *core.Record, e *core.RequestEvent) {
	setIfPresent := func(field string) {
		if e.Request.Form.Has(field) {
			record.Set(field, strings.TrimSpace(e.Request.FormValue(field)))
		}
	}
	setQty := func(field string) {
		if e.Request.Form.Has(field) {
			n, _ := strconv.Atoi(strings.TrimSpace(e.Request.FormValue(field)))
			record.Set(field, services.NormalizeQty(n))
		}
	}

	setIfPresent("destination")
	setIfPresent("currency")
	setIfPresent("unit_price")
	setIfPresent("hotel")
	setIfPresent("checkin")
	setIfPresent("checkout")
	setIfPresent("room_type")
	setIfPresent("board_type")
	setQty("num_rooms")
	setIfPresent("date")
	setIfPresent("description")
	setQty("num_days")
	setQty("num_vehicles")
	setQty("num_people")
	setIfPresent("departure")
	setIfPresent("arrival")
	setIfPresent("departure_time")
	setIfPresent("arrival_time")
	setQty("pax")
	setIfPresent("type_name")
	setIfPresent("pickup_location")
	setIfPresent("dropoff_location")
}

// HandleLineItemAdd adds a new line item to a proposal.
func HandleLineItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		if proposalID == "" {
			return apiError(e, http.StatusBadRequest, "Missing proposal ID")
		}

		if _, err := app.FindRecordById("proposals", proposalID); err != nil {
			log.Printf("line_items: HandleLineItemAdd: could not find proposal %s: %v", proposalID, err)
			return apiError(e, http.StatusNotFound, "Proposal not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		serviceType := services.ServiceType(strings.TrimSpace(e.Request.FormValue("service_type")))
		if !validServiceType(serviceType) {
			return validationFailed(e, map[string]string{"service_type": "Invalid service type"})
		}

		col, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			log.Printf("line_items: HandleLineItemAdd: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("proposal", proposalID)
		record.Set("service_type", string(serviceType))
		record.Set("sort_order", nextSortOrder(app, proposalID, serviceType))
		services.ApplyLineItemDefaults(record, serviceType)
		lineItemFormFields(record, e)

		if err := app.Save(record); err != nil {
			log.Printf("line_items: HandleLineItemAdd: could not save line item: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, lineItemResponse(record))
	}
}

// HandleLineItemUpdate patches the submitted fields of a line item. Fields
// absent from the form keep their stored values.
func HandleLineItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		id := e.Request.PathValue("itemId")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing line item ID")
		}

		record, err := app.FindRecordById("line_items", id)
		if err != nil {
			log.Printf("line_items: HandleLineItemUpdate: could not find line item %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Line item not found")
		}

		if record.GetString("proposal") != proposalID {
			return apiError(e, http.StatusForbidden, "Line item does not belong to this proposal")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		// The service type is fixed at creation; a wrong category is a new
		// item, not an edit.
		lineItemFormFields(record, e)

		if err := app.Save(record); err != nil {
			log.Printf("line_items: HandleLineItemUpdate: could not save line item %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, lineItemResponse(record))
	}
}

func HandleLineItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		id := e.Request.PathValue("itemId")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing line item ID")
		}

		record, err := app.FindRecordById("line_items", id)
		if err != nil {
			log.Printf("line_items: HandleLineItemDelete: could not find line item %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Line item not found")
		}

		if record.GetString("proposal") != proposalID {
			return apiError(e, http.StatusForbidden, "Line item does not belong to this proposal")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("line_items: HandleLineItemDelete: failed to delete line item %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("line_items: HandleLineItemDelete: deleted line item %s\n", id)
		return apiMessage(e, http.StatusOK, "Line item deleted successfully")
	}
}

// HandleLineItemDuplicate copies a line item within its proposal, appending
// it after the existing items of the same category.
func HandleLineItemDuplicate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		id := e.Request.PathValue("itemId")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing line item ID")
		}

		original, err := app.FindRecordById("line_items", id)
		if err != nil {
			log.Printf("line_items: HandleLineItemDuplicate: could not find line item %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Line item not found")
		}

		if original.GetString("proposal") != proposalID {
			return apiError(e, http.StatusForbidden, "Line item does not belong to this proposal")
		}

		col, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			log.Printf("line_items: HandleLineItemDuplicate: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		serviceType := services.ServiceType(original.GetString("service_type"))

		copy := core.NewRecord(col)
		copyLineItemFields(copy, original)
		copy.Set("proposal", proposalID)
		copy.Set("sort_order", nextSortOrder(app, proposalID, serviceType))

		if err := app.Save(copy); err != nil {
			log.Printf("line_items: HandleLineItemDuplicate: could not save copy of %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, lineItemResponse(copy))
	}
}

// nextSortOrder returns one past the highest sort_order within a proposal's
// service category.
func nextSortOrder(app *pocketbase.PocketBase, proposalID string, serviceType services.ServiceType) int {
	records, err := app.FindRecordsByFilter(
		"line_items",
		"proposal = {:proposalId} && service_type = {:serviceType}",
		"-sort_order", 1, 0,
		map[string]any{"proposalId": proposalID, "serviceType": string(serviceType)},
	)
	if err != nil || len(records) == 0 {
		return 1
	}
	return records[0].GetInt("sort_order") + 1
}

func validServiceType(t services.ServiceType) bool {
	for _, st := range services.ServiceTypes {
		if st == t {
			return true
		}
	}
	return false
}
