package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func hotelResponse(r *core.Record) map[string]any {
	return map[string]any{
		"id":            r.Id,
		"name":          r.GetString("name"),
		"destination":   r.GetString("destination"),
		"star_rating":   r.GetInt("star_rating"),
		"address":       r.GetString("address"),
		"contact_email": r.GetString("contact_email"),
		"contact_phone": r.GetString("contact_phone"),
		"is_active":     r.GetBool("is_active"),
	}
}

func HandleHotelList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}

		// Optional filter by destination for the hotel picker.
		if destinationID := e.Request.URL.Query().Get("destination"); destinationID != "" {
			filter = "destination = {:destinationId}"
			params["destinationId"] = destinationID
		}

		records, err := app.FindRecordsByFilter("hotels", filter, "name", 0, 0, params)
		if err != nil {
			log.Printf("hotels: HandleHotelList: failed to load hotels: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load hotels")
		}

		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, hotelResponse(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

func HandleHotelCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		destinationID := strings.TrimSpace(e.Request.FormValue("destination"))

		errors := make(map[string]string)
		if name == "" {
			errors["name"] = "Name is required"
		}
		if destinationID == "" {
			errors["destination"] = "Destination is required"
		} else if _, err := app.FindRecordById("destinations", destinationID); err != nil {
			errors["destination"] = "Destination not found"
		}
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}

		col, err := app.FindCollectionByNameOrId("hotels")
		if err != nil {
			log.Printf("hotels: HandleHotelCreate: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		setHotelFields(record, e, name, destinationID)
		record.Set("is_active", true)

		if err := app.Save(record); err != nil {
			log.Printf("hotels: HandleHotelCreate: could not save hotel: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, hotelResponse(record))
	}
}

func HandleHotelUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing hotel ID")
		}

		record, err := app.FindRecordById("hotels", id)
		if err != nil {
			log.Printf("hotels: HandleHotelUpdate: could not find hotel %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Hotel not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		destinationID := strings.TrimSpace(e.Request.FormValue("destination"))

		errors := make(map[string]string)
		if name == "" {
			errors["name"] = "Name is required"
		}
		if destinationID == "" {
			errors["destination"] = "Destination is required"
		}
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}

		setHotelFields(record, e, name, destinationID)
		record.Set("is_active", formBool(e.Request.FormValue("is_active")))

		if err := app.Save(record); err != nil {
			log.Printf("hotels: HandleHotelUpdate: could not save hotel %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, hotelResponse(record))
	}
}

func HandleHotelDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing hotel ID")
		}

		record, err := app.FindRecordById("hotels", id)
		if err != nil {
			log.Printf("hotels: HandleHotelDelete: could not find hotel %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Hotel not found")
		}

		items, err := app.FindRecordsByFilter(
			"line_items",
			"hotel = {:hotelId}",
			"", 1, 0,
			map[string]any{"hotelId": id},
		)
		if err == nil && len(items) > 0 {
			return apiError(e, http.StatusConflict, "Cannot delete hotel — it is used by proposal line items")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("hotels: HandleHotelDelete: failed to delete hotel %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("hotels: HandleHotelDelete: deleted hotel %s\n", id)
		return apiMessage(e, http.StatusOK, "Hotel deleted successfully")
	}
}

func setHotelFields(record *core.Record, e *core.RequestEvent, name, destinationID string) {
	record.Set("name", name)
	record.Set("destination", destinationID)
	record.Set("address", strings.TrimSpace(e.Request.FormValue("address")))
	record.Set("contact_email", strings.TrimSpace(e.Request.FormValue("contact_email")))
	record.Set("contact_phone", strings.TrimSpace(e.Request.FormValue("contact_phone")))

	if rating, err := strconv.Atoi(strings.TrimSpace(e.Request.FormValue("star_rating"))); err == nil && rating >= 1 && rating <= 5 {
		record.Set("star_rating", rating)
	}
}
