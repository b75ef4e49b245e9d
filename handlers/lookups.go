package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var lookupTypes = []string{"service_type", "vehicle_type", "flight_type", "car_type"}

func lookupResponse(r *core.Record) map[string]any {
	return map[string]any{
		"id":        r.Id,
		"type":      r.GetString("type"),
		"name":      r.GetString("name"),
		"is_active": r.GetBool("is_active"),
	}
}

// HandleLookupList lists lookup values, optionally filtered by type
// (?type=vehicle_type).
func HandleLookupList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}

		if lookupType := e.Request.URL.Query().Get("type"); lookupType != "" {
			if !validLookupType(lookupType) {
				return apiError(e, http.StatusBadRequest, "Invalid lookup type")
			}
			filter = "type = {:lookupType}"
			params["lookupType"] = lookupType
		}

		records, err := app.FindRecordsByFilter("lookups", filter, "type,name", 0, 0, params)
		if err != nil {
			log.Printf("lookups: HandleLookupList: failed to load lookups: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load lookups")
		}

		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, lookupResponse(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

func HandleLookupCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		lookupType := strings.TrimSpace(e.Request.FormValue("type"))
		name := strings.TrimSpace(e.Request.FormValue("name"))

		errors := make(map[string]string)
		if lookupType == "" {
			errors["type"] = "Type is required"
		} else if !validLookupType(lookupType) {
			errors["type"] = "Invalid lookup type"
		}
		if name == "" {
			errors["name"] = "Name is required"
		}
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}

		col, err := app.FindCollectionByNameOrId("lookups")
		if err != nil {
			log.Printf("lookups: HandleLookupCreate: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("type", lookupType)
		record.Set("name", name)
		record.Set("is_active", true)

		if err := app.Save(record); err != nil {
			log.Printf("lookups: HandleLookupCreate: could not save lookup: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, lookupResponse(record))
	}
}

func HandleLookupUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing lookup ID")
		}

		record, err := app.FindRecordById("lookups", id)
		if err != nil {
			log.Printf("lookups: HandleLookupUpdate: could not find lookup %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Lookup not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return validationFailed(e, map[string]string{"name": "Name is required"})
		}

		record.Set("name", name)
		record.Set("is_active", formBool(e.Request.FormValue("is_active")))

		if err := app.Save(record); err != nil {
			log.Printf("lookups: HandleLookupUpdate: could not save lookup %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, lookupResponse(record))
	}
}

func HandleLookupDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing lookup ID")
		}

		record, err := app.FindRecordById("lookups", id)
		if err != nil {
			log.Printf("lookups: HandleLookupDelete: could not find lookup %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Lookup not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("lookups: HandleLookupDelete: failed to delete lookup %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("lookups: HandleLookupDelete: deleted lookup %s\n", id)
		return apiMessage(e, http.StatusOK, "Lookup deleted successfully")
	}
}

func validLookupType(t string) bool {
	for _, lt := range lookupTypes {
		if lt == t {
			return true
		}
	}
	return false
}
