package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func destinationResponse(r *core.Record) map[string]any {
	return map[string]any{
		"id":          r.Id,
		"code":        r.GetString("code"),
		"name":        r.GetString("name"),
		"country":     r.GetString("country"),
		"description": r.GetString("description"),
		"is_active":   r.GetBool("is_active"),
	}
}

func HandleDestinationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("destinations", "id != ''", "name", 0, 0)
		if err != nil {
			log.Printf("destinations: HandleDestinationList: failed to load destinations: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load destinations")
		}

		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, destinationResponse(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

func HandleDestinationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		code := strings.TrimSpace(e.Request.FormValue("code"))
		name := strings.TrimSpace(e.Request.FormValue("name"))
		country := strings.TrimSpace(e.Request.FormValue("country"))

		errors := make(map[string]string)
		if code == "" {
			errors["code"] = "Code is required"
		}
		if name == "" {
			errors["name"] = "Name is required"
		}
		if country == "" {
			errors["country"] = "Country is required"
		}
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}

		col, err := app.FindCollectionByNameOrId("destinations")
		if err != nil {
			log.Printf("destinations: HandleDestinationCreate: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("code", code)
		record.Set("name", name)
		record.Set("country", country)
		record.Set("description", strings.TrimSpace(e.Request.FormValue("description")))
		record.Set("is_active", true)

		if err := app.Save(record); err != nil {
			log.Printf("destinations: HandleDestinationCreate: could not save destination: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, destinationResponse(record))
	}
}

func HandleDestinationUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing destination ID")
		}

		record, err := app.FindRecordById("destinations", id)
		if err != nil {
			log.Printf("destinations: HandleDestinationUpdate: could not find destination %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Destination not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		code := strings.TrimSpace(e.Request.FormValue("code"))
		name := strings.TrimSpace(e.Request.FormValue("name"))
		country := strings.TrimSpace(e.Request.FormValue("country"))

		errors := make(map[string]string)
		if code == "" {
			errors["code"] = "Code is required"
		}
		if name == "" {
			errors["name"] = "Name is required"
		}
		if country == "" {
			errors["country"] = "Country is required"
		}
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}

		record.Set("code", code)
		record.Set("name", name)
		record.Set("country", country)
		record.Set("description", strings.TrimSpace(e.Request.FormValue("description")))
		record.Set("is_active", formBool(e.Request.FormValue("is_active")))

		if err := app.Save(record); err != nil {
			log.Printf("destinations: HandleDestinationUpdate: could not save destination %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, destinationResponse(record))
	}
}

func HandleDestinationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing destination ID")
		}

		record, err := app.FindRecordById("destinations", id)
		if err != nil {
			log.Printf("destinations: HandleDestinationDelete: could not find destination %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Destination not found")
		}

		// A destination referenced by hotels or proposals cannot be removed.
		hotels, err := app.FindRecordsByFilter(
			"hotels",
			"destination = {:destinationId}",
			"", 1, 0,
			map[string]any{"destinationId": id},
		)
		if err == nil && len(hotels) > 0 {
			return apiError(e, http.StatusConflict, "Cannot delete destination — it has hotels assigned")
		}

		proposals, err := app.FindRecordsByFilter(
			"proposals",
			"destinations ~ {:destinationId}",
			"", 1, 0,
			map[string]any{"destinationId": id},
		)
		if err == nil && len(proposals) > 0 {
			return apiError(e, http.StatusConflict, "Cannot delete destination — it is used by proposals")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("destinations: HandleDestinationDelete: failed to delete destination %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("destinations: HandleDestinationDelete: deleted destination %s\n", id)
		return apiMessage(e, http.StatusOK, "Destination deleted successfully")
	}
}

// formBool interprets the checkbox / toggle values the frontend submits.
func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
