package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func sourceResponse(r *core.Record) map[string]any {
	return map[string]any{
		"id":          r.Id,
		"name":        r.GetString("name"),
		"description": r.GetString("description"),
		"is_agency":   r.GetBool("is_agency"),
		"is_active":   r.GetBool("is_active"),
	}
}

func HandleSourceList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("sources", "id != ''", "name", 0, 0)
		if err != nil {
			log.Printf("sources: HandleSourceList: failed to load sources: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load sources")
		}

		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, sourceResponse(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

func HandleSourceCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return validationFailed(e, map[string]string{"name": "Name is required"})
		}

		col, err := app.FindCollectionByNameOrId("sources")
		if err != nil {
			log.Printf("sources: HandleSourceCreate: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("description", strings.TrimSpace(e.Request.FormValue("description")))
		record.Set("is_agency", formBool(e.Request.FormValue("is_agency")))
		record.Set("is_active", true)

		if err := app.Save(record); err != nil {
			log.Printf("sources: HandleSourceCreate: could not save source: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, sourceResponse(record))
	}
}

func HandleSourceUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing source ID")
		}

		record, err := app.FindRecordById("sources", id)
		if err != nil {
			log.Printf("sources: HandleSourceUpdate: could not find source %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Source not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return validationFailed(e, map[string]string{"name": "Name is required"})
		}

		record.Set("name", name)
		record.Set("description", strings.TrimSpace(e.Request.FormValue("description")))
		record.Set("is_agency", formBool(e.Request.FormValue("is_agency")))
		record.Set("is_active", formBool(e.Request.FormValue("is_active")))

		if err := app.Save(record); err != nil {
			log.Printf("sources: HandleSourceUpdate: could not save source %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, sourceResponse(record))
	}
}

func HandleSourceDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing source ID")
		}

		record, err := app.FindRecordById("sources", id)
		if err != nil {
			log.Printf("sources: HandleSourceDelete: could not find source %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Source not found")
		}

		proposals, err := app.FindRecordsByFilter(
			"proposals",
			"source = {:sourceId}",
			"", 1, 0,
			map[string]any{"sourceId": id},
		)
		if err == nil && len(proposals) > 0 {
			return apiError(e, http.StatusConflict, "Cannot delete source — it has existing proposals")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("sources: HandleSourceDelete: failed to delete source %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("sources: HandleSourceDelete: deleted source %s\n", id)
		return apiMessage(e, http.StatusOK, "Source deleted successfully")
	}
}
