package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func agencyResponse(r *core.Record) map[string]any {
	return map[string]any{
		"id":              r.Id,
		"name":            r.GetString("name"),
		"country":         r.GetString("country"),
		"contact_person":  r.GetString("contact_person"),
		"contact_email":   r.GetString("contact_email"),
		"contact_phone":   r.GetString("contact_phone"),
		"commission_rate": r.GetString("commission_rate"),
		"is_active":       r.GetBool("is_active"),
	}
}

func HandleAgencyList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("agencies", "id != ''", "name", 0, 0)
		if err != nil {
			log.Printf("agencies: HandleAgencyList: failed to load agencies: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load agencies")
		}

		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, agencyResponse(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

func HandleAgencyCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))

		errors := make(map[string]string)
		if name == "" {
			errors["name"] = "Name is required"
		}
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}

		col, err := app.FindCollectionByNameOrId("agencies")
		if err != nil {
			log.Printf("agencies: HandleAgencyCreate: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		setAgencyFields(record, e, name)
		record.Set("is_active", true)

		if err := app.Save(record); err != nil {
			log.Printf("agencies: HandleAgencyCreate: could not save agency: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, agencyResponse(record))
	}
}

func HandleAgencyUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing agency ID")
		}

		record, err := app.FindRecordById("agencies", id)
		if err != nil {
			log.Printf("agencies: HandleAgencyUpdate: could not find agency %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Agency not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return validationFailed(e, map[string]string{"name": "Name is required"})
		}

		setAgencyFields(record, e, name)
		record.Set("is_active", formBool(e.Request.FormValue("is_active")))

		if err := app.Save(record); err != nil {
			log.Printf("agencies: HandleAgencyUpdate: could not save agency %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, agencyResponse(record))
	}
}

func HandleAgencyDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing agency ID")
		}

		record, err := app.FindRecordById("agencies", id)
		if err != nil {
			log.Printf("agencies: HandleAgencyDelete: could not find agency %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Agency not found")
		}

		proposals, err := app.FindRecordsByFilter(
			"proposals",
			"agency = {:agencyId}",
			"", 1, 0,
			map[string]any{"agencyId": id},
		)
		if err == nil && len(proposals) > 0 {
			return apiError(e, http.StatusConflict, "Cannot delete agency — it has existing proposals")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("agencies: HandleAgencyDelete: failed to delete agency %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("agencies: HandleAgencyDelete: deleted agency %s\n", id)
		return apiMessage(e, http.StatusOK, "Agency deleted successfully")
	}
}

func setAgencyFields(record *core.Record, e *core.RequestEvent, name string) {
	record.Set("name", name)
	record.Set("country", strings.TrimSpace(e.Request.FormValue("country")))
	record.Set("contact_person", strings.TrimSpace(e.Request.FormValue("contact_person")))
	record.Set("contact_email", strings.TrimSpace(e.Request.FormValue("contact_email")))
	record.Set("contact_phone", strings.TrimSpace(e.Request.FormValue("contact_phone")))

	if rate := strings.TrimSpace(e.Request.FormValue("commission_rate")); rate != "" {
		record.Set("commission_rate", rate)
	}
}
