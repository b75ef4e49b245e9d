package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/services"
)

func settingsResponse(r *core.Record) map[string]any {
	return map[string]any{
		"id":             r.Id,
		"name":           r.GetString("name"),
		"address":        r.GetString("address"),
		"city":           r.GetString("city"),
		"country":        r.GetString("country"),
		"postal_code":    r.GetString("postal_code"),
		"phone":          r.GetString("phone"),
		"email":          r.GetString("email"),
		"website":        r.GetString("website"),
		"tax_id":         r.GetString("tax_id"),
		"license_number": r.GetString("license_number"),
		"currency":       r.GetString("currency"),
	}
}

// HandleSettingsView returns the single company settings record.
func HandleSettingsView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record := services.FindCompanySettings(app)
		if record == nil {
			return apiError(e, http.StatusNotFound, "Company settings not found")
		}
		return e.JSON(http.StatusOK, settingsResponse(record))
	}
}

// HandleSettingsSave updates the single company settings record, creating it
// if it does not exist yet.
func HandleSettingsSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return validationFailed(e, map[string]string{"name": "Company name is required"})
		}

		record := services.FindCompanySettings(app)
		if record == nil {
			col, err := app.FindCollectionByNameOrId("company_settings")
			if err != nil {
				log.Printf("settings: HandleSettingsSave: could not find collection: %v", err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			record = core.NewRecord(col)
		}

		record.Set("name", name)
		record.Set("address", strings.TrimSpace(e.Request.FormValue("address")))
		record.Set("city", strings.TrimSpace(e.Request.FormValue("city")))
		record.Set("country", strings.TrimSpace(e.Request.FormValue("country")))
		record.Set("postal_code", strings.TrimSpace(e.Request.FormValue("postal_code")))
		record.Set("phone", strings.TrimSpace(e.Request.FormValue("phone")))
		record.Set("email", strings.TrimSpace(e.Request.FormValue("email")))
		record.Set("website", strings.TrimSpace(e.Request.FormValue("website")))
		record.Set("tax_id", strings.TrimSpace(e.Request.FormValue("tax_id")))
		record.Set("license_number", strings.TrimSpace(e.Request.FormValue("license_number")))
		record.Set("currency", strings.TrimSpace(e.Request.FormValue("currency")))

		if err := app.Save(record); err != nil {
			log.Printf("settings: HandleSettingsSave: could not save settings: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, settingsResponse(record))
	}
}
