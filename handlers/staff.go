package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

var staffRoles = []string{"Super Admin", "Admin", "Sales", "Operations"}

func staffResponse(r *core.Record) map[string]any {
	return map[string]any{
		"id":        r.Id,
		"name":      r.GetString("name"),
		"email":     r.GetString("email"),
		"role":      r.GetString("role"),
		"is_active": r.GetBool("is_active"),
	}
}

func HandleStaffList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("staff", "id != ''", "name", 0, 0)
		if err != nil {
			log.Printf("staff: HandleStaffList: failed to load staff: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load staff")
		}

		items := make([]map[string]any, 0, len(records))
		for _, r := range records {
			items = append(items, staffResponse(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

func HandleStaffCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		email := strings.TrimSpace(e.Request.FormValue("email"))
		role := strings.TrimSpace(e.Request.FormValue("role"))

		errors := make(map[string]string)
		if name == "" {
			errors["name"] = "Name is required"
		}
		if email == "" {
			errors["email"] = "Email is required"
		}
		if role != "" && !validStaffRole(role) {
			errors["role"] = "Invalid role"
		}
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}
		if role == "" {
			role = "Sales"
		}

		col, err := app.FindCollectionByNameOrId("staff")
		if err != nil {
			log.Printf("staff: HandleStaffCreate: could not find collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("email", email)
		record.Set("role", role)
		record.Set("is_active", true)

		if err := app.Save(record); err != nil {
			log.Printf("staff: HandleStaffCreate: could not save staff member: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, staffResponse(record))
	}
}

func HandleStaffUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing staff ID")
		}

		record, err := app.FindRecordById("staff", id)
		if err != nil {
			log.Printf("staff: HandleStaffUpdate: could not find staff member %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Staff member not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		email := strings.TrimSpace(e.Request.FormValue("email"))
		role := strings.TrimSpace(e.Request.FormValue("role"))

		errors := make(map[string]string)
		if name == "" {
			errors["name"] = "Name is required"
		}
		if email == "" {
			errors["email"] = "Email is required"
		}
		if role != "" && !validStaffRole(role) {
			errors["role"] = "Invalid role"
		}
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}

		record.Set("name", name)
		record.Set("email", email)
		if role != "" {
			record.Set("role", role)
		}
		record.Set("is_active", formBool(e.Request.FormValue("is_active")))

		if err := app.Save(record); err != nil {
			log.Printf("staff: HandleStaffUpdate: could not save staff member %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, staffResponse(record))
	}
}

func HandleStaffDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing staff ID")
		}

		record, err := app.FindRecordById("staff", id)
		if err != nil {
			log.Printf("staff: HandleStaffDelete: could not find staff member %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Staff member not found")
		}

		proposals, err := app.FindRecordsByFilter(
			"proposals",
			"sales_person = {:staffId}",
			"", 1, 0,
			map[string]any{"staffId": id},
		)
		if err == nil && len(proposals) > 0 {
			return apiError(e, http.StatusConflict, "Cannot delete staff member — they are assigned to proposals")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("staff: HandleStaffDelete: failed to delete staff member %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("staff: HandleStaffDelete: deleted staff member %s\n", id)
		return apiMessage(e, http.StatusOK, "Staff member deleted successfully")
	}
}

func validStaffRole(role string) bool {
	for _, r := range staffRoles {
		if r == role {
			return true
		}
	}
	return false
}
