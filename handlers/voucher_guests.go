package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/services"
)

// HandleVoucherGuests replaces the full guest list of a voucher. The body is
// a JSON object {"guests": [...]}; guests submitted without an id are
// assigned a fresh UUID. Replacement is whole-list: the submitted guests
// become the voucher's guests, nothing is merged.
func HandleVoucherGuests(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing voucher ID")
		}

		record, err := app.FindRecordById("vouchers", id)
		if err != nil {
			log.Printf("voucher_guests: could not find voucher %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Voucher not found")
		}

		var payload struct {
			Guests []services.Guest `json:"guests"`
		}
		if err := json.NewDecoder(e.Request.Body).Decode(&payload); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid JSON body")
		}

		errors := make(map[string]string)
		guests := make([]services.Guest, 0, len(payload.Guests))
		for _, guest := range payload.Guests {
			guest.FirstName = strings.TrimSpace(guest.FirstName)
			guest.LastName = strings.TrimSpace(guest.LastName)
			if guest.FirstName == "" && guest.LastName == "" {
				errors["guests"] = "Each guest needs a name"
				continue
			}
			if guest.ID == "" {
				guest.ID = uuid.NewString()
			}
			guests = append(guests, guest)
		}
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}

		record.Set("guests", guests)
		if err := app.Save(record); err != nil {
			log.Printf("voucher_guests: could not save voucher %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, voucherResponse(record))
	}
}
