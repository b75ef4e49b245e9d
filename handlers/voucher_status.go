package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/services"
)

// HandleVoucherStatus applies a status transition to a voucher. The target
// status comes from the form; illegal transitions are rejected without
// changing the record.
func HandleVoucherStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing voucher ID")
		}

		record, err := app.FindRecordById("vouchers", id)
		if err != nil {
			log.Printf("voucher_status: could not find voucher %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Voucher not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		target := strings.TrimSpace(e.Request.FormValue("status"))
		if !services.ValidVoucherStatus(target) {
			return apiError(e, http.StatusBadRequest, "Invalid voucher status")
		}

		from := services.VoucherStatus(record.GetString("status"))
		to := services.VoucherStatus(target)
		if !services.CanTransitionVoucher(from, to) {
			return apiError(e, http.StatusConflict, services.VoucherTransitionError(from, to).Error())
		}

		record.Set("status", target)
		if err := app.Save(record); err != nil {
			log.Printf("voucher_status: could not save voucher %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("voucher_status: voucher %s moved %s -> %s\n", id, from, to)
		return e.JSON(http.StatusOK, voucherResponse(record))
	}
}
