package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/services"
)

func HandleProposalCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		sourceID := strings.TrimSpace(e.Request.FormValue("source"))
		agencyID := strings.TrimSpace(e.Request.FormValue("agency"))
		destinationIDs := cleanMultiValue(e.Request.Form["destinations"])

		errors := validateProposalForm(app, sourceID, agencyID, destinationIDs)
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}

		col, err := app.FindCollectionByNameOrId("proposals")
		if err != nil {
			log.Printf("proposal_create: could not find proposals collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("reference", services.GenerateProposalReference(app, time.Now()))
		record.Set("status", string(services.ProposalNew))
		setProposalFields(record, e, sourceID, agencyID, destinationIDs)

		if err := app.Save(record); err != nil {
			log.Printf("proposal_create: could not save proposal: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("proposal_create: created proposal %s (%s)\n", record.Id, record.GetString("reference"))
		return e.JSON(http.StatusOK, proposalResponse(app, record))
	}
}

func HandleProposalUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing proposal ID")
		}

		record, err := app.FindRecordById("proposals", id)
		if err != nil {
			log.Printf("proposal_create: HandleProposalUpdate: could not find proposal %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Proposal not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		sourceID := strings.TrimSpace(e.Request.FormValue("source"))
		agencyID := strings.TrimSpace(e.Request.FormValue("agency"))
		destinationIDs := cleanMultiValue(e.Request.Form["destinations"])

		errors := validateProposalForm(app, sourceID, agencyID, destinationIDs)
		if len(errors) > 0 {
			return validationFailed(e, errors)
		}

		// The reference and status are never editable through this
		// endpoint; status changes go through the transition handlers.
		setProposalFields(record, e, sourceID, agencyID, destinationIDs)

		if err := app.Save(record); err != nil {
			log.Printf("proposal_create: HandleProposalUpdate: could not save proposal %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, proposalResponse(app, record))
	}
}

// validateProposalForm applies the create/edit rules shared by both
// endpoints: a source is always required, at least one destination must be
// selected, and sources flagged as agency channels require an agency.
func validateProposalForm(app *pocketbase.PocketBase, sourceID, agencyID string, destinationIDs []string) map[string]string {
	errors := make(map[string]string)

	if sourceID == "" {
		errors["source"] = "Source is required"
	} else {
		source, err := app.FindRecordById("sources", sourceID)
		if err != nil {
			errors["source"] = "Source not found"
		} else if source.GetBool("is_agency") && agencyID == "" {
			errors["agency"] = "Agency is required for this source"
		}
	}

	if len(destinationIDs) == 0 {
		errors["destinations"] = "At least one destination is required"
	}

	if agencyID != "" {
		if _, err := app.FindRecordById("agencies", agencyID); err != nil {
			errors["agency"] = "Agency not found"
		}
	}

	return errors
}

func setProposalFields(record *core.Record, e *core.RequestEvent, sourceID, agencyID string, destinationIDs []string) {
	record.Set("source", sourceID)
	record.Set("agency", agencyID)
	record.Set("sales_person", strings.TrimSpace(e.Request.FormValue("sales_person")))
	record.Set("destinations", destinationIDs)
	record.Set("estimated_nights", strings.TrimSpace(e.Request.FormValue("estimated_nights")))
	record.Set("overall_margin", strings.TrimSpace(e.Request.FormValue("overall_margin")))
	record.Set("commission", strings.TrimSpace(e.Request.FormValue("commission")))

	if lang := strings.TrimSpace(e.Request.FormValue("pdf_language")); lang != "" {
		record.Set("pdf_language", lang)
	}
	if currency := strings.TrimSpace(e.Request.FormValue("display_currency")); currency != "" {
		record.Set("display_currency", currency)
	}
}

// cleanMultiValue trims a multi-valued form field and drops empty entries.
func cleanMultiValue(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
