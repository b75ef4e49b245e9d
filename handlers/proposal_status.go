package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/services"
)

// HandleProposalConfirm moves a proposal to CONFIRMED and spawns one voucher
// per line item.
func HandleProposalConfirm(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return handleProposalTransition(app, e, services.ProposalConfirmed)
	}
}

// HandleProposalCancel moves a proposal to CANCELLED. Already-issued
// vouchers are left untouched; they carry their own lifecycle.
func HandleProposalCancel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return handleProposalTransition(app, e, services.ProposalCancelled)
	}
}

func handleProposalTransition(app *pocketbase.PocketBase, e *core.RequestEvent, to services.ProposalStatus) error {
	id := e.Request.PathValue("id")
	if id == "" {
		return apiError(e, http.StatusBadRequest, "Missing proposal ID")
	}

	record, err := app.FindRecordById("proposals", id)
	if err != nil {
		log.Printf("proposal_status: could not find proposal %s: %v", id, err)
		return apiError(e, http.StatusNotFound, "Proposal not found")
	}

	if err := transitionProposal(app, record, to); err != nil {
		return apiError(e, http.StatusConflict, err.Error())
	}

	return e.JSON(http.StatusOK, proposalResponse(app, record))
}

// transitionProposal applies a single status change, spawning vouchers when
// the target status is CONFIRMED. Invalid transitions are returned as plain
// errors so callers can report them as per-proposal outcomes.
func transitionProposal(app *pocketbase.PocketBase, record *core.Record, to services.ProposalStatus) error {
	from := services.ProposalStatus(record.GetString("status"))
	if !services.CanTransitionProposal(from, to) {
		return services.ProposalTransitionError(from, to)
	}

	record.Set("status", string(to))
	if err := app.Save(record); err != nil {
		log.Printf("proposal_status: could not save proposal %s: %v", record.Id, err)
		return fmt.Errorf("failed to update proposal %s", record.GetString("reference"))
	}

	if to == services.ProposalConfirmed {
		if err := spawnVouchers(app, record); err != nil {
			log.Printf("proposal_status: voucher generation failed for proposal %s: %v", record.Id, err)
			return fmt.Errorf("proposal %s confirmed but voucher generation failed", record.GetString("reference"))
		}
	}

	log.Printf("proposal_status: proposal %s moved %s -> %s\n", record.Id, from, to)
	return nil
}

// spawnVouchers creates one PENDING_PAYMENT voucher per line item. Each
// voucher freezes a snapshot of its line item so later proposal edits never
// change what was sold.
func spawnVouchers(app *pocketbase.PocketBase, proposal *core.Record) error {
	col, err := app.FindCollectionByNameOrId("vouchers")
	if err != nil {
		return fmt.Errorf("could not find vouchers collection: %w", err)
	}

	itemRecords, err := app.FindRecordsByFilter(
		"line_items",
		"proposal = {:proposalId}",
		"service_type,sort_order", 0, 0,
		map[string]any{"proposalId": proposal.Id},
	)
	if err != nil {
		return fmt.Errorf("could not load line items: %w", err)
	}

	now := time.Now()
	for _, itemRecord := range itemRecords {
		item := services.RecordToLineItem(itemRecord)

		voucher := core.NewRecord(col)
		voucher.Set("voucher_number", services.GenerateVoucherNumber(app, now))
		voucher.Set("proposal", proposal.Id)
		voucher.Set("line_item_id", itemRecord.Id)
		voucher.Set("service_type", string(item.Type))
		voucher.Set("service_data", services.ServiceSnapshot(item))
		voucher.Set("guests", []any{})
		voucher.Set("status", string(services.VoucherPendingPayment))

		if err := app.Save(voucher); err != nil {
			return fmt.Errorf("could not save voucher for line item %s: %w", itemRecord.Id, err)
		}
	}

	return nil
}

// HandleProposalBulkTransition applies a confirm or cancel to a selection of
// proposals. Each proposal is handled independently: one failure never
// blocks the rest, and every outcome is reported back.
func HandleProposalBulkTransition(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		target := services.ProposalStatus(strings.TrimSpace(e.Request.FormValue("status")))
		if target != services.ProposalConfirmed && target != services.ProposalCancelled {
			return apiError(e, http.StatusBadRequest, "Status must be CONFIRMED or CANCELLED")
		}

		ids := cleanMultiValue(e.Request.Form["ids"])
		if len(ids) == 0 {
			return apiError(e, http.StatusBadRequest, "No proposals selected")
		}

		applied := 0
		results := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			record, err := app.FindRecordById("proposals", id)
			if err != nil {
				results = append(results, map[string]any{
					"id":      id,
					"applied": false,
					"reason":  "Proposal not found",
				})
				continue
			}

			if err := transitionProposal(app, record, target); err != nil {
				results = append(results, map[string]any{
					"id":        id,
					"reference": record.GetString("reference"),
					"applied":   false,
					"reason":    err.Error(),
				})
				continue
			}

			applied++
			results = append(results, map[string]any{
				"id":        id,
				"reference": record.GetString("reference"),
				"applied":   true,
				"status":    string(target),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"message": fmt.Sprintf("%d of %d proposals updated", applied, len(ids)),
			"applied": applied,
			"skipped": len(ids) - applied,
			"results": results,
		})
	}
}
