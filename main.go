package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"toms/collections"
	"toms/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Destinations ─────────────────────────────────────────
		se.Router.GET("/api/toms/destinations", handlers.HandleDestinationList(app))
		se.Router.POST("/api/toms/destinations", handlers.HandleDestinationCreate(app))
		se.Router.POST("/api/toms/destinations/{id}", handlers.HandleDestinationUpdate(app))
		se.Router.DELETE("/api/toms/destinations/{id}", handlers.HandleDestinationDelete(app))

		// ── Hotels ───────────────────────────────────────────────
		se.Router.GET("/api/toms/hotels", handlers.HandleHotelList(app))
		se.Router.POST("/api/toms/hotels", handlers.HandleHotelCreate(app))
		se.Router.POST("/api/toms/hotels/{id}", handlers.HandleHotelUpdate(app))
		se.Router.DELETE("/api/toms/hotels/{id}", handlers.HandleHotelDelete(app))

		// ── Agencies ─────────────────────────────────────────────
		se.Router.GET("/api/toms/agencies", handlers.HandleAgencyList(app))
		se.Router.POST("/api/toms/agencies", handlers.HandleAgencyCreate(app))
		se.Router.POST("/api/toms/agencies/{id}", handlers.HandleAgencyUpdate(app))
		se.Router.DELETE("/api/toms/agencies/{id}", handlers.HandleAgencyDelete(app))

		// ── Sources ──────────────────────────────────────────────
		se.Router.GET("/api/toms/sources", handlers.HandleSourceList(app))
		se.Router.POST("/api/toms/sources", handlers.HandleSourceCreate(app))
		se.Router.POST("/api/toms/sources/{id}", handlers.HandleSourceUpdate(app))
		se.Router.DELETE("/api/toms/sources/{id}", handlers.HandleSourceDelete(app))

		// ── Staff ────────────────────────────────────────────────
		se.Router.GET("/api/toms/staff", handlers.HandleStaffList(app))
		se.Router.POST("/api/toms/staff", handlers.HandleStaffCreate(app))
		se.Router.POST("/api/toms/staff/{id}", handlers.HandleStaffUpdate(app))
		se.Router.DELETE("/api/toms/staff/{id}", handlers.HandleStaffDelete(app))

		// ── Lookups ──────────────────────────────────────────────
		se.Router.GET("/api/toms/lookups", handlers.HandleLookupList(app))
		se.Router.POST("/api/toms/lookups", handlers.HandleLookupCreate(app))
		se.Router.POST("/api/toms/lookups/{id}", handlers.HandleLookupUpdate(app))
		se.Router.DELETE("/api/toms/lookups/{id}", handlers.HandleLookupDelete(app))

		// ── Company settings ─────────────────────────────────────
		se.Router.GET("/api/toms/settings", handlers.HandleSettingsView(app))
		se.Router.POST("/api/toms/settings", handlers.HandleSettingsSave(app))

		// ── Proposals ────────────────────────────────────────────
		se.Router.GET("/api/toms/proposals", handlers.HandleProposalList(app))
		se.Router.POST("/api/toms/proposals", handlers.HandleProposalCreate(app))
		se.Router.POST("/api/toms/proposals/bulk-status", handlers.HandleProposalBulkTransition(app))
		se.Router.GET("/api/toms/proposals/export/excel", handlers.HandleProposalsExportExcel(app))
		se.Router.GET("/api/toms/proposals/{id}", handlers.HandleProposalView(app))
		se.Router.POST("/api/toms/proposals/{id}", handlers.HandleProposalUpdate(app))
		se.Router.DELETE("/api/toms/proposals/{id}", handlers.HandleProposalDelete(app))
		se.Router.POST("/api/toms/proposals/{id}/duplicate", handlers.HandleProposalDuplicate(app))
		se.Router.POST("/api/toms/proposals/{id}/confirm", handlers.HandleProposalConfirm(app))
		se.Router.POST("/api/toms/proposals/{id}/cancel", handlers.HandleProposalCancel(app))
		se.Router.GET("/api/toms/proposals/{id}/export/pdf", handlers.HandleProposalExportPDF(app))

		// ── Line items ───────────────────────────────────────────
		se.Router.POST("/api/toms/proposals/{id}/items", handlers.HandleLineItemAdd(app))
		se.Router.POST("/api/toms/proposals/{id}/items/{itemId}", handlers.HandleLineItemUpdate(app))
		se.Router.DELETE("/api/toms/proposals/{id}/items/{itemId}", handlers.HandleLineItemDelete(app))
		se.Router.POST("/api/toms/proposals/{id}/items/{itemId}/duplicate", handlers.HandleLineItemDuplicate(app))

		// ── Vouchers ─────────────────────────────────────────────
		se.Router.GET("/api/toms/vouchers", handlers.HandleVoucherList(app))
		se.Router.GET("/api/toms/vouchers/{id}", handlers.HandleVoucherView(app))
		se.Router.POST("/api/toms/vouchers/{id}/status", handlers.HandleVoucherStatus(app))
		se.Router.POST("/api/toms/vouchers/{id}/guests", handlers.HandleVoucherGuests(app))
		se.Router.GET("/api/toms/vouchers/{id}/export/pdf", handlers.HandleVoucherExportPDF(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
