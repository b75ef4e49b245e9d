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

// HandleProposalExportPDF generates and downloads a PDF for a proposal.
// ?pricing=false produces an operations copy without any price columns.
func HandleProposalExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing proposal ID")
		}

		if _, err := app.FindRecordById("proposals", id); err != nil {
			log.Printf("export: HandleProposalExportPDF: proposal not found %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Proposal not found")
		}

		showPricing := e.Request.URL.Query().Get("pricing") != "false"

		data, err := services.BuildProposalExportData(app, id, showPricing)
		if err != nil {
			log.Printf("export: HandleProposalExportPDF: failed to build data: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to build proposal data")
		}

		pdfBytes, err := services.GenerateProposalPDF(data)
		if err != nil {
			log.Printf("export: HandleProposalExportPDF: failed to generate PDF: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		filename := fmt.Sprintf("%s.pdf", sanitizeFilename(data.Reference))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleVoucherExportPDF generates and downloads a PDF for a voucher.
func HandleVoucherExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing voucher ID")
		}

		data, err := services.BuildVoucherExportData(app, id)
		if err != nil {
			log.Printf("export: HandleVoucherExportPDF: failed to build data for %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Voucher not found")
		}

		pdfBytes, err := services.GenerateVoucherPDF(data)
		if err != nil {
			log.Printf("export: HandleVoucherExportPDF: failed to generate PDF: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		filename := fmt.Sprintf("%s.pdf", sanitizeFilename(data.VoucherNumber))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleProposalsExportExcel downloads the full proposal list as an Excel
// workbook.
func HandleProposalsExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rows := services.BuildProposalsExcelRows(app)

		excelBytes, err := services.GenerateProposalsExcel(rows)
		if err != nil {
			log.Printf("export: HandleProposalsExportExcel: failed to generate workbook: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("proposals-%s.xlsx", time.Now().Format("2006-01-02"))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(excelBytes)
		return nil
	}
}

// sanitizeFilename strips characters that break Content-Disposition
// filenames.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "",
		"?", "",
		"\"", "",
		"<", "",
		">", "",
		"|", "",
	)
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" {
		return "download"
	}
	return name
}
