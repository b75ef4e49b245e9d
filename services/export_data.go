package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ExportRow is one line item rendered into a document row.
type ExportRow struct {
	Description string
	Details     string
	Quantity    string
	Currency    string
	UnitPrice   float64
	LineTotal   float64
}

// ExportSection groups the rows of one service category.
type ExportSection struct {
	Label    string
	Rows     []ExportRow
	Subtotal float64
}

// ProposalExportData holds everything the proposal PDF needs, with all
// master-data references already resolved.
type ProposalExportData struct {
	Reference   string
	Status      string
	CreatedDate string

	SourceName      string
	AgencyName      string
	SalesPersonName string
	Destinations    string

	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string

	PDFLanguage     string
	DisplayCurrency string
	ShowPricing     bool

	Sections      []ExportSection
	OverallMargin string
	Commission    string
	Totals        ProposalTotals
}

// resolveName looks a master-data record up by id and returns its name.
// Master data can be deleted after a proposal references it, so a dangling
// id degrades to the fallback instead of failing the export.
func resolveName(app *pocketbase.PocketBase, collection, id, fallback string) string {
	if id == "" {
		return fallback
	}
	record, err := app.FindRecordById(collection, id)
	if err != nil {
		log.Printf("export_data: could not resolve %s/%s: %v", collection, id, err)
		return fallback
	}
	return record.GetString("name")
}

// FetchProposalLineItems loads a proposal's line items ordered for display.
func FetchProposalLineItems(app *pocketbase.PocketBase, proposalID string) []LineItem {
	records, err := app.FindRecordsByFilter(
		"line_items",
		"proposal = {:proposalId}",
		"service_type,sort_order",
		0, 0,
		map[string]any{"proposalId": proposalID},
	)
	if err != nil {
		log.Printf("export_data: could not query line_items for proposal %s: %v", proposalID, err)
		records = nil
	}

	items := make([]LineItem, 0, len(records))
	for _, r := range records {
		items = append(items, RecordToLineItem(r))
	}
	return items
}

// BuildProposalExportData assembles the complete export snapshot for a
// proposal, resolving source, agency, sales person, destinations, hotels
// and the company profile.
func BuildProposalExportData(app *pocketbase.PocketBase, proposalID string, showPricing bool) (*ProposalExportData, error) {
	proposal, err := app.FindRecordById("proposals", proposalID)
	if err != nil {
		return nil, fmt.Errorf("proposal not found: %w", err)
	}

	data := &ProposalExportData{
		Reference:       proposal.GetString("reference"),
		Status:          proposal.GetString("status"),
		CreatedDate:     proposal.GetDateTime("created").Time().Format("02 Jan 2006"),
		SourceName:      resolveName(app, "sources", proposal.GetString("source"), "Unknown"),
		SalesPersonName: resolveName(app, "staff", proposal.GetString("sales_person"), "Unknown"),
		PDFLanguage:     proposal.GetString("pdf_language"),
		DisplayCurrency: proposal.GetString("display_currency"),
		ShowPricing:     showPricing,
		OverallMargin:   proposal.GetString("overall_margin"),
		Commission:      proposal.GetString("commission"),
	}

	if agencyID := proposal.GetString("agency"); agencyID != "" {
		data.AgencyName = resolveName(app, "agencies", agencyID, "Unknown")
	}

	var destNames []string
	for _, destID := range proposal.GetStringSlice("destinations") {
		destNames = append(destNames, resolveName(app, "destinations", destID, "Unknown"))
	}
	data.Destinations = strings.Join(destNames, ", ")

	if company := FindCompanySettings(app); company != nil {
		data.CompanyName = company.GetString("name")
		data.CompanyAddress = company.GetString("address")
		data.CompanyEmail = company.GetString("email")
		data.CompanyPhone = company.GetString("phone")
	}

	items := FetchProposalLineItems(app, proposalID)
	data.Totals = CalcProposalTotals(items, data.OverallMargin, data.Commission)

	for _, serviceType := range ServiceTypes {
		section := ExportSection{
			Label:    ServiceTypeLabel(serviceType),
			Subtotal: data.Totals.SubtotalFor(serviceType),
		}
		for _, item := range items {
			if item.Type != serviceType {
				continue
			}
			section.Rows = append(section.Rows, buildExportRow(app, item))
		}
		if len(section.Rows) > 0 {
			data.Sections = append(data.Sections, section)
		}
	}

	return data, nil
}

// buildExportRow renders one line item into a document row with resolved
// names and a category-appropriate quantity summary.
func buildExportRow(app *pocketbase.PocketBase, item LineItem) ExportRow {
	row := ExportRow{
		Currency:  item.Currency,
		UnitPrice: ParseMoney(item.UnitPrice),
		LineTotal: CalcLineTotal(item),
	}

	switch item.Type {
	case ServiceHotel:
		hotelName := resolveName(app, "hotels", item.HotelID, "Unknown Hotel")
		row.Description = hotelName
		if item.RoomType != "" {
			row.Description += " - " + item.RoomType
		}
		row.Details = fmt.Sprintf("%s to %s, %s", item.Checkin, item.Checkout, item.BoardType)
		row.Quantity = fmt.Sprintf("%d nights x %d rooms",
			Nights(item.Checkin, item.Checkout), NormalizeQty(item.NumRooms))
	case ServiceTransportation:
		row.Description = item.Description
		row.Details = fmt.Sprintf("%s, %s", item.Date, item.TypeName)
		row.Quantity = fmt.Sprintf("%d days x %d vehicles",
			NormalizeQty(item.NumDays), NormalizeQty(item.NumVehicles))
	case ServiceFlight:
		row.Description = fmt.Sprintf("%s - %s", item.Departure, item.Arrival)
		row.Details = fmt.Sprintf("%s %s-%s, %s",
			item.Date, item.DepartureTime, item.ArrivalTime, item.TypeName)
		row.Quantity = fmt.Sprintf("%d pax", NormalizeQty(item.Pax))
	case ServiceRentACar:
		row.Description = item.TypeName
		row.Details = fmt.Sprintf("%s, %s to %s", item.Date, item.PickupLocation, item.DropoffLocation)
		row.Quantity = fmt.Sprintf("%d days", NormalizeQty(item.NumDays))
	case ServiceAdditional:
		row.Description = item.Description
		row.Details = fmt.Sprintf("%s, %s", item.Date, item.TypeName)
		row.Quantity = fmt.Sprintf("%d days x %d people",
			NormalizeQty(item.NumDays), NormalizeQty(item.NumPeople))
	}

	if item.DestinationID != "" {
		destName := resolveName(app, "destinations", item.DestinationID, "Unknown")
		row.Details = destName + ", " + row.Details
	}

	return row
}

// FindCompanySettings returns the single company profile record, or nil
// when none has been saved yet.
func FindCompanySettings(app *pocketbase.PocketBase) *core.Record {
	records, err := app.FindAllRecords("company_settings")
	if err != nil || len(records) == 0 {
		return nil
	}
	return records[0]
}
