package services

import (
	"fmt"
	"log"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/pocketbase/pocketbase"
	pbcore "github.com/pocketbase/pocketbase/core"
)

// VoucherField is one label/value pair on the voucher document.
type VoucherField struct {
	Label string
	Value string
}

// VoucherExportData holds everything the voucher PDF needs.
type VoucherExportData struct {
	VoucherNumber     string
	Status            string
	ServiceType       string
	ProposalReference string

	CompanyName    string
	CompanyAddress string
	CompanyEmail   string

	Fields []VoucherField
	Guests []Guest
}

// BuildVoucherExportData assembles the export snapshot for a voucher from
// its frozen service data. Master-data ids inside the snapshot resolve to
// "Unknown" when the referenced record has since been deleted.
func BuildVoucherExportData(app *pocketbase.PocketBase, voucherID string) (*VoucherExportData, error) {
	voucher, err := app.FindRecordById("vouchers", voucherID)
	if err != nil {
		return nil, fmt.Errorf("voucher not found: %w", err)
	}

	data := &VoucherExportData{
		VoucherNumber: voucher.GetString("voucher_number"),
		Status:        voucher.GetString("status"),
		ServiceType:   ServiceTypeLabel(ServiceType(voucher.GetString("service_type"))),
	}

	if proposalID := voucher.GetString("proposal"); proposalID != "" {
		if proposal, err := app.FindRecordById("proposals", proposalID); err == nil {
			data.ProposalReference = proposal.GetString("reference")
		}
	}

	if company := FindCompanySettings(app); company != nil {
		data.CompanyName = company.GetString("name")
		data.CompanyAddress = company.GetString("address")
		data.CompanyEmail = company.GetString("email")
	}

	data.Fields = voucherServiceFields(app, voucher)

	if err := voucher.UnmarshalJSONField("guests", &data.Guests); err != nil {
		log.Printf("voucher_pdf: could not decode guests for voucher %s: %v", voucherID, err)
	}

	return data, nil
}

// voucherServiceFields flattens the frozen service snapshot into ordered
// label/value pairs per category.
func voucherServiceFields(app *pocketbase.PocketBase, voucher *pbcore.Record) []VoucherField {
	var snapshot map[string]any
	if err := voucher.UnmarshalJSONField("service_data", &snapshot); err != nil {
		log.Printf("voucher_pdf: could not decode service_data for voucher %s: %v", voucher.Id, err)
		return nil
	}

	str := func(key string) string {
		v, _ := snapshot[key].(string)
		return v
	}
	num := func(key string) float64 {
		v, _ := snapshot[key].(float64)
		return v
	}
	resolved := func(collection, key, fallback string) string {
		return resolveName(app, collection, str(key), fallback)
	}

	price := fmt.Sprintf("%s %.2f", str("currency"), num("totalPrice"))

	switch ServiceType(voucher.GetString("service_type")) {
	case ServiceHotel:
		return []VoucherField{
			{"Destination", resolved("destinations", "destinationId", "Unknown")},
			{"Hotel", resolved("hotels", "hotelId", "Unknown Hotel")},
			{"Check-in", str("checkin")},
			{"Check-out", str("checkout")},
			{"Nights", fmt.Sprintf("%.0f", num("nights"))},
			{"Rooms", fmt.Sprintf("%.0fx %s", num("numRooms"), str("roomType"))},
			{"Board Type", str("boardType")},
			{"Total Price", price},
		}
	case ServiceTransportation:
		return []VoucherField{
			{"Destination", resolved("destinations", "destinationId", "Unknown")},
			{"Date", str("date")},
			{"Description", str("description")},
			{"Vehicle Type", str("vehicleType")},
			{"Days", fmt.Sprintf("%.0f", num("numDays"))},
			{"Vehicles", fmt.Sprintf("%.0f", num("numVehicles"))},
			{"Total Price", price},
		}
	case ServiceFlight:
		return []VoucherField{
			{"Date", str("date")},
			{"Route", fmt.Sprintf("%s - %s", str("departure"), str("arrival"))},
			{"Times", fmt.Sprintf("%s - %s", str("departureTime"), str("arrivalTime"))},
			{"Flight Type", str("flightType")},
			{"PAX", fmt.Sprintf("%.0f", num("pax"))},
			{"Total Price", price},
		}
	case ServiceRentACar:
		return []VoucherField{
			{"Destination", resolved("destinations", "destinationId", "Unknown")},
			{"Date", str("date")},
			{"Car Type", str("carType")},
			{"Pickup", str("pickupLocation")},
			{"Dropoff", str("dropoffLocation")},
			{"Days", fmt.Sprintf("%.0f", num("numDays"))},
			{"Total Price", price},
		}
	case ServiceAdditional:
		return []VoucherField{
			{"Destination", resolved("destinations", "destinationId", "Unknown")},
			{"Date", str("date")},
			{"Description", str("description")},
			{"Service Type", str("serviceType")},
			{"Days", fmt.Sprintf("%.0f", num("numDays"))},
			{"People", fmt.Sprintf("%.0f", num("numPeople"))},
			{"Total Price", price},
		}
	}
	return nil
}

// GenerateVoucherPDF creates a service voucher PDF using maroto/v2.
func GenerateVoucherPDF(data *VoucherExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	addVoucherHeader(m, data)
	addVoucherFields(m, data)
	addVoucherGuests(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate voucher PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func addVoucherHeader(m core.Maroto, data *VoucherExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(text.New(data.CompanyName, props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(6).Add(text.New("SERVICE VOUCHER", props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
		row.New(8).Add(
			col.New(6).Add(text.New(fmt.Sprintf("%s | %s", data.CompanyAddress, data.CompanyEmail), props.Text{
				Size:  8,
				Align: align.Left,
				Color: &props.Color{Red: 100, Green: 100, Blue: 100},
			})),
			col.New(6).Add(text.New(fmt.Sprintf("Voucher #: %s", data.VoucherNumber), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(fmt.Sprintf("%s | Proposal %s", data.ServiceType, data.ProposalReference), props.Text{
				Size:  9,
				Align: align.Left,
			})),
			col.New(6).Add(text.New(fmt.Sprintf("Status: %s", data.Status), props.Text{
				Size:  9,
				Align: align.Right,
			})),
		),
		row.New(3),
	)
}

func addVoucherFields(m core.Maroto, data *VoucherExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{Size: 9, Align: align.Left}

	for _, f := range data.Fields {
		m.AddRows(
			row.New(7).Add(
				col.New(3).Add(text.New(f.Label, labelStyle)),
				col.New(9).Add(text.New(f.Value, valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

func addVoucherGuests(m core.Maroto, data *VoucherExportData) {
	if len(data.Guests) == 0 {
		return
	}

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}
	bodyText := props.Text{Size: 8, Align: align.Left}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(text.New("GUESTS", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
		),
		row.New(8).Add(
			col.New(4).Add(text.New("Name", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Birth Date", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Passport", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Nationality", headerText)).WithStyle(&headerCell),
		),
	)

	for _, g := range data.Guests {
		m.AddRows(
			row.New(7).Add(
				col.New(4).Add(text.New(g.FirstName+" "+g.LastName, bodyText)),
				col.New(2).Add(text.New(g.BirthDate, bodyText)),
				col.New(3).Add(text.New(g.PassportNumber, bodyText)),
				col.New(3).Add(text.New(g.Nationality, bodyText)),
			),
		)
	}
}
