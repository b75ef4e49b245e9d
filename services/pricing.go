// Package services holds the pricing and aggregation core for proposals,
// plus document generation (PDF quotes, voucher PDFs, Excel exports).
package services

import "time"

// ServiceType tags a line item with its service category.
type ServiceType string

const (
	ServiceHotel          ServiceType = "hotel"
	ServiceTransportation ServiceType = "transportation"
	ServiceFlight         ServiceType = "flight"
	ServiceRentACar       ServiceType = "rentacar"
	ServiceAdditional     ServiceType = "additional"
)

// ServiceTypes lists every valid line item category, in display order.
var ServiceTypes = []ServiceType{
	ServiceHotel,
	ServiceTransportation,
	ServiceFlight,
	ServiceRentACar,
	ServiceAdditional,
}

// ServiceTypeLabel returns the display name for a service category.
func ServiceTypeLabel(t ServiceType) string {
	switch t {
	case ServiceHotel:
		return "Hotel"
	case ServiceTransportation:
		return "Transportation"
	case ServiceFlight:
		return "Flight"
	case ServiceRentACar:
		return "Rent a Car"
	case ServiceAdditional:
		return "Additional Service"
	}
	return string(t)
}

// LineItem is one priced entry within a proposal. The Type tag decides
// which quantity fields take part in the total; fields that do not apply
// to a category are ignored by CalcLineTotal.
//
// UnitPrice stays a string on purpose: it mirrors the in-progress form
// value and parses fail-soft. The total is never stored; it is always
// recomputed from the unit price and the quantity fields.
type LineItem struct {
	ID            string
	Type          ServiceType
	DestinationID string
	Currency      string
	UnitPrice     string

	// hotel
	HotelID   string
	Checkin   string
	Checkout  string
	RoomType  string
	BoardType string
	NumRooms  int

	// transportation, rentacar, additional
	Date        string
	Description string
	NumDays     int
	NumVehicles int
	NumPeople   int

	// flight
	Departure     string
	Arrival       string
	DepartureTime string
	ArrivalTime   string
	Pax           int

	// lookup name (vehicle type, flight type, car type or service type)
	TypeName        string
	PickupLocation  string
	DropoffLocation string
}

const dateLayout = "2006-01-02"

// Nights returns the whole-day difference between checkin and checkout.
// Missing or unparsable dates and checkout <= checkin all yield 0: a
// half-filled hotel row prices at zero rather than erroring.
func Nights(checkin, checkout string) int {
	start, err := time.Parse(dateLayout, checkin)
	if err != nil {
		return 0
	}
	end, err := time.Parse(dateLayout, checkout)
	if err != nil {
		return 0
	}
	nights := int(end.Sub(start).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

// CalcLineTotal computes the net cost of a single line item: unit price
// times the category's quantity fields. Pure; never negative.
func CalcLineTotal(item LineItem) float64 {
	price := ParseMoney(item.UnitPrice)

	switch item.Type {
	case ServiceHotel:
		return price * float64(Nights(item.Checkin, item.Checkout)) * float64(NormalizeQty(item.NumRooms))
	case ServiceTransportation:
		return price * float64(NormalizeQty(item.NumDays)) * float64(NormalizeQty(item.NumVehicles))
	case ServiceFlight:
		return price * float64(NormalizeQty(item.Pax))
	case ServiceRentACar:
		return price * float64(NormalizeQty(item.NumDays))
	case ServiceAdditional:
		return price * float64(NormalizeQty(item.NumDays)) * float64(NormalizeQty(item.NumPeople))
	}
	return 0
}

// CalcSellPrice applies the proposal-level margin and commission
// percentages to a net line total. The two rates are additive, not
// compounded.
func CalcSellPrice(lineTotal float64, overallMargin, commission string) float64 {
	return lineTotal * (1 + ParsePercent(overallMargin) + ParsePercent(commission))
}

// ProposalTotals is the full price roll-up for one proposal.
//
// Category subtotals and the grand subtotal sum line totals as raw
// numbers even when entries carry different currencies. That is the
// observed behavior of the system this replaces and is preserved as-is;
// see DESIGN.md for the multi-currency caveat.
type ProposalTotals struct {
	HotelTotal      float64
	TransportTotal  float64
	FlightTotal     float64
	CarTotal        float64
	AdditionalTotal float64

	GrandSubtotal    float64
	MarginAmount     float64
	CommissionAmount float64
	FinalSalePrice   float64
}

// SubtotalFor returns the subtotal of a single category.
func (t ProposalTotals) SubtotalFor(serviceType ServiceType) float64 {
	switch serviceType {
	case ServiceHotel:
		return t.HotelTotal
	case ServiceTransportation:
		return t.TransportTotal
	case ServiceFlight:
		return t.FlightTotal
	case ServiceRentACar:
		return t.CarTotal
	case ServiceAdditional:
		return t.AdditionalTotal
	}
	return 0
}

// CalcProposalTotals rolls every line item up into per-category subtotals,
// the grand subtotal and the final sale price. Margin and commission are
// both computed against the net subtotal, not against each other.
func CalcProposalTotals(items []LineItem, overallMargin, commission string) ProposalTotals {
	var totals ProposalTotals

	for _, item := range items {
		lineTotal := CalcLineTotal(item)
		switch item.Type {
		case ServiceHotel:
			totals.HotelTotal += lineTotal
		case ServiceTransportation:
			totals.TransportTotal += lineTotal
		case ServiceFlight:
			totals.FlightTotal += lineTotal
		case ServiceRentACar:
			totals.CarTotal += lineTotal
		case ServiceAdditional:
			totals.AdditionalTotal += lineTotal
		}
	}

	totals.GrandSubtotal = totals.HotelTotal + totals.TransportTotal +
		totals.FlightTotal + totals.CarTotal + totals.AdditionalTotal
	totals.MarginAmount = totals.GrandSubtotal * ParsePercent(overallMargin)
	totals.CommissionAmount = totals.GrandSubtotal * ParsePercent(commission)
	totals.FinalSalePrice = totals.GrandSubtotal + totals.MarginAmount + totals.CommissionAmount

	return totals
}
