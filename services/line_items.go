package services

import "github.com/pocketbase/pocketbase/core"

// RecordToLineItem maps a line_items record onto the pricing engine's
// LineItem shape.
func RecordToLineItem(r *core.Record) LineItem {
	return LineItem{
		ID:              r.Id,
		Type:            ServiceType(r.GetString("service_type")),
		DestinationID:   r.GetString("destination"),
		Currency:        r.GetString("currency"),
		UnitPrice:       r.GetString("unit_price"),
		HotelID:         r.GetString("hotel"),
		Checkin:         r.GetString("checkin"),
		Checkout:        r.GetString("checkout"),
		RoomType:        r.GetString("room_type"),
		BoardType:       r.GetString("board_type"),
		NumRooms:        r.GetInt("num_rooms"),
		Date:            r.GetString("date"),
		Description:     r.GetString("description"),
		NumDays:         r.GetInt("num_days"),
		NumVehicles:     r.GetInt("num_vehicles"),
		NumPeople:       r.GetInt("num_people"),
		Departure:       r.GetString("departure"),
		Arrival:         r.GetString("arrival"),
		DepartureTime:   r.GetString("departure_time"),
		ArrivalTime:     r.GetString("arrival_time"),
		Pax:             r.GetInt("pax"),
		TypeName:        r.GetString("type_name"),
		PickupLocation:  r.GetString("pickup_location"),
		DropoffLocation: r.GetString("dropoff_location"),
	}
}

// ApplyLineItemDefaults seeds a fresh line_items record with the
// category-appropriate blank entry: quantity fields 1, price empty,
// currency USD. Matches what the builder screens start a new row with.
func ApplyLineItemDefaults(record *core.Record, serviceType ServiceType) {
	record.Set("service_type", string(serviceType))
	record.Set("currency", "USD")
	record.Set("unit_price", "")

	switch serviceType {
	case ServiceHotel:
		record.Set("num_rooms", 1)
	case ServiceTransportation:
		record.Set("num_days", 1)
		record.Set("num_vehicles", 1)
	case ServiceFlight:
		record.Set("pax", 1)
	case ServiceRentACar:
		record.Set("num_days", 1)
	case ServiceAdditional:
		record.Set("num_days", 1)
		record.Set("num_people", 1)
	}
}

// ServiceSnapshot freezes a line item's resolved service data for a
// voucher. The snapshot deliberately copies values (including the
// computed total) instead of referencing the proposal, so later edits to
// the proposal never alter an already issued voucher.
func ServiceSnapshot(item LineItem) map[string]any {
	total := CalcLineTotal(item)

	switch item.Type {
	case ServiceHotel:
		return map[string]any{
			"destinationId": item.DestinationID,
			"hotelId":       item.HotelID,
			"checkin":       item.Checkin,
			"checkout":      item.Checkout,
			"nights":        Nights(item.Checkin, item.Checkout),
			"numRooms":      NormalizeQty(item.NumRooms),
			"roomType":      item.RoomType,
			"boardType":     item.BoardType,
			"currency":      item.Currency,
			"totalPrice":    total,
		}
	case ServiceTransportation:
		return map[string]any{
			"destinationId": item.DestinationID,
			"date":          item.Date,
			"description":   item.Description,
			"vehicleType":   item.TypeName,
			"numDays":       NormalizeQty(item.NumDays),
			"numVehicles":   NormalizeQty(item.NumVehicles),
			"currency":      item.Currency,
			"totalPrice":    total,
		}
	case ServiceFlight:
		return map[string]any{
			"date":          item.Date,
			"departure":     item.Departure,
			"arrival":       item.Arrival,
			"departureTime": item.DepartureTime,
			"arrivalTime":   item.ArrivalTime,
			"flightType":    item.TypeName,
			"pax":           NormalizeQty(item.Pax),
			"currency":      item.Currency,
			"totalPrice":    total,
		}
	case ServiceRentACar:
		return map[string]any{
			"destinationId":   item.DestinationID,
			"date":            item.Date,
			"carType":         item.TypeName,
			"pickupLocation":  item.PickupLocation,
			"dropoffLocation": item.DropoffLocation,
			"numDays":         NormalizeQty(item.NumDays),
			"currency":        item.Currency,
			"totalPrice":      total,
		}
	case ServiceAdditional:
		return map[string]any{
			"destinationId": item.DestinationID,
			"date":          item.Date,
			"description":   item.Description,
			"serviceType":   item.TypeName,
			"numDays":       NormalizeQty(item.NumDays),
			"numPeople":     NormalizeQty(item.NumPeople),
			"currency":      item.Currency,
			"totalPrice":    total,
		}
	}
	return map[string]any{"currency": item.Currency, "totalPrice": total}
}

// Guest is one traveler on a voucher. Guests live as a JSON list on the
// voucher record and are always replaced wholesale, never patched in
// place.
type Guest struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	BirthDate      string `json:"birthDate"`
	PassportNumber string `json:"passportNumber"`
	Nationality    string `json:"nationality"`
}
