// Package collections creates and seeds the application's PocketBase
// collections: master data, proposals with their line items, and vouchers.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures every collection the application
// needs. Safe to call repeatedly; existing collections are left untouched.
func Setup(app *pocketbase.PocketBase) {
	destinations := ensureCollection(app, "destinations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "country", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "hotels", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "destination",
			Required:     true,
			CollectionId: destinations.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "star_rating"})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.TextField{Name: "contact_email"})
		c.Fields.Add(&core.TextField{Name: "contact_phone"})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	agencies := ensureCollection(app, "agencies", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "country", Required: true})
		c.Fields.Add(&core.TextField{Name: "contact_person"})
		c.Fields.Add(&core.TextField{Name: "contact_email"})
		c.Fields.Add(&core.TextField{Name: "contact_phone"})
		c.Fields.Add(&core.TextField{Name: "commission_rate", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	sources := ensureCollection(app, "sources", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.BoolField{Name: "is_agency"})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	// Named "staff" because PocketBase reserves "users" for its own auth
	// collection.
	staff := ensureCollection(app, "staff", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "role",
			Required:  true,
			Values:    []string{"Super Admin", "Admin", "Sales", "Operations"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "lookups", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"service_type", "vehicle_type", "flight_type", "car_type"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.BoolField{Name: "is_active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "company_settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "address"})
		c.Fields.Add(&core.TextField{Name: "city"})
		c.Fields.Add(&core.TextField{Name: "country"})
		c.Fields.Add(&core.TextField{Name: "postal_code"})
		c.Fields.Add(&core.TextField{Name: "phone"})
		c.Fields.Add(&core.TextField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "website"})
		c.Fields.Add(&core.TextField{Name: "tax_id"})
		c.Fields.Add(&core.TextField{Name: "license_number"})
		c.Fields.Add(&core.TextField{Name: "currency"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	proposals := ensureCollection(app, "proposals", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "reference", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "source",
			Required:     true,
			CollectionId: sources.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "agency",
			CollectionId: agencies.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "sales_person",
			CollectionId: staff.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "destinations",
			Required:     true,
			CollectionId: destinations.Id,
			MaxSelect:    99,
		})
		c.Fields.Add(&core.TextField{Name: "estimated_nights"})
		c.Fields.Add(&core.TextField{Name: "overall_margin"})
		c.Fields.Add(&core.TextField{Name: "commission"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"NEW", "CONFIRMED", "CANCELLED"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "pdf_language",
			Values:    []string{"english", "arabic", "turkish"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "display_currency",
			Values:    []string{"usd", "eur", "try", "gbp"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "line_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "proposal",
			Required:      true,
			CollectionId:  proposals.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "service_type",
			Required:  true,
			Values:    []string{"hotel", "transportation", "flight", "rentacar", "additional"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "destination"})
		c.Fields.Add(&core.TextField{Name: "currency"})
		c.Fields.Add(&core.TextField{Name: "unit_price"})
		// hotel
		c.Fields.Add(&core.TextField{Name: "hotel"})
		c.Fields.Add(&core.TextField{Name: "checkin"})
		c.Fields.Add(&core.TextField{Name: "checkout"})
		c.Fields.Add(&core.TextField{Name: "room_type"})
		c.Fields.Add(&core.TextField{Name: "board_type"})
		c.Fields.Add(&core.NumberField{Name: "num_rooms"})
		// transportation / rentacar / additional
		c.Fields.Add(&core.TextField{Name: "date"})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.NumberField{Name: "num_days"})
		c.Fields.Add(&core.NumberField{Name: "num_vehicles"})
		c.Fields.Add(&core.NumberField{Name: "num_people"})
		// flight
		c.Fields.Add(&core.TextField{Name: "departure"})
		c.Fields.Add(&core.TextField{Name: "arrival"})
		c.Fields.Add(&core.TextField{Name: "departure_time"})
		c.Fields.Add(&core.TextField{Name: "arrival_time"})
		c.Fields.Add(&core.NumberField{Name: "pax"})
		// lookup name (vehicle/flight/car/service type)
		c.Fields.Add(&core.TextField{Name: "type_name"})
		c.Fields.Add(&core.TextField{Name: "pickup_location"})
		c.Fields.Add(&core.TextField{Name: "dropoff_location"})
	})

	ensureCollection(app, "vouchers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "voucher_number", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "proposal",
			Required:     true,
			CollectionId: proposals.Id,
			MaxSelect:    1,
		})
		// Plain text on purpose: the voucher must survive deletion of the
		// line item it was generated from.
		c.Fields.Add(&core.TextField{Name: "line_item_id"})
		c.Fields.Add(&core.SelectField{
			Name:      "service_type",
			Required:  true,
			Values:    []string{"hotel", "transportation", "flight", "rentacar", "additional"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "service_data"})
		c.Fields.Add(&core.JSONField{Name: "guests"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"PENDING_PAYMENT", "PAID", "COMPLETED", "CANCELLED"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it
// does, the existing collection is returned. Otherwise a new base
// collection is created, the addFields callback is invoked to populate
// its fields, and the collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
