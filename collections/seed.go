package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type destinationDef struct {
	code        string
	name        string
	country     string
	description string
}

type hotelDef struct {
	name         string
	destCode     string
	starRating   int
	address      string
	contactEmail string
}

type agencyDef struct {
	name           string
	country        string
	contactPerson  string
	contactEmail   string
	commissionRate string
}

type sourceDef struct {
	name        string
	description string
	isAgency    bool
}

type staffDef struct {
	name  string
	email string
	role  string
}

type lookupDef struct {
	lookupType  string
	name        string
	description string
}

// ── Seed data ────────────────────────────────────────────────────────────

var seedDestinations = []destinationDef{
	{"IST", "Istanbul", "Turkey", "City break and cultural tours"},
	{"CAP", "Cappadocia", "Turkey", "Hot air balloons and cave hotels"},
	{"ANT", "Antalya", "Turkey", "Mediterranean beach resorts"},
	{"TRZ", "Trabzon", "Turkey", "Black Sea highlands"},
	{"BOD", "Bodrum", "Turkey", "Aegean coast resorts"},
}

var seedHotels = []hotelDef{
	{"Grand Bosphorus Hotel", "IST", 5, "Besiktas, Istanbul", "reservations@grandbosphorus.example"},
	{"Sultanahmet Palace", "IST", 4, "Fatih, Istanbul", "stay@sultanahmetpalace.example"},
	{"Cave Suites Goreme", "CAP", 5, "Goreme, Nevsehir", "info@cavesuites.example"},
	{"Lara Beach Resort", "ANT", 5, "Lara, Antalya", "booking@larabeach.example"},
	{"Uzungol Lake Lodge", "TRZ", 3, "Uzungol, Trabzon", "hello@uzungollodge.example"},
}

var seedAgencies = []agencyDef{
	{"Desert Rose Travel", "Saudi Arabia", "Ahmed Al-Rashid", "ahmed@desertrose.example", "10"},
	{"Gulf Horizons", "UAE", "Fatima Hassan", "fatima@gulfhorizons.example", "12"},
	{"Doha Voyages", "Qatar", "Khalid Mansour", "khalid@dohavoyages.example", "8"},
}

var seedSources = []sourceDef{
	{"Direct Client", "Walk-in and repeat customers", false},
	{"Travel Agency (B2B)", "Partner agency bookings", true},
	{"Website", "Online inquiry form", false},
	{"Referral", "Word of mouth", false},
}

var seedStaff = []staffDef{
	{"Selin Demir", "selin@toms.example", "Admin"},
	{"Omar Yilmaz", "omar@toms.example", "Sales"},
	{"Leyla Kaya", "leyla@toms.example", "Sales"},
	{"Murat Aksoy", "murat@toms.example", "Operations"},
}

var seedLookups = []lookupDef{
	{"service_type", "Tour Guide", "Professional tour guide services"},
	{"service_type", "Museum Entry", "Museum and attraction tickets"},
	{"service_type", "Activities", "Various tourist activities"},
	{"service_type", "Meals", "Lunch/dinner arrangements"},
	{"service_type", "Insurance", "Travel insurance"},
	{"vehicle_type", "Sedan (4 PAX)", "Compact sedan for 4 passengers"},
	{"vehicle_type", "Van (7 PAX)", "Mini van for 7 passengers"},
	{"vehicle_type", "Mini Bus (15 PAX)", "Mini bus for 15 passengers"},
	{"vehicle_type", "Bus (30 PAX)", "Standard bus for 30 passengers"},
	{"vehicle_type", "Bus (50 PAX)", "Large bus for 50 passengers"},
	{"flight_type", "Domestic", "Within country flights"},
	{"flight_type", "International", "Between countries"},
	{"flight_type", "Regional", "Regional flights"},
	{"car_type", "Economy", "Compact cars"},
	{"car_type", "Standard", "Mid-size cars"},
	{"car_type", "Luxury", "Premium vehicles"},
	{"car_type", "SUV", "Sport utility vehicles"},
	{"car_type", "Van", "Multi-passenger vans"},
}

// Seed populates master data and lookups on first startup. It is a no-op
// when destinations already exist.
func Seed(app *pocketbase.PocketBase) error {
	existing, err := app.FindAllRecords("destinations")
	if err == nil && len(existing) > 0 {
		return nil
	}

	destsByCode := make(map[string]*core.Record, len(seedDestinations))

	destCol, err := app.FindCollectionByNameOrId("destinations")
	if err != nil {
		return fmt.Errorf("destinations collection not found: %w", err)
	}
	for _, d := range seedDestinations {
		record := core.NewRecord(destCol)
		record.Set("code", d.code)
		record.Set("name", d.name)
		record.Set("country", d.country)
		record.Set("description", d.description)
		record.Set("is_active", true)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed destination %q: %w", d.name, err)
		}
		destsByCode[d.code] = record
	}

	hotelCol, err := app.FindCollectionByNameOrId("hotels")
	if err != nil {
		return fmt.Errorf("hotels collection not found: %w", err)
	}
	for _, h := range seedHotels {
		dest := destsByCode[h.destCode]
		if dest == nil {
			log.Printf("seed: skipping hotel %q, unknown destination code %q", h.name, h.destCode)
			continue
		}
		record := core.NewRecord(hotelCol)
		record.Set("name", h.name)
		record.Set("destination", dest.Id)
		record.Set("star_rating", h.starRating)
		record.Set("address", h.address)
		record.Set("contact_email", h.contactEmail)
		record.Set("is_active", true)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed hotel %q: %w", h.name, err)
		}
	}

	agencyCol, err := app.FindCollectionByNameOrId("agencies")
	if err != nil {
		return fmt.Errorf("agencies collection not found: %w", err)
	}
	for _, a := range seedAgencies {
		record := core.NewRecord(agencyCol)
		record.Set("name", a.name)
		record.Set("country", a.country)
		record.Set("contact_person", a.contactPerson)
		record.Set("contact_email", a.contactEmail)
		record.Set("commission_rate", a.commissionRate)
		record.Set("is_active", true)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed agency %q: %w", a.name, err)
		}
	}

	sourceCol, err := app.FindCollectionByNameOrId("sources")
	if err != nil {
		return fmt.Errorf("sources collection not found: %w", err)
	}
	for _, s := range seedSources {
		record := core.NewRecord(sourceCol)
		record.Set("name", s.name)
		record.Set("description", s.description)
		record.Set("is_agency", s.isAgency)
		record.Set("is_active", true)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed source %q: %w", s.name, err)
		}
	}

	staffCol, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		return fmt.Errorf("staff collection not found: %w", err)
	}
	for _, s := range seedStaff {
		record := core.NewRecord(staffCol)
		record.Set("name", s.name)
		record.Set("email", s.email)
		record.Set("role", s.role)
		record.Set("is_active", true)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed staff %q: %w", s.name, err)
		}
	}

	lookupCol, err := app.FindCollectionByNameOrId("lookups")
	if err != nil {
		return fmt.Errorf("lookups collection not found: %w", err)
	}
	for _, l := range seedLookups {
		record := core.NewRecord(lookupCol)
		record.Set("type", l.lookupType)
		record.Set("name", l.name)
		record.Set("description", l.description)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed lookup %q: %w", l.name, err)
		}
	}

	companyCol, err := app.FindCollectionByNameOrId("company_settings")
	if err != nil {
		return fmt.Errorf("company_settings collection not found: %w", err)
	}
	company := core.NewRecord(companyCol)
	company.Set("name", "TOMS Travel & Tourism")
	company.Set("address", "Istiklal Cad. 142")
	company.Set("city", "Istanbul")
	company.Set("country", "Turkey")
	company.Set("postal_code", "34430")
	company.Set("phone", "+90 212 555 0142")
	company.Set("email", "info@toms.example")
	company.Set("website", "https://toms.example")
	company.Set("currency", "USD")
	if err := app.Save(company); err != nil {
		return fmt.Errorf("seed company settings: %w", err)
	}

	return nil
}
