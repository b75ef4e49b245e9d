package collections_test

import (
	"testing"

	"toms/collections"
	"toms/testhelpers"
)

func TestSeed_CreatesMasterData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	destinations, err := app.FindAllRecords("destinations")
	if err != nil {
		t.Fatalf("query destinations error: %v", err)
	}
	if len(destinations) != 5 {
		t.Fatalf("expected 5 destinations, got %d", len(destinations))
	}

	hotels, _ := app.FindAllRecords("hotels")
	if len(hotels) != 5 {
		t.Errorf("expected 5 hotels, got %d", len(hotels))
	}
	// Every seeded hotel must point at a seeded destination
	destIDs := make(map[string]bool, len(destinations))
	for _, d := range destinations {
		destIDs[d.Id] = true
	}
	for _, h := range hotels {
		if !destIDs[h.GetString("destination")] {
			t.Errorf("hotel %q references unknown destination %q", h.GetString("name"), h.GetString("destination"))
		}
	}

	agencies, _ := app.FindAllRecords("agencies")
	if len(agencies) != 3 {
		t.Errorf("expected 3 agencies, got %d", len(agencies))
	}

	sources, _ := app.FindAllRecords("sources")
	if len(sources) != 4 {
		t.Errorf("expected 4 sources, got %d", len(sources))
	}
	b2b := 0
	for _, s := range sources {
		if s.GetBool("is_agency") {
			b2b++
		}
	}
	if b2b != 1 {
		t.Errorf("expected exactly 1 B2B source, got %d", b2b)
	}

	staff, _ := app.FindAllRecords("staff")
	if len(staff) != 4 {
		t.Errorf("expected 4 staff members, got %d", len(staff))
	}

	lookups, _ := app.FindAllRecords("lookups")
	if len(lookups) != 18 {
		t.Errorf("expected 18 lookups, got %d", len(lookups))
	}

	settings, _ := app.FindAllRecords("company_settings")
	if len(settings) != 1 {
		t.Fatalf("expected 1 company settings record, got %d", len(settings))
	}
	if settings[0].GetString("name") != "TOMS Travel & Tourism" {
		t.Errorf("company name = %q, want %q", settings[0].GetString("name"), "TOMS Travel & Tourism")
	}
}

func TestSeed_NoOpWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateTestDestination(t, app, "IST", "Istanbul")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	destinations, err := app.FindAllRecords("destinations")
	if err != nil {
		t.Fatalf("query destinations error: %v", err)
	}
	if len(destinations) != 1 {
		t.Errorf("expected seed to be a no-op, got %d destinations", len(destinations))
	}

	agencies, _ := app.FindAllRecords("agencies")
	if len(agencies) != 0 {
		t.Errorf("expected no seeded agencies, got %d", len(agencies))
	}
}
