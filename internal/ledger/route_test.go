package ledger

import (
	"testing"
	"time"

	"truckledger-backend/internal/models"
)

func TestExpandRoute(t *testing.T) {
	tests := []struct {
		name  string
		trip  models.Trip
		wantN int
	}{
		{
			name:  "start and end only",
			trip:  models.Trip{StartLocation: "Mumbai", EndLocation: "Delhi"},
			wantN: 1,
		},
		{
			name: "three stops",
			trip: models.Trip{
				StartLocation: "Mumbai",
				Stops:         models.StringList{"Pune", "Nagpur", "Jhansi"},
				EndLocation:   "Delhi",
			},
			wantN: 4,
		},
		{
			name: "blank stops are skipped",
			trip: models.Trip{
				StartLocation: "Mumbai",
				Stops:         models.StringList{"", "Pune", "   "},
				EndLocation:   "Delhi",
			},
			wantN: 2,
		},
		{
			name:  "single point produces no legs",
			trip:  models.Trip{StartLocation: "Mumbai"},
			wantN: 0,
		},
		{
			name:  "all blank produces no legs",
			trip:  models.Trip{StartLocation: " ", Stops: models.StringList{""}, EndLocation: ""},
			wantN: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			legs := ExpandRoute(tt.trip)
			if len(legs) != tt.wantN {
				t.Fatalf("got %d legs, want %d", len(legs), tt.wantN)
			}
			// Each leg's pickup must be the previous leg's delivery.
			for i := 1; i < len(legs); i++ {
				if legs[i].Pickup != legs[i-1].Delivery {
					t.Errorf("leg %d pickup %q does not chain from %q", i, legs[i].Pickup, legs[i-1].Delivery)
				}
			}
		})
	}
}

func TestExpandRouteLegCount(t *testing.T) {
	// n non-blank points always produce exactly n-1 legs.
	points := []string{"A", "B", "C", "D", "E", "F"}
	for n := 2; n <= len(points); n++ {
		trip := models.Trip{
			StartLocation: points[0],
			Stops:         models.StringList(points[1 : n-1]),
			EndLocation:   points[n-1],
		}
		if got := len(ExpandRoute(trip)); got != n-1 {
			t.Errorf("n=%d: got %d legs, want %d", n, got, n-1)
		}
	}
}

func TestNewLegLoad(t *testing.T) {
	trip := models.Trip{ID: "trip-1", DriverID: "drv-1", TruckID: "trk-1"}
	now := time.Unix(1700000000, 0)

	load := NewLegLoad(trip, Leg{Pickup: "Mumbai", Delivery: "Pune"}, now)

	if load.ID == "" {
		t.Error("expected a generated id")
	}
	if load.CustomerID != "" {
		t.Errorf("leg load must start unassigned, got customer %q", load.CustomerID)
	}
	if load.TripID == nil || *load.TripID != "trip-1" {
		t.Error("leg load must reference its trip")
	}
	if load.DriverID != "drv-1" || load.TruckID != "trk-1" {
		t.Error("driver and truck must come from the trip")
	}
	if load.TotalAmount != 0 || load.CustomerAdvance != 0 || load.DriverWages != 0 {
		t.Error("leg load must have zero financials")
	}
	if load.Status != models.LoadStatusActive {
		t.Errorf("status = %q, want Active", load.Status)
	}
	if load.PickupDateTime != now.Unix() {
		t.Errorf("pickup time = %d, want %d", load.PickupDateTime, now.Unix())
	}
}

func TestMissingLegsSyncScenario(t *testing.T) {
	// Trip Mumbai -[Pune]- Delhi generates (Mumbai->Pune), (Pune->Delhi).
	trip := models.Trip{
		ID:            "trip-1",
		DriverID:      "drv-1",
		TruckID:       "trk-1",
		StartLocation: "Mumbai",
		Stops:         models.StringList{"Pune"},
		EndLocation:   "Delhi",
	}
	now := time.Now()

	var existing []models.Load
	for _, leg := range ExpandRoute(trip) {
		existing = append(existing, NewLegLoad(trip, leg, now))
	}
	if len(existing) != 2 {
		t.Fatalf("setup: got %d leg loads, want 2", len(existing))
	}

	// Adding Nagpur between Pune and Delhi must yield exactly the two new
	// pairs, leaving the original loads untouched.
	trip.Stops = models.StringList{"Pune", "Nagpur"}
	missing := MissingLegs(trip, existing)
	want := []Leg{
		{Pickup: "Pune", Delivery: "Nagpur"},
		{Pickup: "Nagpur", Delivery: "Delhi"},
	}
	if len(missing) != len(want) {
		t.Fatalf("got %d missing legs %v, want %d", len(missing), missing, len(want))
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("missing[%d] = %v, want %v", i, missing[i], want[i])
		}
	}

	// Idempotence: once the new legs have loads, a second sync adds nothing.
	for _, leg := range missing {
		existing = append(existing, NewLegLoad(trip, leg, now))
	}
	if again := MissingLegs(trip, existing); len(again) != 0 {
		t.Errorf("second sync produced %v, want none", again)
	}

	// Shortening the route orphans loads but never flags removals.
	trip.Stops = models.StringList{}
	if got := MissingLegs(trip, existing); len(got) != 1 || got[0] != (Leg{Pickup: "Mumbai", Delivery: "Delhi"}) {
		t.Errorf("shortened route: got %v, want only Mumbai->Delhi", got)
	}
}

func TestAppendRoutePoint(t *testing.T) {
	trip := models.Trip{
		StartLocation: "Mumbai",
		Stops:         models.StringList{"Pune"},
		EndLocation:   "Delhi",
	}

	leg, ok := AppendRoutePoint(&trip, "Agra")
	if !ok {
		t.Fatal("expected append to succeed")
	}
	if leg.Pickup != "Delhi" || leg.Delivery != "Agra" {
		t.Errorf("leg = %v, want Delhi->Agra", leg)
	}
	if trip.EndLocation != "Agra" {
		t.Errorf("end = %q, want Agra", trip.EndLocation)
	}
	if len(trip.Stops) != 2 || trip.Stops[1] != "Delhi" {
		t.Errorf("old end must become a stop, stops = %v", trip.Stops)
	}

	if _, ok := AppendRoutePoint(&trip, "   "); ok {
		t.Error("blank point must be rejected")
	}
}
