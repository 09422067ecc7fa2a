package handlers

import (
	"testing"
	"time"

	"truckledger-backend/internal/ledger"
	"truckledger-backend/internal/models"
)

func strp(s string) *string { return &s }

// A single PATCH can reassign the driver or truck and extend the route at the
// same time. The leg loads created for the new route segments must carry the
// edited driver and truck, not the ones read from the old row.
func TestApplyTripEditCombinedDriverAndRouteEdit(t *testing.T) {
	trip := models.Trip{
		ID:            "t1",
		DriverID:      "driver-old",
		TruckID:       "truck-old",
		StartLocation: "Mumbai",
		EndLocation:   "Delhi",
		Stops:         models.StringList{},
	}
	existing := []models.Load{
		{ID: "l1", TripID: &trip.ID, DriverID: "driver-old", TruckID: "truck-old",
			PickupLocation: "Mumbai", DeliveryLocation: "Delhi"},
	}

	applyTripEdit(&trip, models.UpdateTripRequest{
		DriverID: strp("driver-new"),
		TruckID:  strp("truck-new"),
		Stops:    []string{"Nagpur"},
	})

	if trip.DriverID != "driver-new" || trip.TruckID != "truck-new" {
		t.Fatalf("edit not applied: driver=%s truck=%s", trip.DriverID, trip.TruckID)
	}

	missing := ledger.MissingLegs(trip, existing)
	if len(missing) != 2 {
		t.Fatalf("missing legs = %d, want 2", len(missing))
	}
	for _, leg := range missing {
		load := ledger.NewLegLoad(trip, leg, time.Now())
		if load.DriverID != "driver-new" {
			t.Errorf("leg %s->%s created with driver %s, want driver-new",
				leg.Pickup, leg.Delivery, load.DriverID)
		}
		if load.TruckID != "truck-new" {
			t.Errorf("leg %s->%s created with truck %s, want truck-new",
				leg.Pickup, leg.Delivery, load.TruckID)
		}
	}
}

func TestApplyTripEditLeavesOmittedFields(t *testing.T) {
	trip := models.Trip{
		ID:            "t2",
		DriverID:      "driver-1",
		TruckID:       "truck-1",
		StartLocation: "Pune",
		EndLocation:   "Surat",
		Stops:         models.StringList{"Nashik"},
	}

	applyTripEdit(&trip, models.UpdateTripRequest{EndLocation: strp("Vadodara")})

	if trip.DriverID != "driver-1" || trip.TruckID != "truck-1" {
		t.Errorf("driver/truck changed by a route-only edit: %s / %s", trip.DriverID, trip.TruckID)
	}
	if trip.StartLocation != "Pune" || trip.EndLocation != "Vadodara" {
		t.Errorf("route = %s -> %s, want Pune -> Vadodara", trip.StartLocation, trip.EndLocation)
	}
	if len(trip.Stops) != 1 || trip.Stops[0] != "Nashik" {
		t.Errorf("stops = %v, want [Nashik]", trip.Stops)
	}
}
