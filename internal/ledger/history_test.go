package ledger

import (
	"testing"

	"truckledger-backend/internal/models"
)

func TestLoadCustomerHistoryOrdering(t *testing.T) {
	load := models.Load{
		PickupDateTime:  100,
		CustomerAdvance: 500,
		CustomerPayments: models.PaymentList{
			{Amount: 200, Date: 300, Method: "UPI"},
			{Amount: 100, Date: 200, Method: "Cash"},
			{Amount: 50, Date: 400, Method: "Cash"},
		},
	}

	history := LoadCustomerHistory(load)
	if len(history) != 4 {
		t.Fatalf("got %d entries, want 4", len(history))
	}
	// Newest first: 400, 300, 200, 100 (advance at pickup time).
	wantDates := []int64{400, 300, 200, 100}
	for i, want := range wantDates {
		if history[i].Date != want {
			t.Errorf("entry %d date = %d, want %d", i, history[i].Date, want)
		}
	}
	if history[3].Label != "Advance" {
		t.Errorf("oldest entry = %q, want the advance", history[3].Label)
	}
}

func TestHistoryUndatedEntriesKeepOrder(t *testing.T) {
	load := models.Load{
		CustomerAdvance: 0,
		CustomerPayments: models.PaymentList{
			{Amount: 1, Method: "a"},
			{Amount: 2, Method: "b"},
			{Amount: 3, Method: "c"},
		},
	}
	history := LoadCustomerHistory(load)
	for i, want := range []float64{1, 2, 3} {
		if history[i].Amount != want {
			t.Errorf("undated entries reordered: entry %d amount = %v, want %v", i, history[i].Amount, want)
		}
	}
}

func TestLoadDriverHistoryDefaultsMethodToCash(t *testing.T) {
	load := models.Load{
		PickupDateTime: 10,
		DriverAdvance:  f(700),
	}
	history := LoadDriverHistory(load)
	if len(history) != 1 {
		t.Fatalf("got %d entries, want 1", len(history))
	}
	if history[0].Method != "Cash" {
		t.Errorf("method = %q, want Cash", history[0].Method)
	}
}

func TestTripDriverHistory(t *testing.T) {
	photo := "receipt.jpg"
	trip := models.Trip{DriverAdvance: f(1000)}
	tripLoads := []models.Load{
		{
			PickupDateTime: 50,
			DriverAdvance:  f(300),
			DriverPayments: models.PaymentList{
				{Amount: 250, Date: 80, Method: "UPI", Photo: &photo},
			},
		},
	}

	history := TripDriverHistory(trip, tripLoads)
	if len(history) != 3 {
		t.Fatalf("got %d entries, want 3", len(history))
	}
	// Undated trip advance stays first (stable), dated entries follow
	// newest first.
	if history[0].Label != "Trip Advance" {
		t.Errorf("first entry = %q, want Trip Advance", history[0].Label)
	}
	if history[1].Date != 80 || history[2].Date != 50 {
		t.Errorf("dated entries out of order: %d then %d", history[1].Date, history[2].Date)
	}
	if history[1].Photo == nil || *history[1].Photo != photo {
		t.Error("payment photo must survive into the history entry")
	}
}

func TestHistorySkipsZeroAdvances(t *testing.T) {
	if got := LoadCustomerHistory(models.Load{}); len(got) != 0 {
		t.Errorf("empty load produced %d entries", len(got))
	}
	if got := TripDriverHistory(models.Trip{}, nil); len(got) != 0 {
		t.Errorf("empty trip produced %d entries", len(got))
	}
}
