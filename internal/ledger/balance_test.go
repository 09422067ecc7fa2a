package ledger

import (
	"testing"

	"truckledger-backend/internal/models"
)

func f(v float64) *float64 { return &v }

func TestCustomerBalance(t *testing.T) {
	tests := []struct {
		name string
		load models.Load
		want float64
	}{
		{
			name: "advance only",
			load: models.Load{TotalAmount: 10000, CustomerAdvance: 3000},
			want: 7000,
		},
		{
			name: "advance plus payments",
			load: models.Load{
				TotalAmount:     10000,
				CustomerAdvance: 3000,
				CustomerPayments: models.PaymentList{
					{Amount: 2000}, {Amount: 1500},
				},
			},
			want: 3500,
		},
		{
			name: "overpaid goes negative",
			load: models.Load{TotalAmount: 1000, CustomerAdvance: 1500},
			want: -500,
		},
		{
			name: "empty load",
			load: models.Load{},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CustomerBalance(tt.load); got != tt.want {
				t.Errorf("CustomerBalance = %v, want %v", got, tt.want)
			}
			// Conservation: balance + paid == total.
			if CustomerBalance(tt.load)+CustomerPaid(tt.load) != tt.load.TotalAmount {
				t.Error("balance + paid != total amount")
			}
		})
	}
}

func TestDriverBalanceForLoad(t *testing.T) {
	load := models.Load{
		DriverWages:   5000,
		DriverAdvance: f(1000),
		DriverPayments: models.PaymentList{
			{Amount: 500}, {Amount: 500},
		},
	}
	if got := DriverBalanceForLoad(load); got != 3000 {
		t.Errorf("got %v, want 3000", got)
	}

	// nil advance counts as zero
	if got := DriverBalanceForLoad(models.Load{DriverWages: 2000}); got != 2000 {
		t.Errorf("got %v, want 2000", got)
	}
}

func TestTripDriverBalanceOverride(t *testing.T) {
	tripLoads := []models.Load{
		{DriverWages: 1000},
		{DriverWages: 2000},
	}

	// Trip-level wages defined: use 5000, not the 3000 sum.
	trip := models.Trip{DriverWages: f(5000)}
	if got := TripDriverBalance(trip, tripLoads); got != 5000 {
		t.Errorf("override: got %v, want 5000", got)
	}

	// Undefined: fall back to the load sum.
	trip.DriverWages = nil
	if got := TripDriverBalance(trip, tripLoads); got != 3000 {
		t.Errorf("fallback: got %v, want 3000", got)
	}

	// An explicit zero is a valid override, distinct from unset.
	trip.DriverWages = f(0)
	if got := TripDriverBalance(trip, tripLoads); got != 0 {
		t.Errorf("zero override: got %v, want 0", got)
	}
}

func TestTripDriverBalanceAdvanceIsAdditive(t *testing.T) {
	trip := models.Trip{DriverWages: f(10000), DriverAdvance: f(2000)}
	tripLoads := []models.Load{
		{DriverWages: 4000, DriverAdvance: f(1000)},
		{DriverWages: 4000, DriverPayments: models.PaymentList{{Amount: 500}}},
	}
	// paid = 2000 (trip) + 1000 (load advance) + 500 (load payment) = 3500
	if got := TripDriverBalance(trip, tripLoads); got != 6500 {
		t.Errorf("got %v, want 6500", got)
	}
}

func TestCustomerAggregateBalance(t *testing.T) {
	loads := []models.Load{
		{CustomerID: "c1", TotalAmount: 5000, CustomerAdvance: 1000, Status: models.LoadStatusActive},
		{CustomerID: "c1", TotalAmount: 8000, Status: models.LoadStatusCancelled},
		{CustomerID: "c2", TotalAmount: 9999, Status: models.LoadStatusActive},
	}

	// Cancelled load contributes 0 to the aggregate...
	if got := CustomerAggregateBalance("c1", loads); got != 4000 {
		t.Errorf("aggregate = %v, want 4000", got)
	}
	// ...but its own balance is still computable on demand.
	if got := CustomerBalance(loads[1]); got != 8000 {
		t.Errorf("cancelled load balance = %v, want 8000", got)
	}
}

func TestDriverAggregateBalanceNoDoubleCounting(t *testing.T) {
	tripID := "trip-1"
	loads := []models.Load{
		// Standalone: wages 1000, nothing paid.
		{DriverID: "d1", DriverWages: 1000, Status: models.LoadStatusActive},
		// Trip legs: their wages are superseded by the trip override and
		// must not be added separately.
		{DriverID: "d1", TripID: &tripID, DriverWages: 1500, DriverAdvance: f(2000), Status: models.LoadStatusActive},
		{DriverID: "d1", TripID: &tripID, DriverWages: 1500, Status: models.LoadStatusActive},
	}
	trips := []models.Trip{
		{ID: tripID, DriverID: "d1", DriverWages: f(5000)},
	}

	// 1000 standalone + (5000 - 2000) trip = 4000
	if got := DriverAggregateBalance("d1", loads, trips); got != 4000 {
		t.Errorf("got %v, want 4000", got)
	}

	// Other drivers are unaffected.
	if got := DriverAggregateBalance("d2", loads, trips); got != 0 {
		t.Errorf("unrelated driver: got %v, want 0", got)
	}
}

func TestDriverAggregateExcludesCancelledStandalone(t *testing.T) {
	loads := []models.Load{
		{DriverID: "d1", DriverWages: 1000, Status: models.LoadStatusCancelled},
		{DriverID: "d1", DriverWages: 700, Status: models.LoadStatusCompleted},
	}
	if got := DriverAggregateBalance("d1", loads, nil); got != 700 {
		t.Errorf("got %v, want 700", got)
	}
}

func TestNetProfit(t *testing.T) {
	load := models.Load{
		TotalAmount:   7500,
		DieselPrice:   f(2000),
		DriverWages:   3000,
		FastagCharges: f(500),
		OtherExpenses: models.ExpenseList{{Amount: 200}},
	}
	if got := NetProfit(load); got != 1800 {
		t.Errorf("got %v, want 1800", got)
	}

	// Optional expenses default to zero.
	if got := NetProfit(models.Load{TotalAmount: 1000, DriverWages: 400}); got != 600 {
		t.Errorf("got %v, want 600", got)
	}
}

func TestComputeTripFinancials(t *testing.T) {
	trip := models.Trip{
		DriverAdvance: f(1000),
	}
	tripLoads := []models.Load{
		{
			TotalAmount:   10000,
			DriverWages:   2000,
			DieselPrice:   f(3000),
			FastagCharges: f(250),
			OtherExpenses: models.ExpenseList{{Amount: 100}, {Amount: 150}},
			DriverPayments: models.PaymentList{
				{Amount: 400},
			},
			Status: models.LoadStatusActive,
		},
		{
			TotalAmount: 6000,
			DriverWages: 1000,
			Status:      models.LoadStatusCompleted,
		},
		// Cancelled leg must not contribute anywhere.
		{
			TotalAmount: 99999,
			DriverWages: 99999,
			DieselPrice: f(99999),
			Status:      models.LoadStatusCancelled,
		},
	}

	got := ComputeTripFinancials(trip, tripLoads)
	if got.TotalRevenue != 16000 {
		t.Errorf("revenue = %v, want 16000", got.TotalRevenue)
	}
	// fastag 250 + other 250 + wages 3000 (no override) + diesel 3000 = 6500
	if got.TotalExpenses != 6500 {
		t.Errorf("expenses = %v, want 6500", got.TotalExpenses)
	}
	if got.Profit != 9500 {
		t.Errorf("profit = %v, want 9500", got.Profit)
	}
	// trip advance 1000 + load payment 400
	if got.TotalPaid != 1400 {
		t.Errorf("paid = %v, want 1400", got.TotalPaid)
	}

	// Overrides replace the load sums.
	trip.DriverWages = f(5000)
	trip.TotalDieselCost = f(2500)
	got = ComputeTripFinancials(trip, tripLoads)
	// fastag 250 + other 250 + wages 5000 + diesel 2500 = 8000
	if got.TotalExpenses != 8000 {
		t.Errorf("override expenses = %v, want 8000", got.TotalExpenses)
	}
}

// Every place that resolves trip wages goes through TripWages, so the trip
// card, trip details, driver details and dashboard agree by construction.
// This pins the shared implementation to both halves of the rule.
func TestTripWagesAgreement(t *testing.T) {
	tripLoads := []models.Load{{DriverWages: 1000}, {DriverWages: 2000}}

	withOverride := models.Trip{ID: "t1", DriverID: "d1", DriverWages: f(5000)}
	withoutOverride := models.Trip{ID: "t1", DriverID: "d1"}

	if TripWages(withOverride, tripLoads) != 5000 {
		t.Error("TripWages must honor the override")
	}
	if TripWages(withoutOverride, tripLoads) != 3000 {
		t.Error("TripWages must fall back to the load sum")
	}

	// DriverAggregateBalance and TripDriverBalance must use the same base.
	legTrip := withOverride
	var legs []models.Load
	for _, l := range tripLoads {
		l.TripID = &legTrip.ID
		l.DriverID = "d1"
		l.Status = models.LoadStatusActive
		legs = append(legs, l)
	}
	agg := DriverAggregateBalance("d1", legs, []models.Trip{legTrip})
	direct := TripDriverBalance(legTrip, legs)
	if agg != direct {
		t.Errorf("aggregate %v disagrees with trip balance %v", agg, direct)
	}
}
