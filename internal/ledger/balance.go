package ledger

import "truckledger-backend/internal/models"

// Balance arithmetic. Customer side: the customer owes the business the
// load fare minus everything already received. Driver side: the business
// owes the driver wages minus everything already paid out.
//
// Trip-level driver_wages and total_diesel_cost are overrides (nil falls
// back to the sum over the trip's loads; an explicit zero is a valid
// override). Trip-level driver_advance is additive on top of load-level
// advances and payments, never a replacement.

func sumPayments(payments models.PaymentList) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// CustomerPaid is the total received from the customer for a load.
func CustomerPaid(l models.Load) float64 {
	return l.CustomerAdvance + sumPayments(l.CustomerPayments)
}

// CustomerBalance is the amount the customer still owes on a load.
func CustomerBalance(l models.Load) float64 {
	return l.TotalAmount - CustomerPaid(l)
}

// DriverPaidForLoad is the total paid to the driver against a load.
func DriverPaidForLoad(l models.Load) float64 {
	return orZero(l.DriverAdvance) + sumPayments(l.DriverPayments)
}

// DriverBalanceForLoad is the wages still owed to the driver on a load.
func DriverBalanceForLoad(l models.Load) float64 {
	return l.DriverWages - DriverPaidForLoad(l)
}

// TripWages resolves the wage base for a trip: the trip-level override when
// set, otherwise the sum of wages across the trip's loads.
func TripWages(t models.Trip, tripLoads []models.Load) float64 {
	if t.DriverWages != nil {
		return *t.DriverWages
	}
	var sum float64
	for _, l := range tripLoads {
		sum += l.DriverWages
	}
	return sum
}

// TripDriverPaid is everything paid to the driver for a trip: the trip-level
// advance plus all load-level advances and payments.
func TripDriverPaid(t models.Trip, tripLoads []models.Load) float64 {
	paid := orZero(t.DriverAdvance)
	for _, l := range tripLoads {
		paid += orZero(l.DriverAdvance) + sumPayments(l.DriverPayments)
	}
	return paid
}

// TripDriverBalance is the wages still owed to the driver for a whole trip.
func TripDriverBalance(t models.Trip, tripLoads []models.Load) float64 {
	return TripWages(t, tripLoads) - TripDriverPaid(t, tripLoads)
}

// CustomerAggregateBalance sums the outstanding balance across all of a
// customer's non-cancelled loads. A cancelled load's own balance remains
// computable via CustomerBalance but contributes nothing here.
func CustomerAggregateBalance(customerID string, loads []models.Load) float64 {
	var total float64
	for _, l := range loads {
		if l.CustomerID != customerID || l.Status == models.LoadStatusCancelled {
			continue
		}
		total += CustomerBalance(l)
	}
	return total
}

// DriverAggregateBalance sums what the business owes a driver: standalone
// non-cancelled loads plus per-trip balances. A load belonging to a trip
// contributes through its trip only, so nothing is counted twice.
func DriverAggregateBalance(driverID string, loads []models.Load, trips []models.Trip) float64 {
	var total float64
	for _, l := range loads {
		if l.DriverID != driverID || !l.IsStandalone() || l.Status == models.LoadStatusCancelled {
			continue
		}
		total += DriverBalanceForLoad(l)
	}
	for _, t := range trips {
		if t.DriverID != driverID {
			continue
		}
		total += TripDriverBalance(t, loadsForTrip(t.ID, loads))
	}
	return total
}

// NetProfit is the load fare minus estimated expenses (diesel, wages,
// fastag, other expense lines). Customer-facing only.
func NetProfit(l models.Load) float64 {
	est := orZero(l.DieselPrice) + l.DriverWages + orZero(l.FastagCharges)
	for _, e := range l.OtherExpenses {
		est += e.Amount
	}
	return l.TotalAmount - est
}

// TripFinancials is the revenue/expense/profit summary for a trip.
type TripFinancials struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
	Profit        float64 `json:"profit"`
	TotalPaid     float64 `json:"total_paid"` // paid to the driver so far
}

// ComputeTripFinancials aggregates a trip's non-cancelled loads, applying
// the wage and diesel overrides when the trip defines them.
func ComputeTripFinancials(t models.Trip, tripLoads []models.Load) TripFinancials {
	var f TripFinancials
	var loadsWages, loadsDiesel float64
	f.TotalPaid = orZero(t.DriverAdvance)

	for _, l := range tripLoads {
		if l.Status == models.LoadStatusCancelled {
			continue
		}
		f.TotalRevenue += l.TotalAmount
		loadsWages += l.DriverWages
		loadsDiesel += orZero(l.DieselPrice)
		f.TotalExpenses += orZero(l.FastagCharges)
		f.TotalPaid += orZero(l.DriverAdvance) + sumPayments(l.DriverPayments)
		for _, e := range l.OtherExpenses {
			f.TotalExpenses += e.Amount
		}
	}

	if t.DriverWages != nil {
		f.TotalExpenses += *t.DriverWages
	} else {
		f.TotalExpenses += loadsWages
	}
	if t.TotalDieselCost != nil {
		f.TotalExpenses += *t.TotalDieselCost
	} else {
		f.TotalExpenses += loadsDiesel
	}

	f.Profit = f.TotalRevenue - f.TotalExpenses
	return f
}

func loadsForTrip(tripID string, loads []models.Load) []models.Load {
	var out []models.Load
	for _, l := range loads {
		if l.TripID != nil && *l.TripID == tripID {
			out = append(out, l)
		}
	}
	return out
}

// LoadsForTrip returns the loads belonging to a trip, in input order.
func LoadsForTrip(tripID string, loads []models.Load) []models.Load {
	return loadsForTrip(tripID, loads)
}
