package ledger

import (
	"sort"

	"truckledger-backend/internal/models"
)

// HistoryEntry is one row of a payment trail shown against a balance.
// Date 0 means the date was not recorded.
type HistoryEntry struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Date   int64   `json:"date,omitempty"`
	Method string  `json:"method,omitempty"`
	Photo  *string `json:"photo,omitempty"`
}

// LoadCustomerHistory lists money received from the customer for a load:
// the advance (dated at pickup) followed by discrete payments, newest first.
func LoadCustomerHistory(l models.Load) []HistoryEntry {
	var history []HistoryEntry
	if l.CustomerAdvance > 0 {
		history = append(history, HistoryEntry{
			Label:  "Advance",
			Amount: l.CustomerAdvance,
			Date:   l.PickupDateTime,
			Method: methodOrCash(l.CustomerAdvancePaymentMethod),
		})
	}
	for _, p := range l.CustomerPayments {
		history = append(history, paymentEntry("Payment", p))
	}
	return sortHistory(history)
}

// LoadDriverHistory lists money paid to the driver against a load.
func LoadDriverHistory(l models.Load) []HistoryEntry {
	var history []HistoryEntry
	if orZero(l.DriverAdvance) > 0 {
		history = append(history, HistoryEntry{
			Label:  "Advance",
			Amount: *l.DriverAdvance,
			Date:   l.PickupDateTime,
			Method: methodOrCash(l.DriverAdvancePaymentMethod),
		})
	}
	for _, p := range l.DriverPayments {
		history = append(history, paymentEntry("Payment", p))
	}
	return sortHistory(history)
}

// TripDriverHistory merges the trip-level advance with every load-level
// advance and payment across the trip's legs.
func TripDriverHistory(t models.Trip, tripLoads []models.Load) []HistoryEntry {
	var history []HistoryEntry
	if orZero(t.DriverAdvance) > 0 {
		history = append(history, HistoryEntry{Label: "Trip Advance", Amount: *t.DriverAdvance})
	}
	for _, l := range tripLoads {
		if orZero(l.DriverAdvance) > 0 {
			history = append(history, HistoryEntry{
				Label:  "Load Advance",
				Amount: *l.DriverAdvance,
				Date:   l.PickupDateTime,
				Method: methodOrCash(l.DriverAdvancePaymentMethod),
			})
		}
		for _, p := range l.DriverPayments {
			history = append(history, paymentEntry("Payment", p))
		}
	}
	return sortHistory(history)
}

func paymentEntry(label string, p models.Payment) HistoryEntry {
	return HistoryEntry{
		Label:  label,
		Amount: p.Amount,
		Date:   p.Date,
		Method: p.Method,
		Photo:  p.Photo,
	}
}

func methodOrCash(m *string) string {
	if m == nil || *m == "" {
		return "Cash"
	}
	return *m
}

// sortHistory orders entries newest first. Entries without a date compare
// equal to everything, so the stable sort leaves them where they were
// encountered.
func sortHistory(history []HistoryEntry) []HistoryEntry {
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].Date == 0 || history[j].Date == 0 {
			return false
		}
		return history[i].Date > history[j].Date
	})
	return history
}
