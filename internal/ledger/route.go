package ledger

import (
	"strings"
	"time"

	"truckledger-backend/internal/models"

	"github.com/google/uuid"
)

// Leg is one consecutive pair of route points.
type Leg struct {
	Pickup   string `json:"pickup"`
	Delivery string `json:"delivery"`
}

// Route returns the trip's full ordered route: start, stops, end, with
// blank and whitespace-only entries removed.
func Route(t models.Trip) []string {
	points := make([]string, 0, len(t.Stops)+2)
	appendPoint := func(p string) {
		if strings.TrimSpace(p) != "" {
			points = append(points, p)
		}
	}
	appendPoint(t.StartLocation)
	for _, s := range t.Stops {
		appendPoint(s)
	}
	appendPoint(t.EndLocation)
	return points
}

// ExpandRoute turns the trip's route into ordered legs. A route with fewer
// than 2 points yields no legs; that is not an error.
func ExpandRoute(t models.Trip) []Leg {
	route := Route(t)
	if len(route) < 2 {
		return nil
	}
	legs := make([]Leg, 0, len(route)-1)
	for i := 0; i < len(route)-1; i++ {
		legs = append(legs, Leg{Pickup: route[i], Delivery: route[i+1]})
	}
	return legs
}

// NewLegLoad builds the zero-financial load generated for one leg of a trip.
// The customer is left unassigned; pickup time defaults to now.
func NewLegLoad(t models.Trip, leg Leg, now time.Time) models.Load {
	tripID := t.ID
	ts := now.Unix()
	return models.Load{
		ID:               uuid.New().String(),
		CustomerID:       "",
		DriverID:         t.DriverID,
		TruckID:          t.TruckID,
		TripID:           &tripID,
		PickupLocation:   leg.Pickup,
		DeliveryLocation: leg.Delivery,
		PickupDateTime:   ts,
		TotalAmount:      0,
		CustomerAdvance:  0,
		CustomerPayments: models.PaymentList{},
		DriverWages:      0,
		OtherExpenses:    models.ExpenseList{},
		DriverPayments:   models.PaymentList{},
		Status:           models.LoadStatusActive,
		Parts:            models.PartList{},
		Photos:           models.StringList{},
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
}

// MissingLegs returns the legs of the trip's current route that have no
// existing load with the same exact (pickup, delivery) pair. Existing loads
// are never modified; loads whose leg no longer appears in the route are
// kept as historical records. Applying the result and calling MissingLegs
// again yields nothing, so a repeated route edit creates no duplicates.
func MissingLegs(t models.Trip, existing []models.Load) []Leg {
	var missing []Leg
	for _, leg := range ExpandRoute(t) {
		found := false
		for _, l := range existing {
			if l.PickupLocation == leg.Pickup && l.DeliveryLocation == leg.Delivery {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, leg)
		}
	}
	return missing
}

// AppendRoutePoint extends the trip: the old end location becomes a stop and
// point becomes the new end. It returns the single new leg old-end -> point.
// A blank point leaves the trip unchanged and returns false.
func AppendRoutePoint(t *models.Trip, point string) (Leg, bool) {
	if strings.TrimSpace(point) == "" {
		return Leg{}, false
	}
	oldEnd := t.EndLocation
	t.Stops = append(t.Stops, oldEnd)
	t.EndLocation = point
	return Leg{Pickup: oldEnd, Delivery: point}, true
}
