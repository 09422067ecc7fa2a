package handlers

import (
	"testing"

	"truckledger-backend/internal/models"
)

func TestToLoadDetail(t *testing.T) {
	adv := 500.0
	l := models.Load{
		ID:              "l1",
		TotalAmount:     10000,
		CustomerAdvance: 2000,
		CustomerPayments: models.PaymentList{
			{Amount: 3000, Date: 100, Method: "UPI"},
		},
		DriverWages:    4000,
		DriverAdvance:  &adv,
		PickupDateTime: 50,
		Status:         models.LoadStatusActive,
	}

	d := toLoadDetail(l)

	if d.CustomerBalance != 5000 {
		t.Errorf("customer balance = %v, want 5000", d.CustomerBalance)
	}
	if d.DriverBalance != 3500 {
		t.Errorf("driver balance = %v, want 3500", d.DriverBalance)
	}
	if len(d.CustomerHistory) != 2 {
		t.Errorf("customer history length = %d, want 2", len(d.CustomerHistory))
	}
	if len(d.DriverHistory) != 1 {
		t.Errorf("driver history length = %d, want 1", len(d.DriverHistory))
	}
}

func TestToLoadDetailEmptyHistories(t *testing.T) {
	d := toLoadDetail(models.Load{ID: "l2", Status: models.LoadStatusActive})

	// Histories must encode as [], not null.
	if d.CustomerHistory == nil || d.DriverHistory == nil {
		t.Fatal("histories should be non-nil for a load with no payments")
	}
	if len(d.CustomerHistory) != 0 || len(d.DriverHistory) != 0 {
		t.Errorf("expected empty histories, got %d customer / %d driver",
			len(d.CustomerHistory), len(d.DriverHistory))
	}
}
