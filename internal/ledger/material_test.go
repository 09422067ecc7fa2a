package ledger

import (
	"testing"

	"truckledger-backend/internal/models"
)

func TestMaterialSaleBalance(t *testing.T) {
	sale := models.MaterialSale{
		TotalSaleAmount: 12000,
		AmountPaid:      4000,
		Payments: models.PaymentList{
			{Amount: 3000},
		},
	}
	if got := MaterialSaleBalance(sale); got != 5000 {
		t.Errorf("got %v, want 5000", got)
	}
}

func TestMaterialStock(t *testing.T) {
	entry := models.MaterialEntry{ID: "m1", Units: 1000}
	sales := []models.MaterialSale{
		{MaterialEntryID: "m1", UnitsSold: 300},
		{MaterialEntryID: "m1", UnitsSold: 150},
		{MaterialEntryID: "other", UnitsSold: 999},
	}
	if got := MaterialStock(entry, sales); got != 550 {
		t.Errorf("got %v, want 550", got)
	}
}

func TestCustomerMaterialBalance(t *testing.T) {
	sales := []models.MaterialSale{
		{CustomerID: "c1", TotalSaleAmount: 5000, AmountPaid: 2000},
		{CustomerID: "c1", TotalSaleAmount: 1000, AmountPaid: 1000},
		{CustomerID: "c2", TotalSaleAmount: 7777},
	}
	if got := CustomerMaterialBalance("c1", sales); got != 3000 {
		t.Errorf("got %v, want 3000", got)
	}
}
