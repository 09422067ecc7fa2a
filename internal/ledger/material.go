package ledger

import "truckledger-backend/internal/models"

// MaterialSalePaid is everything received for a material sale: the amount
// paid at sale time plus later payments.
func MaterialSalePaid(s models.MaterialSale) float64 {
	return s.AmountPaid + sumPayments(s.Payments)
}

// MaterialSaleBalance is the amount the customer still owes on a sale.
func MaterialSaleBalance(s models.MaterialSale) float64 {
	return s.TotalSaleAmount - MaterialSalePaid(s)
}

// MaterialStock is how many units of an entry remain unsold.
func MaterialStock(entry models.MaterialEntry, sales []models.MaterialSale) float64 {
	remaining := entry.Units
	for _, s := range sales {
		if s.MaterialEntryID == entry.ID {
			remaining -= s.UnitsSold
		}
	}
	return remaining
}

// CustomerMaterialBalance sums a customer's outstanding material-sale
// balances. Kept separate from the load-based customer aggregate.
func CustomerMaterialBalance(customerID string, sales []models.MaterialSale) float64 {
	var total float64
	for _, s := range sales {
		if s.CustomerID == customerID {
			total += MaterialSaleBalance(s)
		}
	}
	return total
}
