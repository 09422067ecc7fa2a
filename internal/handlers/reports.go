package handlers

import (
	"log"
	"net/http"
	"time"

	"truckledger-backend/internal/ledger"
	"truckledger-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"
)

// ExportLoadsReport streams an XLSX workbook of the full load ledger with
// computed balances, newest first.
func ExportLoadsReport(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loads := []models.Load{}
		if err := db.Select(&loads, "SELECT * FROM loads ORDER BY pickup_datetime DESC"); err != nil {
			http.Error(w, "Failed to fetch loads", http.StatusInternalServerError)
			return
		}

		customers := []models.Customer{}
		if err := db.Select(&customers, "SELECT * FROM customers"); err != nil {
			http.Error(w, "Failed to fetch customers", http.StatusInternalServerError)
			return
		}
		drivers := []models.Driver{}
		if err := db.Select(&drivers, "SELECT * FROM drivers"); err != nil {
			http.Error(w, "Failed to fetch drivers", http.StatusInternalServerError)
			return
		}

		customerNames := map[string]string{}
		for _, c := range customers {
			customerNames[c.ID] = c.Name
		}
		driverNames := map[string]string{}
		for _, d := range drivers {
			driverNames[d.ID] = d.Name
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Loads"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{
			"Date", "Pickup", "Delivery", "Customer", "Driver", "Status",
			"Total Amount", "Received", "Customer Balance",
			"Driver Wages", "Paid to Driver", "Driver Balance", "Net Profit",
		}
		for i, h := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				http.Error(w, "Failed to build report", http.StatusInternalServerError)
				return
			}
			f.SetCellValue(sheet, cell, h)
		}

		for row, l := range loads {
			customer := customerNames[l.CustomerID]
			if l.CustomerID == "" {
				customer = "Unassigned"
			}
			values := []interface{}{
				time.Unix(l.PickupDateTime, 0).Format("2006-01-02"),
				l.PickupLocation,
				l.DeliveryLocation,
				customer,
				driverNames[l.DriverID],
				l.Status,
				l.TotalAmount,
				ledger.CustomerPaid(l),
				ledger.CustomerBalance(l),
				l.DriverWages,
				ledger.DriverPaidForLoad(l),
				ledger.DriverBalanceForLoad(l),
				ledger.NetProfit(l),
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row+2)
				if err != nil {
					http.Error(w, "Failed to build report", http.StatusInternalServerError)
					return
				}
				f.SetCellValue(sheet, cell, v)
			}
		}

		filename := "loads-" + time.Now().Format("2006-01-02") + ".xlsx"
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

		if err := f.Write(w); err != nil {
			log.Printf("❌ Failed to stream loads report: %v", err)
		}
	}
}
