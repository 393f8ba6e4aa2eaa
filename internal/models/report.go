package models

import "time"

// SalesReportRow is one day of aggregated sales for a branch (or all
// branches of a partner when no branch filter is applied).
type SalesReportRow struct {
	Day              time.Time `json:"day" db:"day"`
	Revenue          float64   `json:"revenue" db:"revenue"`
	TransactionCount int       `json:"transaction_count" db:"transaction_count"`
	VoidCount        int       `json:"void_count" db:"void_count"`
}

// SalesReport is the cached report payload.
type SalesReport struct {
	StartDate time.Time         `json:"start_date"`
	EndDate   time.Time         `json:"end_date"`
	Rows      []*SalesReportRow `json:"rows"`
	Total     float64           `json:"total"`
}
