package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsResponse summarizes the society's standing for the admin home
type DashboardStatsResponse struct {
	CurrentMonth     string          `json:"current_month"`
	TotalResidents   int             `json:"total_residents"`
	PaidThisMonth    int             `json:"paid_this_month"`
	DueThisMonth     int             `json:"due_this_month"`
	OverdueResidents int             `json:"overdue_residents"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	YearCollection   decimal.Decimal `json:"year_collection"`
}

// MonthSlotResponse is one month of a yearly report
type MonthSlotResponse struct {
	Month         string          `json:"month"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentsCount int             `json:"payments_count"`
}

// YearlyReportResponse is the ledger view for one year plus the derived
// collection rate
type YearlyReportResponse struct {
	Year             int                 `json:"year"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	MonthlyBreakdown []MonthSlotResponse `json:"monthly_breakdown"`
	CollectionRate   int                 `json:"collection_rate"`
	LastUpdated      *time.Time          `json:"last_updated,omitempty"`
}

// ResidentDuesResponse is one resident's outstanding position in admin views
type ResidentDuesResponse struct {
	ResidentID   string          `json:"user_id"`
	HouseNo      string          `json:"house_no"`
	Name         string          `json:"name"`
	WhatsappNo   string          `json:"whatsapp_number"`
	TotalDues    decimal.Decimal `json:"total_dues"`
	MonthsUnpaid int             `json:"months_unpaid"`
	UnpaidMonths []string        `json:"unpaid_months"`
}

// DuesOverviewResponse is the complete dues standing across all residents
type DuesOverviewResponse struct {
	AsOfMonth        string                 `json:"as_of_month"`
	TotalOutstanding decimal.Decimal        `json:"total_outstanding"`
	Residents        []ResidentDuesResponse `json:"residents"`
}

// MonthPayerResponse is one resident's status for a specific month
type MonthPayerResponse struct {
	ResidentID string          `json:"user_id"`
	HouseNo    string          `json:"house_no"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	PaidDate   *time.Time      `json:"paid_date,omitempty"`
}

// MonthDetailsResponse splits residents into paid and unpaid for one month
type MonthDetailsResponse struct {
	Month  string               `json:"month"`
	Paid   []MonthPayerResponse `json:"paid"`
	Unpaid []MonthPayerResponse `json:"unpaid"`
}

// CollectedPaymentResponse is one collected payment in the per-year listing
type CollectedPaymentResponse struct {
	ResidentID string          `json:"user_id"`
	HouseNo    string          `json:"house_no"`
	Name       string          `json:"name"`
	Month      string          `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	PaidDate   time.Time       `json:"paid_date"`
}

// CollectedPaymentsResponse lists every payment collected in a year
type CollectedPaymentsResponse struct {
	Year     int                        `json:"year"`
	Total    decimal.Decimal            `json:"total"`
	Payments []CollectedPaymentResponse `json:"payments"`
}
