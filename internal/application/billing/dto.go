package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/society/backend/internal/domain/billing"
	"github.com/society/backend/internal/domain/resident"
)

// MarkPaidRequest is the input for marking one month as paid
type MarkPaidRequest struct {
	ResidentID string `json:"user_id" binding:"required,uuid"`
	Month      string `json:"month" binding:"required"`
}

// MarkPaidResponse confirms a recorded payment
type MarkPaidResponse struct {
	Message  string          `json:"message"`
	HouseNo  string          `json:"house_no"`
	Name     string          `json:"name"`
	Month    string          `json:"month"`
	Amount   decimal.Decimal `json:"amount"`
	PaidDate time.Time       `json:"paid_date"`
}

// PaymentEntryResponse is one month of a resident's payment history
type PaymentEntryResponse struct {
	Month    string          `json:"month"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
	PaidDate *time.Time      `json:"paid_date,omitempty"`
}

// DuesResponse is a resident's outstanding balance
type DuesResponse struct {
	HouseNo      string          `json:"house_no"`
	Name         string          `json:"name"`
	TotalDues    decimal.Decimal `json:"total_dues"`
	MonthsUnpaid int             `json:"months_unpaid"`
	UnpaidMonths []string        `json:"unpaid_months"`
	MonthlyFee   decimal.Decimal `json:"monthly_fee"`
}

// PaymentHistoryResponse is the full chronological payment record
type PaymentHistoryResponse struct {
	HouseNo  string                 `json:"house_no"`
	Name     string                 `json:"name"`
	Payments []PaymentEntryResponse `json:"payments"`
}

// ToPaymentEntryResponse maps a domain payment entry
func ToPaymentEntryResponse(e resident.PaymentEntry) PaymentEntryResponse {
	return PaymentEntryResponse{
		Month:    e.Month.String(),
		Status:   string(e.Status),
		Amount:   e.Amount,
		PaidDate: e.PaidDate,
	}
}

// ToDuesResponse maps computed dues for one resident
func ToDuesResponse(r *resident.Resident, dues billing.Dues, fee decimal.Decimal) DuesResponse {
	months := make([]string, 0, len(dues.UnpaidMonths))
	for _, m := range dues.UnpaidMonths {
		months = append(months, m.String())
	}
	return DuesResponse{
		HouseNo:      r.HouseNo,
		Name:         r.Name,
		TotalDues:    dues.TotalDues,
		MonthsUnpaid: dues.MonthsUnpaid,
		UnpaidMonths: months,
		MonthlyFee:   fee,
	}
}
