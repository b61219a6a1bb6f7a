package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/billing"
	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// ReportService answers the admin reporting views. Everything is computed on
// demand from the resident records and the yearly ledgers, no caching.
type ReportService struct {
	residents resident.Repository
	ledger    billing.LedgerRepository
	fee       valueobject.Money
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	residents resident.Repository,
	ledger billing.LedgerRepository,
	fee valueobject.Money,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		residents: residents,
		ledger:    ledger,
		fee:       fee,
		logger:    logger,
		now:       time.Now,
	}
}

// DashboardStats returns the admin dashboard summary for the current month
func (s *ReportService) DashboardStats(ctx context.Context) (*DashboardStatsResponse, error) {
	residents, err := s.residents.ListByRole(ctx, resident.RoleResident)
	if err != nil {
		return nil, err
	}

	nowMonth := valueobject.MonthOf(s.now())
	stats := &DashboardStatsResponse{
		CurrentMonth:     nowMonth.String(),
		TotalResidents:   len(residents),
		TotalOutstanding: decimal.Zero,
		YearCollection:   decimal.Zero,
	}

	for _, r := range residents {
		dues := billing.ComputeDues(r, nowMonth, s.fee)
		if dues.MonthsUnpaid > 0 {
			stats.OverdueResidents++
			stats.TotalOutstanding = stats.TotalOutstanding.Add(dues.TotalDues)
		}
		if owesCurrentMonth(dues, nowMonth) {
			stats.DueThisMonth++
		} else if !nowMonth.Before(r.AnchorMonth) {
			stats.PaidThisMonth++
		}
	}

	ledger, err := s.ledger.FindByYear(ctx, nowMonth.Year())
	switch {
	case err == nil:
		stats.YearCollection = ledger.TotalAmount
	case errors.Is(err, shared.ErrNotFound):
		// no payments collected this year yet
	default:
		return nil, err
	}

	return stats, nil
}

func owesCurrentMonth(dues billing.Dues, nowMonth valueobject.Month) bool {
	for _, m := range dues.UnpaidMonths {
		if m.Equal(nowMonth) {
			return true
		}
	}
	return false
}

// YearlyReport returns the ledger for a year with the derived collection
// rate. A year with no ledger yields an all-zero skeleton, not an error.
func (s *ReportService) YearlyReport(ctx context.Context, year int) (*YearlyReportResponse, error) {
	if year < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid year")
	}

	ledger, err := s.ledger.FindByYear(ctx, year)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.zeroYearlyReport(year), nil
		}
		return nil, err
	}

	residentCount, err := s.residents.Count(ctx, resident.RoleResident)
	if err != nil {
		return nil, err
	}

	breakdown := make([]MonthSlotResponse, 0, len(ledger.MonthlyBreakdown))
	for _, slot := range ledger.MonthlyBreakdown {
		breakdown = append(breakdown, MonthSlotResponse{
			Month:         slot.Month,
			Amount:        slot.Amount,
			PaymentsCount: slot.PaymentsCount,
		})
	}

	lastUpdated := ledger.LastUpdated
	return &YearlyReportResponse{
		Year:             year,
		TotalAmount:      ledger.TotalAmount,
		MonthlyBreakdown: breakdown,
		CollectionRate:   collectionRate(ledger.TotalAmount, residentCount, s.fee),
		LastUpdated:      &lastUpdated,
	}, nil
}

func (s *ReportService) zeroYearlyReport(year int) *YearlyReportResponse {
	breakdown := make([]MonthSlotResponse, 0, 12)
	for _, name := range valueobject.MonthNames() {
		breakdown = append(breakdown, MonthSlotResponse{Month: name, Amount: decimal.Zero})
	}
	return &YearlyReportResponse{
		Year:             year,
		TotalAmount:      decimal.Zero,
		MonthlyBreakdown: breakdown,
	}
}

// collectionRate is collected / (residents * 12 * fee), as a whole percent
func collectionRate(collected decimal.Decimal, residentCount int64, fee valueobject.Money) int {
	expected := fee.Mul(residentCount * 12).Amount()
	if !expected.IsPositive() {
		return 0
	}
	rate := collected.Div(expected).Mul(decimal.NewFromInt(100)).Round(0)
	return int(rate.IntPart())
}

// AvailableYears lists every year with a collection ledger, newest first
func (s *ReportService) AvailableYears(ctx context.Context) ([]int, error) {
	return s.ledger.ListYears(ctx)
}

// UsersWithDues lists residents owing anything, most months overdue first
func (s *ReportService) UsersWithDues(ctx context.Context) ([]ResidentDuesResponse, error) {
	residents, err := s.residents.ListByRole(ctx, resident.RoleResident)
	if err != nil {
		return nil, err
	}

	nowMonth := valueobject.MonthOf(s.now())
	out := make([]ResidentDuesResponse, 0, len(residents))
	for _, r := range residents {
		dues := billing.ComputeDues(r, nowMonth, s.fee)
		if dues.MonthsUnpaid == 0 {
			continue
		}
		out = append(out, toResidentDues(r, dues))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MonthsUnpaid > out[j].MonthsUnpaid
	})
	return out, nil
}

// DuesOverview returns every resident's standing including the fully paid
func (s *ReportService) DuesOverview(ctx context.Context) (*DuesOverviewResponse, error) {
	residents, err := s.residents.ListByRole(ctx, resident.RoleResident)
	if err != nil {
		return nil, err
	}

	nowMonth := valueobject.MonthOf(s.now())
	overview := &DuesOverviewResponse{
		AsOfMonth:        nowMonth.String(),
		TotalOutstanding: decimal.Zero,
		Residents:        make([]ResidentDuesResponse, 0, len(residents)),
	}
	for _, r := range residents {
		dues := billing.ComputeDues(r, nowMonth, s.fee)
		overview.TotalOutstanding = overview.TotalOutstanding.Add(dues.TotalDues)
		overview.Residents = append(overview.Residents, toResidentDues(r, dues))
	}
	return overview, nil
}

func toResidentDues(r *resident.Resident, dues billing.Dues) ResidentDuesResponse {
	months := make([]string, 0, len(dues.UnpaidMonths))
	for _, m := range dues.UnpaidMonths {
		months = append(months, m.String())
	}
	return ResidentDuesResponse{
		ResidentID:   r.ID.String(),
		HouseNo:      r.HouseNo,
		Name:         r.Name,
		WhatsappNo:   r.WhatsappNumber,
		TotalDues:    dues.TotalDues,
		MonthsUnpaid: dues.MonthsUnpaid,
		UnpaidMonths: months,
	}
}

// MonthDetails splits all residents into paid and unpaid for one month.
// Residents whose anchor is after the month are excluded entirely.
func (s *ReportService) MonthDetails(ctx context.Context, month valueobject.Month) (*MonthDetailsResponse, error) {
	residents, err := s.residents.ListByRole(ctx, resident.RoleResident)
	if err != nil {
		return nil, err
	}

	details := &MonthDetailsResponse{
		Month:  month.String(),
		Paid:   []MonthPayerResponse{},
		Unpaid: []MonthPayerResponse{},
	}
	for _, r := range residents {
		if r.AnchorMonth.IsZero() || month.Before(r.AnchorMonth) {
			continue
		}
		payer := MonthPayerResponse{
			ResidentID: r.ID.String(),
			HouseNo:    r.HouseNo,
			Name:       r.Name,
		}
		if e := r.PaymentEntries.EntryFor(month); e != nil && e.IsPaid() {
			payer.Amount = e.Amount
			payer.PaidDate = e.PaidDate
			details.Paid = append(details.Paid, payer)
		} else {
			payer.Amount = s.fee.Amount()
			details.Unpaid = append(details.Unpaid, payer)
		}
	}
	return details, nil
}

// CollectedPayments lists every payment collected during a year, newest
// first. This view scans resident records, not the ledger, so it reflects
// exactly what each resident's history shows.
func (s *ReportService) CollectedPayments(ctx context.Context, year int) (*CollectedPaymentsResponse, error) {
	if year < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid year")
	}

	residents, err := s.residents.ListByRole(ctx, resident.RoleResident)
	if err != nil {
		return nil, err
	}

	out := &CollectedPaymentsResponse{
		Year:     year,
		Total:    decimal.Zero,
		Payments: []CollectedPaymentResponse{},
	}
	for _, r := range residents {
		for _, e := range r.PaymentEntries {
			if !e.IsPaid() || e.Month.Year() != year || e.PaidDate == nil {
				continue
			}
			out.Total = out.Total.Add(e.Amount)
			out.Payments = append(out.Payments, CollectedPaymentResponse{
				ResidentID: r.ID.String(),
				HouseNo:    r.HouseNo,
				Name:       r.Name,
				Month:      e.Month.String(),
				Amount:     e.Amount,
				PaidDate:   *e.PaidDate,
			})
		}
	}

	sort.SliceStable(out.Payments, func(i, j int) bool {
		return out.Payments[i].PaidDate.After(out.Payments[j].PaidDate)
	})
	return out, nil
}
