package billing

import (
	"time"

	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProrationInput describes a partial first rent period
type ProrationInput struct {
	MonthlyRent     decimal.Decimal
	PeriodStart     time.Time // Day the tenancy starts inside the month
	GracePeriodDays int       // Days at the start of tenancy not billed
	SecurityDeposit decimal.Decimal
}

// ProrationResult carries the pro-rated figures for a rental invoice
type ProrationResult struct {
	DaysInMonth  int
	BillableDays int
	DailyRate    decimal.Decimal
	Rent         decimal.Decimal
	Total        decimal.Decimal // Rent plus security deposit charge
}

// ProrateRent apportions the monthly rent across the remainder of the start
// month at a daily rate. Billable days never go negative; a move-in on the
// last day with a grace period simply bills zero rent (the deposit may still
// make the invoice total positive).
func ProrateRent(in ProrationInput) (*ProrationResult, error) {
	if in.MonthlyRent.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monthly rent must be positive")
	}
	if in.GracePeriodDays < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Grace period cannot be negative")
	}

	daysInMonth := daysIn(in.PeriodStart)
	billable := daysInMonth - in.PeriodStart.Day() + 1 - in.GracePeriodDays
	if billable < 0 {
		billable = 0
	}

	dailyRate := in.MonthlyRent.Div(decimal.NewFromInt(int64(daysInMonth)))
	rent := dailyRate.Mul(decimal.NewFromInt(int64(billable))).Round(2)

	return &ProrationResult{
		DaysInMonth:  daysInMonth,
		BillableDays: billable,
		DailyRate:    dailyRate,
		Rent:         rent,
		Total:        rent.Add(in.SecurityDeposit),
	}, nil
}

func daysIn(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
