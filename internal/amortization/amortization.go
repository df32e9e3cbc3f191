// Package amortization computes fixed-rate loan payments and schedule previews.
//
// All arithmetic is done on shopspring/decimal values. Monetary results are rounded
// to cents with round-half-up (half away from zero) at the documented points only.
// The package holds no state and performs no I/O; every function is safe for
// concurrent use.
package amortization

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPreviewMonths is the schedule preview length used by the API
	DefaultPreviewMonths = 12

	// CentPlaces is the number of fractional digits of a monetary amount
	CentPlaces int32 = 2

	// workingPrecision is the minimum number of decimal places carried by the
	// discount factor and its powers. Both stay in (0, 1], so this keeps well
	// over 28 significant digits; precision() widens it for tiny rates and
	// long terms.
	workingPrecision int32 = 40
)

var (
	one         = decimal.NewFromInt(1)
	hundred     = decimal.NewFromInt(100)
	monthsInAPR = decimal.NewFromInt(1200)
)

// Terms describes a fixed-rate amortizing loan
type Terms struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermMonths        int
}

// ScheduleEntry is one month of an amortization schedule, every amount in cents
type ScheduleEntry struct {
	Month            int
	InterestPaid     decimal.Decimal
	PrincipalPaid    decimal.Decimal
	RemainingBalance decimal.Decimal
}

// Summary holds the whole-term figures derived from the monthly payment
type Summary struct {
	MonthlyPayment decimal.Decimal
	TotalPaid      decimal.Decimal
	TotalInterest  decimal.Decimal
}

// Validate checks term, amount and rate in that order. Out of range values are
// rejected, never clamped.
func (t Terms) Validate() error {
	if t.TermMonths <= 0 {
		return newValidationError(FieldTerm, "term_months must be > 0, got %d", t.TermMonths)
	}
	if !t.Principal.IsPositive() {
		return newValidationError(FieldAmount, "amount must be > 0, got %s", t.Principal)
	}
	if t.AnnualRatePercent.IsNegative() || t.AnnualRatePercent.GreaterThan(hundred) {
		return newValidationError(FieldRate, "apr must be between 0 and 100, got %s", t.AnnualRatePercent)
	}
	return nil
}

// RoundCents rounds an amount to cents, halves away from zero
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CentPlaces)
}

// MonthlyPayment returns the fixed monthly payment for the given terms, rounded
// to cents. The result is rounded exactly once.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	t := Terms{Principal: principal, AnnualRatePercent: annualRatePercent, TermMonths: termMonths}
	if err := t.Validate(); err != nil {
		return decimal.Decimal{}, err
	}
	return t.monthlyPayment(), nil
}

// monthlyPayment evaluates P*apr / (1200 * (1 - v^n)) with v = 1200/(1200+apr),
// the discount factor 1/(1+r). Only the final quotient is rounded to cents.
func (t Terms) monthlyPayment() decimal.Decimal {
	n := decimal.NewFromInt(int64(t.TermMonths))
	if t.AnnualRatePercent.IsZero() {
		return t.Principal.DivRound(n, CentPlaces)
	}

	prec := t.precision()
	v := monthsInAPR.DivRound(monthsInAPR.Add(t.AnnualRatePercent), prec)
	annuity := one.Sub(powInt(v, t.TermMonths, prec))
	if !annuity.IsPositive() {
		// rate too small to register at prec; the zero-rate payment is the limit
		return t.Principal.DivRound(n, CentPlaces)
	}
	return t.Principal.Mul(t.AnnualRatePercent).DivRound(monthsInAPR.Mul(annuity), CentPlaces)
}

// precision returns the decimal places needed so that 1 - v^n keeps at least
// workingPrecision significant digits: one extra place per leading zero of the
// rate and one per digit of the term.
func (t Terms) precision() int32 {
	prec := workingPrecision + int32(len(strconv.Itoa(t.TermMonths)))
	lead := int32(t.AnnualRatePercent.NumDigits()) + t.AnnualRatePercent.Exponent()
	if lead < 0 {
		prec -= lead
	}
	return prec
}

// SchedulePreview returns the first min(termMonths, previewMonths) months of the
// schedule. Interest, principal and balance are each rounded to cents every
// period, the way a bank statement shows them. A non-positive previewMonths
// yields an empty schedule.
func SchedulePreview(principal, annualRatePercent decimal.Decimal, termMonths, previewMonths int) ([]ScheduleEntry, error) {
	t := Terms{Principal: principal, AnnualRatePercent: annualRatePercent, TermMonths: termMonths}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	months := min(termMonths, previewMonths)
	if months <= 0 {
		return []ScheduleEntry{}, nil
	}

	payment := t.monthlyPayment()
	schedule := make([]ScheduleEntry, 0, months)
	balance := principal

	if annualRatePercent.IsZero() {
		// fixed per-period principal; an uneven split is not absorbed by the last period
		principalPaid := principal.DivRound(decimal.NewFromInt(int64(termMonths)), CentPlaces)
		interestPaid := decimal.Zero.Round(CentPlaces)
		for m := 1; m <= months; m++ {
			balance = RoundCents(balance.Sub(principalPaid))
			schedule = append(schedule, ScheduleEntry{
				Month:            m,
				InterestPaid:     interestPaid,
				PrincipalPaid:    principalPaid,
				RemainingBalance: balance,
			})
		}
		return schedule, nil
	}

	for m := 1; m <= months; m++ {
		// balance*apr/1200 rounded once, so exact half-cent ties round up
		interest := balance.Mul(annualRatePercent).DivRound(monthsInAPR, CentPlaces)
		principalPaid := RoundCents(payment.Sub(interest))
		balance = RoundCents(balance.Sub(principalPaid))
		schedule = append(schedule, ScheduleEntry{
			Month:            m,
			InterestPaid:     interest,
			PrincipalPaid:    principalPaid,
			RemainingBalance: balance,
		})
	}
	return schedule, nil
}

// Totals returns the monthly payment together with the total paid over the
// full term and the interest portion of it.
func Totals(principal, annualRatePercent decimal.Decimal, termMonths int) (Summary, error) {
	payment, err := MonthlyPayment(principal, annualRatePercent, termMonths)
	if err != nil {
		return Summary{}, err
	}
	totalPaid := payment.Mul(decimal.NewFromInt(int64(termMonths)))
	return Summary{
		MonthlyPayment: payment,
		TotalPaid:      totalPaid,
		TotalInterest:  totalPaid.Sub(principal),
	}, nil
}

// powInt raises base to a non-negative integer power by squaring, keeping prec
// places after every multiplication. base must lie in [0, 1] so intermediate
// values never grow.
func powInt(base decimal.Decimal, exp int, prec int32) decimal.Decimal {
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(prec)
		}
		exp >>= 1
		if exp > 0 {
			base = base.Mul(base).Round(prec)
		}
	}
	return result
}
