package amortization

import (
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

func drawTerms(t *rapid.T) (decimal.Decimal, decimal.Decimal, int) {
	cents := rapid.Int64Range(1, 1_000_000_000).Draw(t, "cents")
	bps := rapid.Int64Range(0, 10_000).Draw(t, "bps")
	term := rapid.IntRange(1, 480).Draw(t, "term")
	return decimal.New(cents, -2), decimal.New(bps, -2), term
}

func TestProperty_PaymentHasTwoPlaces(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal, apr, term := drawTerms(t)

		payment, err := MonthlyPayment(principal, apr, term)
		if err != nil {
			t.Fatalf("MonthlyPayment(%s, %s, %d) error: %v", principal, apr, term, err)
		}
		if payment.Exponent() != -CentPlaces {
			t.Fatalf("payment %s has exponent %d, want %d", payment, payment.Exponent(), -CentPlaces)
		}
		if payment.IsNegative() {
			t.Fatalf("payment %s is negative", payment)
		}

		again, _ := MonthlyPayment(principal, apr, term)
		if !again.Equal(payment) {
			t.Fatalf("non-deterministic payment: %s then %s", payment, again)
		}
	})
}

func TestProperty_ScheduleInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal, apr, term := drawTerms(t)
		preview := rapid.IntRange(1, 480).Draw(t, "preview")

		payment, err := MonthlyPayment(principal, apr, term)
		if err != nil {
			t.Fatalf("MonthlyPayment error: %v", err)
		}
		schedule, err := SchedulePreview(principal, apr, term, preview)
		if err != nil {
			t.Fatalf("SchedulePreview error: %v", err)
		}
		if len(schedule) != min(term, preview) {
			t.Fatalf("len = %d, want %d", len(schedule), min(term, preview))
		}

		previous := principal
		for i, e := range schedule {
			if e.Month != i+1 {
				t.Fatalf("entry %d has month %d", i, e.Month)
			}
			if !e.InterestPaid.Add(e.PrincipalPaid).Equal(payment) {
				t.Fatalf("month %d: %s + %s != %s", e.Month, e.InterestPaid, e.PrincipalPaid, payment)
			}
			if e.RemainingBalance.GreaterThan(previous) {
				t.Fatalf("month %d: balance grew from %s to %s", e.Month, previous, e.RemainingBalance)
			}
			previous = e.RemainingBalance
		}
	})
}

func TestProperty_ZeroRateEvenSplitEndsAtZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		term := rapid.IntRange(1, 480).Draw(t, "term")
		perMonth := rapid.Int64Range(1, 10_000_000).Draw(t, "perMonthCents")
		principal := decimal.New(perMonth*int64(term), -2)

		schedule, err := SchedulePreview(principal, decimal.Zero, term, term)
		if err != nil {
			t.Fatalf("SchedulePreview error: %v", err)
		}
		last := schedule[len(schedule)-1]
		if !last.RemainingBalance.IsZero() {
			t.Fatalf("final balance = %s, want 0.00", last.RemainingBalance)
		}
	})
}

func TestProperty_InterestRoundsHalfUp(t *testing.T) {
	cents := decimal.New(1, -2)
	months := decimal.NewFromInt(1200)
	rapid.Check(t, func(t *rapid.T) {
		principal, apr, term := drawTerms(t)
		schedule, err := SchedulePreview(principal, apr, term, DefaultPreviewMonths)
		if err != nil {
			t.Fatalf("SchedulePreview error: %v", err)
		}

		// interest - 0.005 <= balance*apr/1200 < interest + 0.005, compared without division
		halfCent := months.Mul(cents).Div(decimal.NewFromInt(2))
		balance := principal
		for _, e := range schedule {
			exact := balance.Mul(apr)
			scaled := e.InterestPaid.Mul(months)
			if exact.LessThan(scaled.Sub(halfCent)) || !exact.LessThan(scaled.Add(halfCent)) {
				t.Fatalf("month %d: interest %s is not %s*%s/1200 rounded half up", e.Month, e.InterestPaid, balance, apr)
			}
			balance = e.RemainingBalance
		}
	})
}
