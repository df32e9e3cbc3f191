package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanScenario represents a saved loan scenario
type LoanScenario struct {
	ID             int64           `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	APR            decimal.Decimal `json:"apr"`
	TermMonths     int             `json:"term_months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	HMAC           string          `json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LoanInput is the request body for calculating or saving a scenario
type LoanInput struct {
	Amount     Money `json:"amount"`
	APR        Rate  `json:"apr"`
	TermMonths int   `json:"term_months"`
}

// LoanRead is the list representation of a scenario
type LoanRead struct {
	ID             int64 `json:"id"`
	Amount         Money `json:"amount"`
	APR            Rate  `json:"apr"`
	TermMonths     int   `json:"term_months"`
	MonthlyPayment Money `json:"monthly_payment"`
}

// LoanDetail is a scenario with its schedule preview and whole-term totals
type LoanDetail struct {
	LoanRead
	TotalPaid       Money          `json:"total_paid"`
	TotalInterest   Money          `json:"total_interest"`
	SchedulePreview []ScheduleItem `json:"schedule_preview"`
}

// NewLoanRead builds the wire representation of a stored scenario
func NewLoanRead(s *LoanScenario) LoanRead {
	return LoanRead{
		ID:             s.ID,
		Amount:         NewMoney(s.Amount),
		APR:            NewRate(s.APR),
		TermMonths:     s.TermMonths,
		MonthlyPayment: NewMoney(s.MonthlyPayment),
	}
}
