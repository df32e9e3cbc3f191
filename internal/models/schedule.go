package models

import (
	"github.com/shopspring/decimal"

	"github.com/Dan9191/loan-service/internal/amortization"
)

// ScheduleItem represents one month of a schedule preview
type ScheduleItem struct {
	Month            int   `json:"month"`
	InterestPaid     Money `json:"interest_paid"`
	PrincipalPaid    Money `json:"principal_paid"`
	RemainingBalance Money `json:"remaining_balance"`
}

// NewScheduleItems converts engine entries to their wire form
func NewScheduleItems(entries []amortization.ScheduleEntry) []ScheduleItem {
	items := make([]ScheduleItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ScheduleItem{
			Month:            e.Month,
			InterestPaid:     NewMoney(e.InterestPaid),
			PrincipalPaid:    NewMoney(e.PrincipalPaid),
			RemainingBalance: NewMoney(e.RemainingBalance),
		})
	}
	return items
}

// ReferenceRate is the central bank key rate plus the bank margin
type ReferenceRate struct {
	KeyRate      Rate `json:"key_rate"`
	Margin       Rate `json:"margin"`
	SuggestedAPR Rate `json:"suggested_apr"`
}

// NewReferenceRate adds margin to keyRate
func NewReferenceRate(keyRate, margin decimal.Decimal) ReferenceRate {
	return ReferenceRate{
		KeyRate:      NewRate(keyRate),
		Margin:       NewRate(margin),
		SuggestedAPR: NewRate(keyRate.Add(margin)),
	}
}
