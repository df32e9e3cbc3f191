package email

import (
	"errors"
	"io"
	"net/smtp"
	"testing"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/loan-service/internal/amortization"
	"github.com/Dan9191/loan-service/internal/config"
	"github.com/Dan9191/loan-service/internal/models"
)

func testDetail(t *testing.T) *models.LoanDetail {
	t.Helper()
	amount := decimal.NewFromInt(12000)
	entries, err := amortization.SchedulePreview(amount, decimal.Zero, 6, 12)
	require.NoError(t, err)
	return &models.LoanDetail{
		LoanRead: models.LoanRead{
			ID:             3,
			Amount:         models.NewMoney(amount),
			APR:            models.NewRate(decimal.Zero),
			TermMonths:     6,
			MonthlyPayment: models.NewMoney(decimal.RequireFromString("2000.00")),
		},
		TotalPaid:       models.NewMoney(amount),
		TotalInterest:   models.NewMoney(decimal.Zero),
		SchedulePreview: models.NewScheduleItems(entries),
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestBuildLoanSummary(t *testing.T) {
	body := BuildLoanSummary(testDetail(t))

	assert.Contains(t, body, "Amount:          12000.00")
	assert.Contains(t, body, "Monthly payment: 2000.00")
	assert.Contains(t, body, "Term:            6 months")
	assert.Contains(t, body, "First 6 months:")
	assert.Contains(t, body, "0.00")
}

func TestSender_Enabled(t *testing.T) {
	s := NewSender(&config.Config{}, quietLogger())
	assert.False(t, s.Enabled())

	s = NewSender(&config.Config{SMTPHost: "smtp.example.com", SenderEmail: "loans@example.com"}, quietLogger())
	assert.True(t, s.Enabled())
}

func TestSender_SendLoanSummary(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.example.com", SMTPPort: "2525", SenderEmail: "loans@example.com"}
	s := NewSender(cfg, quietLogger())

	var sent *email.Email
	var sentAddr string
	s.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		sent, sentAddr = e, addr
		return nil
	}

	require.NoError(t, s.SendLoanSummary("borrower@example.com", testDetail(t)))
	require.NotNil(t, sent)
	assert.Equal(t, "smtp.example.com:2525", sentAddr)
	assert.Equal(t, []string{"borrower@example.com"}, sent.To)
	assert.Equal(t, "Loan scenario #3: 2000.00 per month", sent.Subject)
}

func TestSender_SendLoanSummaryError(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.example.com", SMTPPort: "2525", SenderEmail: "loans@example.com"}
	s := NewSender(cfg, quietLogger())
	s.send = func(*email.Email, string, smtp.Auth) error { return errors.New("connection refused") }

	err := s.SendLoanSummary("borrower@example.com", testDetail(t))
	assert.ErrorContains(t, err, "connection refused")
}
