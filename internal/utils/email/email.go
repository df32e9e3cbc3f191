package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/loan-service/internal/config"
	"github.com/Dan9191/loan-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// Enabled reports whether SMTP is configured
func (s *Sender) Enabled() bool {
	return s.cfg.SMTPHost != "" && s.cfg.SenderEmail != ""
}

// SendLoanSummary emails a loan scenario summary with its schedule preview
func (s *Sender) SendLoanSummary(to string, loan *models.LoanDetail) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Loan scenario #%d: %s per month", loan.ID, loan.MonthlyPayment.StringFixed(2))
	e.Text = []byte(BuildLoanSummary(loan))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send loan summary to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// BuildLoanSummary formats the plain-text body of a loan summary email
func BuildLoanSummary(loan *models.LoanDetail) string {
	var b strings.Builder
	b.WriteString("Hello,\n\n")
	b.WriteString("Here is the loan scenario you requested.\n\n")
	fmt.Fprintf(&b, "Amount:          %s\n", loan.Amount.StringFixed(2))
	fmt.Fprintf(&b, "APR:             %s%%\n", loan.APR.String())
	fmt.Fprintf(&b, "Term:            %d months\n", loan.TermMonths)
	fmt.Fprintf(&b, "Monthly payment: %s\n", loan.MonthlyPayment.StringFixed(2))
	fmt.Fprintf(&b, "Total paid:      %s\n", loan.TotalPaid.StringFixed(2))
	fmt.Fprintf(&b, "Total interest:  %s\n", loan.TotalInterest.StringFixed(2))

	if len(loan.SchedulePreview) > 0 {
		fmt.Fprintf(&b, "\nFirst %d months:\n", len(loan.SchedulePreview))
		fmt.Fprintf(&b, "%5s %14s %14s %16s\n", "Month", "Interest", "Principal", "Balance")
		for _, item := range loan.SchedulePreview {
			fmt.Fprintf(&b, "%5d %14s %14s %16s\n",
				item.Month,
				item.InterestPaid.StringFixed(2),
				item.PrincipalPaid.StringFixed(2),
				item.RemainingBalance.StringFixed(2))
		}
	}

	b.WriteString("\nBest regards,\nLoan Service")
	return b.String()
}
