package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/Dan9191/loan-service/internal/amortization"
	"github.com/Dan9191/loan-service/internal/config"
	"github.com/Dan9191/loan-service/internal/metrics"
	"github.com/Dan9191/loan-service/internal/models"
	"github.com/Dan9191/loan-service/internal/repository"
	"github.com/Dan9191/loan-service/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// MaxTermMonths is the longest term accepted by the API
const MaxTermMonths = 480

var (
	// ErrIntegrity is returned when a stored scenario no longer matches its HMAC
	ErrIntegrity = errors.New("loan scenario failed integrity check")
	// ErrMailerDisabled is returned when SMTP is not configured
	ErrMailerDisabled = errors.New("email delivery is not configured")
	// ErrInvalidRecipient is returned for a malformed email address
	ErrInvalidRecipient = errors.New("invalid recipient email address")
)

// KeyRateProvider supplies the central bank key rate
type KeyRateProvider interface {
	GetKeyRate(ctx context.Context) (decimal.Decimal, error)
}

// Mailer delivers loan summaries
type Mailer interface {
	Enabled() bool
	SendLoanSummary(to string, loan *models.LoanDetail) error
}

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	rates  KeyRateProvider
	mailer Mailer
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, rates KeyRateProvider, mailer Mailer) *Service {
	return &Service{repo: repo, log: log, config: cfg, rates: rates, mailer: mailer}
}

// validateInput applies the API bounds on top of the engine's own checks
func validateInput(in models.LoanInput) error {
	terms := amortization.Terms{
		Principal:         in.Amount.Decimal,
		AnnualRatePercent: in.APR.Decimal,
		TermMonths:        in.TermMonths,
	}
	if err := terms.Validate(); err != nil {
		return err
	}
	if in.TermMonths > MaxTermMonths {
		return &amortization.ValidationError{
			Field:   amortization.FieldTerm,
			Message: fmt.Sprintf("term_months must be <= %d, got %d", MaxTermMonths, in.TermMonths),
		}
	}
	return nil
}

// buildDetail runs the engine for one set of terms
func buildDetail(id int64, amount, apr decimal.Decimal, termMonths int) (*models.LoanDetail, error) {
	summary, err := amortization.Totals(amount, apr, termMonths)
	if err != nil {
		metrics.Calculations.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}
	entries, err := amortization.SchedulePreview(amount, apr, termMonths, amortization.DefaultPreviewMonths)
	if err != nil {
		metrics.Calculations.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}
	metrics.Calculations.WithLabelValues(metrics.OutcomeOK).Inc()

	return &models.LoanDetail{
		LoanRead: models.LoanRead{
			ID:             id,
			Amount:         models.NewMoney(amount),
			APR:            models.NewRate(apr),
			TermMonths:     termMonths,
			MonthlyPayment: models.NewMoney(summary.MonthlyPayment),
		},
		TotalPaid:       models.NewMoney(summary.TotalPaid),
		TotalInterest:   models.NewMoney(summary.TotalInterest),
		SchedulePreview: models.NewScheduleItems(entries),
	}, nil
}

// Calculate computes a scenario without saving it
func (s *Service) Calculate(ctx context.Context, in models.LoanInput) (*models.LoanDetail, error) {
	if err := validateInput(in); err != nil {
		metrics.Calculations.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}
	return buildDetail(0, in.Amount.Decimal, in.APR.Decimal, in.TermMonths)
}

// CreateLoan computes and stores a scenario
func (s *Service) CreateLoan(ctx context.Context, in models.LoanInput) (*models.LoanDetail, error) {
	if err := validateInput(in); err != nil {
		metrics.Calculations.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}
	detail, err := buildDetail(0, in.Amount.Decimal, in.APR.Decimal, in.TermMonths)
	if err != nil {
		return nil, err
	}

	scenario := &models.LoanScenario{
		Amount:         in.Amount.Decimal,
		APR:            in.APR.Decimal,
		TermMonths:     in.TermMonths,
		MonthlyPayment: detail.MonthlyPayment.Decimal,
	}
	scenario.HMAC = utils.GenerateHMAC(scenario, s.config.HMACSecret)

	if err := s.repo.CreateLoan(ctx, scenario); err != nil {
		return nil, err
	}
	detail.ID = scenario.ID

	s.log.WithFields(logrus.Fields{
		"loan_id":         scenario.ID,
		"amount":          scenario.Amount.String(),
		"apr":             scenario.APR.String(),
		"term_months":     scenario.TermMonths,
		"monthly_payment": scenario.MonthlyPayment.StringFixed(2),
	}).Info("Loan scenario created")
	return detail, nil
}

// GetLoan returns a stored scenario with its schedule preview regenerated
func (s *Service) GetLoan(ctx context.Context, id int64) (*models.LoanDetail, error) {
	scenario, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	if !utils.VerifyHMAC(scenario, s.config.HMACSecret) {
		s.log.WithField("loan_id", id).Error("Loan scenario HMAC mismatch")
		return nil, ErrIntegrity
	}

	detail, err := buildDetail(scenario.ID, scenario.Amount, scenario.APR, scenario.TermMonths)
	if err != nil {
		return nil, fmt.Errorf("stored loan scenario %d is invalid: %w", id, err)
	}
	detail.MonthlyPayment = models.NewMoney(scenario.MonthlyPayment)
	return detail, nil
}

// ListLoans returns all stored scenarios, most recent first
func (s *Service) ListLoans(ctx context.Context) ([]models.LoanRead, error) {
	scenarios, err := s.repo.ListLoans(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.LoanRead, 0, len(scenarios))
	for _, sc := range scenarios {
		out = append(out, models.NewLoanRead(sc))
	}
	return out, nil
}

// DeleteLoan removes a stored scenario
func (s *Service) DeleteLoan(ctx context.Context, id int64) error {
	if err := s.repo.DeleteLoan(ctx, id); err != nil {
		return err
	}
	s.log.WithField("loan_id", id).Info("Loan scenario deleted")
	return nil
}

// ReferenceRate returns the central bank key rate plus the configured margin
func (s *Service) ReferenceRate(ctx context.Context) (models.ReferenceRate, error) {
	rate, err := s.rates.GetKeyRate(ctx)
	if err != nil {
		return models.ReferenceRate{}, fmt.Errorf("failed to get key rate: %w", err)
	}
	return models.NewReferenceRate(rate, s.config.RateMargin), nil
}

// EmailLoan sends a stored scenario summary to the given address
func (s *Service) EmailLoan(ctx context.Context, id int64, to string) error {
	if s.mailer == nil || !s.mailer.Enabled() {
		return ErrMailerDisabled
	}
	addr, err := mail.ParseAddress(to)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}

	detail, err := s.GetLoan(ctx, id)
	if err != nil {
		return err
	}
	return s.mailer.SendLoanSummary(addr.Address, detail)
}

// PruneOlderThan deletes scenarios created more than age ago
func (s *Service) PruneOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age)
	n, err := s.repo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.ScenariosPruned.Add(float64(n))
	s.log.WithFields(logrus.Fields{
		"deleted": n,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("Pruned old loan scenarios")
	return n, nil
}

// Ping checks the backing store
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
