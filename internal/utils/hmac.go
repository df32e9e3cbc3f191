package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/Dan9191/loan-service/internal/models"
)

// scenarioPayload is the canonical text signed for a scenario. Decimals are
// normalized so 5.5 and 5.50 sign identically.
func scenarioPayload(s *models.LoanScenario) string {
	return strings.Join([]string{
		s.Amount.String(),
		s.APR.String(),
		strconv.Itoa(s.TermMonths),
		s.MonthlyPayment.StringFixed(2),
	}, "|")
}

// GenerateHMAC generates an HMAC for the stored terms of a scenario
func GenerateHMAC(s *models.LoanScenario, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(scenarioPayload(s)))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyHMAC reports whether the scenario still matches its stored HMAC
func VerifyHMAC(s *models.LoanScenario, secret string) bool {
	expected, err := hex.DecodeString(GenerateHMAC(s, secret))
	if err != nil {
		return false
	}
	actual, err := hex.DecodeString(s.HMAC)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, actual)
}
