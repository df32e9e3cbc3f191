package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Dan9191/loan-service/internal/amortization"
	"github.com/Dan9191/loan-service/internal/models"
	"github.com/Dan9191/loan-service/internal/repository"
	"github.com/Dan9191/loan-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type errorResponse struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

type emailRequest struct {
	To string `json:"to"`
}

// Health reports whether the service and its database are reachable
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.log.Errorf("Health check failed: %v", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CalculateLoan computes a scenario without saving it
func (h *Handler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var in models.LoanInput
	if !h.decode(w, r, &in) {
		return
	}
	detail, err := h.svc.Calculate(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, detail)
}

// CreateLoan computes and saves a scenario
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var in models.LoanInput
	if !h.decode(w, r, &in) {
		return
	}
	detail, err := h.svc.CreateLoan(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, detail)
}

// ListLoans returns saved scenarios, most recent first
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.ListLoans(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loans)
}

// GetLoan returns a saved scenario with its schedule preview
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.loanID(w, r)
	if !ok {
		return
	}
	detail, err := h.svc.GetLoan(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, detail)
}

// DeleteLoan removes a saved scenario
func (h *Handler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.loanID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteLoan(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Loan deleted successfully"})
}

// EmailLoan sends a saved scenario summary by email
func (h *Handler) EmailLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.loanID(w, r)
	if !ok {
		return
	}
	var req emailRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.svc.EmailLoan(r.Context(), id, req.To); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"message": "Loan summary sent"})
}

// ReferenceRate returns the central bank key rate plus margin as a suggested APR
func (h *Handler) ReferenceRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.ReferenceRate(r.Context())
	if err != nil {
		h.log.Errorf("Failed to get reference rate: %v", err)
		h.writeJSON(w, http.StatusBadGateway, errorResponse{Detail: "Reference rate unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, rate)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

// writeError maps service errors to responses
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *amortization.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: vErr.Message, Field: string(vErr.Field)})
	case errors.Is(err, repository.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Loan not found"})
	case errors.Is(err, service.ErrInvalidRecipient):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: err.Error(), Field: "to"})
	case errors.Is(err, service.ErrMailerDisabled):
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: err.Error()})
	default:
		h.log.Errorf("Request failed: %v", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
	}
}

func (h *Handler) loanID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Loan not found"})
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to write response: %v", err)
	}
}
