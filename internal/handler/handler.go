package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Dan9191/finance-assistant/internal/middleware"
	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/Dan9191/finance-assistant/internal/repository"
	"github.com/Dan9191/finance-assistant/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Entry
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log.WithField("component", "handler")}
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// writeJSON encodes before writing the header so an unencodable value becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(models.ErrorResult{Error: "internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
	return err
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		h.log.WithField("request_id", middleware.RequestIDFromContext(r.Context())).Errorf("Failed to encode response: %v", err)
	}
}

// writeError maps domain errors to HTTP statuses. Unexpected errors are logged and hidden.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInsufficientData):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.WithField("request_id", middleware.RequestIDFromContext(r.Context())).Errorf("Request failed: %v", err)
		writeJSON(w, status, models.ErrorResult{Error: "internal server error"})
		return
	}
	writeJSON(w, status, models.ErrorResult{Error: err.Error()})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(models.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResult{Error: "unauthorized"})
	}
	return id, ok
}

// Health is the liveness check
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, map[string]string{"token": token})
}

// KeyRate returns the current central bank key rate
func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.KeyRate(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, map[string]float64{"key_rate": rate})
}

// GetProfile returns the stored financial profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	fp, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, fp)
}

// PutProfile replaces the stored financial profile
func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var fp models.FinancialProfile
	if err := decode(r, &fp); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.SaveProfile(r.Context(), userID, &fp); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, fp)
}

// CreateTransaction records a transaction
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var t models.Transaction
	if err := decode(r, &t); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.AddTransaction(r.Context(), userID, &t); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, t)
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, v)
	if err != nil {
		return nil, errors.Join(models.ErrInvalidInput, err)
	}
	return &t, nil
}

// ListTransactions lists transactions, optionally within from/to dates
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	from, err := parseDateParam(r, "from")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	txns, err := h.svc.ListTransactions(r.Context(), userID, from, to)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	h.respond(w, r, http.StatusOK, txns)
}

// HealthScore scores the stored snapshot
func (h *Handler) HealthScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	report, err := h.svc.HealthScore(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, report)
}

// Spending analyzes stored transactions
func (h *Handler) Spending(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	tf := models.Timeframe(r.URL.Query().Get("timeframe"))
	analysis, err := h.svc.AnalyzeSpending(r.Context(), userID, tf)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, analysis)
}

// Predict runs a spending, savings or investment prediction
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req models.PredictionRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	out, err := h.svc.Predict(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, out)
}

// Retirement estimates retirement savings needs
func (h *Handler) Retirement(w http.ResponseWriter, r *http.Request) {
	var in models.RetirementInput
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	plan, err := h.svc.RetirementNeeds(in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, plan)
}

// Loan computes a loan payment
func (h *Handler) Loan(w http.ResponseWriter, r *http.Request) {
	var in models.LoanInput
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	payment, err := h.svc.LoanPayment(in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, payment)
}

// Insights returns the top ranked insights
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	out, err := h.svc.Insights(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, map[string]any{"insights": out})
}

// Report returns the comprehensive financial report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	tf := models.Timeframe(r.URL.Query().Get("timeframe"))
	report, err := h.svc.Report(r.Context(), userID, tf)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, report)
}

// Chat answers a message from the user
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req models.ChatRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.svc.Chat(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, resp)
}
