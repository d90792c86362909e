package handler

import (
	"net/http"

	"github.com/Dan9191/finance-assistant/internal/config"
	"github.com/Dan9191/finance-assistant/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every route. Analytics and chat routes require a bearer token.
func NewRouter(h *Handler, cfg *config.Config, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(log))

	// Public routes
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/key-rate", h.KeyRate).Methods(http.MethodGet)

	// Protected routes
	auth := r.PathPrefix("/").Subrouter()
	auth.Use(middleware.AuthMiddleware(cfg))
	auth.HandleFunc("/profile", h.GetProfile).Methods(http.MethodGet)
	auth.HandleFunc("/profile", h.PutProfile).Methods(http.MethodPut)
	auth.HandleFunc("/transactions", h.CreateTransaction).Methods(http.MethodPost)
	auth.HandleFunc("/transactions", h.ListTransactions).Methods(http.MethodGet)
	auth.HandleFunc("/analytics/health-score", h.HealthScore).Methods(http.MethodGet)
	auth.HandleFunc("/analytics/spending", h.Spending).Methods(http.MethodGet)
	auth.HandleFunc("/analytics/predict", h.Predict).Methods(http.MethodPost)
	auth.HandleFunc("/analytics/retirement", h.Retirement).Methods(http.MethodPost)
	auth.HandleFunc("/analytics/loan", h.Loan).Methods(http.MethodPost)
	auth.HandleFunc("/analytics/insights", h.Insights).Methods(http.MethodGet)
	auth.HandleFunc("/analytics/report", h.Report).Methods(http.MethodGet)
	auth.HandleFunc("/chat", h.Chat).Methods(http.MethodPost)

	return r
}
