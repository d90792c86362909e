package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/finance-assistant/internal/config"
	"github.com/Dan9191/finance-assistant/internal/engine"
	"github.com/Dan9191/finance-assistant/internal/integrations/assistant"
	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/Dan9191/finance-assistant/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// KeyRateProvider supplies the central bank key rate in percent.
type KeyRateProvider interface {
	KeyRate(ctx context.Context) (float64, error)
}

// DigestSender delivers the periodic health digest.
type DigestSender interface {
	SendHealthDigest(to, username string, report models.HealthReport, summary *models.SummaryMetrics, insights []models.Insight) error
}

// Deps are the collaborators of the service.
type Deps struct {
	Repo      repository.Store
	Engine    *engine.Engine
	Rates     KeyRateProvider
	Assistant assistant.Assistant
	Mailer    DigestSender
}

// Service handles business logic
type Service struct {
	repo      repository.Store
	engine    *engine.Engine
	rates     KeyRateProvider
	assistant assistant.Assistant
	mailer    DigestSender
	log       *logrus.Logger
	config    *config.Config
}

// NewService initializes a new service
func NewService(deps Deps, log *logrus.Logger, cfg *config.Config) *Service {
	asst := deps.Assistant
	if asst == nil {
		asst = assistant.Offline{}
	}
	return &Service{
		repo:      deps.Repo,
		engine:    deps.Engine,
		rates:     deps.Rates,
		assistant: asst,
		mailer:    deps.Mailer,
		log:       log,
		config:    cfg,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", models.ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.JWTTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// GetProfile returns the stored profile and snapshot of the user
func (s *Service) GetProfile(ctx context.Context, userID int64) (*models.FinancialProfile, error) {
	return s.repo.GetFinancialProfile(ctx, userID)
}

// SaveProfile validates and replaces the stored profile and snapshot of the user
func (s *Service) SaveProfile(ctx context.Context, userID int64, fp *models.FinancialProfile) error {
	if err := validateProfile(fp); err != nil {
		return err
	}
	fp.Profile.UserID = userID
	if err := s.repo.SaveFinancialProfile(ctx, userID, fp); err != nil {
		return err
	}
	s.log.Infof("Financial profile saved for user %d", userID)
	return nil
}

func validateProfile(fp *models.FinancialProfile) error {
	if fp.Profile.Age < 0 {
		return fmt.Errorf("age must not be negative: %w", models.ErrInvalidInput)
	}
	for _, h := range fp.Snapshot.InvestmentPortfolio {
		if h.Value < 0 {
			return fmt.Errorf("holding %q has a negative value: %w", h.AssetType, models.ErrInvalidInput)
		}
	}
	return nil
}

// AddTransaction records a transaction for the user. A missing date means today.
func (s *Service) AddTransaction(ctx context.Context, userID int64, t *models.Transaction) error {
	t.UserID = userID
	if t.Date.IsZero() {
		now := time.Now().UTC()
		t.Date = models.NewDate(now.Year(), now.Month(), now.Day())
	}
	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return err
	}
	s.log.Debugf("Transaction %d recorded for user %d", t.ID, userID)
	return nil
}

// ListTransactions returns the user's transactions within the optional date range
func (s *Service) ListTransactions(ctx context.Context, userID int64, from, to *time.Time) ([]models.Transaction, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("from is after to: %w", models.ErrInvalidInput)
	}
	return s.repo.ListTransactions(ctx, userID, from, to)
}

// HealthScore scores the stored snapshot of the user
func (s *Service) HealthScore(ctx context.Context, userID int64) (models.HealthReport, error) {
	fp, err := s.repo.GetFinancialProfile(ctx, userID)
	if err != nil {
		return models.HealthReport{}, err
	}
	return s.engine.HealthScore(fp.Snapshot), nil
}

// AnalyzeSpending analyzes all stored transactions of the user
func (s *Service) AnalyzeSpending(ctx context.Context, userID int64, tf models.Timeframe) (models.SpendingAnalysis, error) {
	txns, err := s.repo.ListTransactions(ctx, userID, nil, nil)
	if err != nil {
		return models.SpendingAnalysis{}, err
	}
	return s.engine.AnalyzeSpending(txns, tf)
}

// Predict runs a prediction. Inputs missing from the request are taken from the user's stored data.
func (s *Service) Predict(ctx context.Context, userID int64, req models.PredictionRequest) (any, error) {
	switch req.PredictionType {
	case engine.PredictSpending:
		if len(req.Transactions) == 0 {
			txns, err := s.repo.ListTransactions(ctx, userID, nil, nil)
			if err != nil {
				return nil, err
			}
			req.Transactions = txns
		}
	case engine.PredictSavings, string(models.ForecastSavingsGrowth):
		if req.CurrentSavings <= 0 && req.MonthlyContribution <= 0 {
			fp, err := s.storedProfile(ctx, userID)
			if err != nil {
				return nil, err
			}
			if fp != nil {
				req.CurrentSavings = fp.Snapshot.CurrentSavings
				req.MonthlyContribution = fp.Snapshot.MonthlyContribution
			}
		}
	case engine.PredictInvestment, string(models.ForecastInvestmentReturns):
		if len(req.Portfolio) == 0 || req.RiskTolerance == "" {
			fp, err := s.storedProfile(ctx, userID)
			if err != nil {
				return nil, err
			}
			if fp != nil {
				if len(req.Portfolio) == 0 {
					req.Portfolio = fp.Snapshot.InvestmentPortfolio
				}
				if req.RiskTolerance == "" {
					req.RiskTolerance = fp.Profile.RiskTolerance
				}
			}
		}
	}
	return s.engine.Predict(req)
}

// storedProfile is GetFinancialProfile with a missing profile reported as nil.
func (s *Service) storedProfile(ctx context.Context, userID int64) (*models.FinancialProfile, error) {
	fp, err := s.repo.GetFinancialProfile(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return fp, err
}

// RetirementNeeds estimates the monthly savings needed for retirement
func (s *Service) RetirementNeeds(in models.RetirementInput) (models.RetirementPlan, error) {
	return s.engine.RetirementNeeds(in)
}

// LoanPayment computes the payment of an amortizing loan
func (s *Service) LoanPayment(in models.LoanInput) (models.LoanPayment, error) {
	return s.engine.LoanPayment(in)
}

// KeyRate returns the current central bank key rate
func (s *Service) KeyRate(ctx context.Context) (float64, error) {
	if s.rates == nil {
		return 0, errors.New("key rate provider is not configured")
	}
	return s.rates.KeyRate(ctx)
}

// market builds the market context from the key rate. It is nil when the rate is unavailable.
func (s *Service) market(ctx context.Context) *models.MarketContext {
	rate, err := s.KeyRate(ctx)
	if err != nil {
		s.log.Warnf("Market context unavailable: %v", err)
		return nil
	}
	return &models.MarketContext{InterestRate: rate}
}

// reportInput gathers everything stored about the user.
func (s *Service) reportInput(ctx context.Context, userID int64, tf models.Timeframe) (models.ReportInput, error) {
	fp, err := s.repo.GetFinancialProfile(ctx, userID)
	if err != nil {
		return models.ReportInput{}, err
	}
	txns, err := s.repo.ListTransactions(ctx, userID, nil, nil)
	if err != nil {
		return models.ReportInput{}, err
	}
	return models.ReportInput{
		Snapshot:     fp.Snapshot,
		Transactions: txns,
		Profile:      fp.Profile,
		Market:       s.market(ctx),
		Timeframe:    tf,
	}, nil
}

func insightInput(in models.ReportInput) models.InsightInput {
	profile := in.Profile
	return models.InsightInput{
		Transactions: in.Transactions,
		Income:       in.Snapshot.Income,
		Expenses:     in.Snapshot.Expenses,
		Portfolio:    in.Snapshot.InvestmentPortfolio,
		Profile:      &profile,
		Market:       in.Market,
	}
}

// Insights returns the top ranked insights for the user
func (s *Service) Insights(ctx context.Context, userID int64) ([]models.Insight, error) {
	in, err := s.reportInput(ctx, userID, models.TimeframeMonthly)
	if err != nil {
		return nil, err
	}
	return s.engine.Insights(insightInput(in)), nil
}

// Report builds the comprehensive report of the user
func (s *Service) Report(ctx context.Context, userID int64, tf models.Timeframe) (models.FinancialReport, error) {
	in, err := s.reportInput(ctx, userID, tf)
	if err != nil {
		return models.FinancialReport{}, err
	}
	return s.engine.Report(in), nil
}

// Chat answers a user message with the assistant, grounded on the user's computed statistics
func (s *Service) Chat(ctx context.Context, userID int64, req models.ChatRequest) (models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return models.ChatResponse{}, fmt.Errorf("message is required: %w", models.ErrInvalidInput)
	}
	resp := models.ChatResponse{ConversationID: req.ConversationID, Insights: []models.Insight{}}
	if resp.ConversationID == "" {
		resp.ConversationID = uuid.NewString()
	}

	var report *models.FinancialReport
	in, err := s.reportInput(ctx, userID, models.TimeframeMonthly)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// Nothing stored yet; the assistant answers without statistics.
	case err != nil:
		return models.ChatResponse{}, err
	default:
		r := s.engine.Report(in)
		report = &r
		resp.HealthScore = r.HealthScore.Data
		resp.Insights = r.Insights
	}

	financial := renderContext(report)
	reply, err := s.assistant.Reply(ctx, req.Message, financial)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("Assistant unavailable, replying offline")
		if reply, err = (assistant.Offline{}).Reply(ctx, req.Message, financial); err != nil {
			return models.ChatResponse{}, err
		}
	}
	resp.Reply = reply

	s.log.WithFields(logrus.Fields{
		"user_id":         userID,
		"conversation_id": resp.ConversationID,
	}).Info("Chat reply generated")
	return resp, nil
}

// renderContext turns a report into the plain text the assistant is grounded on.
func renderContext(r *models.FinancialReport) string {
	if r == nil {
		return "No financial data has been provided yet."
	}
	var b strings.Builder
	if h := r.HealthScore.Data; h != nil {
		fmt.Fprintf(&b, "Health score: %.0f (%s)\n", h.OverallScore, h.Grade)
		for _, m := range slices.Sorted(maps.Keys(h.ComponentScores)) {
			fmt.Fprintf(&b, "  %s: %.2f\n", m, h.ComponentScores[m])
		}
	}
	if sm := r.Summary.Data; sm != nil {
		fmt.Fprintf(&b, "Income: %.2f, expenses: %.2f, net flow: %.2f over %d transactions\n",
			sm.TotalIncome, sm.TotalExpenses, sm.NetFlow, sm.TotalTransactions)
		for _, c := range sm.TopSpendingCategories {
			fmt.Fprintf(&b, "  %s: %.2f\n", c.Category, c.Amount)
		}
	}
	if sp := r.Spending.Data; sp != nil {
		for _, n := range sp.Insights {
			fmt.Fprintf(&b, "Spending: %s\n", n)
		}
	}
	if sf := r.SavingsForecast.Data; sf != nil && len(sf.Projections) > 0 {
		last := sf.Projections[len(sf.Projections)-1]
		fmt.Fprintf(&b, "Savings in %d years: %.2f\n", last.Years, last.FutureValue)
	}
	for _, in := range r.Insights {
		fmt.Fprintf(&b, "Insight (%d): %s. %s\n", in.PriorityScore, in.Title, in.Recommendation)
	}
	if b.Len() == 0 {
		return "No financial data has been provided yet."
	}
	return b.String()
}

// SendDigests emails every user with a stored profile their health digest
func (s *Service) SendDigests(ctx context.Context) error {
	if s.mailer == nil {
		return errors.New("digest sender is not configured")
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return err
	}

	var errs []error
	sent := 0
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		in, err := s.reportInput(ctx, u.ID, models.TimeframeMonthly)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", u.ID, err))
			continue
		}
		report := s.engine.HealthScore(in.Snapshot)
		var summary *models.SummaryMetrics
		if sm, err := s.engine.Summarize(in.Transactions); err == nil {
			summary = &sm
		}
		if err := s.mailer.SendHealthDigest(u.Email, u.Username, report, summary, s.engine.Insights(insightInput(in))); err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", u.ID, err))
			continue
		}
		sent++
	}
	s.log.Infof("Health digests sent: %d of %d users", sent, len(users))
	return errors.Join(errs...)
}
