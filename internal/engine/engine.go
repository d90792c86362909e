// Package engine is the entry point to financial scoring and forecasting. It holds no
// mutable state: every call is a pure function of its input and the configured clock.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finance-assistant/internal/forecast"
	"github.com/Dan9191/finance-assistant/internal/insights"
	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/Dan9191/finance-assistant/internal/scoring"
	"github.com/Dan9191/finance-assistant/internal/spending"
	"github.com/sirupsen/logrus"
)

// Prediction types accepted by Predict.
const (
	PredictSpending   = "spending"
	PredictSavings    = "savings"
	PredictInvestment = "investment"
)

// ErrInternal marks a computation that failed unexpectedly.
var ErrInternal = errors.New("internal error")

// Options tune the engine. Zero values fall back to the defaults; the rates are pointers
// because zero is a legitimate rate, so only nil falls back.
type Options struct {
	SpendingGrowth      float64
	AnomalyThreshold    float64
	InsightLimit        int
	DefaultAnnualReturn *float64
	DefaultInflation    *float64
	RetirementYears     int
	Now                 func() time.Time
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		SpendingGrowth:      forecast.DefaultSpendingGrowth,
		AnomalyThreshold:    spending.DefaultAnomalyThreshold,
		InsightLimit:        insights.DefaultLimit,
		DefaultAnnualReturn: Rate(forecast.DefaultAnnualReturn),
		DefaultInflation:    Rate(forecast.DefaultInflation),
		RetirementYears:     forecast.DefaultRetirementYears,
		Now:                 func() time.Time { return time.Now().UTC() },
	}
}

// Rate returns a pointer to a rate, for Options.
func Rate(v float64) *float64 {
	return &v
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SpendingGrowth <= 0 {
		o.SpendingGrowth = d.SpendingGrowth
	}
	if o.AnomalyThreshold <= 0 {
		o.AnomalyThreshold = d.AnomalyThreshold
	}
	if o.InsightLimit <= 0 {
		o.InsightLimit = d.InsightLimit
	}
	if o.DefaultAnnualReturn == nil {
		o.DefaultAnnualReturn = d.DefaultAnnualReturn
	}
	if o.DefaultInflation == nil {
		o.DefaultInflation = d.DefaultInflation
	}
	if o.RetirementYears <= 0 {
		o.RetirementYears = d.RetirementYears
	}
	if o.Now == nil {
		o.Now = d.Now
	}
	return o
}

// Engine scores snapshots and produces forecasts, insights and reports.
type Engine struct {
	log  *logrus.Entry
	opts Options
}

// New builds an engine. Unset options take their defaults.
func New(log *logrus.Logger, opts Options) *Engine {
	return &Engine{
		log:  log.WithField("component", "engine"),
		opts: opts.withDefaults(),
	}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// call runs one operation, converting a panic into ErrInternal so a fault never
// escapes to the caller.
func call[T any](e *Engine, op string, fn func() (T, error)) (out T, err error) {
	log := e.log.WithField("operation", op)
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Computation failed")
			var zero T
			out, err = zero, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}()

	out, err = fn()
	switch {
	case err == nil:
		log.Debug("Computation finished")
	case errors.Is(err, models.ErrInsufficientData), errors.Is(err, models.ErrInvalidInput):
		log.WithError(err).Warn("Computation skipped")
	default:
		log.WithError(err).Error("Computation failed")
	}
	return out, err
}

// HealthScore grades a snapshot. Scoring never fails for lack of data.
func (e *Engine) HealthScore(s models.FinancialSnapshot) models.HealthReport {
	r, _ := e.healthScore(s)
	return r
}

func (e *Engine) healthScore(s models.FinancialSnapshot) (models.HealthReport, error) {
	return call(e, "health_score", func() (models.HealthReport, error) {
		return scoring.HealthScore(s, e.opts.Now()).Rounded(), nil
	})
}

// AnalyzeSpending buckets transactions by timeframe and reports trends and anomalies.
func (e *Engine) AnalyzeSpending(txns []models.Transaction, tf models.Timeframe) (models.SpendingAnalysis, error) {
	return call(e, "analyze_spending", func() (models.SpendingAnalysis, error) {
		a, err := spending.Analyze(txns, tf, e.opts.AnomalyThreshold, e.opts.Now())
		if err != nil {
			return a, err
		}
		return a.Rounded(), nil
	})
}

// Summarize computes headline totals over transactions.
func (e *Engine) Summarize(txns []models.Transaction) (models.SummaryMetrics, error) {
	return call(e, "summary", func() (models.SummaryMetrics, error) {
		m, err := spending.Summarize(txns)
		if err != nil {
			return m, err
		}
		return m.Rounded(), nil
	})
}

// PredictSpending predicts next month's spending.
func (e *Engine) PredictSpending(txns []models.Transaction) (models.SpendingForecast, error) {
	return call(e, "predict_spending", func() (models.SpendingForecast, error) {
		f, err := forecast.Spending(txns, e.opts.SpendingGrowth, e.opts.Now())
		if err != nil {
			return f, err
		}
		return f.Rounded(), nil
	})
}

// PredictSavings projects savings growth.
func (e *Engine) PredictSavings(in models.SavingsInput) (models.SavingsForecast, error) {
	return call(e, "predict_savings", func() (models.SavingsForecast, error) {
		f, err := forecast.Savings(in, *e.opts.DefaultAnnualReturn, e.opts.Now())
		if err != nil {
			return f, err
		}
		return f.Rounded(), nil
	})
}

// PredictInvestment projects portfolio returns.
func (e *Engine) PredictInvestment(in models.InvestmentInput) (models.InvestmentForecast, error) {
	return call(e, "predict_investment", func() (models.InvestmentForecast, error) {
		f, err := forecast.Investment(in, e.opts.Now())
		if err != nil {
			return f, err
		}
		return f.Rounded(), nil
	})
}

// Predict dispatches a prediction request by its type.
func (e *Engine) Predict(req models.PredictionRequest) (any, error) {
	switch req.PredictionType {
	case PredictSpending:
		return e.PredictSpending(req.Transactions)
	case PredictSavings, string(models.ForecastSavingsGrowth):
		return e.PredictSavings(models.SavingsInput{
			CurrentSavings:      req.CurrentSavings,
			MonthlyContribution: req.MonthlyContribution,
			AnnualReturnRate:    req.ExpectedReturnRate,
		})
	case PredictInvestment, string(models.ForecastInvestmentReturns):
		return e.PredictInvestment(models.InvestmentInput{
			Portfolio:     req.Portfolio,
			RiskTolerance: req.RiskTolerance,
		})
	default:
		return nil, fmt.Errorf("unknown prediction type %q: %w", req.PredictionType, models.ErrInvalidInput)
	}
}

// RetirementNeeds estimates the monthly savings needed to fund retirement.
func (e *Engine) RetirementNeeds(in models.RetirementInput) (models.RetirementPlan, error) {
	return call(e, "retirement_needs", func() (models.RetirementPlan, error) {
		p, err := forecast.Retirement(in, forecast.RetirementDefaults{
			InflationRate:     *e.opts.DefaultInflation,
			InvestmentReturn:  *e.opts.DefaultAnnualReturn,
			YearsInRetirement: e.opts.RetirementYears,
		})
		if err != nil {
			return p, err
		}
		return p.Rounded(), nil
	})
}

// LoanPayment computes the level payment of an amortizing loan.
func (e *Engine) LoanPayment(in models.LoanInput) (models.LoanPayment, error) {
	return call(e, "loan_payment", func() (models.LoanPayment, error) {
		l, err := forecast.Loan(in)
		if err != nil {
			return l, err
		}
		return l.Rounded(), nil
	})
}

// Insights returns the highest priority findings for the input.
func (e *Engine) Insights(in models.InsightInput) []models.Insight {
	out, err := call(e, "insights", func() ([]models.Insight, error) {
		return insights.Rank(insights.Generate(in), e.opts.InsightLimit), nil
	})
	if err != nil || out == nil {
		return []models.Insight{}
	}
	return out
}
