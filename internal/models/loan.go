package models

// Loan payment frequencies.
const (
	PaymentMonthly = "monthly"
	PaymentWeekly  = "weekly"
)

// LoanInput describes an amortizing loan. AnnualRate is a percentage (6.5 means 6.5%).
type LoanInput struct {
	Principal       float64 `json:"principal"`
	AnnualRate      float64 `json:"annual_rate"`
	Years           int     `json:"years"`
	PaymentType     string  `json:"payment_type,omitempty"`
	IncludeSchedule bool    `json:"include_schedule,omitempty"`
}

// LoanPayment is the periodic payment of a loan and its totals.
type LoanPayment struct {
	Kind          ForecastKind        `json:"prediction_type"`
	Principal     float64             `json:"principal"`
	AnnualRate    float64             `json:"annual_rate"`
	Years         int                 `json:"years"`
	PaymentType   string              `json:"payment_type"`
	NumPayments   int                 `json:"num_payments"`
	Payment       float64             `json:"payment"`
	TotalPayments float64             `json:"total_payments"`
	TotalInterest float64             `json:"total_interest"`
	Schedule      []AmortizationEntry `json:"schedule,omitempty"`
}

// AmortizationEntry represents one scheduled payment of a loan
type AmortizationEntry struct {
	Period           int     `json:"period"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remaining_balance"`
}
