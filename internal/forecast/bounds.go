package forecast

import (
	"fmt"
	"math"

	"github.com/Dan9191/finance-assistant/internal/models"
)

// Input limits. Terms and ages beyond these overflow the compounding math.
const (
	MaxLoanYears = 100
	MaxAge       = 120
)

// checkFinite rejects results that overflowed to Inf or NaN.
func checkFinite(what string, vals ...float64) error {
	for _, v := range vals {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%s is out of range: %w", what, models.ErrInvalidInput)
		}
	}
	return nil
}
