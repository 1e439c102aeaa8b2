package homereturn

import (
	"math"
	"testing"
	"time"
)

// eur is a helper for test to create euro money from const
func eur(v float64) Money { return M(v, EUR) }

// usd is a helper for test to create usd money from const
func usd(v float64) Money { return M(v, USD) }

// inr is a helper for test to create rupee money from const
func inr(v float64) Money { return M(v, INR) }

// yearsAfter returns the instant exactly n average years after the start of d.
func yearsAfter(d Date, n float64) time.Time {
	return d.Time().Add(time.Duration(n * daysPerYear * 24 * float64(time.Hour)))
}

// assertMoney checks got is want within one cent.
func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if got.Currency() != want.Currency() || math.Abs(got.AsFloat()-want.AsFloat()) > 0.01 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
