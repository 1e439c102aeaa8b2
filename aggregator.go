package homereturn

import "math"

// Summary aggregates the returns of all payments.
type Summary struct {
	TotalInvested             Money   // investment currency
	TotalInvestedProperty     Money   // property currency
	TotalFutureValue          Money   // investment currency, at the live rate
	TotalFutureValueProperty  Money   // property currency
	TotalPureInterest         Money   // investment currency
	TotalPureInterestProperty Money   // property currency, at the live rate
	TotalCurrencyImpact       Money   // investment currency
	MultiplyingFactor         float64 // TotalFutureValue / TotalInvested
	MultiplyingFactorProperty float64
	SimpleROI                 Percent
	TimeWeightedROI           Percent // annualized over AverageYears
	PureROI                   Percent // with no currency effect
	AverageYears              float64 // weighted by the invested amount
}

// Summarize aggregates results. Totals are sums of unrounded values.
//
// When nothing was invested every ratio is 0.
func Summarize(results []PaymentReturn) Summary {
	var s Summary
	var weightedYears float64
	for _, r := range results {
		s.TotalInvested = s.TotalInvested.Add(r.AmountInvestment)
		s.TotalInvestedProperty = s.TotalInvestedProperty.Add(r.AmountProperty)
		s.TotalFutureValue = s.TotalFutureValue.Add(r.FutureValueInvestment)
		s.TotalFutureValueProperty = s.TotalFutureValueProperty.Add(r.FutureValueProperty)
		s.TotalPureInterest = s.TotalPureInterest.Add(r.PureInterestInvestment)
		s.TotalPureInterestProperty = s.TotalPureInterestProperty.Add(r.PureInterestProperty)
		s.TotalCurrencyImpact = s.TotalCurrencyImpact.Add(r.CurrencyImpact)
		weightedYears += r.AmountInvestment.AsFloat() * r.Years
	}

	if !s.TotalInvested.IsPositive() {
		return s
	}

	s.AverageYears = weightedYears / s.TotalInvested.AsFloat()
	s.MultiplyingFactor = s.TotalFutureValue.Ratio(s.TotalInvested)
	s.MultiplyingFactorProperty = s.TotalFutureValueProperty.Ratio(s.TotalInvestedProperty)
	s.SimpleROI = Percent((s.MultiplyingFactor - 1) * 100)
	s.TimeWeightedROI = Annualize(s.MultiplyingFactor, s.AverageYears)
	s.PureROI = Percent(s.TotalPureInterest.Ratio(s.TotalInvested) * 100)
	return s
}

// Degenerate reports whether nothing was invested, so that ratios are meaningless.
func (s Summary) Degenerate() bool { return !s.TotalInvested.IsPositive() }

// Annualize turns a growth factor over years into an annual rate, 0 if years is not positive.
func Annualize(factor, years float64) Percent {
	if years <= 0 || factor <= 0 {
		return 0
	}
	return Percent((math.Pow(factor, 1/years) - 1) * 100)
}
