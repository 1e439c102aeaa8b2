package homereturn

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// daysPerYear converts elapsed days into years.
const daysPerYear = 365.25

// LivePolicy decides what happens when the live rate cannot be resolved.
type LivePolicy int

const (
	// StrictLiveRate aborts the calculation.
	StrictLiveRate LivePolicy = iota
	// AdvisoryLiveRate substitutes a 1.0 rate and flags the report.
	AdvisoryLiveRate
)

func (p LivePolicy) String() string {
	switch p {
	case StrictLiveRate:
		return "strict"
	case AdvisoryLiveRate:
		return "advisory"
	default:
		return "unknown"
	}
}

// ParseLivePolicy parses "strict" or "advisory".
func ParseLivePolicy(s string) (LivePolicy, error) {
	switch s {
	case "strict", "":
		return StrictLiveRate, nil
	case "advisory":
		return AdvisoryLiveRate, nil
	default:
		return StrictLiveRate, invalidInput("unknown live rate policy %q", s)
	}
}

// Config holds the parameters of a return calculation.
type Config struct {
	InvestmentCurrency Currency
	PropertyCurrency   Currency
	ReturnRate         Percent   // desired annual return, 8 means 8%
	Now                time.Time // evaluation instant, defaults to time.Now()
	LivePolicy         LivePolicy
}

// Validate checks the currencies and the return rate.
func (c Config) Validate() error {
	if err := c.InvestmentCurrency.Validate(); err != nil {
		return err
	}
	if err := c.PropertyCurrency.Validate(); err != nil {
		return err
	}
	if math.IsNaN(float64(c.ReturnRate)) || math.IsInf(float64(c.ReturnRate), 0) || c.ReturnRate <= -100 {
		return invalidInput("return rate %v must be greater than -100%%", float64(c.ReturnRate))
	}
	return nil
}

// PaymentReturn is the outcome of a single payment.
type PaymentReturn struct {
	Payment Payment

	AmountInvestment   Money // principal in investment currency
	AmountProperty     Money // principal in property currency
	InvestmentDateRate Rate  // investment to property currency, on the payment date
	Years              float64

	FutureValueProperty    Money
	FutureValueInvestment  Money // FutureValueProperty at the live rate
	InterestProperty       Money
	PureFutureValue        Money // growth of AmountInvestment with no currency effect
	PureInterestInvestment Money
	PureInterestProperty   Money
	CurrencyImpact         Money // FutureValueInvestment - PureFutureValue
}

// Report is the outcome of a calculation.
type Report struct {
	Config   Config
	LiveRate Rate // property to investment currency
	// LiveRateSubstituted is true when the live rate could not be resolved and 1.0 was used.
	LiveRateSubstituted bool
	Payments            []PaymentReturn
	Summary             Summary
}

// Calculate computes the return of every payment, and their summary.
//
// An empty payment list yields a nil Report and no error. Any historical rate failure aborts
// the whole calculation with a *PaymentError.
func Calculate(ctx context.Context, resolver RateResolver, payments []Payment, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, p := range payments {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	if len(payments) == 0 {
		return nil, nil
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}

	live, substituted, err := cashOutRate(ctx, resolver, cfg)
	if err != nil {
		return nil, err
	}

	sorted := SortPayments(payments)
	results := make([]PaymentReturn, 0, len(sorted))
	for i, p := range sorted {
		res, err := paymentReturn(ctx, resolver, p, live, cfg)
		if err != nil {
			return nil, &PaymentError{Index: i, Payment: p, Err: err}
		}
		results = append(results, res)
	}

	return &Report{
		Config:              cfg,
		LiveRate:            live,
		LiveRateSubstituted: substituted,
		Payments:            results,
		Summary:             Summarize(results),
	}, nil
}

// cashOutRate resolves the property to investment currency live rate, applying the policy.
func cashOutRate(ctx context.Context, resolver RateResolver, cfg Config) (Rate, bool, error) {
	live, err := resolver.LiveRate(ctx, cfg.PropertyCurrency, cfg.InvestmentCurrency)
	if err == nil {
		return live, false, nil
	}
	if cfg.LivePolicy != AdvisoryLiveRate {
		return Rate{}, false, err
	}
	return Rate{
		Pair:  Pair{cfg.PropertyCurrency, cfg.InvestmentCurrency},
		Value: decimal.NewFromInt(1),
		Live:  true,
	}, true, nil
}

func paymentReturn(ctx context.Context, resolver RateResolver, p Payment, live Rate, cfg Config) (PaymentReturn, error) {
	inv, prop := cfg.InvestmentCurrency, cfg.PropertyCurrency
	amount := p.Money(inv)
	res := PaymentReturn{Payment: p}

	// principal in investment currency.
	res.AmountInvestment = amount
	if amount.cur != inv {
		rate, err := resolver.HistoricalRate(ctx, p.Date, amount.cur, inv)
		if err != nil {
			return res, err
		}
		res.AmountInvestment = rate.Convert(amount)
	}

	// principal in property currency.
	if amount.cur == prop {
		res.AmountProperty = amount
		res.InvestmentDateRate = IdentityRate(prop, p.Date)
		res.InvestmentDateRate.Pair = Pair{inv, prop}
	} else {
		rate, err := resolver.HistoricalRate(ctx, p.Date, inv, prop)
		if err != nil {
			return res, err
		}
		res.InvestmentDateRate = rate
		res.AmountProperty = rate.Convert(res.AmountInvestment)
	}

	res.Years = Years(p.Date, cfg.Now)
	growth, err := Growth(cfg.ReturnRate, res.Years)
	if err != nil {
		return res, err
	}

	res.FutureValueProperty = res.AmountProperty.Mul(growth)
	res.InterestProperty = res.FutureValueProperty.Sub(res.AmountProperty)
	res.FutureValueInvestment = live.Convert(res.FutureValueProperty)

	res.PureFutureValue = res.AmountInvestment.Mul(growth)
	res.PureInterestInvestment = res.PureFutureValue.Sub(res.AmountInvestment)
	res.PureInterestProperty = live.Revert(res.PureInterestInvestment)

	res.CurrencyImpact = res.FutureValueInvestment.Sub(res.PureFutureValue)
	return res, nil
}

// Years returns the elapsed years between the payment day and now, 0 for future payments.
func Years(on Date, now time.Time) float64 {
	years := now.Sub(on.Time()).Hours() / 24 / daysPerYear
	if years <= 0 {
		return 0
	}
	return years
}

// Growth returns the annual compounding factor (1 + rate)^years, exactly 1 when years is 0.
//
// It fails with ErrInvalidInput when the factor is too large to be represented.
func Growth(rate Percent, years float64) (decimal.Decimal, error) {
	if years <= 0 {
		return decimal.NewFromInt(1), nil
	}
	factor := math.Pow(1+float64(rate)/100, years)
	if math.IsInf(factor, 0) || math.IsNaN(factor) {
		return decimal.Zero, invalidInput("a %v%% return over %.2f years overflows", float64(rate), years)
	}
	return decimal.NewFromFloat(factor), nil
}
