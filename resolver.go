package homereturn

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// QuoteSource is an external, unreliable, provider of currency quotes.
type QuoteSource interface {
	// Series returns the daily closes of pair between from and to, bounds included.
	// Samples may be missing, unordered or out of the requested range.
	Series(ctx context.Context, pair Pair, from, to Date) ([]Quote, error)
	// Latest returns the current price of pair.
	Latest(ctx context.Context, pair Pair) (decimal.Decimal, error)
}

// RateResolver is the only capability the calculator depends on.
type RateResolver interface {
	// HistoricalRate returns the rate from one currency to another on a given day.
	// It fails with a RateUnavailableError, never with a live rate.
	HistoricalRate(ctx context.Context, on Date, from, to Currency) (Rate, error)
	// LiveRate returns the current rate or a LiveRateUnavailableError.
	LiveRate(ctx context.Context, from, to Currency) (Rate, error)
}

// search windows in days around the requested date, tried in order.
var defaultWindows = []int{5, 30}

const maxWindow = 30

// Resolver resolves rates from a QuoteSource.
type Resolver struct {
	source  QuoteSource
	cache   RateCache
	logger  zerolog.Logger
	windows []int
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache memoizes historical rates in c.
func WithCache(c RateCache) ResolverOption {
	return func(r *Resolver) { r.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver returns a Resolver querying source.
func NewResolver(source QuoteSource, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:  source,
		logger:  zerolog.Nop(),
		windows: defaultWindows,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HistoricalRate implements RateResolver.
//
// It looks for the quote closest to on within 5 days, then within 30 days. Ties are broken
// by the earliest date. A source failure is not retried. A rate is only cached once its whole
// search window is in the past.
func (r *Resolver) HistoricalRate(ctx context.Context, on Date, from, to Currency) (Rate, error) {
	pair, err := NewPair(from, to)
	if err != nil {
		return Rate{}, err
	}
	if on.IsZero() {
		return Rate{}, invalidInput("no date for the historical %s rate", pair)
	}
	if pair.IsIdentity() {
		return IdentityRate(from, on), nil
	}

	if r.cache != nil {
		rate, ok, err := r.cache.Get(ctx, pair, on)
		if err != nil {
			r.logger.Warn().Err(err).Str("pair", pair.String()).Stringer("date", on).Msg("rate cache read failed (ignored)")
		}
		if ok {
			return rate, nil
		}
	}

	for i, window := range r.windows {
		if i > 0 {
			r.logger.Warn().Str("pair", pair.String()).Stringer("date", on).Int("window", window).Msg("trying wider date range")
		}
		quotes, err := r.source.Series(ctx, pair, on.Add(-window), on.Add(window))
		if err != nil {
			return Rate{}, &RateUnavailableError{Pair: pair, On: on, Err: err}
		}
		q, ok := Nearest(quotes, on, window)
		if !ok {
			continue
		}
		rate := Rate{Pair: pair, On: on, QuotedOn: q.Date, Value: q.Close}
		r.logger.Debug().Str("pair", pair.String()).Stringer("date", on).Stringer("quoted_on", q.Date).
			Int("distance", rate.Distance()).Str("rate", q.Close.String()).Msg("found historical rate")
		// quotes of today or later may still be published, and change the selection.
		if r.cache != nil && on.Add(window).Before(Today()) {
			if err := r.cache.Put(ctx, rate); err != nil {
				r.logger.Warn().Err(err).Str("pair", pair.String()).Msg("rate cache write failed (ignored)")
			}
		}
		return rate, nil
	}
	r.logger.Error().Str("pair", pair.String()).Stringer("date", on).Msg("no historical rate available")
	return Rate{}, &RateUnavailableError{Pair: pair, On: on}
}

// LiveRate implements RateResolver.
func (r *Resolver) LiveRate(ctx context.Context, from, to Currency) (Rate, error) {
	pair, err := NewPair(from, to)
	if err != nil {
		return Rate{}, err
	}
	if pair.IsIdentity() {
		return Rate{Pair: pair, Value: decimal.NewFromInt(1), Live: true}, nil
	}
	price, err := r.source.Latest(ctx, pair)
	if err != nil {
		return Rate{}, &LiveRateUnavailableError{Pair: pair, Err: err}
	}
	if !price.IsPositive() {
		return Rate{}, &LiveRateUnavailableError{Pair: pair, Err: fmt.Errorf("unusable price %s", price)}
	}
	r.logger.Debug().Str("pair", pair.String()).Str("rate", price.String()).Msg("found live rate")
	return Rate{Pair: pair, Value: price, Live: true}, nil
}

// Nearest returns the quote with a positive close that is the closest to on, and at most
// window days away. Ties are broken by the earliest date.
func Nearest(quotes []Quote, on Date, window int) (Quote, bool) {
	var best Quote
	bestDistance := -1
	for _, q := range quotes {
		if !q.Close.IsPositive() || q.Date.IsZero() {
			continue
		}
		d := on.DaysUntil(q.Date)
		if d < 0 {
			d = -d
		}
		if d > window {
			continue
		}
		if bestDistance < 0 || d < bestDistance || (d == bestDistance && q.Date.Before(best.Date)) {
			best, bestDistance = q, d
		}
	}
	return best, bestDistance >= 0
}

// AdvisoryRate returns the live rate, or 1.0 if it cannot be resolved.
//
// It is meant for display-only conversions, never for return calculations.
func AdvisoryRate(ctx context.Context, r RateResolver, from, to Currency) Rate {
	rate, err := r.LiveRate(ctx, from, to)
	if err != nil {
		return Rate{Pair: Pair{from, to}, Value: decimal.NewFromInt(1), Live: true}
	}
	return rate
}
