package homereturn

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// StaticSource is a deterministic QuoteSource backed by fixed tables, for tests and offline use.
//
// Inverse pairs are not derived: a table must be given for every pair queried.
type StaticSource struct {
	History map[Pair]map[Date]float64
	Live    map[Pair]float64
	Err     error // returned by every call when set

	mu          sync.Mutex
	SeriesCalls int
	LatestCalls int
}

// NewStaticSource returns an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{
		History: make(map[Pair]map[Date]float64),
		Live:    make(map[Pair]float64),
	}
}

// SetRate records a historical close of pair.
func (s *StaticSource) SetRate(pair Pair, on Date, close float64) *StaticSource {
	if s.History[pair] == nil {
		s.History[pair] = make(map[Date]float64)
	}
	s.History[pair][on] = close
	return s
}

// SetLive records the current price of pair.
func (s *StaticSource) SetLive(pair Pair, price float64) *StaticSource {
	s.Live[pair] = price
	return s
}

func (s *StaticSource) Series(_ context.Context, pair Pair, from, to Date) ([]Quote, error) {
	s.mu.Lock()
	s.SeriesCalls++
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var quotes []Quote
	for on, v := range s.History[pair] {
		if on.Before(from) || on.After(to) {
			continue
		}
		quotes = append(quotes, Quote{Date: on, Close: decimal.NewFromFloat(v)})
	}
	return quotes, nil
}

func (s *StaticSource) Latest(_ context.Context, pair Pair) (decimal.Decimal, error) {
	s.mu.Lock()
	s.LatestCalls++
	s.mu.Unlock()
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	v, ok := s.Live[pair]
	if !ok {
		return decimal.Zero, errors.New("no live quote for " + pair.String())
	}
	return decimal.NewFromFloat(v), nil
}

// Calls returns the total number of calls made to the source.
func (s *StaticSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.SeriesCalls + s.LatestCalls
}
