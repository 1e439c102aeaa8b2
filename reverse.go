package homereturn

import "github.com/shopspring/decimal"

// AppreciationPolicy decides how the appreciation above the agreed house price is credited.
type AppreciationPolicy int

const (
	// FullAppreciation credits the whole appreciation to the investor.
	FullAppreciation AppreciationPolicy = iota
	// ProRataAppreciation credits the appreciation in proportion to the ownership.
	ProRataAppreciation
)

func (p AppreciationPolicy) String() string {
	switch p {
	case FullAppreciation:
		return "full"
	case ProRataAppreciation:
		return "pro-rata"
	default:
		return "unknown"
	}
}

// ParseAppreciationPolicy parses "full" or "pro-rata".
func ParseAppreciationPolicy(s string) (AppreciationPolicy, error) {
	switch s {
	case "full", "":
		return FullAppreciation, nil
	case "pro-rata", "prorata":
		return ProRataAppreciation, nil
	default:
		return FullAppreciation, invalidInput("unknown appreciation policy %q", s)
	}
}

// Scenario is the outcome of selling the house for a given price.
//
// All amounts are in property currency.
type Scenario struct {
	HouseAmount   Money // agreed total property value
	SellingAmount Money
	Invested      Money
	AverageYears  float64
	Policy        AppreciationPolicy

	Ownership            Percent // invested share of the house, capped at 100%
	InvestedShare        Percent // invested share of the house, uncapped
	Appreciation         Money   // selling amount above the house amount
	CreditedAppreciation Money   // part of Appreciation credited to the investor
	ShareOfHouse         Money
	TotalReturn          Money
	Gain                 Money // TotalReturn - Invested
	ROI                  Percent
	AnnualizedROI        Percent
	AverageAnnualROI     Percent // ROI / AverageYears
	BreakEvenSalePrice   Money   // selling amount for a zero ROI
	Remaining            Money   // house amount not yet invested

	// Degenerate is true when the house amount or the invested amount is not positive,
	// or the selling amount is negative. All metrics are then zero.
	Degenerate bool
}

// Reverse computes the return of selling the house for selling, given the summary of the
// payments and the agreed house amount.
//
// It never fails: undefined scenarios are reported as Degenerate.
func Reverse(s Summary, house, selling Money, policy AppreciationPolicy) Scenario {
	invested := s.TotalInvestedProperty
	sc := Scenario{
		HouseAmount:   house,
		SellingAmount: selling,
		Invested:      invested,
		AverageYears:  s.AverageYears,
		Policy:        policy,
	}
	if !house.IsPositive() || !invested.IsPositive() || selling.IsNegative() {
		sc.Degenerate = true
		return sc
	}
	cur(house, selling)
	cur(house, invested)

	ownership := decimal.Min(invested.value.Div(house.value), decimal.NewFromInt(1))
	sc.Ownership = Percent(ownership.InexactFloat64() * 100)
	sc.InvestedShare = Percent(invested.Ratio(house) * 100)

	base := selling
	sc.Appreciation = M(0, house.cur)
	if selling.GreaterThanOrEqual(house) {
		sc.Appreciation = selling.Sub(house)
		base = house
	}
	sc.CreditedAppreciation = sc.Appreciation
	if policy == ProRataAppreciation {
		sc.CreditedAppreciation = sc.Appreciation.Mul(ownership)
	}

	sc.ShareOfHouse = base.Mul(ownership)
	sc.TotalReturn = sc.ShareOfHouse.Add(sc.CreditedAppreciation)
	sc.Gain = sc.TotalReturn.Sub(invested)

	factor := sc.TotalReturn.Ratio(invested)
	sc.ROI = Percent((factor - 1) * 100)
	sc.AnnualizedROI = Annualize(factor, s.AverageYears)
	if s.AverageYears > 0 {
		sc.AverageAnnualROI = Percent(float64(sc.ROI) / s.AverageYears)
	}
	sc.BreakEvenSalePrice = Money{value: invested.value.Div(ownership), cur: house.cur}
	sc.Remaining = house.Sub(invested)
	return sc
}
