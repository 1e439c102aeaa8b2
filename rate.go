package homereturn

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quote is one sample of a quote source time series.
type Quote struct {
	Date  Date
	Close decimal.Decimal
}

// Rate converts money from Pair.From to Pair.To.
//
// On is the date the rate was requested for and QuotedOn the date of the sample that was
// selected for it. Both are zero for a live rate.
type Rate struct {
	Pair     Pair
	On       Date
	QuotedOn Date
	Value    decimal.Decimal
	Live     bool
}

// IdentityRate returns the exact 1.0 rate of a currency into itself.
func IdentityRate(c Currency, on Date) Rate {
	return Rate{Pair: Pair{c, c}, On: on, QuotedOn: on, Value: decimal.NewFromInt(1)}
}

// Convert returns m, expressed in Pair.From, converted into Pair.To.
func (r Rate) Convert(m Money) Money {
	if m.cur != "" && m.cur != r.Pair.From {
		panic(fmt.Sprintf("cannot convert %s with a %s rate", m.cur, r.Pair))
	}
	return Money{value: m.value.Mul(r.Value), cur: r.Pair.To}
}

// Revert returns m, expressed in Pair.To, converted back into Pair.From using the same rate.
// For any amount a, Revert(Convert(a)) equals a.
func (r Rate) Revert(m Money) Money {
	if m.cur != "" && m.cur != r.Pair.To {
		panic(fmt.Sprintf("cannot revert %s with a %s rate", m.cur, r.Pair))
	}
	return Money{value: m.value.Div(r.Value), cur: r.Pair.From}
}

// Distance is the number of days between the requested and the quoted date.
func (r Rate) Distance() int {
	d := r.On.DaysUntil(r.QuotedOn)
	if d < 0 {
		return -d
	}
	return d
}

func (r Rate) String() string {
	return fmt.Sprintf("%s %s", r.Pair, r.Value.StringFixed(4))
}

// MarshalJSON persists the rate rounded to 4 decimals.
func (r Rate) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("pair", r.Pair.String())
	w.Optional("on", r.On.zeroless())
	w.Optional("quoted_on", r.QuotedOn.zeroless())
	w.Append("rate", r.Value.Round(4))
	w.Optional("live", r.Live)
	return w.MarshalJSON()
}

// zeroless returns the date string, or "" for the zero date.
func (d Date) zeroless() string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
