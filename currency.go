package homereturn

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Currency is one of the supported ISO 4217 currency codes.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	INR Currency = "INR"
	AED Currency = "AED"
)

// currencyInfo is the display metadata of a supported currency.
type currencyInfo struct {
	name   string
	symbol string
}

var currencies = map[Currency]currencyInfo{
	USD: {"US Dollar", "$"},
	EUR: {"Euro", "€"},
	GBP: {"British Pound", "£"},
	INR: {"Indian Rupee", "₹"},
	AED: {"UAE Dirham", "د.إ"},
}

// Currencies returns the supported currencies in display order.
func Currencies() []Currency { return []Currency{USD, EUR, GBP, INR, AED} }

// ParseCurrency returns the Currency for code s. The check is case-insensitive.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate returns an error wrapping ErrInvalidInput if c is not supported.
func (c Currency) Validate() error {
	if _, ok := currencies[c]; !ok {
		return invalidInput("unsupported currency %q", string(c))
	}
	return nil
}

// Name returns the display name, like "Euro".
func (c Currency) Name() string { return currencies[c].name }

// Symbol returns the display symbol, like "€".
func (c Currency) Symbol() string { return currencies[c].symbol }

// Fraction returns the number of digits of the minor unit.
func (c Currency) Fraction() int {
	if cur := money.GetCurrency(string(c)); cur != nil {
		return cur.Fraction
	}
	return 2
}

func (c Currency) String() string { return string(c) }

func (c *Currency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*c = ""
		return nil
	}
	cur, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = cur
	return nil
}

// Pair is an ordered currency pair: a rate for Pair{EUR, USD} converts euros into dollars.
type Pair struct {
	From, To Currency
}

// NewPair returns a validated Pair.
func NewPair(from, to Currency) (Pair, error) {
	if err := from.Validate(); err != nil {
		return Pair{}, err
	}
	if err := to.Validate(); err != nil {
		return Pair{}, err
	}
	return Pair{from, to}, nil
}

// String returns the symbol used by quote providers, like "EURUSD".
func (p Pair) String() string { return fmt.Sprintf("%s%s", p.From, p.To) }

// Inverse returns the pair in the opposite direction.
func (p Pair) Inverse() Pair { return Pair{p.To, p.From} }

// IsIdentity reports whether the pair converts a currency to itself.
func (p Pair) IsIdentity() bool { return p.From == p.To }
