package homereturn

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
)

// Payment is a dated contribution toward the property.
//
// An empty Currency means the payment was made in the investment currency.
type Payment struct {
	Date     Date            `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"amount_currency,omitempty"`
}

// NewPayment returns a validated payment.
func NewPayment(on Date, amount decimal.Decimal, currency Currency) (Payment, error) {
	p := Payment{Date: on, Amount: amount, Currency: currency}
	return p, p.Validate()
}

// Validate checks the payment has a date, a positive amount and a supported currency.
func (p Payment) Validate() error {
	if p.Date.IsZero() {
		return invalidInput("payment has no date")
	}
	if !p.Amount.IsPositive() {
		return invalidInput("payment on %s has a non-positive amount %s", p.Date, p.Amount)
	}
	if p.Currency != "" {
		if err := p.Currency.Validate(); err != nil {
			return fmt.Errorf("payment on %s: %w", p.Date, err)
		}
	}
	return nil
}

// Money returns the payment amount in its own currency, or in def if it has none.
func (p Payment) Money(def Currency) Money {
	if p.Currency == "" {
		return M(p.Amount, def)
	}
	return M(p.Amount, p.Currency)
}

// SortPayments returns a copy of payments sorted by date, ties keep their input order.
func SortPayments(payments []Payment) []Payment {
	sorted := slices.Clone(payments)
	slices.SortStableFunc(sorted, func(a, b Payment) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// DecodePayments reads payments from r, either as a JSON array or as JSONL (one object per line).
// Every decoded payment is validated.
func DecodePayments(r io.Reader) ([]Payment, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var payments []Payment
	if first == '[' {
		if err := json.NewDecoder(br).Decode(&payments); err != nil {
			return nil, fmt.Errorf("%w: cannot decode payment list: %v", ErrInvalidInput, err)
		}
	} else {
		dec := json.NewDecoder(br)
		for i := 1; ; i++ {
			var p Payment
			err := dec.Decode(&p)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("%w: cannot decode payment #%d: %v", ErrInvalidInput, i, err)
			}
			payments = append(payments, p)
		}
	}

	for _, p := range payments {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return payments, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, br.UnreadByte()
		}
	}
}

// EncodePayment writes p as a single JSONL line.
func EncodePayment(w io.Writer, p Payment) error {
	var o jsonObjectWriter
	o.Append("date", p.Date)
	o.Append("amount", json.Number(p.Amount.String()))
	o.Optional("amount_currency", string(p.Currency))
	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
