package renderer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/homereturn"
)

var csvHeader = []string{
	"date",
	"amount",
	"amount_currency",
	"amount_in_investment_currency",
	"amount_in_property_currency",
	"investment_date_rate",
	"years",
	"future_value_investment_currency",
	"future_value_property_currency",
	"pure_interest_earned_investment_currency",
	"pure_interest_earned_property_currency",
	"currency_impact",
}

// WriteCSV writes one row per payment, followed by a SUMMARY row of the totals.
func WriteCSV(w io.Writer, r *homereturn.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	if r != nil {
		inv := r.Config.InvestmentCurrency
		for _, p := range r.Payments {
			amount := p.Payment.Money(inv)
			row := []string{
				p.Payment.Date.String(),
				amountText(amount),
				string(amount.Currency()),
				amountText(p.AmountInvestment),
				amountText(p.AmountProperty),
				p.InvestmentDateRate.Value.StringFixed(4),
				fmt.Sprintf("%.2f", p.Years),
				amountText(p.FutureValueInvestment),
				amountText(p.FutureValueProperty),
				amountText(p.PureInterestInvestment),
				amountText(p.PureInterestProperty),
				amountText(p.CurrencyImpact),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		s := r.Summary
		summary := []string{
			"SUMMARY",
			amountText(s.TotalInvested),
			"TOTAL_INVESTED",
			amountText(s.TotalInvested),
			amountText(s.TotalInvestedProperty),
			"N/A",
			"N/A",
			amountText(s.TotalFutureValue),
			amountText(s.TotalFutureValueProperty),
			amountText(s.TotalPureInterest),
			amountText(s.TotalPureInterestProperty),
			amountText(s.TotalCurrencyImpact),
		}
		if err := cw.Write(summary); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// amountText formats m rounded to its currency fraction, without symbol nor grouping.
func amountText(m homereturn.Money) string {
	return m.Decimal().StringFixed(int32(m.Currency().Fraction()))
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
