package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/homereturn"
	md "github.com/nao1215/markdown"
)

// ReportOptions holds configuration for rendering a report.
type ReportOptions struct {
	// HouseAmount adds the share of the house covered by each payment, when positive.
	HouseAmount homereturn.Money
}

// ReportMarkdown renders a return report.
func ReportMarkdown(r *homereturn.Report, opts ReportOptions) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Return Report")
	if r == nil {
		doc.PlainText("No payments.")
		return doc.String()
	}

	cfg := r.Config
	doc.PlainText(fmt.Sprintf("Evaluated on %s, at a desired return of %s per year. Investment currency: %s, property currency: %s.",
		md.Bold(homereturn.DateOf(cfg.Now).String()), md.Bold(cfg.ReturnRate.String()),
		currencyLabel(cfg.InvestmentCurrency), currencyLabel(cfg.PropertyCurrency)))
	if r.LiveRateSubstituted {
		doc.PlainText(fmt.Sprintf("%s the live %s rate is unavailable, 1.0 was used instead. Values in %s are not reliable.",
			md.Bold("Warning:"), r.LiveRate.Pair, cfg.InvestmentCurrency))
	}

	withShare := opts.HouseAmount.IsPositive()

	doc.H2("Payments")
	table := md.TableSet{
		Header: []string{
			"Date",
			"Amount",
			"Invested (" + string(cfg.InvestmentCurrency) + ")",
			"Invested (" + string(cfg.PropertyCurrency) + ")",
			"Rate",
			"Years",
			"Future Value (" + string(cfg.PropertyCurrency) + ")",
			"Future Value (" + string(cfg.InvestmentCurrency) + ")",
			"Pure Interest",
			"Currency Impact",
		},
	}
	if withShare {
		table.Header = append(table.Header, "House Share")
	}
	for _, p := range r.Payments {
		row := []string{
			p.Payment.Date.String(),
			p.Payment.Money(cfg.InvestmentCurrency).String(),
			p.AmountInvestment.String(),
			p.AmountProperty.String(),
			p.InvestmentDateRate.Value.StringFixed(4),
			fmt.Sprintf("%.2f", p.Years),
			p.FutureValueProperty.String(),
			p.FutureValueInvestment.String(),
			p.PureInterestInvestment.String(),
			p.CurrencyImpact.SignedString(),
		}
		if withShare {
			row = append(row, homereturn.Percent(p.AmountProperty.Ratio(opts.HouseAmount)*100).String())
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	doc.H2("Summary")
	s := r.Summary
	summary := md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Invested", s.TotalInvested.String()},
			{"Total Invested (" + string(cfg.PropertyCurrency) + ")", s.TotalInvestedProperty.String()},
			{"Total Future Value", s.TotalFutureValue.String()},
			{"Total Future Value (" + string(cfg.PropertyCurrency) + ")", s.TotalFutureValueProperty.String()},
			{"Pure Interest", s.TotalPureInterest.SignedString()},
			{"Currency Impact", s.TotalCurrencyImpact.SignedString()},
			{"Multiplying Factor", fmt.Sprintf("%.4f", s.MultiplyingFactor)},
			{"Simple ROI", s.SimpleROI.SignedString()},
			{"Time-Weighted ROI", s.TimeWeightedROI.SignedString()},
			{"Pure ROI", s.PureROI.SignedString()},
			{"Average Investment Time", fmt.Sprintf("%.2f years", s.AverageYears)},
		},
	}
	if withShare {
		covered := s.TotalInvestedProperty.Ratio(opts.HouseAmount) * 100
		summary.Rows = append(summary.Rows,
			[]string{"House Amount Covered", homereturn.Percent(covered).String()},
			[]string{"Remaining Amount", opts.HouseAmount.Sub(s.TotalInvestedProperty).String()},
		)
	}
	doc.Table(summary)

	doc.PlainText(fmt.Sprintf("Live rate: %s.", RateText(r.LiveRate)))
	return doc.String()
}

func currencyLabel(c homereturn.Currency) string {
	return fmt.Sprintf("%s (%s %s)", md.Bold(string(c)), c.Symbol(), c.Name())
}
