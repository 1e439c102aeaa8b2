package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/homereturn"
	md "github.com/nao1215/markdown"
)

// ScenarioMarkdown renders a reverse calculation.
func ScenarioMarkdown(sc homereturn.Scenario) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Reverse Calculation")
	doc.PlainText(fmt.Sprintf("Selling the house for %s, agreed total value %s, %s appreciation.",
		md.Bold(sc.SellingAmount.String()), md.Bold(sc.HouseAmount.String()), sc.Policy))

	if sc.Degenerate {
		doc.PlainText("Nothing to compute: the house amount and the invested amount must be positive, and the selling amount must not be negative.")
		return doc.String()
	}

	doc.Table(md.TableSet{
		Header: []string{md.Bold("Scenario ROI"), md.Bold(sc.ROI.SignedString())},
		Rows: [][]string{
			{"Annualized ROI", sc.AnnualizedROI.SignedString()},
			{"Average Annual ROI", sc.AverageAnnualROI.SignedString()},
			{"Potential Return", sc.Gain.SignedString()},
		},
	})

	doc.H2("Return Breakdown")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Your Investment", sc.Invested.String()},
			{"Ownership", sc.Ownership.String()},
			{"Your Share of House", sc.ShareOfHouse.String()},
			{"Property Appreciation", sc.Appreciation.String()},
			{"Credited Appreciation", sc.CreditedAppreciation.String()},
			{"Your Total Return", sc.TotalReturn.String()},
		},
	})

	doc.H2("Break-Even Analysis")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Break-Even Sale Price", sc.BreakEvenSalePrice.String()},
			{"Original Price", sc.HouseAmount.String()},
			{"Remaining", sc.Remaining.String()},
		},
	})

	doc.H2("Insights")
	doc.BulletList(Insights(sc)...)
	return doc.String()
}

// Insights returns the qualitative assessment of a scenario.
func Insights(sc homereturn.Scenario) []string {
	if sc.Degenerate {
		return nil
	}
	var insights []string
	if sc.ROI > 0 {
		insights = append(insights, fmt.Sprintf("%s: %.1f%% total return", md.Bold("Profitable Exit"), float64(sc.ROI)))
		switch {
		case sc.AnnualizedROI > 10:
			insights = append(insights, md.Bold("Excellent Annual Return")+": above 10% annually")
		case sc.AnnualizedROI > 5:
			insights = append(insights, md.Bold("Good Annual Return")+": above 5% annually")
		default:
			insights = append(insights, md.Bold("Moderate Annual Return")+": below 5% annually")
		}
	} else {
		insights = append(insights, fmt.Sprintf("%s: %.1f%% total return", md.Bold("Loss"), float64(sc.ROI)))
	}

	if sc.InvestedShare < 100 {
		insights = append(insights, fmt.Sprintf("%s: you have invested %.1f%% of the house value", md.Bold("Partial Investment"), float64(sc.InvestedShare)))
	} else {
		insights = append(insights, md.Bold("Full Investment")+": you have invested 100% of the house value")
	}
	return insights
}
