package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/homereturn"
	md "github.com/nao1215/markdown"
)

// RateText describes a rate in one line.
func RateText(r homereturn.Rate) string {
	switch {
	case r.Live:
		return fmt.Sprintf("1 %s = %s %s (live)", r.Pair.From, r.Value.StringFixed(4), r.Pair.To)
	case r.Distance() > 0:
		return fmt.Sprintf("1 %s = %s %s on %s (quoted on %s, %d days away)", r.Pair.From, r.Value.StringFixed(4), r.Pair.To, r.On, r.QuotedOn, r.Distance())
	default:
		return fmt.Sprintf("1 %s = %s %s on %s", r.Pair.From, r.Value.StringFixed(4), r.Pair.To, r.On)
	}
}

// RateMarkdown renders a single rate.
func RateMarkdown(r homereturn.Rate) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("%s/%s", r.Pair.From, r.Pair.To))
	doc.PlainText(RateText(r))
	return doc.String()
}

// CurrenciesMarkdown renders the supported currencies.
func CurrenciesMarkdown() string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Supported Currencies")
	table := md.TableSet{
		Header: []string{"Code", "Name", "Symbol"},
	}
	for _, c := range homereturn.Currencies() {
		table.Rows = append(table.Rows, []string{string(c), c.Name(), c.Symbol()})
	}
	doc.Table(table)
	return doc.String()
}
