// Package homereturn computes the return of a series of payments made toward a property,
// when the payments, the property and the final cash-out are in different currencies.
//
// The engine is split in four parts:
//   - Rate resolution: a Resolver finds the historical rate of a currency pair on a given
//     day, falling back to the nearest available quote, and the current (live) rate.
//     Quotes come from a QuoteSource, see the yahoo and eodhd sub packages.
//   - Return calculation: Calculate compounds every payment at a desired annual rate, in the
//     property currency, and converts the result back at the live rate.
//   - Aggregation: Summarize turns the per payment results into totals and return ratios,
//     including the split between the pure interest and the currency impact.
//   - Reverse calculation: Reverse evaluates the return of selling the house for a given
//     price, given the invested share of an agreed house amount.
//
// Every amount is a Money, an exact decimal value in a Currency. Rounding only happens when
// presenting values.
//
// This package serves as the foundational logic for the `hrc` command-line tool.
package homereturn
