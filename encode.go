package homereturn

// This file contains the JSON presentation of the engine output: money is rounded to the
// currency fraction, rates to 4 decimals and years to 2 decimals.

func (r PaymentReturn) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", r.Payment.Date)
	w.Append("amount", r.Payment.Money(r.AmountInvestment.Currency()))
	w.Append("amount_in_investment_currency", r.AmountInvestment)
	w.Append("amount_in_property_currency", r.AmountProperty)
	w.Append("investment_date_rate", r.InvestmentDateRate)
	w.Float("years", r.Years, 2)
	w.Append("future_value_investment_currency", r.FutureValueInvestment)
	w.Append("future_value_property_currency", r.FutureValueProperty)
	w.Append("interest_earned_property_currency", r.InterestProperty)
	w.Append("pure_interest_earned_investment_currency", r.PureInterestInvestment)
	w.Append("pure_interest_earned_property_currency", r.PureInterestProperty)
	w.Append("currency_impact", r.CurrencyImpact)
	return w.MarshalJSON()
}

func (s Summary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("total_invested_investment_currency", s.TotalInvested)
	w.Append("total_invested_property_currency", s.TotalInvestedProperty)
	w.Append("total_future_value_investment_currency", s.TotalFutureValue)
	w.Append("total_future_value_property_currency", s.TotalFutureValueProperty)
	w.Append("total_pure_interest", s.TotalPureInterest)
	w.Append("total_pure_interest_property_currency", s.TotalPureInterestProperty)
	w.Append("total_currency_impact", s.TotalCurrencyImpact)
	w.Float("multiplying_factor_investment", s.MultiplyingFactor, 4)
	w.Float("multiplying_factor_property", s.MultiplyingFactorProperty, 4)
	w.Append("simple_roi", s.SimpleROI)
	w.Append("time_weighted_roi", s.TimeWeightedROI)
	w.Append("pure_roi", s.PureROI)
	w.Float("average_investment_time", s.AverageYears, 2)
	return w.MarshalJSON()
}

func (r Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("investment_currency", r.Config.InvestmentCurrency)
	w.Append("property_currency", r.Config.PropertyCurrency)
	w.Append("return_rate", r.Config.ReturnRate)
	w.Append("evaluated_on", DateOf(r.Config.Now))
	w.Append("live_rate", r.LiveRate)
	w.Optional("live_rate_substituted", r.LiveRateSubstituted)
	w.Append("results", r.Payments)
	w.Append("summary", r.Summary)
	return w.MarshalJSON()
}

func (s Scenario) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("initial_house_amount", s.HouseAmount)
	w.Append("selling_amount", s.SellingAmount)
	w.Append("total_invested_property_currency", s.Invested)
	w.Append("appreciation_policy", s.Policy.String())
	w.Optional("degenerate", s.Degenerate)
	w.Append("ownership", s.Ownership)
	w.Append("appreciation", s.Appreciation)
	w.Append("credited_appreciation", s.CreditedAppreciation)
	w.Append("your_share_of_house", s.ShareOfHouse)
	w.Append("your_total_return", s.TotalReturn)
	w.Append("potential_return", s.Gain)
	w.Append("scenario_roi", s.ROI)
	w.Append("annualized_scenario_roi", s.AnnualizedROI)
	w.Append("average_annual_roi", s.AverageAnnualROI)
	w.Append("break_even_sale_price", s.BreakEvenSalePrice)
	return w.MarshalJSON()
}
