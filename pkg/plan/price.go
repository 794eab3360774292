package plan

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPrice renders an amount in minor units, e.g. 499 USD as "$ 4.99".
// Unknown currency codes fall back to the raw code and amount.
func FormatPrice(amount int64, code string) string {
	p := message.NewPrinter(language.English)

	unit, err := currency.ParseISO(code)
	if err != nil {
		return p.Sprintf("%s %d", code, amount)
	}
	scale, _ := currency.Standard.Rounding(unit)
	value := float64(amount) / math.Pow10(scale)
	return p.Sprint(currency.Symbol(unit.Amount(value)))
}

// MonthlyPrice is FormatPrice for the plan's monthly price.
func (p Plan) MonthlyPrice() string {
	return FormatPrice(p.PriceMonthly, p.Currency)
}

// YearlyPrice is FormatPrice for the plan's yearly price, empty when unset.
func (p Plan) YearlyPrice() string {
	if p.PriceYearly == nil {
		return ""
	}
	return FormatPrice(*p.PriceYearly, p.Currency)
}
