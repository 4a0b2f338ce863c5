package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencyLocale describes how a display currency is rendered: which locale
// supplies the digit grouping and decimal separator, the currency symbol,
// and whether the symbol leads the amount.
type currencyLocale struct {
	tag    language.Tag
	symbol string
	prefix bool
}

var currencyLocales = map[string]currencyLocale{
	"EUR": {tag: language.German, symbol: "€"},
	"USD": {tag: language.AmericanEnglish, symbol: "$", prefix: true},
	"PLN": {tag: language.Polish, symbol: "zł"},
}

// FormatAmount renders an amount in the target currency's locale
// conventions: grouping separators, exactly two fraction digits, and the
// currency symbol in its customary position ("$267.50", "435,00 zł").
// Unknown currencies fall back to the ISO code as a suffix.
func FormatAmount(amount float64, currencyCode string) string {
	loc, ok := currencyLocales[currencyCode]
	if !ok {
		p := message.NewPrinter(language.English)
		return p.Sprintf("%.2f %s", amount, currencyCode)
	}

	p := message.NewPrinter(loc.tag)
	if loc.prefix {
		return p.Sprintf("%s%.2f", loc.symbol, amount)
	}
	return p.Sprintf("%.2f %s", amount, loc.symbol)
}
