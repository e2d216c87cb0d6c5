package pricefmt

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format renders amount with locale digit grouping prefixed by the ISO code,
// e.g. "USD 250,000" for en. Codes that are not ISO 4217 are appended as-is.
func Format(amount decimal.Decimal, code, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	var num string
	if amount.Equal(amount.Truncate(0)) {
		num = p.Sprintf("%d", amount.IntPart())
	} else {
		f, _ := amount.Round(2).Float64()
		num = p.Sprintf("%.2f", f)
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return num
	}
	if unit, err := currency.ParseISO(code); err == nil {
		return unit.String() + " " + num
	}
	return num + " " + code
}
