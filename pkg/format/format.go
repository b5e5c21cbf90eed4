// Package format renders monetary amounts and percentages for API
// and terminal display. Arithmetic elsewhere stays on float64; only
// presentation rounds.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter builds a locale-aware formatter. An unparseable locale
// tag falls back to English rather than failing.
func NewFormatter(locale, currency string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: currency,
	}
}

// Money renders an amount with the configured currency code, rounded
// half-up to two decimal places.
func (f *Formatter) Money(v float64) string {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f.printer.Sprintf("%s %v", f.currency,
		number.Decimal(rounded, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Percent renders a percentage with a single decimal place and an
// explicit sign for positive values, matching how period deltas are
// shown.
func (f *Formatter) Percent(v float64) string {
	rounded, _ := decimal.NewFromFloat(v).Round(1).Float64()
	sign := ""
	if rounded > 0 {
		sign = "+"
	}
	return f.printer.Sprintf("%s%v%%", sign,
		number.Decimal(rounded, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}
