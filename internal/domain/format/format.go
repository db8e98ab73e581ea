// Package format renders numbers using the fixed Brazilian convention:
// dot as thousands separator, comma as decimal separator.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyPrefix is prepended to monetary values.
const CurrencyPrefix = "R$"

const defaultPrecision = 2

// The tag is fixed so output never depends on the host locale.
var printer = message.NewPrinter(language.BrazilianPortuguese)

type options struct {
	prefix    string
	precision int
}

// Option configures FormatNumber.
type Option func(*options)

// WithPrefix places prefix and a single space before the number.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithPrecision sets the number of fraction digits. Negative values are ignored.
func WithPrecision(precision int) Option {
	return func(o *options) {
		if precision >= 0 {
			o.precision = precision
		}
	}
}

// FormatNumber renders numeric values as "1.234.567,89".
// Any non-numeric value is returned unchanged: strings verbatim, everything
// else in its default fmt form.
func FormatNumber(value any, opts ...Option) string {
	o := options{precision: defaultPrecision}
	for _, opt := range opts {
		opt(&o)
	}

	if !isNumeric(value) {
		return passthrough(value)
	}

	s := printer.Sprintf("%v", number.Decimal(value, number.Scale(o.precision)))
	if o.prefix == "" {
		return s
	}
	return o.prefix + " " + s
}

// Currency renders v as "R$ 1.234,56".
func Currency(v float64) string {
	return FormatNumber(v, WithPrefix(CurrencyPrefix), WithPrecision(defaultPrecision))
}

// Integer renders v rounded to whole units, e.g. "12.345".
func Integer(v float64) string {
	return FormatNumber(v, WithPrecision(0))
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

func passthrough(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
