// Package money formatea montos en la moneda única de las facturas (USD, en-US).
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol es el símbolo fijo de la moneda.
const Symbol = "$"

// Free es la etiqueta de los precios incluidos sin costo.
const Free = Symbol + "0"

var printer = message.NewPrinter(language.AmericanEnglish)

// El printer agrupa enteros de 64 bits; por encima se agrupa el texto decimal.
var maxPrinted = decimal.NewFromInt(math.MaxInt64)

// USD formatea con dos decimales, separador de miles y símbolo.
// Ej: 1234.5 → "$1,234.50", -200 → "-$200.00".
func USD(d decimal.Decimal) string {
	rounded := d.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	fixed := rounded.StringFixed(2)
	frac := fixed[strings.IndexByte(fixed, '.'):]

	whole := rounded.Truncate(0)
	if whole.LessThanOrEqual(maxPrinted) {
		return sign + Symbol + printer.Sprintf("%d", whole.IntPart()) + frac
	}
	return sign + Symbol + groupThousands(whole.String()) + frac
}

func groupThousands(digits string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Quantity imprime una cantidad en su forma decimal más corta, sin agrupar
// (5 → "5", 2.5 → "2.5").
func Quantity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
