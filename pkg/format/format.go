// Package format da formato de presentación a montos, cantidades y nombres de archivo
// para las vistas de la consola.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Spanish)

// Money formatea un monto con dos decimales y separador de miles en español,
// precedido del símbolo de la moneda (PEN -> "S/", USD -> "$").
func Money(amount decimal.Decimal, currency string) string {
	f, _ := amount.Round(2).Float64()
	s := printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	sym := CurrencySymbol(currency)
	if sym == "" {
		return s
	}
	return sym + " " + s
}

// Quantity formatea una cantidad (kg, sacos) con hasta tres decimales.
func Quantity(q decimal.Decimal) string {
	f, _ := q.Round(3).Float64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(3)))
}

// CurrencySymbol devuelve el símbolo de una moneda ISO; vacío si no se conoce.
func CurrencySymbol(currency string) string {
	switch strings.ToUpper(currency) {
	case "PEN", "SOLES":
		return "S/"
	case "USD", "DOLARES":
		return "$"
	case "EUR":
		return "€"
	default:
		return ""
	}
}

// DatedFilename arma el nombre de una descarga con la fecha: "<base>-2006-01-02.<ext>".
func DatedFilename(base, ext string, now time.Time) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s-%s.%s", base, now.Format("2006-01-02"), ext)
}
