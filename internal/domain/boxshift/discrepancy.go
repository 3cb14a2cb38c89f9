// Package boxshift reglas de presentación del cierre de turno de caja.
package boxshift

import "github.com/shopspring/decimal"

// Niveles de desvío entre el saldo esperado y el monto declarado al cerrar.
const (
	LevelNormal   = "normal"
	LevelWarning  = "advertencia"
	LevelCritical = "critico"
)

var (
	warningThreshold  = decimal.NewFromInt(1) // %
	criticalThreshold = decimal.NewFromInt(5) // %
	hundred           = decimal.NewFromInt(100)
)

// Discrepancy desvío del cierre. Es solo informativo: no bloquea el envío del formulario.
type Discrepancy struct {
	Amount  decimal.Decimal `json:"amount"`  // declarado - esperado
	Percent decimal.Decimal `json:"percent"` // |amount| / |esperado| * 100
	Level   string          `json:"level"`
}

// ClassifyDifference compara el monto declarado con el saldo esperado.
// Hasta 1% es normal, hasta 5% advertencia, más es crítico. Con esperado en cero,
// cualquier diferencia es crítica.
func ClassifyDifference(expected, declared decimal.Decimal) Discrepancy {
	diff := declared.Sub(expected)
	d := Discrepancy{Amount: diff, Percent: decimal.Zero, Level: LevelNormal}
	if diff.IsZero() {
		return d
	}
	if expected.IsZero() {
		d.Percent = hundred
		d.Level = LevelCritical
		return d
	}
	d.Percent = diff.Abs().Div(expected.Abs()).Mul(hundred).Round(2)
	switch {
	case d.Percent.GreaterThan(criticalThreshold):
		d.Level = LevelCritical
	case d.Percent.GreaterThan(warningThreshold):
		d.Level = LevelWarning
	}
	return d
}
