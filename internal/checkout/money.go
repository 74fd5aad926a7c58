package checkout

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Chilean peso rendering: dot-grouped thousands, no minor units.
var clp = message.NewPrinter(language.MustParse("es-CL"))

// FormatCLP renders an amount like "$15.000".
func FormatCLP(amount int64) string {
	return clp.Sprintf("$%d", amount)
}

// FormatKm renders a distance like "3,2 km".
func FormatKm(d float64) string {
	return clp.Sprintf("%.1f km", d)
}
