// Package letras converts amounts under 100,000 into Spanish words for the
// informal receipt template. Amounts at or above that fall back to a plain
// formatted numeral.
package letras

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var unidades = [10]string{"", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve"}

// especiales covers 11-19. There is no equivalent table for 21-29, so those
// come out as "veinte y uno" rather than the contracted "veintiuno".
var especiales = map[int]string{
	11: "once", 12: "doce", 13: "trece", 14: "catorce", 15: "quince",
	16: "dieciséis", 17: "diecisiete", 18: "dieciocho", 19: "diecinueve",
}

var decenas = [10]string{"", "diez", "veinte", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa"}

var centenas = [10]string{"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos", "seiscientos", "setecientos", "ochocientos", "novecientos"}

var monedas = map[string]string{
	"MXN": "pesos",
	"USD": "dólares",
	"EUR": "euros",
}

// NumeroALetras spells out an integer in the range [0, 99999]. Out-of-range
// values return the empty string; callers are expected to use the numeral
// fallback instead.
func NumeroALetras(n int) string {
	if n < 0 || n >= 100000 {
		return ""
	}
	if n == 0 {
		return "cero"
	}

	var parts []string

	if miles := n / 1000; miles > 0 {
		if miles == 1 {
			parts = append(parts, "mil")
		} else {
			parts = append(parts, cientosALetras(miles)+" mil")
		}
		n %= 1000
	}

	if n > 0 {
		parts = append(parts, cientosALetras(n))
	}

	return strings.Join(parts, " ")
}

// cientosALetras handles 1-999.
func cientosALetras(n int) string {
	if n == 100 {
		return "cien"
	}

	var parts []string
	if c := n / 100; c > 0 {
		parts = append(parts, centenas[c])
		n %= 100
	}

	switch {
	case n == 0:
	case especiales[n] != "":
		parts = append(parts, especiales[n])
	case n < 10:
		parts = append(parts, unidades[n])
	case n%10 == 0:
		parts = append(parts, decenas[n/10])
	default:
		parts = append(parts, decenas[n/10]+" y "+unidades[n%10])
	}

	return strings.Join(parts, " ")
}

// MontoEnLetras renders a monetary amount as the informal template's
// description line, e.g. "mil quinientos pesos 00/100 MXN". Amounts of
// 100,000 or more use a formatted numeral instead of words.
func MontoEnLetras(monto decimal.Decimal, moneda string) string {
	unidad, ok := monedas[moneda]
	if !ok {
		unidad = moneda
	}

	entero := monto.IntPart()
	centavos := monto.Sub(decimal.NewFromInt(entero)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if centavos < 0 {
		centavos = -centavos
	}

	if entero < 0 || entero >= 100000 {
		return fmt.Sprintf("%s %s %02d/100 %s", FormatNumeral(entero), unidad, centavos, moneda)
	}

	return fmt.Sprintf("%s %s %02d/100 %s", NumeroALetras(int(entero)), unidad, centavos, moneda)
}

// FormatNumeral renders an integer with thousands separators ("150,000").
func FormatNumeral(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
