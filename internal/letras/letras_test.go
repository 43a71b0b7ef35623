package letras

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNumeroALetras(t *testing.T) {
	cases := []struct {
		n        int
		expected string
	}{
		{0, "cero"},
		{1, "uno"},
		{7, "siete"},
		{10, "diez"},
		{15, "quince"},
		{16, "dieciséis"},
		{20, "veinte"},
		// 21-29 have no contraction table, so they spell out with "y"
		{21, "veinte y uno"},
		{25, "veinte y cinco"},
		{33, "treinta y tres"},
		{99, "noventa y nueve"},
		{100, "cien"},
		{101, "ciento uno"},
		{115, "ciento quince"},
		{121, "ciento veinte y uno"},
		{500, "quinientos"},
		{999, "novecientos noventa y nueve"},
		{1000, "mil"},
		{1500, "mil quinientos"},
		{2000, "dos mil"},
		{12345, "doce mil trescientos cuarenta y cinco"},
		{99999, "noventa y nueve mil novecientos noventa y nueve"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, NumeroALetras(tc.n), "n=%d", tc.n)
	}
}

func TestNumeroALetras_FueraDeRango(t *testing.T) {
	assert.Equal(t, "", NumeroALetras(-1))
	assert.Equal(t, "", NumeroALetras(100000))
}

func TestMontoEnLetras(t *testing.T) {
	cases := []struct {
		monto    string
		moneda   string
		expected string
	}{
		{"1500", "MXN", "mil quinientos pesos 00/100 MXN"},
		{"1500.50", "MXN", "mil quinientos pesos 50/100 MXN"},
		{"21", "MXN", "veinte y uno pesos 00/100 MXN"},
		{"300.05", "USD", "trescientos dólares 05/100 USD"},
		{"42", "EUR", "cuarenta y dos euros 00/100 EUR"},
		// Unknown currency keeps its code as the unit
		{"10", "GBP", "diez GBP 00/100 GBP"},
	}
	for _, tc := range cases {
		m, err := decimal.NewFromString(tc.monto)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, MontoEnLetras(m, tc.moneda), "monto=%s", tc.monto)
	}
}

func TestMontoEnLetras_NumeralGrande(t *testing.T) {
	m := decimal.RequireFromString("150000.75")
	assert.Equal(t, "150,000 pesos 75/100 MXN", MontoEnLetras(m, "MXN"))

	m = decimal.RequireFromString("100000")
	assert.Equal(t, "100,000 pesos 00/100 MXN", MontoEnLetras(m, "MXN"))
}

func TestFormatNumeral(t *testing.T) {
	assert.Equal(t, "0", FormatNumeral(0))
	assert.Equal(t, "999", FormatNumeral(999))
	assert.Equal(t, "1,000", FormatNumeral(1000))
	assert.Equal(t, "150,000", FormatNumeral(150000))
	assert.Equal(t, "1,234,567", FormatNumeral(1234567))
	assert.Equal(t, "-12,000", FormatNumeral(-12000))
}
