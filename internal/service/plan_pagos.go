package service

// plan_pagos.go — pure payment-schedule arithmetic. No I/O, no validation of
// business limits: callers validate before invoking.

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CuotaPlan is one entry of a generated payment schedule.
type CuotaPlan struct {
	Numero      int
	Monto       decimal.Decimal
	Fecha       time.Time
	Descripcion string
}

// GenerarPlanPagos amortizes total across numPagos installments between hoy
// and fechaViaje.
//
// When anticipo > 0 the first installment is the deposit, dated today. The
// remainder is split evenly over the remaining slots: each amount is the
// plain division rounded to 2 decimals, with no correction applied to the
// final installment, so the sum can drift from total by a fraction of a cent
// per slot. The remaining installments land at equal day intervals, the
// interval being the integer division of the day count by the slot count.
//
// numPagos < 1 returns an empty schedule. Negative or zero totals are not
// rejected here.
func GenerarPlanPagos(total, anticipo decimal.Decimal, numPagos int, fechaViaje, hoy time.Time) []CuotaPlan {
	if numPagos < 1 {
		return nil
	}

	var plan []CuotaPlan
	numero := 1

	if anticipo.IsPositive() {
		plan = append(plan, CuotaPlan{
			Numero:      1,
			Monto:       anticipo,
			Fecha:       hoy,
			Descripcion: "Anticipo inicial",
		})
		numero = 2
	}

	restantes := numPagos - (numero - 1)
	if restantes < 1 {
		return plan
	}

	resto := total.Sub(anticipo)
	montoCuota := resto.Div(decimal.NewFromInt(int64(restantes))).Round(2)

	dias := int(fechaViaje.Sub(hoy).Hours() / 24)
	intervalo := dias / restantes

	for i := 0; i < restantes; i++ {
		desc := fmt.Sprintf("Pago %d", numero)
		if i == restantes-1 {
			desc += " (Final)"
		}
		plan = append(plan, CuotaPlan{
			Numero:      numero,
			Monto:       montoCuota,
			Fecha:       hoy.AddDate(0, 0, intervalo*(i+1)),
			Descripcion: desc,
		})
		numero++
	}

	return plan
}

// inicioDeDia returns midnight of t's calendar day in t's location.
// Truncate(24h) operates on the UTC epoch and lands on the previous local day
// for evening times west of UTC.
func inicioDeDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SnapshotRecibo computes the previous-payments / balance pair stored on a
// receipt at generation time. Both values are clamped at zero.
func SnapshotRecibo(total, acumuladoConActual, actual decimal.Decimal) (pagosPrevios, saldo decimal.Decimal) {
	pagosPrevios = acumuladoConActual.Sub(actual)
	if pagosPrevios.IsNegative() {
		pagosPrevios = decimal.Zero
	}
	saldo = total.Sub(acumuladoConActual)
	if saldo.IsNegative() {
		saldo = decimal.Zero
	}
	return pagosPrevios, saldo
}
