package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores canónicos del ciclo de préstamo. El periodo es 7 días (el valor que usa la
// lógica de orquestación; la cifra de 15 días solo aparecía en documentación).
const (
	DefaultPeriodDays = 7
	DefaultFineRate   = 5000 // unidades monetarias por día de retraso
)

// OverdueDays calcula los días calendario de retraso entre la fecha límite y hoy.
// Devuelve 0 si hoy es igual o anterior a la fecha límite. Ambas fechas se
// normalizan a medianoche UTC: así el conteo no se acorta por días de 23 horas
// (cambio de horario) ni por entradas en zonas horarias distintas.
func OverdueDays(dueDate, today time.Time) int {
	due := truncateToDate(dueDate)
	now := truncateToDate(today)
	if !now.After(due) {
		return 0
	}
	return int(now.Sub(due) / (24 * time.Hour))
}

// FineFor calcula la multa total: días de retraso × tarifa por día.
// Es la única fórmula de multa del sistema; la usan tanto la devolución
// con retraso como el barrido batch, para que ambos caminos no diverjan.
func FineFor(overdueDays int, ratePerDay decimal.Decimal) decimal.Decimal {
	if overdueDays <= 0 {
		return decimal.Zero
	}
	return ratePerDay.Mul(decimal.NewFromInt(int64(overdueDays)))
}

// DueDateFrom calcula la fecha límite a partir de la fecha de préstamo.
func DueDateFrom(loanDate time.Time, periodDays int) time.Time {
	return truncateToDate(loanDate).AddDate(0, 0, periodDays)
}

// truncateToDate proyecta la fecha calendario de t a medianoche UTC. UTC no tiene
// cambios de horario, así que la resta entre dos fechas truncadas siempre es un
// múltiplo exacto de 24 horas.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
