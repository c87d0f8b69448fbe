package loan

import (
	"context"
	"time"

	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad del ciclo de préstamo: la cantidad disponible
// del libro y el estado del préstamo se modifican juntos o no se modifica nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		loanRepo repository.LoanRepository,
		bookRepo repository.BookRepository,
	) error) error
}

// Clock abstrae la fecha actual para que los tests fijen "hoy".
// Se lee una sola vez por operación: todos los cálculos de una misma
// operación usan la misma fecha.
type Clock interface {
	Today() time.Time
}

// SystemClock implementación real: la fecha del sistema truncada a día.
type SystemClock struct{}

// Today devuelve la fecha actual sin componente horaria, en UTC. Las fechas de
// préstamo leídas de la base también llegan en UTC, así que los cálculos de
// retraso nunca mezclan zonas horarias.
func (SystemClock) Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
