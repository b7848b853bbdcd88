package care

import "time"

// NextDue resuelve la próxima fecha de vencimiento de un registro.
//
//   - Si NextScheduledDate existe, manda: se devuelve tal cual.
//   - Si no, y hay IntervalDays positivo, se calcula Date + intervalo. Ese
//     valor es consultivo: el registro sigue con NextScheduledDate = nil
//     hasta que un caller lo persista vía update.
//   - Sin fecha ni intervalo devuelve nil: sin agendar.
//
// Función pura; no toca el store.
func NextDue(r Record) *time.Time {
	if r.NextScheduledDate != nil {
		d := *r.NextScheduledDate
		return &d
	}
	if r.IntervalDays != nil && *r.IntervalDays > 0 {
		d := r.Date.AddDate(0, 0, *r.IntervalDays)
		return &d
	}
	return nil
}
