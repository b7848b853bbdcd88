package care

import "time"

// Kind etiqueta el tipo de registro de cuidado recurrente. Todos comparten
// la misma forma (fecha, próxima fecha, intervalo); solo cambia la semántica
// del Label: nombre de vacuna, tipo de chequeo, medicamento o servicio de
// grooming.
type Kind string

const (
	KindCheckup    Kind = "checkup"
	KindVaccine    Kind = "vaccine"
	KindMedication Kind = "medication"
	KindGrooming   Kind = "grooming"
)

func ValidKind(k Kind) bool {
	switch k {
	case KindCheckup, KindVaccine, KindMedication, KindGrooming:
		return true
	}
	return false
}

// Kinds lista los tipos soportados, en orden estable.
func Kinds() []Kind {
	return []Kind{KindCheckup, KindVaccine, KindMedication, KindGrooming}
}

// Record es un registro de cuidado con recurrencia opcional.
type Record struct {
	ID       string
	AnimalID string

	Kind Kind

	// Label: nombre de la vacuna, tipo de chequeo, medicamento, etc.
	Label string

	// Date es cuándo se realizó el cuidado.
	Date time.Time

	// NextScheduledDate es la próxima fecha comprometida. Puede estar en el
	// pasado: eso significa "vencido", no es inválido.
	NextScheduledDate *time.Time

	// IntervalDays, si está, es un entero positivo de días.
	IntervalDays *int

	Notes string
	Color string
}

// ScheduledDate devuelve NextScheduledDate o, si no hay fecha comprometida,
// el instante actual como centinela "sin agendar". El centinela nunca se
// persiste como fecha real.
func (r Record) ScheduledDate() time.Time {
	if r.NextScheduledDate != nil {
		return *r.NextScheduledDate
	}
	return time.Now()
}
