package cycles

import "time"

// Intensity es un enum ordenado: light < medium < heavy.
type Intensity int

const (
	IntensityLight  Intensity = 1
	IntensityMedium Intensity = 2
	IntensityHeavy  Intensity = 3
)

func ValidIntensity(i Intensity) bool {
	return i >= IntensityLight && i <= IntensityHeavy
}

func (i Intensity) String() string {
	switch i {
	case IntensityLight:
		return "light"
	case IntensityMedium:
		return "medium"
	case IntensityHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// ParseIntensity acepta el nombre del nivel; "" equivale a medium.
func ParseIntensity(s string) (Intensity, bool) {
	switch s {
	case "light":
		return IntensityLight, true
	case "medium", "":
		return IntensityMedium, true
	case "heavy":
		return IntensityHeavy, true
	}
	return 0, false
}

// Cycle es un ciclo fisiológico registrado para un animal.
// El storage no garantiza orden; siempre se consumen ordenados por
// StartDate descendente.
type Cycle struct {
	ID       string
	AnimalID string

	StartDate time.Time
	EndDate   *time.Time
	Intensity Intensity
	Notes     string

	RecordedAt time.Time
}
