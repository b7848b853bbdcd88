package health

import "time"

// Appetite es un enum ordenado: poor < normal < good.
type Appetite int

const (
	AppetitePoor   Appetite = 1
	AppetiteNormal Appetite = 2
	AppetiteGood   Appetite = 3
)

func ValidAppetite(a Appetite) bool { return a >= AppetitePoor && a <= AppetiteGood }

func (a Appetite) String() string {
	switch a {
	case AppetitePoor:
		return "poor"
	case AppetiteNormal:
		return "normal"
	case AppetiteGood:
		return "good"
	default:
		return "unknown"
	}
}

func ParseAppetite(s string) (Appetite, bool) {
	switch s {
	case "poor":
		return AppetitePoor, true
	case "normal", "":
		return AppetiteNormal, true
	case "good":
		return AppetiteGood, true
	}
	return 0, false
}

// ActivityLevel es un enum ordenado: low < normal < high.
type ActivityLevel int

const (
	ActivityLow    ActivityLevel = 1
	ActivityNormal ActivityLevel = 2
	ActivityHigh   ActivityLevel = 3
)

func ValidActivityLevel(a ActivityLevel) bool { return a >= ActivityLow && a <= ActivityHigh }

func (a ActivityLevel) String() string {
	switch a {
	case ActivityLow:
		return "low"
	case ActivityNormal:
		return "normal"
	case ActivityHigh:
		return "high"
	default:
		return "unknown"
	}
}

func ParseActivityLevel(s string) (ActivityLevel, bool) {
	switch s {
	case "low":
		return ActivityLow, true
	case "normal", "":
		return ActivityNormal, true
	case "high":
		return ActivityHigh, true
	}
	return 0, false
}

// Record es un chequeo general de salud.
type Record struct {
	ID       string
	AnimalID string

	Date          time.Time
	Weight        *float64 // kg
	Temperature   *float64 // °C
	Appetite      Appetite
	ActivityLevel ActivityLevel
	Notes         string
}

// WeightRecord es una medición de peso suelta: serie temporal simple,
// sin recurrencia.
type WeightRecord struct {
	ID       string
	AnimalID string

	Date   time.Time
	Weight float64 // kg, obligatorio
	Notes  string
}
