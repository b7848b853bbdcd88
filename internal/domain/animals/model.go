package animals

import "time"

// Gender define el sexo del animal.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// ValidGender reporta si g es uno de los valores soportados.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// Animal es la entidad raíz: todos los registros de cuidado cuelgan de ella.
type Animal struct {
	ID string

	Name    string
	Species string // dog, cat, rabbit, ... texto libre
	Breed   string
	Gender  Gender

	BirthDate *time.Time

	// ImageRef es una referencia opaca a la imagen (URL o path local);
	// el core no almacena bytes de imagen.
	ImageRef string

	// Color de presentación (hex). Se asigna de la paleta si viene vacío.
	Color string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// palette son los colores de presentación que se asignan al crear un animal
// sin color explícito. Tonos pastel, pensados para el calendario.
var palette = []string{
	"#FF9500", // naranja
	"#FF2D55", // rosa
	"#5AC8FA", // azul
	"#4CD964", // verde
	"#FFCC00", // amarillo
	"#AF52DE", // violeta
	"#FF6B6B", // coral
	"#48CFAD", // menta
	"#AC92EB", // lavanda
	"#EC87C0", // rosa viejo
}
