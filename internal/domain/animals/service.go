package animals

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"animal-care-tracker/internal/ports/capabilities"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")

	// ErrLimitReached indica que la capa de billing no permite registrar
	// más animales (tier gratuito).
	ErrLimitReached = errors.New("animal registration limit reached")
)

// FreeAnimalLimit es el máximo de animales del tier gratuito.
const FreeAnimalLimit = 3

type Service struct {
	repo Repository
	caps capabilities.Resolver // puede ser nil: sin límite de registro
	now  func() time.Time

	// pickColor elige un color de presentación cuando el caller no manda uno.
	pickColor func() string
}

func NewService(repo Repository, caps capabilities.Resolver) *Service {
	return &Service{
		repo: repo,
		caps: caps,
		now:  time.Now,
		pickColor: func() string {
			return palette[rand.Intn(len(palette))]
		},
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Gender    string
	BirthDate *time.Time
	ImageRef  string
	Color     string
}

func (s *Service) Add(ctx context.Context, in CreateInput) (Animal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Animal{}, ErrInvalidInput
	}

	g := Gender(strings.TrimSpace(in.Gender))
	if g == "" {
		g = GenderUnknown
	}
	if !ValidGender(g) {
		return Animal{}, ErrInvalidInput
	}

	if err := s.checkRegistrationLimit(ctx); err != nil {
		return Animal{}, err
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = s.pickColor()
	}

	now := s.now()
	a := Animal{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Species:   strings.TrimSpace(in.Species),
		Breed:     strings.TrimSpace(in.Breed),
		Gender:    g,
		BirthDate: in.BirthDate,
		ImageRef:  strings.TrimSpace(in.ImageRef),
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Update reemplaza el animal completo (match por ID). El ID y CreatedAt
// son inmutables.
func (s *Service) Update(ctx context.Context, a Animal) (Animal, error) {
	if strings.TrimSpace(a.ID) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Species) == "" {
		return Animal{}, ErrInvalidInput
	}
	if !ValidGender(a.Gender) {
		return Animal{}, ErrInvalidInput
	}

	prev, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return Animal{}, err
	}

	a.Name = strings.TrimSpace(a.Name)
	a.Species = strings.TrimSpace(a.Species)
	a.Breed = strings.TrimSpace(a.Breed)
	a.CreatedAt = prev.CreatedAt
	a.UpdatedAt = s.now()
	if strings.TrimSpace(a.Color) == "" {
		a.Color = prev.Color
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// UpdateColor cambia solo el color de presentación.
func (s *Service) UpdateColor(ctx context.Context, id, color string) (Animal, error) {
	if strings.TrimSpace(color) == "" {
		return Animal{}, ErrInvalidInput
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	a.Color = strings.TrimSpace(color)
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Exists expone la verificación de FK para los módulos dependientes
// (cycles, health, care) sin que tengan que conocer el modelo completo.
func (s *Service) Exists(ctx context.Context, animalID string) (bool, error) {
	_, err := s.repo.GetByID(ctx, animalID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) checkRegistrationLimit(ctx context.Context) error {
	if s.caps == nil {
		return nil
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n < FreeAnimalLimit {
		return nil
	}

	ok, err := s.caps.Has(ctx, capabilities.CapabilityUnlimitedAnimals)
	if err != nil {
		// Billing caído no debe permitir saltarse el límite.
		return ErrLimitReached
	}
	if !ok {
		return ErrLimitReached
	}
	return nil
}
