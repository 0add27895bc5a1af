package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// AvailabilityListener se notifica cuando cambia el pool de candidatos.
type AvailabilityListener func(ctx context.Context, petID string)

type Service struct {
	repo Repository
	now  func() time.Time

	onChange AvailabilityListener
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// OnAvailabilityChange registra un hook (p.ej. invalidar cache de recomendaciones).
func (s *Service) OnAvailabilityChange(fn AvailabilityListener) {
	s.onChange = fn
}

type CreateInput struct {
	Name          string
	Type          string
	Size          string
	Breed         string
	Gender        string
	Color         string
	Description   string
	Compatibility []string
	Sterilized    string
	Vaccinated    string
	AgeYears      *int
	AgeMonths     *int
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Type) == "" {
		return Pet{}, ErrInvalidInput
	}
	size, ok := ParseSize(in.Size)
	if !ok {
		return Pet{}, ErrInvalidInput
	}
	if in.AgeYears != nil && *in.AgeYears < 0 {
		return Pet{}, ErrInvalidInput
	}
	if in.AgeMonths != nil && (*in.AgeMonths < 0 || *in.AgeMonths > 11) {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:                   uuid.NewString(),
		OwnerUserID:          ownerUserID,
		Name:                 strings.TrimSpace(in.Name),
		Type:                 Type(strings.ToLower(strings.TrimSpace(in.Type))),
		Size:                 size,
		Breed:                strings.TrimSpace(in.Breed),
		Gender:               strings.TrimSpace(in.Gender),
		Color:                strings.TrimSpace(in.Color),
		Description:          strings.TrimSpace(in.Description),
		Compatibility:        normalizeTags(in.Compatibility),
		Sterilized:           ParseHealthStatus(in.Sterilized),
		Vaccinated:           ParseHealthStatus(in.Vaccinated),
		AgeYears:             in.AgeYears,
		AgeMonths:            in.AgeMonths,
		AvailableForAdoption: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

// GetMany devuelve las mascotas existentes; ids desconocidos se ignoran.
func (s *Service) GetMany(ctx context.Context, ids []string) ([]Pet, error) {
	if len(ids) == 0 {
		return []Pet{}, nil
	}
	return s.repo.GetMany(ctx, ids)
}

// ListAvailable aplica límites por defecto para el listado público.
func (s *Service) ListAvailable(ctx context.Context, f AvailableFilter) ([]Pet, error) {
	f.Type = Type(strings.ToLower(strings.TrimSpace(string(f.Type))))
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	return s.repo.ListAvailable(ctx, f)
}

// Candidates devuelve el pool completo para recomendar a userID:
// disponibles, no propias y no excluidas.
func (s *Service) Candidates(ctx context.Context, userID string, exclude []string) ([]Pet, error) {
	return s.repo.ListAvailable(ctx, AvailableFilter{
		ExcludeOwnerID: userID,
		ExcludePetIDs:  exclude,
	})
}

// SetAvailability solo la puede cambiar el dueño.
func (s *Service) SetAvailability(ctx context.Context, petID, userID string, available bool) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != userID {
		return Pet{}, ErrForbidden
	}
	if p.AvailableForAdoption == available {
		return p, nil
	}

	p.AvailableForAdoption = available
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	if s.onChange != nil {
		s.onChange(ctx, p.ID)
	}
	return p, nil
}

// OwnerOf expone el ownerUserID de una mascota.
// Se usa para evitar ciclos de imports entre módulos (pets <-> likes).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

// ParseHealthStatus acepta las variantes que llegan desde el formulario.
func ParseHealthStatus(s string) HealthStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sí", "si", "yes", "true":
		return HealthYes
	case "no", "false":
		return HealthNo
	default:
		return HealthUnknown
	}
}

// ParseSize admite vacío (desconocido) o uno de los tres tamaños.
func ParseSize(s string) (Size, bool) {
	switch v := Size(strings.ToLower(strings.TrimSpace(s))); v {
	case "", SizeSmall, SizeMedium, SizeLarge:
		return v, true
	case "pequeno":
		return SizeSmall, true
	default:
		return "", false
	}
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
