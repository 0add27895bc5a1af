package intakes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("intake not found")
)

type ChangeListener func(ctx context.Context, userID string)

type Service struct {
	repo Repository
	now  func() time.Time

	onChange ChangeListener
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) OnChange(fn ChangeListener) {
	s.onChange = fn
}

type SubmitInput struct {
	IsHouse             bool
	HasYard             bool
	HasSecurity         bool
	HadPetsBefore       bool
	HasCurrentPets      bool
	HasAllergies        bool
	HasChildren         bool
	WillNeuterVaccinate bool
	HoursAlonePerDay    int
	SleepingLocation    string
}

// Submit guarda el cuestionario; un segundo envío reemplaza al anterior
// conservando ID y CreatedAt.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (Intake, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Intake{}, ErrInvalidInput
	}
	if in.HoursAlonePerDay < 0 || in.HoursAlonePerDay > 24 {
		return Intake{}, ErrInvalidInput
	}
	loc := SleepingLocation(strings.ToLower(strings.TrimSpace(in.SleepingLocation)))
	switch loc {
	case "", SleepInside, SleepOutside:
	default:
		return Intake{}, ErrInvalidInput
	}

	now := s.now()
	out := Intake{
		ID:                  uuid.NewString(),
		UserID:              userID,
		IsHouse:             in.IsHouse,
		HasYard:             in.HasYard,
		HasSecurity:         in.HasSecurity,
		HadPetsBefore:       in.HadPetsBefore,
		HasCurrentPets:      in.HasCurrentPets,
		HasAllergies:        in.HasAllergies,
		HasChildren:         in.HasChildren,
		WillNeuterVaccinate: in.WillNeuterVaccinate,
		HoursAlonePerDay:    in.HoursAlonePerDay,
		SleepingLocation:    loc,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	prev, err := s.repo.GetByUser(ctx, userID)
	switch {
	case err == nil:
		out.ID = prev.ID
		out.CreatedAt = prev.CreatedAt
	case !errors.Is(err, ErrNotFound):
		return Intake{}, err
	}

	if err := s.repo.Upsert(ctx, out); err != nil {
		return Intake{}, err
	}
	if s.onChange != nil {
		s.onChange(ctx, userID)
	}
	return out, nil
}

func (s *Service) GetByUser(ctx context.Context, userID string) (Intake, error) {
	return s.repo.GetByUser(ctx, userID)
}

// Find devuelve nil si el usuario todavía no completó el cuestionario.
func (s *Service) Find(ctx context.Context, userID string) (*Intake, error) {
	in, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}
