package likes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("like not found")
	ErrPetNotFound  = errors.New("pet not found")
	ErrOwnPet       = errors.New("cannot like own pet")
	ErrAlreadyLiked = errors.New("already liked")
)

// PetOwnerLookup evita depender del paquete pets directamente.
// Debe devolver un error que cumpla errors.Is(err, notFound) si la mascota no existe.
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// ChangeListener se llama después de cada like/unlike efectivo.
type ChangeListener func(ctx context.Context, userID string)

type Service struct {
	repo     Repository
	pets     PetOwnerLookup
	notFound error
	now      func() time.Time

	onChange ChangeListener
}

// NewService recibe el sentinel de "no existe" del módulo de mascotas.
func NewService(repo Repository, pets PetOwnerLookup, petNotFound error) *Service {
	return &Service{
		repo:     repo,
		pets:     pets,
		notFound: petNotFound,
		now:      time.Now,
	}
}

func (s *Service) OnChange(fn ChangeListener) {
	s.onChange = fn
}

// Like es idempotente: si ya existía, devuelve el like original.
func (s *Service) Like(ctx context.Context, userID, petID string) (Like, bool, error) {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" || petID == "" {
		return Like{}, false, ErrInvalidInput
	}

	owner, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		if s.notFound != nil && errors.Is(err, s.notFound) {
			return Like{}, false, ErrPetNotFound
		}
		return Like{}, false, err
	}
	if owner == userID {
		return Like{}, false, ErrOwnPet
	}

	if existing, err := s.repo.Get(ctx, userID, petID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Like{}, false, err
	}

	l := Like{
		ID:        uuid.NewString(),
		UserID:    userID,
		PetID:     petID,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, l); err != nil {
		// carrera con otro request del mismo usuario
		if errors.Is(err, ErrAlreadyLiked) {
			existing, gerr := s.repo.Get(ctx, userID, petID)
			if gerr == nil {
				return existing, false, nil
			}
		}
		return Like{}, false, err
	}

	s.notify(ctx, userID)
	return l, true, nil
}

func (s *Service) Unlike(ctx context.Context, userID, petID string) error {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" || petID == "" {
		return ErrInvalidInput
	}

	if _, err := s.repo.Get(ctx, userID, petID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.repo.Delete(ctx, userID, petID); err != nil {
		return err
	}

	s.notify(ctx, userID)
	return nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Like, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// LikedPetIDs devuelve los ids de mascotas que el usuario marcó.
func (s *Service) LikedPetIDs(ctx context.Context, userID string) ([]string, error) {
	items, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, l := range items {
		out = append(out, l.PetID)
	}
	return out, nil
}

func (s *Service) notify(ctx context.Context, userID string) {
	if s.onChange != nil {
		s.onChange(ctx, userID)
	}
}
