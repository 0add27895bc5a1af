package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petmatch/internal/domain/pets"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = clonePet(p)
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.byID[p.ID] = clonePet(p)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) GetMany(ctx context.Context, ids []string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, clonePet(p))
		}
	}
	return out, nil
}

func (r *petRepo) ListAvailable(ctx context.Context, f pets.AvailableFilter) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skip := make(map[string]struct{}, len(f.ExcludePetIDs))
	for _, id := range f.ExcludePetIDs {
		skip[id] = struct{}{}
	}

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if !p.AvailableForAdoption {
			continue
		}
		if f.ExcludeOwnerID != "" && p.OwnerUserID == f.ExcludeOwnerID {
			continue
		}
		if _, ok := skip[p.ID]; ok {
			continue
		}
		if f.Type != "" && !p.IsType(f.Type) {
			continue
		}
		out = append(out, clonePet(p))
	}

	// Mismo orden que Postgres: created_at desc, id como desempate
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// clonePet evita compartir el slice de tags con el caller.
func clonePet(p pets.Pet) pets.Pet {
	if p.Compatibility != nil {
		p.Compatibility = append([]string(nil), p.Compatibility...)
	}
	return p
}
