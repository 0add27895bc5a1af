package memory

import (
	"context"
	"errors"
	"sync"

	"petmatch/internal/domain/intakes"
)

type intakeRepo struct {
	mu     sync.RWMutex
	byUser map[string]intakes.Intake
}

func NewIntakeRepo() intakes.Repository {
	return &intakeRepo{
		byUser: make(map[string]intakes.Intake),
	}
}

func (r *intakeRepo) Upsert(ctx context.Context, in intakes.Intake) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if in.UserID == "" {
		return errors.New("intake user id required")
	}
	r.byUser[in.UserID] = in
	return nil
}

func (r *intakeRepo) GetByUser(ctx context.Context, userID string) (intakes.Intake, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	in, ok := r.byUser[userID]
	if !ok {
		return intakes.Intake{}, intakes.ErrNotFound
	}
	return in, nil
}
