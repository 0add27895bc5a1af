package memory

import (
	"context"
	"sort"
	"sync"

	"petmatch/internal/domain/likes"
)

type likeKey struct {
	userID string
	petID  string
}

type likeRepo struct {
	mu    sync.RWMutex
	byKey map[likeKey]likes.Like
}

func NewLikeRepo() likes.Repository {
	return &likeRepo{
		byKey: make(map[likeKey]likes.Like),
	}
}

func (r *likeRepo) Create(ctx context.Context, l likes.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := likeKey{l.UserID, l.PetID}
	if _, exists := r.byKey[k]; exists {
		return likes.ErrAlreadyLiked
	}
	r.byKey[k] = l
	return nil
}

func (r *likeRepo) Get(ctx context.Context, userID, petID string) (likes.Like, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byKey[likeKey{userID, petID}]
	if !ok {
		return likes.Like{}, likes.ErrNotFound
	}
	return l, nil
}

func (r *likeRepo) Delete(ctx context.Context, userID, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byKey, likeKey{userID, petID})
	return nil
}

func (r *likeRepo) ListByUser(ctx context.Context, userID string) ([]likes.Like, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]likes.Like, 0)
	for k, l := range r.byKey {
		if k.userID == userID {
			out = append(out, l)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].PetID < out[j].PetID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
