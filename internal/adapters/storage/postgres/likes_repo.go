package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petmatch/internal/domain/likes"
)

type LikesRepo struct {
	db *sql.DB
}

func NewLikesRepo(db *sql.DB) *LikesRepo {
	return &LikesRepo{db: db}
}

func (r *LikesRepo) Create(ctx context.Context, l likes.Like) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO likes (id, user_id, pet_id, created_at)
		VALUES ($1,$2,$3,$4)
	`, l.ID, l.UserID, l.PetID, l.CreatedAt)
	if isUniqueViolation(err) {
		return likes.ErrAlreadyLiked
	}
	return err
}

func (r *LikesRepo) Get(ctx context.Context, userID, petID string) (likes.Like, error) {
	var l likes.Like
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, pet_id, created_at
		FROM likes
		WHERE user_id = $1 AND pet_id = $2
	`, userID, petID).Scan(&l.ID, &l.UserID, &l.PetID, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return likes.Like{}, likes.ErrNotFound
		}
		return likes.Like{}, err
	}
	return l, nil
}

func (r *LikesRepo) Delete(ctx context.Context, userID, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND pet_id = $2`, userID, petID)
	return err
}

func (r *LikesRepo) ListByUser(ctx context.Context, userID string) ([]likes.Like, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, pet_id, created_at
		FROM likes
		WHERE user_id = $1
		ORDER BY created_at DESC, pet_id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]likes.Like, 0)
	for rows.Next() {
		var l likes.Like
		if err := rows.Scan(&l.ID, &l.UserID, &l.PetID, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
