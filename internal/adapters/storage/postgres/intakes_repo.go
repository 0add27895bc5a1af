package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petmatch/internal/domain/intakes"
)

type IntakesRepo struct {
	db *sql.DB
}

func NewIntakesRepo(db *sql.DB) *IntakesRepo {
	return &IntakesRepo{db: db}
}

func (r *IntakesRepo) Upsert(ctx context.Context, in intakes.Intake) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO intakes (
			id, user_id,
			is_house, has_yard, has_security,
			had_pets_before, has_current_pets, has_allergies, has_children,
			will_neuter_vaccinate, hours_alone_per_day, sleeping_location,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (user_id) DO UPDATE SET
			is_house = EXCLUDED.is_house,
			has_yard = EXCLUDED.has_yard,
			has_security = EXCLUDED.has_security,
			had_pets_before = EXCLUDED.had_pets_before,
			has_current_pets = EXCLUDED.has_current_pets,
			has_allergies = EXCLUDED.has_allergies,
			has_children = EXCLUDED.has_children,
			will_neuter_vaccinate = EXCLUDED.will_neuter_vaccinate,
			hours_alone_per_day = EXCLUDED.hours_alone_per_day,
			sleeping_location = EXCLUDED.sleeping_location,
			updated_at = EXCLUDED.updated_at
	`,
		in.ID,
		in.UserID,
		in.IsHouse,
		in.HasYard,
		in.HasSecurity,
		in.HadPetsBefore,
		in.HasCurrentPets,
		in.HasAllergies,
		in.HasChildren,
		in.WillNeuterVaccinate,
		in.HoursAlonePerDay,
		string(in.SleepingLocation),
		in.CreatedAt,
		in.UpdatedAt,
	)
	return err
}

func (r *IntakesRepo) GetByUser(ctx context.Context, userID string) (intakes.Intake, error) {
	var (
		in  intakes.Intake
		loc string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id,
			is_house, has_yard, has_security,
			had_pets_before, has_current_pets, has_allergies, has_children,
			will_neuter_vaccinate, hours_alone_per_day, sleeping_location,
			created_at, updated_at
		FROM intakes
		WHERE user_id = $1
	`, userID).Scan(
		&in.ID,
		&in.UserID,
		&in.IsHouse,
		&in.HasYard,
		&in.HasSecurity,
		&in.HadPetsBefore,
		&in.HasCurrentPets,
		&in.HasAllergies,
		&in.HasChildren,
		&in.WillNeuterVaccinate,
		&in.HoursAlonePerDay,
		&loc,
		&in.CreatedAt,
		&in.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return intakes.Intake{}, intakes.ErrNotFound
		}
		return intakes.Intake{}, err
	}
	in.SleepingLocation = intakes.SleepingLocation(loc)
	return in, nil
}
