package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"petmatch/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id,
	name, type, size, breed, gender, color, description,
	compatibility, sterilized, vaccinated,
	age_years, age_months, available_for_adoption,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	compat, err := encodeTags(p.Compatibility)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Type),
		string(p.Size),
		p.Breed,
		p.Gender,
		p.Color,
		p.Description,
		compat,
		string(p.Sterilized),
		string(p.Vaccinated),
		toNullInt(p.AgeYears),
		toNullInt(p.AgeMonths),
		p.AvailableForAdoption,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	compat, err := encodeTags(p.Compatibility)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			type = $3,
			size = $4,
			breed = $5,
			gender = $6,
			color = $7,
			description = $8,
			compatibility = $9,
			sterilized = $10,
			vaccinated = $11,
			age_years = $12,
			age_months = $13,
			available_for_adoption = $14,
			updated_at = $15
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Type),
		string(p.Size),
		p.Breed,
		p.Gender,
		p.Color,
		p.Description,
		compat,
		string(p.Sterilized),
		string(p.Vaccinated),
		toNullInt(p.AgeYears),
		toNullInt(p.AgeMonths),
		p.AvailableForAdoption,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) GetMany(ctx context.Context, ids []string) ([]pets.Pet, error) {
	if len(ids) == 0 {
		return []pets.Pet{}, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = ANY($1::text[])
		ORDER BY created_at DESC, id
	`, ids)
	if err != nil {
		return nil, err
	}
	return collectPets(rows)
}

func (r *PetsRepo) ListAvailable(ctx context.Context, f pets.AvailableFilter) ([]pets.Pet, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + petColumns + ` FROM pets WHERE available_for_adoption`)

	args := []any{}
	argN := 1

	if f.ExcludeOwnerID != "" {
		sb.WriteString(fmt.Sprintf(" AND owner_user_id <> $%d", argN))
		args = append(args, f.ExcludeOwnerID)
		argN++
	}
	if len(f.ExcludePetIDs) > 0 {
		sb.WriteString(fmt.Sprintf(" AND id <> ALL($%d::text[])", argN))
		args = append(args, f.ExcludePetIDs)
		argN++
	}
	if f.Type != "" {
		sb.WriteString(fmt.Sprintf(" AND lower(type) = $%d", argN))
		args = append(args, strings.ToLower(string(f.Type)))
		argN++
	}

	sb.WriteString(" ORDER BY created_at DESC, id")
	if f.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	return collectPets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(s rowScanner) (pets.Pet, error) {
	var (
		p                   pets.Pet
		typ, size           string
		sterilized, vacc    string
		compat              []byte
		ageYears, ageMonths sql.NullInt32
	)
	if err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&typ,
		&size,
		&p.Breed,
		&p.Gender,
		&p.Color,
		&p.Description,
		&compat,
		&sterilized,
		&vacc,
		&ageYears,
		&ageMonths,
		&p.AvailableForAdoption,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Type = pets.Type(typ)
	p.Size = pets.Size(size)
	p.Sterilized = pets.HealthStatus(sterilized)
	p.Vaccinated = pets.HealthStatus(vacc)
	p.AgeYears = fromNullInt(ageYears)
	p.AgeMonths = fromNullInt(ageMonths)

	tags, err := decodeTags(compat)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("pet %s: %w", p.ID, err)
	}
	p.Compatibility = tags
	return p, nil
}

func collectPets(rows *sql.Rows) ([]pets.Pet, error) {
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// compatibility se guarda como JSONB (array de strings).
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTags(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode compatibility: %w", err)
	}
	return out, nil
}

func toNullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func fromNullInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}
