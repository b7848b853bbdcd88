package postgres

import (
	"context"
	"database/sql"
	"strings"

	"animal-care-tracker/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, name, species, breed, gender,
			birth_date, image_ref, color,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Breed,
		string(a.Gender),
		toNullTime(a.BirthDate),
		a.ImageRef,
		a.Color,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			species = $3,
			breed = $4,
			gender = $5,
			birth_date = $6,
			image_ref = $7,
			color = $8,
			updated_at = $9
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Breed,
		string(a.Gender),
		toNullTime(a.BirthDate),
		a.ImageRef,
		a.Color,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, species, breed, gender,
			birth_date, image_ref, color,
			created_at, updated_at
		FROM animals
		WHERE id = $1
	`, id)

	var a animals.Animal
	var gender string
	var bd sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Species,
		&a.Breed,
		&gender,
		&bd,
		&a.ImageRef,
		&a.Color,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}

	a.Gender = animals.Gender(gender)
	a.BirthDate = fromNullTime(bd)
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, species, breed, gender,
			birth_date, image_ref, color,
			created_at, updated_at
		FROM animals
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		var a animals.Animal
		var gender string
		var bd sql.NullTime
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Species,
			&a.Breed,
			&gender,
			&bd,
			&a.ImageRef,
			&a.Color,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.Gender = animals.Gender(gender)
		a.BirthDate = fromNullTime(bd)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animals`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	return err
}
