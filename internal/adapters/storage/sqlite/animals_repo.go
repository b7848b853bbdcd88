package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"animal-care-tracker/internal/domain/animals"
)

type animalsRepo struct {
	db *DB
}

func NewAnimalsRepo(db *DB) animals.Repository {
	return &animalsRepo{db: db}
}

func (r *animalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO animals (id, name, species, breed, gender, birth_date, image_ref, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Species, a.Breed, string(a.Gender),
		toNullUnix(a.BirthDate), a.ImageRef, a.Color,
		toUnix(a.CreatedAt), toUnix(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert animal: %w", err)
	}
	return nil
}

func (r *animalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.sql.ExecContext(ctx,
		`UPDATE animals SET name = ?, species = ?, breed = ?, gender = ?, birth_date = ?,
		        image_ref = ?, color = ?, updated_at = ?
		 WHERE id = ?`,
		a.Name, a.Species, a.Breed, string(a.Gender), toNullUnix(a.BirthDate),
		a.ImageRef, a.Color, toUnix(a.UpdatedAt), a.ID,
	)
	if err != nil {
		return fmt.Errorf("update animal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

const animalColumns = `id, name, species, breed, gender, birth_date, image_ref, color, created_at, updated_at`

func scanAnimal(row interface{ Scan(...any) error }) (animals.Animal, error) {
	var (
		a         animals.Animal
		gender    string
		birthDate sql.NullInt64
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&a.ID, &a.Name, &a.Species, &a.Breed, &gender,
		&birthDate, &a.ImageRef, &a.Color, &createdAt, &updatedAt)
	if err != nil {
		return animals.Animal{}, err
	}
	a.Gender = animals.Gender(gender)
	a.BirthDate = fromNullUnix(birthDate)
	a.CreatedAt = fromUnix(createdAt)
	a.UpdatedAt = fromUnix(updatedAt)
	return a, nil
}

func (r *animalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	row := r.db.sql.QueryRowContext(ctx,
		`SELECT `+animalColumns+` FROM animals WHERE id = ?`, id)

	a, err := scanAnimal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return animals.Animal{}, animals.ErrNotFound
	}
	if err != nil {
		return animals.Animal{}, fmt.Errorf("get animal: %w", err)
	}
	return a, nil
}

func (r *animalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`SELECT `+animalColumns+` FROM animals ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan animal: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *animalsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM animals`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count animals: %w", err)
	}
	return n, nil
}

func (r *animalsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM animals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete animal: %w", err)
	}
	return nil
}
