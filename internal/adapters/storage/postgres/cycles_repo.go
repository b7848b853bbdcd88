package postgres

import (
	"context"
	"database/sql"
	"strings"

	"animal-care-tracker/internal/domain/cycles"
)

type CyclesRepo struct {
	db *sql.DB
}

func NewCyclesRepo(db *sql.DB) *CyclesRepo {
	return &CyclesRepo{db: db}
}

func (r *CyclesRepo) Create(ctx context.Context, c cycles.Cycle) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cycles (
			id, animal_id, start_date, end_date,
			intensity, notes, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		c.ID,
		c.AnimalID,
		c.StartDate,
		toNullTime(c.EndDate),
		int(c.Intensity),
		c.Notes,
		c.RecordedAt,
	)
	return err
}

func (r *CyclesRepo) Update(ctx context.Context, c cycles.Cycle) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cycles
		SET
			animal_id = $2,
			start_date = $3,
			end_date = $4,
			intensity = $5,
			notes = $6,
			recorded_at = $7
		WHERE id = $1
	`,
		c.ID,
		c.AnimalID,
		c.StartDate,
		toNullTime(c.EndDate),
		int(c.Intensity),
		c.Notes,
		c.RecordedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cycles.ErrNotFound
	}
	return nil
}

func (r *CyclesRepo) GetByID(ctx context.Context, id string) (cycles.Cycle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cycles.Cycle{}, cycles.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, start_date, end_date, intensity, notes, recorded_at
		FROM cycles
		WHERE id = $1
	`, id)

	var c cycles.Cycle
	var end sql.NullTime
	var intensity int
	if err := row.Scan(
		&c.ID,
		&c.AnimalID,
		&c.StartDate,
		&end,
		&intensity,
		&c.Notes,
		&c.RecordedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return cycles.Cycle{}, cycles.ErrNotFound
		}
		return cycles.Cycle{}, err
	}

	c.EndDate = fromNullTime(end)
	c.Intensity = cycles.Intensity(intensity)
	return c, nil
}

func (r *CyclesRepo) ListByAnimal(ctx context.Context, animalID string) ([]cycles.Cycle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, start_date, end_date, intensity, notes, recorded_at
		FROM cycles
		WHERE animal_id = $1
		ORDER BY start_date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cycles.Cycle, 0)
	for rows.Next() {
		var c cycles.Cycle
		var end sql.NullTime
		var intensity int
		if err := rows.Scan(
			&c.ID,
			&c.AnimalID,
			&c.StartDate,
			&end,
			&intensity,
			&c.Notes,
			&c.RecordedAt,
		); err != nil {
			return nil, err
		}
		c.EndDate = fromNullTime(end)
		c.Intensity = cycles.Intensity(intensity)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CyclesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cycles WHERE id = $1`, id)
	return err
}

func (r *CyclesRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cycles WHERE animal_id = $1`, animalID)
	return err
}
