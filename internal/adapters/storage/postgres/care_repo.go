package postgres

import (
	"context"
	"database/sql"
	"strings"

	"animal-care-tracker/internal/domain/care"
)

type CareRepo struct {
	db *sql.DB
}

func NewCareRepo(db *sql.DB) *CareRepo {
	return &CareRepo{db: db}
}

func (r *CareRepo) Create(ctx context.Context, rec care.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_records (
			id, animal_id, kind, label, date,
			next_scheduled_date, interval_days, notes, color
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rec.ID,
		rec.AnimalID,
		string(rec.Kind),
		rec.Label,
		rec.Date,
		toNullTime(rec.NextScheduledDate),
		toNullInt(rec.IntervalDays),
		rec.Notes,
		rec.Color,
	)
	return err
}

func (r *CareRepo) Update(ctx context.Context, rec care.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE care_records
		SET
			animal_id = $2,
			kind = $3,
			label = $4,
			date = $5,
			next_scheduled_date = $6,
			interval_days = $7,
			notes = $8,
			color = $9
		WHERE id = $1
	`,
		rec.ID,
		rec.AnimalID,
		string(rec.Kind),
		rec.Label,
		rec.Date,
		toNullTime(rec.NextScheduledDate),
		toNullInt(rec.IntervalDays),
		rec.Notes,
		rec.Color,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return care.ErrNotFound
	}
	return nil
}

func (r *CareRepo) GetByID(ctx context.Context, id string) (care.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return care.Record{}, care.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, kind, label, date, next_scheduled_date, interval_days, notes, color
		FROM care_records
		WHERE id = $1
	`, id)

	var rec care.Record
	var kind string
	var next sql.NullTime
	var interval sql.NullInt64
	if err := row.Scan(
		&rec.ID,
		&rec.AnimalID,
		&kind,
		&rec.Label,
		&rec.Date,
		&next,
		&interval,
		&rec.Notes,
		&rec.Color,
	); err != nil {
		if err == sql.ErrNoRows {
			return care.Record{}, care.ErrNotFound
		}
		return care.Record{}, err
	}

	rec.Kind = care.Kind(kind)
	rec.NextScheduledDate = fromNullTime(next)
	rec.IntervalDays = fromNullInt(interval)
	return rec, nil
}

func (r *CareRepo) ListByAnimal(ctx context.Context, animalID string, kind care.Kind) ([]care.Record, error) {
	query := `
		SELECT id, animal_id, kind, label, date, next_scheduled_date, interval_days, notes, color
		FROM care_records
		WHERE animal_id = $1
	`
	args := []any{animalID}
	if kind != "" {
		query += ` AND kind = $2`
		args = append(args, string(kind))
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]care.Record, 0)
	for rows.Next() {
		var rec care.Record
		var k string
		var next sql.NullTime
		var interval sql.NullInt64
		if err := rows.Scan(
			&rec.ID,
			&rec.AnimalID,
			&k,
			&rec.Label,
			&rec.Date,
			&next,
			&interval,
			&rec.Notes,
			&rec.Color,
		); err != nil {
			return nil, err
		}
		rec.Kind = care.Kind(k)
		rec.NextScheduledDate = fromNullTime(next)
		rec.IntervalDays = fromNullInt(interval)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *CareRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM care_records WHERE id = $1`, id)
	return err
}

func (r *CareRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM care_records WHERE animal_id = $1`, animalID)
	return err
}
