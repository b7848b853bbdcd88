package postgres

import (
	"context"
	"database/sql"
	"strings"

	"animal-care-tracker/internal/domain/health"
)

type HealthRepo struct {
	db *sql.DB
}

func NewHealthRepo(db *sql.DB) *HealthRepo {
	return &HealthRepo{db: db}
}

func (r *HealthRepo) Create(ctx context.Context, rec health.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_records (
			id, animal_id, date, weight, temperature,
			appetite, activity_level, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		rec.ID,
		rec.AnimalID,
		rec.Date,
		toNullFloat(rec.Weight),
		toNullFloat(rec.Temperature),
		int(rec.Appetite),
		int(rec.ActivityLevel),
		rec.Notes,
	)
	return err
}

func (r *HealthRepo) Update(ctx context.Context, rec health.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE health_records
		SET
			animal_id = $2,
			date = $3,
			weight = $4,
			temperature = $5,
			appetite = $6,
			activity_level = $7,
			notes = $8
		WHERE id = $1
	`,
		rec.ID,
		rec.AnimalID,
		rec.Date,
		toNullFloat(rec.Weight),
		toNullFloat(rec.Temperature),
		int(rec.Appetite),
		int(rec.ActivityLevel),
		rec.Notes,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return health.ErrNotFound
	}
	return nil
}

func (r *HealthRepo) GetByID(ctx context.Context, id string) (health.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return health.Record{}, health.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, date, weight, temperature, appetite, activity_level, notes
		FROM health_records
		WHERE id = $1
	`, id)

	var rec health.Record
	var weight, temperature sql.NullFloat64
	var appetite, activity int
	if err := row.Scan(
		&rec.ID,
		&rec.AnimalID,
		&rec.Date,
		&weight,
		&temperature,
		&appetite,
		&activity,
		&rec.Notes,
	); err != nil {
		if err == sql.ErrNoRows {
			return health.Record{}, health.ErrNotFound
		}
		return health.Record{}, err
	}

	rec.Weight = fromNullFloat(weight)
	rec.Temperature = fromNullFloat(temperature)
	rec.Appetite = health.Appetite(appetite)
	rec.ActivityLevel = health.ActivityLevel(activity)
	return rec, nil
}

func (r *HealthRepo) ListByAnimal(ctx context.Context, animalID string) ([]health.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, date, weight, temperature, appetite, activity_level, notes
		FROM health_records
		WHERE animal_id = $1
		ORDER BY date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]health.Record, 0)
	for rows.Next() {
		var rec health.Record
		var weight, temperature sql.NullFloat64
		var appetite, activity int
		if err := rows.Scan(
			&rec.ID,
			&rec.AnimalID,
			&rec.Date,
			&weight,
			&temperature,
			&appetite,
			&activity,
			&rec.Notes,
		); err != nil {
			return nil, err
		}
		rec.Weight = fromNullFloat(weight)
		rec.Temperature = fromNullFloat(temperature)
		rec.Appetite = health.Appetite(appetite)
		rec.ActivityLevel = health.ActivityLevel(activity)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *HealthRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM health_records WHERE id = $1`, id)
	return err
}

func (r *HealthRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM health_records WHERE animal_id = $1`, animalID)
	return err
}

// --- weight_records ---

type WeightsRepo struct {
	db *sql.DB
}

func NewWeightsRepo(db *sql.DB) *WeightsRepo {
	return &WeightsRepo{db: db}
}

func (r *WeightsRepo) Create(ctx context.Context, rec health.WeightRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weight_records (id, animal_id, date, weight, notes)
		VALUES ($1,$2,$3,$4,$5)
	`,
		rec.ID,
		rec.AnimalID,
		rec.Date,
		rec.Weight,
		rec.Notes,
	)
	return err
}

func (r *WeightsRepo) Update(ctx context.Context, rec health.WeightRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE weight_records
		SET animal_id = $2, date = $3, weight = $4, notes = $5
		WHERE id = $1
	`,
		rec.ID,
		rec.AnimalID,
		rec.Date,
		rec.Weight,
		rec.Notes,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return health.ErrNotFound
	}
	return nil
}

func (r *WeightsRepo) GetByID(ctx context.Context, id string) (health.WeightRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return health.WeightRecord{}, health.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, date, weight, notes
		FROM weight_records
		WHERE id = $1
	`, id)

	var rec health.WeightRecord
	if err := row.Scan(&rec.ID, &rec.AnimalID, &rec.Date, &rec.Weight, &rec.Notes); err != nil {
		if err == sql.ErrNoRows {
			return health.WeightRecord{}, health.ErrNotFound
		}
		return health.WeightRecord{}, err
	}
	return rec, nil
}

func (r *WeightsRepo) ListByAnimal(ctx context.Context, animalID string) ([]health.WeightRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, date, weight, notes
		FROM weight_records
		WHERE animal_id = $1
		ORDER BY date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]health.WeightRecord, 0)
	for rows.Next() {
		var rec health.WeightRecord
		if err := rows.Scan(&rec.ID, &rec.AnimalID, &rec.Date, &rec.Weight, &rec.Notes); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *WeightsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM weight_records WHERE id = $1`, id)
	return err
}

func (r *WeightsRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM weight_records WHERE animal_id = $1`, animalID)
	return err
}
