package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"animal-care-tracker/internal/domain/health"
)

type healthRepo struct {
	db *DB
}

func NewHealthRepo(db *DB) health.Repository {
	return &healthRepo{db: db}
}

func (r *healthRepo) Create(ctx context.Context, rec health.Record) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO health_records (id, animal_id, date, weight, temperature, appetite, activity_level, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.AnimalID, toUnix(rec.Date),
		toNullFloat(rec.Weight), toNullFloat(rec.Temperature),
		int(rec.Appetite), int(rec.ActivityLevel), rec.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert health record: %w", err)
	}
	return nil
}

func (r *healthRepo) Update(ctx context.Context, rec health.Record) error {
	res, err := r.db.sql.ExecContext(ctx,
		`UPDATE health_records SET animal_id = ?, date = ?, weight = ?, temperature = ?,
		        appetite = ?, activity_level = ?, notes = ?
		 WHERE id = ?`,
		rec.AnimalID, toUnix(rec.Date),
		toNullFloat(rec.Weight), toNullFloat(rec.Temperature),
		int(rec.Appetite), int(rec.ActivityLevel), rec.Notes, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update health record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return health.ErrNotFound
	}
	return nil
}

func scanHealthRecord(row interface{ Scan(...any) error }) (health.Record, error) {
	var (
		rec         health.Record
		date        int64
		weight      sql.NullFloat64
		temperature sql.NullFloat64
		appetite    int
		activity    int
	)
	err := row.Scan(&rec.ID, &rec.AnimalID, &date, &weight, &temperature, &appetite, &activity, &rec.Notes)
	if err != nil {
		return health.Record{}, err
	}
	rec.Date = fromUnix(date)
	rec.Weight = fromNullFloat(weight)
	rec.Temperature = fromNullFloat(temperature)
	rec.Appetite = health.Appetite(appetite)
	rec.ActivityLevel = health.ActivityLevel(activity)
	return rec, nil
}

func (r *healthRepo) GetByID(ctx context.Context, id string) (health.Record, error) {
	row := r.db.sql.QueryRowContext(ctx,
		`SELECT id, animal_id, date, weight, temperature, appetite, activity_level, notes
		 FROM health_records WHERE id = ?`, id)

	rec, err := scanHealthRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return health.Record{}, health.ErrNotFound
	}
	if err != nil {
		return health.Record{}, fmt.Errorf("get health record: %w", err)
	}
	return rec, nil
}

func (r *healthRepo) ListByAnimal(ctx context.Context, animalID string) ([]health.Record, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`SELECT id, animal_id, date, weight, temperature, appetite, activity_level, notes
		 FROM health_records WHERE animal_id = ? ORDER BY date DESC, id ASC`, animalID)
	if err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	defer rows.Close()

	out := make([]health.Record, 0)
	for rows.Next() {
		rec, err := scanHealthRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan health record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *healthRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM health_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete health record: %w", err)
	}
	return nil
}

func (r *healthRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM health_records WHERE animal_id = ?`, animalID)
	if err != nil {
		return fmt.Errorf("delete health records by animal: %w", err)
	}
	return nil
}

// --- weight_records ---

type weightsRepo struct {
	db *DB
}

func NewWeightsRepo(db *DB) health.WeightRepository {
	return &weightsRepo{db: db}
}

func (r *weightsRepo) Create(ctx context.Context, rec health.WeightRecord) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO weight_records (id, animal_id, date, weight, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.AnimalID, toUnix(rec.Date), rec.Weight, rec.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert weight record: %w", err)
	}
	return nil
}

func (r *weightsRepo) Update(ctx context.Context, rec health.WeightRecord) error {
	res, err := r.db.sql.ExecContext(ctx,
		`UPDATE weight_records SET animal_id = ?, date = ?, weight = ?, notes = ? WHERE id = ?`,
		rec.AnimalID, toUnix(rec.Date), rec.Weight, rec.Notes, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update weight record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return health.ErrNotFound
	}
	return nil
}

func (r *weightsRepo) GetByID(ctx context.Context, id string) (health.WeightRecord, error) {
	var (
		rec  health.WeightRecord
		date int64
	)
	err := r.db.sql.QueryRowContext(ctx,
		`SELECT id, animal_id, date, weight, notes FROM weight_records WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.AnimalID, &date, &rec.Weight, &rec.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return health.WeightRecord{}, health.ErrNotFound
	}
	if err != nil {
		return health.WeightRecord{}, fmt.Errorf("get weight record: %w", err)
	}
	rec.Date = fromUnix(date)
	return rec, nil
}

func (r *weightsRepo) ListByAnimal(ctx context.Context, animalID string) ([]health.WeightRecord, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`SELECT id, animal_id, date, weight, notes
		 FROM weight_records WHERE animal_id = ? ORDER BY date DESC, id ASC`, animalID)
	if err != nil {
		return nil, fmt.Errorf("list weight records: %w", err)
	}
	defer rows.Close()

	out := make([]health.WeightRecord, 0)
	for rows.Next() {
		var (
			rec  health.WeightRecord
			date int64
		)
		if err := rows.Scan(&rec.ID, &rec.AnimalID, &date, &rec.Weight, &rec.Notes); err != nil {
			return nil, fmt.Errorf("scan weight record: %w", err)
		}
		rec.Date = fromUnix(date)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *weightsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM weight_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete weight record: %w", err)
	}
	return nil
}

func (r *weightsRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM weight_records WHERE animal_id = ?`, animalID)
	if err != nil {
		return fmt.Errorf("delete weight records by animal: %w", err)
	}
	return nil
}
