package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"animal-care-tracker/internal/domain/care"
)

type careRepo struct {
	db *DB
}

func NewCareRepo(db *DB) care.Repository {
	return &careRepo{db: db}
}

func (r *careRepo) Create(ctx context.Context, rec care.Record) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO care_records (id, animal_id, kind, label, date, next_scheduled_date, interval_days, notes, color)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.AnimalID, string(rec.Kind), rec.Label, toUnix(rec.Date),
		toNullUnix(rec.NextScheduledDate), toNullInt(rec.IntervalDays),
		rec.Notes, rec.Color,
	)
	if err != nil {
		return fmt.Errorf("insert care record: %w", err)
	}
	return nil
}

func (r *careRepo) Update(ctx context.Context, rec care.Record) error {
	res, err := r.db.sql.ExecContext(ctx,
		`UPDATE care_records SET animal_id = ?, kind = ?, label = ?, date = ?,
		        next_scheduled_date = ?, interval_days = ?, notes = ?, color = ?
		 WHERE id = ?`,
		rec.AnimalID, string(rec.Kind), rec.Label, toUnix(rec.Date),
		toNullUnix(rec.NextScheduledDate), toNullInt(rec.IntervalDays),
		rec.Notes, rec.Color, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update care record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return care.ErrNotFound
	}
	return nil
}

func scanCareRecord(row interface{ Scan(...any) error }) (care.Record, error) {
	var (
		rec           care.Record
		kind          string
		date          int64
		nextScheduled sql.NullInt64
		intervalDays  sql.NullInt64
	)
	err := row.Scan(&rec.ID, &rec.AnimalID, &kind, &rec.Label, &date,
		&nextScheduled, &intervalDays, &rec.Notes, &rec.Color)
	if err != nil {
		return care.Record{}, err
	}
	rec.Kind = care.Kind(kind)
	rec.Date = fromUnix(date)
	rec.NextScheduledDate = fromNullUnix(nextScheduled)
	rec.IntervalDays = fromNullInt(intervalDays)
	return rec, nil
}

const careColumns = `id, animal_id, kind, label, date, next_scheduled_date, interval_days, notes, color`

func (r *careRepo) GetByID(ctx context.Context, id string) (care.Record, error) {
	row := r.db.sql.QueryRowContext(ctx,
		`SELECT `+careColumns+` FROM care_records WHERE id = ?`, id)

	rec, err := scanCareRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return care.Record{}, care.ErrNotFound
	}
	if err != nil {
		return care.Record{}, fmt.Errorf("get care record: %w", err)
	}
	return rec, nil
}

func (r *careRepo) ListByAnimal(ctx context.Context, animalID string, kind care.Kind) ([]care.Record, error) {
	query := `SELECT ` + careColumns + ` FROM care_records WHERE animal_id = ?`
	args := []any{animalID}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY date DESC, id ASC`

	rows, err := r.db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list care records: %w", err)
	}
	defer rows.Close()

	out := make([]care.Record, 0)
	for rows.Next() {
		rec, err := scanCareRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan care record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *careRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM care_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete care record: %w", err)
	}
	return nil
}

func (r *careRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM care_records WHERE animal_id = ?`, animalID)
	if err != nil {
		return fmt.Errorf("delete care records by animal: %w", err)
	}
	return nil
}
