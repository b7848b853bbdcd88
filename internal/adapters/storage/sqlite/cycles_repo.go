package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"animal-care-tracker/internal/domain/cycles"
)

type cyclesRepo struct {
	db *DB
}

func NewCyclesRepo(db *DB) cycles.Repository {
	return &cyclesRepo{db: db}
}

func (r *cyclesRepo) Create(ctx context.Context, c cycles.Cycle) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO cycles (id, animal_id, start_date, end_date, intensity, notes, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.AnimalID, toUnix(c.StartDate), toNullUnix(c.EndDate),
		int(c.Intensity), c.Notes, toUnix(c.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("insert cycle: %w", err)
	}
	return nil
}

func (r *cyclesRepo) Update(ctx context.Context, c cycles.Cycle) error {
	res, err := r.db.sql.ExecContext(ctx,
		`UPDATE cycles SET animal_id = ?, start_date = ?, end_date = ?, intensity = ?, notes = ?, recorded_at = ?
		 WHERE id = ?`,
		c.AnimalID, toUnix(c.StartDate), toNullUnix(c.EndDate),
		int(c.Intensity), c.Notes, toUnix(c.RecordedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update cycle: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return cycles.ErrNotFound
	}
	return nil
}

func scanCycle(row interface{ Scan(...any) error }) (cycles.Cycle, error) {
	var (
		c          cycles.Cycle
		startDate  int64
		endDate    sql.NullInt64
		intensity  int
		recordedAt int64
	)
	err := row.Scan(&c.ID, &c.AnimalID, &startDate, &endDate, &intensity, &c.Notes, &recordedAt)
	if err != nil {
		return cycles.Cycle{}, err
	}
	c.StartDate = fromUnix(startDate)
	c.EndDate = fromNullUnix(endDate)
	c.Intensity = cycles.Intensity(intensity)
	c.RecordedAt = fromUnix(recordedAt)
	return c, nil
}

func (r *cyclesRepo) GetByID(ctx context.Context, id string) (cycles.Cycle, error) {
	row := r.db.sql.QueryRowContext(ctx,
		`SELECT id, animal_id, start_date, end_date, intensity, notes, recorded_at
		 FROM cycles WHERE id = ?`, id)

	c, err := scanCycle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return cycles.Cycle{}, cycles.ErrNotFound
	}
	if err != nil {
		return cycles.Cycle{}, fmt.Errorf("get cycle: %w", err)
	}
	return c, nil
}

func (r *cyclesRepo) ListByAnimal(ctx context.Context, animalID string) ([]cycles.Cycle, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`SELECT id, animal_id, start_date, end_date, intensity, notes, recorded_at
		 FROM cycles WHERE animal_id = ? ORDER BY start_date DESC, id ASC`, animalID)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	defer rows.Close()

	out := make([]cycles.Cycle, 0)
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *cyclesRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM cycles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	return nil
}

func (r *cyclesRepo) DeleteByAnimal(ctx context.Context, animalID string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM cycles WHERE animal_id = ?`, animalID)
	if err != nil {
		return fmt.Errorf("delete cycles by animal: %w", err)
	}
	return nil
}
