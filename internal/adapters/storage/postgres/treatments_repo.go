package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-practice/internal/domain/treatments"
)

type TreatmentsRepo struct {
	db *sql.DB
}

func NewTreatmentsRepo(db *sql.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

// treatment_time se lee como texto ("15:04:05") para no depender del
// mapeo de TIME del driver.
const treatmentColumns = `id, description, treatment_date, treatment_time::text, cost, dog_id`

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) (treatments.Treatment, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO treatments (description, treatment_date, treatment_time, cost, dog_id)
		VALUES ($1, $2::date, $3::time, $4, $5)
		RETURNING id
	`,
		t.Description,
		t.Date.String(),
		t.Time.String(),
		t.Cost,
		t.DogID,
	).Scan(&t.ID)
	if err != nil {
		return treatments.Treatment{}, err
	}
	return t, nil
}

func (r *TreatmentsRepo) Update(ctx context.Context, t treatments.Treatment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE treatments
		SET
			description = $2,
			treatment_date = $3::date,
			treatment_time = $4::time,
			cost = $5,
			dog_id = $6
		WHERE id = $1
	`,
		t.ID,
		t.Description,
		t.Date.String(),
		t.Time.String(),
		t.Cost,
		t.DogID,
	)
	if err != nil {
		return err
	}
	return expectOne(res, treatments.ErrNotFound)
}

func (r *TreatmentsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, treatments.ErrNotFound)
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id int) (treatments.Treatment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+treatmentColumns+` FROM treatments WHERE id = $1`, id)

	t, err := scanTreatment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return treatments.Treatment{}, treatments.ErrNotFound
		}
		return treatments.Treatment{}, err
	}
	return t, nil
}

func (r *TreatmentsRepo) List(ctx context.Context, filter treatments.ListFilter) ([]treatments.Treatment, error) {
	var (
		where []string
		args  []any
	)
	if filter.DogID > 0 {
		args = append(args, filter.DogID)
		where = append(where, fmt.Sprintf("dog_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, filter.From.String())
		where = append(where, fmt.Sprintf("treatment_date >= $%d::date", len(args)))
	}
	if filter.To != nil {
		args = append(args, filter.To.String())
		where = append(where, fmt.Sprintf("treatment_date <= $%d::date", len(args)))
	}

	q := `SELECT ` + treatmentColumns + ` FROM treatments`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.Treatment, 0)
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTreatment(s scanner) (treatments.Treatment, error) {
	var (
		t     treatments.Treatment
		date  time.Time
		clock string
	)
	if err := s.Scan(&t.ID, &t.Description, &date, &clock, &t.Cost, &t.DogID); err != nil {
		return treatments.Treatment{}, err
	}

	// ojo: DATE llega como time.Time a medianoche UTC; tomamos la fecha tal cual.
	t.Date = treatments.DateOf(date)

	c, err := treatments.ParseClock(clock)
	if err != nil {
		return treatments.Treatment{}, err
	}
	t.Time = c
	return t, nil
}
