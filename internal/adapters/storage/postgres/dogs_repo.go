package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-practice/internal/domain/dogs"
)

type DogsRepo struct {
	db *sql.DB
}

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

const dogColumns = `id, name, age, race, weight, owner_id, description, image_path, image_content_type`

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) (dogs.Dog, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO dogs (
			name, age, race, weight, owner_id,
			description, image_path, image_content_type
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`,
		d.Name,
		d.Age,
		d.Race,
		d.Weight,
		d.OwnerID,
		d.Description,
		d.ImagePath,
		d.ImageContentType,
	).Scan(&d.ID)
	if err != nil {
		return dogs.Dog{}, err
	}
	return d, nil
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dogs
		SET
			name = $2,
			age = $3,
			race = $4,
			weight = $5,
			owner_id = $6,
			description = $7,
			image_path = $8,
			image_content_type = $9
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.Age,
		d.Race,
		d.Weight,
		d.OwnerID,
		d.Description,
		d.ImagePath,
		d.ImageContentType,
	)
	if err != nil {
		return err
	}
	return expectOne(res, dogs.ErrNotFound)
}

func (r *DogsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, dogs.ErrNotFound)
}

func (r *DogsRepo) GetByID(ctx context.Context, id int) (dogs.Dog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dogColumns+` FROM dogs WHERE id = $1`, id)

	d, err := scanDog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, err
	}
	return d, nil
}

func (r *DogsRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	return r.query(ctx, `SELECT `+dogColumns+` FROM dogs ORDER BY id ASC`)
}

func (r *DogsRepo) ListByOwner(ctx context.Context, ownerID int) ([]dogs.Dog, error) {
	return r.query(ctx, `SELECT `+dogColumns+` FROM dogs WHERE owner_id = $1 ORDER BY id ASC`, ownerID)
}

func (r *DogsRepo) query(ctx context.Context, q string, args ...any) ([]dogs.Dog, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// scanner cubre *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDog(s scanner) (dogs.Dog, error) {
	var d dogs.Dog
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Age,
		&d.Race,
		&d.Weight,
		&d.OwnerID,
		&d.Description,
		&d.ImagePath,
		&d.ImageContentType,
	)
	return d, err
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
