package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vet-practice/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

const ownerColumns = `
	id, first_name, last_name, email, phone, alternative_phone,
	address, address2, city, postal_code, country, last_visit`

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO owners (
			first_name, last_name, email, phone, alternative_phone,
			address, address2, city, postal_code, country, last_visit
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		o.FirstName,
		o.LastName,
		o.Email,
		o.Phone,
		o.AlternativePhone,
		o.Address,
		o.Address2,
		o.City,
		o.PostalCode,
		o.Country,
		toNullTime(o.LastVisit),
	).Scan(&o.ID)
	if err != nil {
		return owners.Owner{}, err
	}
	return o, nil
}

// Update devuelve owners.ErrNotFound si la fila fue borrada en paralelo.
func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET
			first_name = $2,
			last_name = $3,
			email = $4,
			phone = $5,
			alternative_phone = $6,
			address = $7,
			address2 = $8,
			city = $9,
			postal_code = $10,
			country = $11,
			last_visit = $12
		WHERE id = $1
	`,
		o.ID,
		o.FirstName,
		o.LastName,
		o.Email,
		o.Phone,
		o.AlternativePhone,
		o.Address,
		o.Address2,
		o.City,
		o.PostalCode,
		o.Country,
		toNullTime(o.LastVisit),
	)
	if err != nil {
		return err
	}
	return expectOne(res, owners.ErrNotFound)
}

func (r *OwnersRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, owners.ErrNotFound)
}

func (r *OwnersRepo) GetByID(ctx context.Context, id int) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = $1`, id)

	o, err := scanOwner(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}
	return o, nil
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ownerColumns+` FROM owners ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOwner(s scanner) (owners.Owner, error) {
	var o owners.Owner
	var lv sql.NullTime
	if err := s.Scan(
		&o.ID,
		&o.FirstName,
		&o.LastName,
		&o.Email,
		&o.Phone,
		&o.AlternativePhone,
		&o.Address,
		&o.Address2,
		&o.City,
		&o.PostalCode,
		&o.Country,
		&lv,
	); err != nil {
		return owners.Owner{}, err
	}
	if lv.Valid {
		t := lv.Time
		o.LastVisit = &t
	}
	return o, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
