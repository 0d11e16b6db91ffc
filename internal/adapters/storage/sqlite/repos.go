package sqlite

import (
	"context"
	"errors"

	"vet-practice/internal/domain/dogs"
	"vet-practice/internal/domain/owners"
	"vet-practice/internal/domain/treatments"

	"gorm.io/gorm"
)

type DogsRepo struct {
	db *gorm.DB
}

func NewDogsRepo(db *gorm.DB) *DogsRepo {
	return &DogsRepo{db: db}
}

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) (dogs.Dog, error) {
	row := dogToRow(d)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return dogs.Dog{}, err
	}
	return row.toDomain(), nil
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	row := dogToRow(d)
	res := r.db.WithContext(ctx).Model(&dogRow{}).Where("id = ?", d.ID).
		Select("*").Omit("id").Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&dogRow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id int) (dogs.Dog, error) {
	var row dogRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, err
	}
	return row.toDomain(), nil
}

func (r *DogsRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *DogsRepo) ListByOwner(ctx context.Context, ownerID int) ([]dogs.Dog, error) {
	return r.find(r.db.WithContext(ctx).Where("owner_id = ?", ownerID))
}

func (r *DogsRepo) find(q *gorm.DB) ([]dogs.Dog, error) {
	var rows []dogRow
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]dogs.Dog, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type OwnersRepo struct {
	db *gorm.DB
}

func NewOwnersRepo(db *gorm.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	row := ownerToRow(o)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return owners.Owner{}, err
	}
	return row.toDomain(), nil
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	row := ownerToRow(o)
	// Select("*") para que también se escriban los vacíos y LastVisit nil.
	res := r.db.WithContext(ctx).Model(&ownerRow{}).Where("id = ?", o.ID).
		Select("*").Omit("id").Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&ownerRow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id int) (owners.Owner, error) {
	var row ownerRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}
	return row.toDomain(), nil
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	var rows []ownerRow
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]owners.Owner, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type TreatmentsRepo struct {
	db *gorm.DB
}

func NewTreatmentsRepo(db *gorm.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) (treatments.Treatment, error) {
	row := treatmentToRow(t)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return treatments.Treatment{}, err
	}
	t.ID = row.ID
	return t, nil
}

func (r *TreatmentsRepo) Update(ctx context.Context, t treatments.Treatment) error {
	row := treatmentToRow(t)
	res := r.db.WithContext(ctx).Model(&treatmentRow{}).Where("id = ?", t.ID).
		Select("*").Omit("id").Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return treatments.ErrNotFound
	}
	return nil
}

func (r *TreatmentsRepo) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&treatmentRow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return treatments.ErrNotFound
	}
	return nil
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id int) (treatments.Treatment, error) {
	var row treatmentRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return treatments.Treatment{}, treatments.ErrNotFound
		}
		return treatments.Treatment{}, err
	}
	return row.toDomain()
}

func (r *TreatmentsRepo) List(ctx context.Context, filter treatments.ListFilter) ([]treatments.Treatment, error) {
	q := r.db.WithContext(ctx)
	if filter.DogID > 0 {
		q = q.Where("dog_id = ?", filter.DogID)
	}
	if filter.From != nil {
		q = q.Where("treatment_date >= ?", filter.From.String())
	}
	if filter.To != nil {
		q = q.Where("treatment_date <= ?", filter.To.String())
	}

	var rows []treatmentRow
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]treatments.Treatment, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
