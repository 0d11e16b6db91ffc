package sqlite

import (
	"time"

	"vet-practice/internal/domain/dogs"
	"vet-practice/internal/domain/owners"
	"vet-practice/internal/domain/treatments"
)

type ownerRow struct {
	ID               int    `gorm:"primaryKey;autoIncrement"`
	FirstName        string `gorm:"not null"`
	LastName         string `gorm:"not null"`
	Email            string `gorm:"not null"`
	Phone            string `gorm:"not null"`
	AlternativePhone string
	Address          string `gorm:"not null"`
	Address2         string
	City             string `gorm:"not null"`
	PostalCode       string `gorm:"not null"`
	Country          string `gorm:"not null"`
	LastVisit        *time.Time
}

func (ownerRow) TableName() string { return "owners" }

func ownerToRow(o owners.Owner) ownerRow {
	return ownerRow{
		ID:               o.ID,
		FirstName:        o.FirstName,
		LastName:         o.LastName,
		Email:            o.Email,
		Phone:            o.Phone,
		AlternativePhone: o.AlternativePhone,
		Address:          o.Address,
		Address2:         o.Address2,
		City:             o.City,
		PostalCode:       o.PostalCode,
		Country:          o.Country,
		LastVisit:        o.LastVisit,
	}
}

func (r ownerRow) toDomain() owners.Owner {
	return owners.Owner{
		ID:               r.ID,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		AlternativePhone: r.AlternativePhone,
		Address:          r.Address,
		Address2:         r.Address2,
		City:             r.City,
		PostalCode:       r.PostalCode,
		Country:          r.Country,
		LastVisit:        r.LastVisit,
	}
}

type dogRow struct {
	ID               int    `gorm:"primaryKey;autoIncrement"`
	Name             string `gorm:"not null"`
	Age              int
	Race             string `gorm:"not null"`
	Weight           float64
	OwnerID          int `gorm:"index"`
	Description      string
	ImagePath        string
	ImageContentType string
}

func (dogRow) TableName() string { return "dogs" }

func dogToRow(d dogs.Dog) dogRow {
	return dogRow{
		ID:               d.ID,
		Name:             d.Name,
		Age:              d.Age,
		Race:             d.Race,
		Weight:           d.Weight,
		OwnerID:          d.OwnerID,
		Description:      d.Description,
		ImagePath:        d.ImagePath,
		ImageContentType: d.ImageContentType,
	}
}

func (r dogRow) toDomain() dogs.Dog {
	return dogs.Dog{
		ID:               r.ID,
		Name:             r.Name,
		Age:              r.Age,
		Race:             r.Race,
		Weight:           r.Weight,
		OwnerID:          r.OwnerID,
		Description:      r.Description,
		ImagePath:        r.ImagePath,
		ImageContentType: r.ImageContentType,
	}
}

// treatmentRow guarda fecha y hora como texto ("YYYY-MM-DD", "HH:MM:SS");
// el orden lexicográfico coincide con el cronológico.
type treatmentRow struct {
	ID            int `gorm:"primaryKey;autoIncrement"`
	Description   string
	TreatmentDate string `gorm:"not null;index"`
	TreatmentTime string `gorm:"not null;default:'00:00:00'"`
	Cost          float64
	DogID         int `gorm:"not null;index"`
}

func (treatmentRow) TableName() string { return "treatments" }

func treatmentToRow(t treatments.Treatment) treatmentRow {
	return treatmentRow{
		ID:            t.ID,
		Description:   t.Description,
		TreatmentDate: t.Date.String(),
		TreatmentTime: t.Time.String(),
		Cost:          t.Cost,
		DogID:         t.DogID,
	}
}

func (r treatmentRow) toDomain() (treatments.Treatment, error) {
	d, err := treatments.ParseDate(r.TreatmentDate)
	if err != nil {
		return treatments.Treatment{}, err
	}
	c, err := treatments.ParseClock(r.TreatmentTime)
	if err != nil {
		return treatments.Treatment{}, err
	}
	return treatments.Treatment{
		ID:          r.ID,
		Description: r.Description,
		Date:        d,
		Time:        c,
		Cost:        r.Cost,
		DogID:       r.DogID,
	}, nil
}
