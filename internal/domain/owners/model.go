package owners

import (
	"time"

	"vet-practice/internal/domain/dogs"
)

// Owner es el dueño de uno o más perros.
type Owner struct {
	ID int

	FirstName        string
	LastName         string
	Email            string
	Phone            string
	AlternativePhone string

	Address    string
	Address2   string
	City       string
	PostalCode string
	Country    string

	LastVisit *time.Time

	// Dogs se carga siempre en lectura (dogs.OwnerID == ID).
	Dogs []dogs.Dog
}
