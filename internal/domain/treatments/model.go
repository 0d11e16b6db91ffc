package treatments

// Treatment es una atención (o cita) de un perro en una fecha y hora.
type Treatment struct {
	ID int

	Description string
	Date        Date
	Time        Clock
	Cost        float64

	// DogID se valida solo al crear.
	DogID int
}

// ListFilter acota List. Campos en cero = sin filtro.
type ListFilter struct {
	DogID int
	From  *Date // inclusive
	To    *Date // inclusive
}

// Match indica si t cumple el filtro (lo usan los repos que filtran en memoria).
func (f ListFilter) Match(t Treatment) bool {
	if f.DogID > 0 && t.DogID != f.DogID {
		return false
	}
	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && f.To.Before(t.Date) {
		return false
	}
	return true
}
