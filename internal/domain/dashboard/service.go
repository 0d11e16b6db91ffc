package dashboard

import (
	"context"
	"sort"
	"time"

	"vet-practice/internal/domain/dogs"
	"vet-practice/internal/domain/owners"
	"vet-practice/internal/domain/treatments"
)

type DogLister interface {
	List(ctx context.Context) ([]dogs.Dog, error)
}

type OwnerLister interface {
	List(ctx context.Context) ([]owners.Owner, error)
}

type TreatmentLister interface {
	List(ctx context.Context, filter treatments.ListFilter) ([]treatments.Treatment, error)
}

// Summary es el resumen que antes calculaba el frontend con las colecciones completas.
type Summary struct {
	TotalDogs            int
	TotalOwners          int
	TotalTreatments      int
	TreatmentsThisMonth  int
	UpcomingAppointments int
	NextAppointment      *treatments.Treatment
	TodaysTreatments     []treatments.Treatment
}

type Service struct {
	dogs       DogLister
	owners     OwnerLister
	treatments TreatmentLister
	now        func() time.Time
}

func NewService(d DogLister, o OwnerLister, t TreatmentLister) *Service {
	return &Service{
		dogs:       d,
		owners:     o,
		treatments: t,
		now:        time.Now,
	}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	ds, err := s.dogs.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	os, err := s.owners.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	ts, err := s.treatments.List(ctx, treatments.ListFilter{})
	if err != nil {
		return Summary{}, err
	}

	return summarize(s.now(), len(ds), len(os), ts), nil
}

func summarize(now time.Time, dogCount, ownerCount int, ts []treatments.Treatment) Summary {
	today := treatments.DateOf(now)

	out := Summary{
		TotalDogs:        dogCount,
		TotalOwners:      ownerCount,
		TotalTreatments:  len(ts),
		TodaysTreatments: []treatments.Treatment{},
	}

	upcoming := make([]treatments.Treatment, 0)
	for _, t := range ts {
		if t.Date.Year == today.Year && t.Date.Month == today.Month {
			out.TreatmentsThisMonth++
		}
		// "Próximas" incluye todo lo de hoy, igual que la vista original.
		if !t.Date.Before(today) {
			upcoming = append(upcoming, t)
		}
		if t.Date == today {
			out.TodaysTreatments = append(out.TodaysTreatments, t)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return before(upcoming[i], upcoming[j])
	})
	sort.SliceStable(out.TodaysTreatments, func(i, j int) bool {
		return out.TodaysTreatments[i].Time.Compare(out.TodaysTreatments[j].Time) < 0
	})

	out.UpcomingAppointments = len(upcoming)
	if len(upcoming) > 0 {
		next := upcoming[0]
		out.NextAppointment = &next
	}
	return out
}

func before(a, b treatments.Treatment) bool {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c < 0
	}
	return a.Time.Compare(b.Time) < 0
}
