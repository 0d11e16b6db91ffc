package dashboard

import (
	"context"
	"testing"
	"time"

	"vet-practice/internal/domain/dogs"
	"vet-practice/internal/domain/owners"
	"vet-practice/internal/domain/treatments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dogList []dogs.Dog

func (l dogList) List(ctx context.Context) ([]dogs.Dog, error) { return l, nil }

type ownerList []owners.Owner

func (l ownerList) List(ctx context.Context) ([]owners.Owner, error) { return l, nil }

type treatmentList []treatments.Treatment

func (l treatmentList) List(ctx context.Context, f treatments.ListFilter) ([]treatments.Treatment, error) {
	return l, nil
}

func tr(id int, date string, hour, minute int) treatments.Treatment {
	d, err := treatments.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return treatments.Treatment{ID: id, Date: d, Time: treatments.Clock{Hour: hour, Minute: minute}, DogID: 1}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 5, 12, 15, 0, 0, 0, time.UTC)
	ts := []treatments.Treatment{
		tr(1, "2025-04-30", 10, 0), // pasado, otro mes
		tr(2, "2025-05-02", 10, 0), // pasado, este mes
		tr(3, "2025-05-12", 16, 0), // hoy
		tr(4, "2025-05-12", 9, 15), // hoy, más temprano
		tr(5, "2025-06-01", 8, 0),  // futuro, otro mes
	}

	s := summarize(now, 2, 1, ts)

	assert.Equal(t, 2, s.TotalDogs)
	assert.Equal(t, 1, s.TotalOwners)
	assert.Equal(t, 5, s.TotalTreatments)
	assert.Equal(t, 3, s.TreatmentsThisMonth)
	assert.Equal(t, 3, s.UpcomingAppointments)

	require.NotNil(t, s.NextAppointment)
	assert.Equal(t, 4, s.NextAppointment.ID)

	require.Len(t, s.TodaysTreatments, 2)
	assert.Equal(t, 4, s.TodaysTreatments[0].ID)
	assert.Equal(t, 3, s.TodaysTreatments[1].ID)
}

func TestSummarize_Empty(t *testing.T) {
	s := summarize(time.Now(), 0, 0, nil)

	assert.Nil(t, s.NextAppointment)
	assert.NotNil(t, s.TodaysTreatments)
	assert.Empty(t, s.TodaysTreatments)
	assert.Zero(t, s.UpcomingAppointments)
}

func TestService_Summary(t *testing.T) {
	svc := NewService(
		dogList{{ID: 1}, {ID: 2}, {ID: 3}},
		ownerList{{ID: 1}},
		treatmentList{tr(1, "2030-01-01", 9, 0)},
	)
	svc.now = func() time.Time { return time.Date(2029, 12, 31, 0, 0, 0, 0, time.UTC) }

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalDogs)
	assert.Equal(t, 1, s.TotalOwners)
	assert.Equal(t, 1, s.UpcomingAppointments)
	assert.Zero(t, s.TreatmentsThisMonth)
}
