package treatments

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Date es una fecha de calendario sin hora ni zona.
type Date = civil.Date

// Clock es una hora del día (sin fecha), con precisión de segundos.
type Clock = civil.Time

// DateOf toma la fecha de t en su propia zona.
func DateOf(t time.Time) Date {
	return civil.DateOf(t)
}

// ClockOf toma la hora de t, descartando fracciones de segundo.
func ClockOf(t time.Time) Clock {
	c := civil.TimeOf(t)
	c.Nanosecond = 0
	return c
}

// ParseDate acepta "YYYY-MM-DD"; también tolera un sufijo de hora
// ("2025-05-12T00:00:00") como lo serializaba el backend anterior.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("date must be YYYY-MM-DD: %q", s)
	}
	return d, nil
}

// ParseClock acepta "HH:MM:SS" o "HH:MM".
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ":") == 1 {
		s += ":00"
	}
	c, err := civil.ParseTime(s)
	if err != nil {
		return Clock{}, fmt.Errorf("time must be HH:MM or HH:MM:SS: %q", s)
	}
	c.Nanosecond = 0
	return c, nil
}
