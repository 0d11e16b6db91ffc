package dashboard

import (
	"encoding/json"
	"net/http"

	"vet-practice/internal/domain/treatments"
	"vet-practice/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Get("/Dashboard", summaryHandler(svc, log))
}

type summaryResponse struct {
	TotalDogs            int                   `json:"totalDogs"`
	TotalOwners          int                   `json:"totalOwners"`
	TotalTreatments      int                   `json:"totalTreatments"`
	TreatmentsThisMonth  int                   `json:"treatmentsThisMonth"`
	UpcomingAppointments int                   `json:"upcomingAppointments"`
	NextAppointment      *treatments.Response  `json:"nextAppointment"`
	TodaysTreatments     []treatments.Response `json:"todaysTreatments"`
}

// summaryHandler godoc
// @Summary Resumen para el dashboard
// @Description Conteos, tratamientos de hoy ordenados por hora y la próxima cita.
// @Tags dashboard
// @Produce json
// @Success 200 {object} summaryResponse
// @Router /Dashboard [get]
func summaryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Summary(r.Context())
		if err != nil {
			log.Error("dashboard summary failed", map[string]any{
				"error":      err,
				"request_id": chimw.GetReqID(r.Context()),
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := summaryResponse{
			TotalDogs:            s.TotalDogs,
			TotalOwners:          s.TotalOwners,
			TotalTreatments:      s.TotalTreatments,
			TreatmentsThisMonth:  s.TreatmentsThisMonth,
			UpcomingAppointments: s.UpcomingAppointments,
			TodaysTreatments:     make([]treatments.Response, 0, len(s.TodaysTreatments)),
		}
		if s.NextAppointment != nil {
			next := treatments.ToResponse(*s.NextAppointment)
			out.NextAppointment = &next
		}
		for _, t := range s.TodaysTreatments {
			out.TodaysTreatments = append(out.TodaysTreatments, treatments.ToResponse(t))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
