package hc

import (
	"net/http"
	"time"

	"cosign/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

type status struct {
	Version   string    `json:"version"`
	Backend   string    `json:"backend"`
	StartedAt time.Time `json:"started_at"`
	Uptime    string    `json:"uptime"`
}

// Handle report version, backend and uptime
func Handle(version, backend string) http.Handler {
	started := time.Now()

	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, status{
			Version:   version,
			Backend:   backend,
			StartedAt: started,
			Uptime:    time.Since(started).Truncate(time.Second).String(),
		})
	})

	return r
}
