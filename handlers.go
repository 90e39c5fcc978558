package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"footdash/charts"
	"footdash/report"
	"footdash/templates"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type server struct {
	rep    *report.Report
	logger *zap.Logger
	chart  charts.Options
}

func newServer(rep *report.Report, logger *zap.Logger) *server {
	return &server{rep: rep, logger: logger, chart: charts.DefaultOptions()}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.reportPage)
	r.Get("/health", s.health)

	r.Route("/fragments", func(r chi.Router) {
		r.Get("/profile", s.profileFragment)
		r.Get("/analysis", s.analysisFragment)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			MaxAge:         300,
		}))
		r.Get("/players", s.apiPlayers)
		r.Get("/players/{name}", s.apiProfile)
		r.Get("/players/{name}/curve", s.apiCurve)
	})
	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

// reportPage applies the events carried by the query string to the state carried
// by the query string and renders the whole page.
func (s *server) reportPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := report.StateFromValues(q)
	state, page, err := s.rep.Handle(state, report.EventsFromValues(state, q)...)

	data := s.pageData(page)
	status := http.StatusOK
	switch {
	case errors.Is(err, report.ErrUnknownPlayer):
		status = http.StatusNotFound
		data.NoData = fmt.Sprintf("No data for %q.", state.Player)
	case errors.Is(err, report.ErrUnknownPosition):
		s.logger.Warn("position has no metric table",
			zap.String("player", state.Player),
			zap.String("position", page.Profile.Position))
		data.Panels = []templates.ChartPanel{{
			ID:      "analysis-message",
			Message: fmt.Sprintf("No metrics are defined for position %q.", page.Profile.Position),
		}}
	case err != nil:
		s.logger.Error("render report", zap.String("player", state.Player), zap.Error(err))
		http.Error(w, "Could not render report", http.StatusInternalServerError)
		return
	}

	templ.Handler(templates.ReportPage(data), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (s *server) profileFragment(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get(report.ParamPlayer)
	p, err := s.rep.Profile(name)
	if err != nil {
		http.Error(w, fmt.Sprintf("No data for %q", name), http.StatusNotFound)
		return
	}
	templates.ProfileFragment(profileCard(p)).Render(r.Context(), w)
}

// analysisFragment re-renders one chart panel after a metric pick. The query
// carries the whole page state plus the pick; metrics not offered for the
// player's position fall back to the side's default.
func (s *server) analysisFragment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	side, err := report.ParseSide(q.Get(report.ParamSide))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := report.StateFromValues(q)
	a, err := s.rep.Analysis(state.Player)
	if errors.Is(err, report.ErrUnknownPlayer) {
		http.Error(w, fmt.Sprintf("No data for %q", state.Player), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if metric := q.Get(report.ParamMetric); metric != "" {
		state = report.Apply(state, report.ChooseMetric{Side: side, Metric: metric})
	}
	state = a.Resolve(state)
	metric := state.Metric(side)
	c, err := a.Curve(side, metric)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	panel := s.chartPanel(state, report.Panel{Side: side, Options: a.Options(side), Selected: metric, Curve: c})
	templates.AnalysisFragment(panel).Render(r.Context(), w)
}

type playersResponse struct {
	Players []string `json:"players"`
	Default string   `json:"default"`
}

type profileResponse struct {
	report.Profile
	ImageURL string `json:"image_url,omitempty"`
}

func (s *server) apiPlayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, playersResponse{Players: s.rep.TopPlayers(), Default: s.rep.DefaultPlayer()})
}

func (s *server) apiProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.rep.Profile(playerParam(r))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Profile: p, ImageURL: p.ImageURL()})
}

func (s *server) apiCurve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	side, err := report.ParseSide(q.Get(report.ParamSide))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a, err := s.rep.Analysis(playerParam(r))
	switch {
	case errors.Is(err, report.ErrUnknownPlayer):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	metric := q.Get(report.ParamMetric)
	if metric == "" {
		metric = a.DefaultMetric(side)
	}
	c, err := a.Curve(side, metric)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"rows":   s.rep.Dataset().Len(),
	})
}

func playerParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
