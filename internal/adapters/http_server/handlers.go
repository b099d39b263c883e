package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"itinerate/internal/adapters/observability"
	"itinerate/internal/app"
	"itinerate/internal/domain"
)

const (
	maxTripBody     = 1 << 20
	defaultForecast = 7
	maxForecastDays = 30
)

type Handlers struct {
	Catalog domain.CatalogStore
	Planner *app.Planner
	Weather domain.WeatherProvider
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Stage  string `json:"stage,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/destinations", h.listDestinations)
	s.mux.Get("/v1/destinations/{key}/attractions", h.listAttractions)
	s.mux.Get("/v1/destinations/{key}/forecast", h.getForecast)
	s.mux.Post("/v1/itineraries", h.createItinerary)
}

func writeProblem(w http.ResponseWriter, p problem) {
	if p.Type == "" {
		p.Type = "about:blank"
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached writes v as JSON with an ETag, answering 304 when the client
// already holds this version.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeBody(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		writeProblem(w, problem{Title: "Internal Server Error", Status: http.StatusInternalServerError})
		return
	}
	writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Catalog.Destinations(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list destinations failed")
		writeProblem(w, problem{Title: "Internal Server Error", Status: http.StatusInternalServerError})
		return
	}
	writeCached(w, r, map[string]any{"destinations": ds})
}

func (h *Handlers) listAttractions(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	as, err := h.Catalog.Attractions(r.Context(), key)
	if err != nil {
		log.Error().Err(err).Str("destination", key).Msg("list attractions failed")
		writeProblem(w, problem{Title: "Internal Server Error", Status: http.StatusInternalServerError})
		return
	}
	if len(as) == 0 {
		writeProblem(w, problem{Title: "Not Found", Status: http.StatusNotFound, Detail: "unknown destination"})
		return
	}
	writeCached(w, r, map[string]any{"destination": key, "attractions": as})
}

func (h *Handlers) getForecast(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	days := defaultForecast
	if ds := r.URL.Query().Get("days"); ds != "" {
		d, err := strconv.Atoi(ds)
		if err != nil || d < 1 || d > maxForecastDays {
			writeProblem(w, problem{Title: "Invalid days", Status: http.StatusBadRequest,
				Detail: "days must be an integer between 1 and " + strconv.Itoa(maxForecastDays)})
			return
		}
		days = d
	}
	fc, err := h.Weather.Forecast(r.Context(), key, days)
	if err != nil {
		log.Warn().Err(err).Str("destination", key).Msg("forecast failed")
		writeProblem(w, problem{Title: "Bad Gateway", Status: http.StatusBadGateway, Detail: "forecast unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"destination": key, "forecast": fc})
}

func (h *Handlers) createItinerary(w http.ResponseWriter, r *http.Request) {
	var trip domain.TripRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTripBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&trip); err != nil {
		writeProblem(w, problem{Title: "Invalid body", Status: http.StatusBadRequest, Detail: err.Error()})
		return
	}

	plan, err := h.Planner.Plan(r.Context(), trip)
	if err != nil {
		p := problemFor(err)
		outcome := string(domain.KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
		observability.ObservePipeline(outcome, 0)
		ev := log.Info()
		if p.Status >= 500 {
			ev = log.Error()
		}
		ev.Err(err).Str("destination", trip.Destination).Int("status", p.Status).Msg("itinerary not planned")
		writeProblem(w, p)
		return
	}
	observability.ObservePipeline("done", plan.Selected)
	writeJSON(w, http.StatusOK, plan)
}

// problemFor maps a planner failure to its HTTP problem.
func problemFor(err error) problem {
	var pe *domain.PlanError
	if !errors.As(err, &pe) {
		return problem{Title: "Internal Server Error", Status: http.StatusInternalServerError}
	}
	p := problem{Kind: string(pe.Kind), Stage: string(pe.Stage), Detail: pe.Msg}
	switch pe.Kind {
	case domain.InvalidTripParameters:
		p.Title, p.Status = "Invalid trip parameters", http.StatusBadRequest
	case domain.EmptySelection:
		p.Title, p.Status = "No suitable attractions", http.StatusUnprocessableEntity
	case domain.NarrativeGenerationFailed:
		p.Title, p.Status = "Narrative generation failed", http.StatusBadGateway
		if pe.Timeout() {
			p.Title, p.Status = "Narrative generation timed out", http.StatusGatewayTimeout
		}
	case domain.MalformedGeneratorResponse:
		p.Title, p.Status = "Malformed generator response", http.StatusBadGateway
	default:
		p.Title, p.Status = "Internal Server Error", http.StatusInternalServerError
	}
	return p
}
