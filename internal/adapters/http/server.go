// Package http exposes the AutoState engine as a JSON API. The handlers
// are thin: each one borrows a model snapshot through the Service, runs
// one core operation and encodes the result value.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/autostate/autostate"
	"github.com/autostate/autostate/pkg/codegen"
	"github.com/autostate/autostate/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server dispatches API requests to the engine service.
type Server struct {
	service *autostate.Service
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(service *autostate.Service, logger *slog.Logger) http.Handler {
	s := &Server{service: service, logger: logger}

	r := chi.NewRouter()
	r.Use(metricsMiddleware)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/scenarios", func(r chi.Router) {
			r.Post("/parse", s.parseScenarios)
			r.Get("/", s.listModels)
			r.Get("/{fsmID}", s.getModel)
			r.Delete("/{fsmID}", s.deleteModel)
		})
		r.Route("/fsm/{fsmID}", func(r chi.Router) {
			r.Post("/suggest-transitions", s.suggestTransitions)
			r.Post("/accept-transition", s.acceptTransition)
			r.Post("/reject-transition", s.rejectTransition)
			r.Put("/transitions", s.replaceTransitions)
		})
		r.Route("/verification/{fsmID}", func(r chi.Router) {
			r.Get("/verify", s.verify)
			r.Post("/simulate", s.simulate)
			r.Get("/graph", s.getGraph)
		})
		r.Route("/generator", func(r chi.Router) {
			r.Post("/generate", s.generate)
			r.Get("/templates", s.listTemplates)
			r.Post("/download/{fsmID}/{template}", s.download)
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": autostate.Version})
}

// -- Scenario / model lifecycle --

type parseRequest struct {
	Title     string   `json:"title"`
	Language  string   `json:"language"`
	Scenarios []string `json:"scenarios"`
}

func (s *Server) parseScenarios(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" || len(req.Scenarios) == 0 {
		http.Error(w, "title and scenarios are required", http.StatusBadRequest)
		return
	}

	model, err := s.service.ParseScenarios(r.Context(), req.Title, req.Scenarios)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, model)
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	ids, err := s.service.ListModels(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (s *Server) getModel(w http.ResponseWriter, r *http.Request) {
	model, err := s.service.Model(r.Context(), chi.URLParam(r, "fsmID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (s *Server) deleteModel(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteModel(r.Context(), chi.URLParam(r, "fsmID")); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "model deleted"})
}

// -- Transition editing --

func (s *Server) suggestTransitions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.service.SuggestTransitions(r.Context(), chi.URLParam(r, "fsmID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (s *Server) acceptTransition(w http.ResponseWriter, r *http.Request) {
	var t domain.Transition
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	model, err := s.service.AcceptTransition(r.Context(), chi.URLParam(r, "fsmID"), t)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (s *Server) rejectTransition(w http.ResponseWriter, r *http.Request) {
	var t domain.Transition
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	model, err := s.service.RejectTransition(r.Context(), chi.URLParam(r, "fsmID"), t)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (s *Server) replaceTransitions(w http.ResponseWriter, r *http.Request) {
	var transitions []domain.Transition
	if err := json.NewDecoder(r.Body).Decode(&transitions); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	model, err := s.service.ReplaceTransitions(r.Context(), chi.URLParam(r, "fsmID"), transitions)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

// -- Analysis --

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Verify(r.Context(), chi.URLParam(r, "fsmID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type simulateRequest struct {
	Events       []string `json:"events"`
	InitialState string   `json:"initial_state,omitempty"`
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	trace, err := s.service.Simulate(r.Context(), chi.URLParam(r, "fsmID"), req.InitialState, req.Events)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trace)
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.service.Graph(r.Context(), chi.URLParam(r, "fsmID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// -- Generation --

type generateRequest struct {
	FSMID    string          `json:"fsm_id"`
	Template string          `json:"template"`
	Options  codegen.Options `json:"options,omitempty"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	code, err := s.service.Generate(r.Context(), req.FSMID, req.Template, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, code)
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]codegen.Info{"templates": s.service.Templates()})
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	code, err := s.service.Generate(r.Context(), chi.URLParam(r, "fsmID"), chi.URLParam(r, "template"), nil)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", code.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(code.Content)); err != nil {
		s.logger.Error("write download body", "err", err)
	}
}

// -- Helpers --

// writeError maps engine errors onto HTTP status codes: unknown model ids
// are 404, structural violations 422, unknown templates and missing
// collaborators 400, everything else 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var serr *domain.StructuralError
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		status = http.StatusNotFound
	case errors.As(err, &serr):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownTemplate), errors.Is(err, autostate.ErrNoParser):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
