package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bobmcallan/xirr/internal/interfaces"
	"github.com/bobmcallan/xirr/internal/payload"
)

// handleScheduleCollection handles GET and POST /api/schedules.
func (s *Server) handleScheduleCollection(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	ctx := r.Context()

	if r.Method == http.MethodGet {
		summaries, err := s.app.XIRRService.ListSchedules(ctx)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"schedules": summaries,
			"count":     len(summaries),
		})
		return
	}

	var req payload.SaveRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	src, err := req.Source()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	saved, err := s.app.XIRRService.SaveSchedule(ctx, req.Name, req.Description, src)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.Header().Set("Location", "/api/schedules/"+saved.ID)
	WriteJSON(w, http.StatusCreated, saved)
}

// routeSchedules dispatches /api/schedules/{id} and /api/schedules/{id}/xirr.
func (s *Server) routeSchedules(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/schedules/")
	if id == "" {
		s.handleScheduleCollection(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/schedules/"+id)

	switch rest {
	case "", "/":
		s.handleSchedule(w, r, id)
	case "/xirr":
		s.handleScheduleXIRR(w, r, id)
	default:
		WriteErrorWithCode(w, http.StatusNotFound, "Not found", codeNotFound)
	}
}

// handleSchedule handles GET and DELETE /api/schedules/{id}.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodDelete) {
		return
	}
	ctx := r.Context()

	if r.Method == http.MethodDelete {
		if err := s.app.XIRRService.DeleteSchedule(ctx, id); err != nil {
			s.writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	saved, err := s.app.XIRRService.GetSchedule(ctx, id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

// handleScheduleXIRR handles GET /api/schedules/{id}/xirr. Solver overrides
// come from the query string: guess, day_count, max_iterations, bisection_fallback.
func (s *Server) handleScheduleXIRR(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	opts, err := calcOptionsFromQuery(r)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), codeBadRequest)
		return
	}

	result, err := s.app.XIRRService.CalculateSaved(r.Context(), id, opts)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func calcOptionsFromQuery(r *http.Request) (interfaces.CalcOptions, error) {
	q := r.URL.Query()
	opts := interfaces.CalcOptions{DayCount: q.Get("day_count")}

	if v := q.Get("guess"); v != "" {
		guess, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, queryError("guess", v)
		}
		opts.Guess = &guess
	}
	if v := q.Get("max_iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, queryError("max_iterations", v)
		}
		opts.MaxIterations = n
	}
	if v := q.Get("bisection_fallback"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, queryError("bisection_fallback", v)
		}
		opts.BisectionFallback = &b
	}
	return opts, nil
}

func queryError(name, value string) error {
	return fmt.Errorf("invalid %s parameter: %q", name, value)
}
