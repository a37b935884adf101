package server

import (
	"net/http"

	"github.com/bobmcallan/xirr/internal/payload"
)

// handleXIRR handles POST /api/xirr.
func (s *Server) handleXIRR(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req payload.CalcRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	src, err := req.Source()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	result, err := s.app.XIRRService.Calculate(r.Context(), src, req.Options())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// handleXNPV handles POST /api/xnpv.
func (s *Server) handleXNPV(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req payload.NPVRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Rate == nil {
		WriteErrorWithCode(w, http.StatusBadRequest, "rate is required", codeBadRequest)
		return
	}
	src, err := req.Source()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	result, err := s.app.XIRRService.NPV(r.Context(), src, *req.Rate, req.Options())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// handleProfile handles POST /api/xirr/profile. The response is a PNG chart
// unless ?format=json asks for the sampled points.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	var req payload.ProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	src, err := req.Source()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	opts := req.ProfileOptions()

	if r.URL.Query().Get("format") == "json" {
		points, err := s.app.XIRRService.Profile(r.Context(), src, opts)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"points": points})
		return
	}

	png, err := s.app.XIRRService.RenderProfile(r.Context(), src, opts)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
