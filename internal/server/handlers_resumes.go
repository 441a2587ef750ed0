package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/talent-portal/internal/server/middleware"
	"github.com/jonathan/talent-portal/internal/types"
)

// ---------------------------------------------------------------------
// Resume Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resume, err := s.resumeService.Get(r.Context(), principal.ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var content types.ResumeContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resume, err := s.resumeService.Update(r.Context(), principal.ID, content)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}
