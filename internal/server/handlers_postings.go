package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/talent-portal/internal/authz"
	"github.com/jonathan/talent-portal/internal/db"
	"github.com/jonathan/talent-portal/internal/server/middleware"
	"github.com/jonathan/talent-portal/internal/types"
)

// ---------------------------------------------------------------------
// Posting Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListPostings(w http.ResponseWriter, r *http.Request) {
	kind := types.PostingKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Invalid posting kind")
		return
	}

	limit, offset := parsePaging(r)
	postings, err := s.db.ListPublishedPostings(r.Context(), kind, limit, offset)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, postings)
}

func (s *Server) handleGetPosting(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid posting ID")
		return
	}

	posting, err := s.db.GetPosting(r.Context(), id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	// Unpublished postings are invisible to the public listing and to
	// direct lookups alike.
	if posting == nil || posting.Status != types.PostingPublished {
		s.errorResponse(w, http.StatusNotFound, "Posting not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, posting)
}

func (s *Server) handleCreatePosting(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !authz.HasReviewAccess(principal) {
		s.errorResponse(w, http.StatusForbidden, "Staff rank required")
		return
	}

	var req types.CreatePostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Kind.Valid() || req.Title == "" {
		s.errorResponse(w, http.StatusBadRequest, "Kind and Title are required")
		return
	}

	id, err := s.db.CreatePosting(r.Context(), req.Kind, req.Title, req.Description, req.Location, principal.ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleUpdatePosting(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !authz.HasReviewAccess(principal) {
		s.errorResponse(w, http.StatusForbidden, "Staff rank required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid posting ID")
		return
	}

	var req types.UpdatePostingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Invalid posting status")
		return
	}

	posting, err := s.db.UpdatePosting(r.Context(), id, db.PostingUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if posting == nil {
		s.errorResponse(w, http.StatusNotFound, "Posting not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, posting)
}

// parsePaging reads limit/offset query parameters with defaults.
func parsePaging(r *http.Request) (limit, offset int) {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
