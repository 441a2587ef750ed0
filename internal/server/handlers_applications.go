package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/talent-portal/internal/server/middleware"
	"github.com/jonathan/talent-portal/internal/types"
)

// ---------------------------------------------------------------------
// Applicant-Facing Application Handlers
// ---------------------------------------------------------------------

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	postingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid posting ID")
		return
	}

	var req types.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := s.applicationService.Submit(r.Context(), principal, postingID, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, app)
}

func (s *Server) handleListOwnApplications(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	apps, err := s.applicationService.ListOwn(r.Context(), principal.ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, apps)
}

func (s *Server) handleWithdrawApplication(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	app, err := s.applicationService.Withdraw(r.Context(), principal.ID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

// ---------------------------------------------------------------------
// Reviewer-Facing Application Handlers
// ---------------------------------------------------------------------

func (s *Server) handleReviewerDashboard(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dashboard, err := s.applicationService.Dashboard(r.Context(), principal)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, dashboard)
}

func (s *Server) handleListApplicationsForReview(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	status := types.ApplicationStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application status")
		return
	}
	kind := types.PostingKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Invalid posting kind")
		return
	}

	limit, offset := parsePaging(r)
	apps, err := s.applicationService.ListForReviewer(r.Context(), principal, types.ApplicationFilter{
		Status: status,
		Kind:   kind,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, apps)
}

func (s *Server) handleGetApplicationForReview(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	app, err := s.applicationService.GetForReviewer(r.Context(), principal, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleReviewApplication(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch req.Status {
	case types.ApplicationApproved, types.ApplicationRejected, types.ApplicationReturned:
	default:
		s.errorResponse(w, http.StatusBadRequest, "Status must be approved, rejected, or returned")
		return
	}

	app, err := s.applicationService.Review(r.Context(), principal, id, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}
