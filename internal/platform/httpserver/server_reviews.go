package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authzerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
	reviewerrors "ratehub/contexts/review-engagement/review-service/domain/errors"
	reviewhttp "ratehub/contexts/review-engagement/review-service/transport/http"
)

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reviews.Handler.ListReviewsHandler(r.Context(), r.PathValue("title_id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reviews.Handler.GetReviewHandler(r.Context(), r.PathValue("title_id"), r.PathValue("review_id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeReviewError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req reviewhttp.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.reviews.Handler.CreateReviewHandler(r.Context(), requester, r.PathValue("title_id"), req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePatchReview(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeReviewError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req reviewhttp.PatchReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.reviews.Handler.PatchReviewHandler(r.Context(), requester, r.PathValue("title_id"), r.PathValue("review_id"), req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeReviewError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	if err := s.reviews.Handler.DeleteReviewHandler(r.Context(), requester, r.PathValue("title_id"), r.PathValue("review_id")); err != nil {
		writeReviewDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reviews.Handler.ListCommentsHandler(r.Context(), r.PathValue("title_id"), r.PathValue("review_id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetComment(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reviews.Handler.GetCommentHandler(r.Context(), r.PathValue("title_id"), r.PathValue("review_id"), r.PathValue("comment_id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeReviewError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req reviewhttp.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.reviews.Handler.CreateCommentHandler(r.Context(), requester, r.PathValue("title_id"), r.PathValue("review_id"), req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePatchComment(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeReviewError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req reviewhttp.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.reviews.Handler.PatchCommentHandler(r.Context(), requester, r.PathValue("title_id"), r.PathValue("review_id"), r.PathValue("comment_id"), req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeReviewError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	if err := s.reviews.Handler.DeleteCommentHandler(r.Context(), requester, r.PathValue("title_id"), r.PathValue("review_id"), r.PathValue("comment_id")); err != nil {
		writeReviewDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeReviewDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authzerrors.ErrAuthenticationRequired):
		writeReviewError(w, http.StatusUnauthorized, "authentication_required", err.Error())
	case errors.Is(err, authzerrors.ErrForbidden):
		writeReviewError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, reviewerrors.ErrTitleNotFound):
		writeReviewError(w, http.StatusNotFound, "title_not_found", err.Error())
	case errors.Is(err, reviewerrors.ErrReviewNotFound):
		writeReviewError(w, http.StatusNotFound, "review_not_found", err.Error())
	case errors.Is(err, reviewerrors.ErrCommentNotFound):
		writeReviewError(w, http.StatusNotFound, "comment_not_found", err.Error())
	case errors.Is(err, reviewerrors.ErrDuplicateReview):
		writeReviewError(w, http.StatusConflict, "duplicate_review", err.Error())
	case errors.Is(err, reviewerrors.ErrInvalidScore),
		errors.Is(err, reviewerrors.ErrEmptyText):
		writeReviewError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeReviewError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeReviewError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, reviewhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
