package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authzerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
	authzhttp "ratehub/contexts/identity-access/authorization-service/transport/http"
)

func (s *Server) handleAuthzCheck(w http.ResponseWriter, r *http.Request) {
	var req authzhttp.CheckAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthzError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.authorization.Handler.CheckAccessHandler(r.Context(), req)
	if err != nil {
		writeAuthzDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAuthzDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authzerrors.ErrUnknownRole),
		errors.Is(err, authzerrors.ErrUnknownAction):
		writeAuthzError(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
	default:
		writeAuthzError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAuthzError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authzhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
