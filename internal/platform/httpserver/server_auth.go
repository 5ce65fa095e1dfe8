package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	signuperrors "ratehub/contexts/identity-access/signup-service/domain/errors"
	signuphttp "ratehub/contexts/identity-access/signup-service/transport/http"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signuphttp.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSignupError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.signup.Handler.SignupHandler(r.Context(), req)
	if err != nil {
		writeSignupDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req signuphttp.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSignupError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.signup.Handler.TokenHandler(r.Context(), req)
	if err != nil {
		writeSignupDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSignupDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, signuperrors.ErrInvalidUsername),
		errors.Is(err, signuperrors.ErrReservedUsername):
		writeSignupError(w, http.StatusBadRequest, "invalid_username", err.Error())
	case errors.Is(err, signuperrors.ErrInvalidEmail):
		writeSignupError(w, http.StatusBadRequest, "invalid_email", err.Error())
	case errors.Is(err, signuperrors.ErrUsernameTaken):
		writeSignupError(w, http.StatusConflict, "username_taken", err.Error())
	case errors.Is(err, signuperrors.ErrEmailTaken):
		writeSignupError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, signuperrors.ErrAccountNotFound):
		writeSignupError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, signuperrors.ErrInvalidConfirmationCode):
		writeSignupError(w, http.StatusBadRequest, "invalid_confirmation_code", err.Error())
	default:
		writeSignupError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSignupError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, signuphttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
