package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	accountserrors "ratehub/contexts/identity-access/accounts-service/domain/errors"
	accountshttp "ratehub/contexts/identity-access/accounts-service/transport/http"
	authzerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
)

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeAccountsError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	resp, err := s.accounts.Handler.ListAccountsHandler(r.Context(), requester)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeAccountsError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req accountshttp.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.accounts.Handler.CreateAccountHandler(r.Context(), requester, req)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeAccountsError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	resp, err := s.accounts.Handler.GetAccountHandler(r.Context(), requester, r.PathValue("username"))
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePatchAccount(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeAccountsError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req accountshttp.PatchAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.accounts.Handler.PatchAccountHandler(r.Context(), requester, r.PathValue("username"), req)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeAccountsError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	if err := s.accounts.Handler.DeleteAccountHandler(r.Context(), requester, r.PathValue("username")); err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSelf(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeAccountsError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	resp, err := s.accounts.Handler.GetSelfHandler(r.Context(), requester)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePatchSelf(w http.ResponseWriter, r *http.Request) {
	requester, ok := s.requesterFrom(r)
	if !ok {
		writeAccountsError(w, http.StatusUnauthorized, "invalid_token", "bearer token is invalid")
		return
	}
	var req accountshttp.PatchAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.accounts.Handler.PatchSelfHandler(r.Context(), requester, req)
	if err != nil {
		writeAccountsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAccountsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authzerrors.ErrAuthenticationRequired):
		writeAccountsError(w, http.StatusUnauthorized, "authentication_required", err.Error())
	case errors.Is(err, authzerrors.ErrForbidden):
		writeAccountsError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, accountserrors.ErrAccountNotFound):
		writeAccountsError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, accountserrors.ErrUsernameTaken):
		writeAccountsError(w, http.StatusConflict, "username_taken", err.Error())
	case errors.Is(err, accountserrors.ErrEmailTaken):
		writeAccountsError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, accountserrors.ErrInvalidUsername),
		errors.Is(err, accountserrors.ErrReservedUsername),
		errors.Is(err, accountserrors.ErrInvalidEmail),
		errors.Is(err, accountserrors.ErrUnknownRole):
		writeAccountsError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAccountsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccountsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accountshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
