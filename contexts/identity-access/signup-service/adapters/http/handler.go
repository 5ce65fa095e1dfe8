package httpadapter

import (
	"context"
	"log/slog"

	"ratehub/contexts/identity-access/signup-service/application"
	httptransport "ratehub/contexts/identity-access/signup-service/transport/http"
)

// Handler maps HTTP DTOs to the signup application service.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) SignupHandler(
	ctx context.Context,
	request httptransport.SignupRequest,
) (httptransport.SignupResponse, error) {
	account, err := h.Service.SignUp(ctx, request.Username, request.Email)
	if err != nil {
		return httptransport.SignupResponse{}, err
	}
	return httptransport.SignupResponse{
		Username: account.Username,
		Email:    account.Email,
	}, nil
}

func (h Handler) TokenHandler(
	ctx context.Context,
	request httptransport.TokenRequest,
) (httptransport.TokenResponse, error) {
	token, err := h.Service.IssueToken(ctx, request.Username, request.ConfirmationCode)
	if err != nil {
		return httptransport.TokenResponse{}, err
	}
	return httptransport.TokenResponse{Token: token.Token}, nil
}
