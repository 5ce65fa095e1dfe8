package httpadapter

import (
	"context"
	"log/slog"

	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	"ratehub/contexts/identity-access/accounts-service/application"
	"ratehub/contexts/identity-access/accounts-service/ports"
	httptransport "ratehub/contexts/identity-access/accounts-service/transport/http"
)

// Handler maps HTTP DTOs to the accounts application service.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListAccountsHandler(
	ctx context.Context,
	requester authzentities.Requester,
) (httptransport.ListAccountsResponse, error) {
	accounts, err := h.Service.ListAccounts(ctx, requester)
	if err != nil {
		return httptransport.ListAccountsResponse{}, err
	}
	out := make([]httptransport.AccountDTO, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, toDTO(account))
	}
	return httptransport.ListAccountsResponse{Accounts: out}, nil
}

func (h Handler) GetAccountHandler(
	ctx context.Context,
	requester authzentities.Requester,
	username string,
) (httptransport.AccountDTO, error) {
	account, err := h.Service.GetAccount(ctx, requester, username)
	if err != nil {
		return httptransport.AccountDTO{}, err
	}
	return toDTO(account), nil
}

func (h Handler) CreateAccountHandler(
	ctx context.Context,
	requester authzentities.Requester,
	request httptransport.CreateAccountRequest,
) (httptransport.AccountDTO, error) {
	account, err := h.Service.CreateAccount(ctx, requester, application.NewAccount{
		Username:  request.Username,
		Email:     request.Email,
		Role:      request.Role,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Bio:       request.Bio,
	})
	if err != nil {
		return httptransport.AccountDTO{}, err
	}
	return toDTO(account), nil
}

func (h Handler) PatchAccountHandler(
	ctx context.Context,
	requester authzentities.Requester,
	username string,
	request httptransport.PatchAccountRequest,
) (httptransport.AccountDTO, error) {
	account, err := h.Service.UpdateAccount(ctx, requester, username, toPatch(request))
	if err != nil {
		return httptransport.AccountDTO{}, err
	}
	return toDTO(account), nil
}

func (h Handler) DeleteAccountHandler(
	ctx context.Context,
	requester authzentities.Requester,
	username string,
) error {
	return h.Service.DeleteAccount(ctx, requester, username)
}

func (h Handler) GetSelfHandler(
	ctx context.Context,
	requester authzentities.Requester,
) (httptransport.AccountDTO, error) {
	account, err := h.Service.GetSelf(ctx, requester)
	if err != nil {
		return httptransport.AccountDTO{}, err
	}
	return toDTO(account), nil
}

func (h Handler) PatchSelfHandler(
	ctx context.Context,
	requester authzentities.Requester,
	request httptransport.PatchAccountRequest,
) (httptransport.AccountDTO, error) {
	account, err := h.Service.UpdateSelf(ctx, requester, toPatch(request))
	if err != nil {
		return httptransport.AccountDTO{}, err
	}
	return toDTO(account), nil
}

func toDTO(account ports.Account) httptransport.AccountDTO {
	return httptransport.AccountDTO{
		Username:  account.Username,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Bio:       account.Bio,
		Role:      account.Role,
	}
}

func toPatch(request httptransport.PatchAccountRequest) ports.AccountPatch {
	return ports.AccountPatch{
		Email:     request.Email,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Bio:       request.Bio,
		Role:      request.Role,
	}
}
