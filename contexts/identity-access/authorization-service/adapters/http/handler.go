package httpadapter

import (
	"context"
	"log/slog"

	application "ratehub/contexts/identity-access/authorization-service/application"
	"ratehub/contexts/identity-access/authorization-service/application/queries"
	"ratehub/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
	httptransport "ratehub/contexts/identity-access/authorization-service/transport/http"
)

// Handler maps HTTP DTOs to the access check query.
type Handler struct {
	CheckAccess queries.CheckAccessUseCase
	Logger      *slog.Logger
}

func (h Handler) CheckAccessHandler(
	ctx context.Context,
	request httptransport.CheckAccessRequest,
) (httptransport.CheckAccessResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http access check received",
		"event", "authz_http_check_received",
		"module", "identity-access/authorization-service",
		"layer", "transport",
		"account_id", request.AccountID,
		"verb", request.Verb,
		"resource", request.Resource,
	)

	requester := entities.Requester{}
	if request.AccountID != "" {
		role, err := entities.ParseRole(request.Role)
		if err != nil {
			return httptransport.CheckAccessResponse{}, domainerrors.ErrUnknownRole
		}
		requester = entities.Requester{
			AccountID:     request.AccountID,
			Role:          role,
			Superuser:     request.Superuser,
			Authenticated: true,
		}
	}

	decision, err := h.CheckAccess.Execute(ctx, queries.CheckAccessQuery{
		Requester: requester,
		Verb:      request.Verb,
		Class:     request.Resource,
		Resource: entities.Resource{
			AuthorID:   request.AuthorID,
			AccountID:  request.TargetAccountID,
			RoleChange: request.RoleChange,
		},
	})
	if err != nil {
		return httptransport.CheckAccessResponse{}, err
	}
	return httptransport.CheckAccessResponse{
		Allowed:   decision.Allowed,
		Reason:    decision.Reason,
		CheckedAt: decision.CheckedAt,
	}, nil
}
