package queries

import (
	"context"
	"log/slog"
	"time"

	application "ratehub/contexts/identity-access/authorization-service/application"
	"ratehub/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
	"ratehub/contexts/identity-access/authorization-service/domain/services"
	"ratehub/contexts/identity-access/authorization-service/ports"
)

type CheckAccessQuery struct {
	Requester entities.Requester
	Verb      string
	Class     string
	Resource  entities.Resource
}

type CheckAccessUseCase struct {
	Clock  ports.Clock
	Logger *slog.Logger
}

// Execute renders the pure policy verdict as a decision record. A denial is
// part of the decision, not an error; only a malformed query errors out.
func (uc CheckAccessUseCase) Execute(ctx context.Context, query CheckAccessQuery) (entities.AccessDecision, error) {
	verb, ok := entities.ParseVerb(query.Verb)
	if !ok {
		return entities.AccessDecision{}, domainerrors.ErrUnknownAction
	}
	class, ok := entities.ParseResourceClass(query.Class)
	if !ok {
		return entities.AccessDecision{}, domainerrors.ErrUnknownAction
	}

	decision := entities.AccessDecision{CheckedAt: uc.now()}
	err := services.Evaluate(query.Requester, entities.Action{Verb: verb, Class: class}, query.Resource)
	switch {
	case err == nil:
		decision.Allowed = true
		decision.Reason = "allowed"
	case err == domainerrors.ErrAuthenticationRequired:
		decision.Reason = "authentication required"
	case err == domainerrors.ErrForbidden:
		decision.Reason = "forbidden"
	default:
		return entities.AccessDecision{}, err
	}

	application.ResolveLogger(uc.Logger).Debug("access evaluated",
		"event", "authz_access_evaluated",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"account_id", query.Requester.AccountID,
		"verb", string(verb),
		"resource", string(class),
		"allowed", decision.Allowed,
	)
	return decision, nil
}

func (uc CheckAccessUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
