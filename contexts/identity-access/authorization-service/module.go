package authorization

import (
	"log/slog"

	httpadapter "ratehub/contexts/identity-access/authorization-service/adapters/http"
	"ratehub/contexts/identity-access/authorization-service/application/queries"
	"ratehub/contexts/identity-access/authorization-service/ports"
)

// Module is the authorization-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
}

// Dependencies captures runtime ports/config required by NewModule.
// Clock may be nil; the use case falls back to the system clock.
type Dependencies struct {
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	checkAccess := queries.CheckAccessUseCase{
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			CheckAccess: checkAccess,
			Logger:      deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module.
func NewInMemoryModule(logger *slog.Logger) Module {
	return NewModule(Dependencies{Logger: logger})
}
