package signup

import (
	"log/slog"
	"time"

	httpadapter "ratehub/contexts/identity-access/signup-service/adapters/http"
	jwtadapter "ratehub/contexts/identity-access/signup-service/adapters/jwt"
	"ratehub/contexts/identity-access/signup-service/adapters/memory"
	"ratehub/contexts/identity-access/signup-service/application"
	"ratehub/contexts/identity-access/signup-service/ports"
)

// Module is the signup-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Accounts ports.AccountDirectory
	Codes    ports.ConfirmationCodeStore
	CodeGen  ports.CodeGenerator
	Notifier ports.Notifier
	Tokens   ports.TokenIssuer
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Accounts: deps.Accounts,
		Codes:    deps.Codes,
		CodeGen:  deps.CodeGen,
		Notifier: deps.Notifier,
		Tokens:   deps.Tokens,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with the in-memory
// store acting as directory, code store, notifier and generators. Tokens
// are signed with a fixed development secret.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Accounts: store,
		Codes:    store,
		CodeGen:  store,
		Notifier: store,
		Tokens:   jwtadapter.NewIssuer("ratehub-dev-secret", 24*time.Hour),
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
