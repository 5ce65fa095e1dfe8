package review

import (
	"log/slog"

	httpadapter "ratehub/contexts/review-engagement/review-service/adapters/http"
	"ratehub/contexts/review-engagement/review-service/adapters/memory"
	"ratehub/contexts/review-engagement/review-service/application"
	"ratehub/contexts/review-engagement/review-service/ports"
)

// Module is the review-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Titles     ports.TitleDirectory
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Titles: deps.Titles,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. The store doubles as a rating source for the catalog side.
func NewInMemoryModule(logger *slog.Logger, titles ports.TitleDirectory) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Titles:     titles,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
