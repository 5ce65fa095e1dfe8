package catalog

import (
	"log/slog"

	httpadapter "ratehub/contexts/content-catalog/catalog-service/adapters/http"
	"ratehub/contexts/content-catalog/catalog-service/adapters/memory"
	"ratehub/contexts/content-catalog/catalog-service/application"
	"ratehub/contexts/content-catalog/catalog-service/ports"
)

// Module is the catalog-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
// Ratings may be nil; titles then report a nil rating.
type Dependencies struct {
	Repository ports.Repository
	Ratings    ports.RatingSource
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:    deps.Repository,
		Ratings: deps.Ratings,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. A rating source can be attached through NewModule when review
// data is available.
func NewInMemoryModule(logger *slog.Logger, ratings ports.RatingSource) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Ratings:    ratings,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
