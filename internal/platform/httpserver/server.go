package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	catalog "ratehub/contexts/content-catalog/catalog-service"
	accounts "ratehub/contexts/identity-access/accounts-service"
	authorization "ratehub/contexts/identity-access/authorization-service"
	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	signup "ratehub/contexts/identity-access/signup-service"
	jwtadapter "ratehub/contexts/identity-access/signup-service/adapters/jwt"
	review "ratehub/contexts/review-engagement/review-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "ratehub/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	tokens        jwtadapter.Issuer
	signup        signup.Module
	accounts      accounts.Module
	catalog       catalog.Module
	reviews       review.Module
	authorization authorization.Module
}

type Modules struct {
	Signup        signup.Module
	Accounts      accounts.Module
	Catalog       catalog.Module
	Reviews       review.Module
	Authorization authorization.Module
}

func New(modules Modules, tokens jwtadapter.Issuer, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		tokens:        tokens,
		signup:        modules.Signup,
		accounts:      modules.Accounts,
		catalog:       modules.Catalog,
		reviews:       modules.Reviews,
		authorization: modules.Authorization,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignup)
	s.mux.HandleFunc("POST /api/v1/auth/token", s.handleToken)

	s.mux.HandleFunc("GET /api/v1/users", s.handleListAccounts)
	s.mux.HandleFunc("POST /api/v1/users", s.handleCreateAccount)
	s.mux.HandleFunc("GET /api/v1/users/me", s.handleGetSelf)
	s.mux.HandleFunc("PATCH /api/v1/users/me", s.handlePatchSelf)
	s.mux.HandleFunc("GET /api/v1/users/{username}", s.handleGetAccount)
	s.mux.HandleFunc("PATCH /api/v1/users/{username}", s.handlePatchAccount)
	s.mux.HandleFunc("DELETE /api/v1/users/{username}", s.handleDeleteAccount)

	s.mux.HandleFunc("GET /api/v1/categories", s.handleListCategories)
	s.mux.HandleFunc("POST /api/v1/categories", s.handleCreateCategory)
	s.mux.HandleFunc("DELETE /api/v1/categories/{slug}", s.handleDeleteCategory)
	s.mux.HandleFunc("GET /api/v1/genres", s.handleListGenres)
	s.mux.HandleFunc("POST /api/v1/genres", s.handleCreateGenre)
	s.mux.HandleFunc("DELETE /api/v1/genres/{slug}", s.handleDeleteGenre)
	s.mux.HandleFunc("GET /api/v1/titles", s.handleListTitles)
	s.mux.HandleFunc("POST /api/v1/titles", s.handleCreateTitle)
	s.mux.HandleFunc("GET /api/v1/titles/{title_id}", s.handleGetTitle)
	s.mux.HandleFunc("PATCH /api/v1/titles/{title_id}", s.handlePatchTitle)
	s.mux.HandleFunc("DELETE /api/v1/titles/{title_id}", s.handleDeleteTitle)

	s.mux.HandleFunc("GET /api/v1/titles/{title_id}/reviews", s.handleListReviews)
	s.mux.HandleFunc("POST /api/v1/titles/{title_id}/reviews", s.handleCreateReview)
	s.mux.HandleFunc("GET /api/v1/titles/{title_id}/reviews/{review_id}", s.handleGetReview)
	s.mux.HandleFunc("PATCH /api/v1/titles/{title_id}/reviews/{review_id}", s.handlePatchReview)
	s.mux.HandleFunc("DELETE /api/v1/titles/{title_id}/reviews/{review_id}", s.handleDeleteReview)

	s.mux.HandleFunc("GET /api/v1/titles/{title_id}/reviews/{review_id}/comments", s.handleListComments)
	s.mux.HandleFunc("POST /api/v1/titles/{title_id}/reviews/{review_id}/comments", s.handleCreateComment)
	s.mux.HandleFunc("GET /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", s.handleGetComment)
	s.mux.HandleFunc("PATCH /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", s.handlePatchComment)
	s.mux.HandleFunc("DELETE /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", s.handleDeleteComment)

	s.mux.HandleFunc("POST /api/authz/v1/check", s.handleAuthzCheck)
}

// requesterFrom resolves the requester from a bearer token. No header
// means anonymous; a malformed or unverifiable token is rejected so a
// caller never silently degrades to anonymous.
func (s *Server) requesterFrom(r *http.Request) (authzentities.Requester, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return authzentities.Requester{}, true
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return authzentities.Requester{}, false
	}
	identity, err := s.tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		return authzentities.Requester{}, false
	}
	role, err := authzentities.ParseRole(identity.Role)
	if err != nil {
		return authzentities.Requester{}, false
	}
	return authzentities.Requester{
		AccountID:     identity.AccountID,
		Username:      identity.Username,
		Role:          role,
		Superuser:     identity.Superuser,
		Authenticated: true,
	}, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
