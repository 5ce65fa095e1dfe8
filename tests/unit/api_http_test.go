package unit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	catalog "ratehub/contexts/content-catalog/catalog-service"
	accounts "ratehub/contexts/identity-access/accounts-service"
	authorization "ratehub/contexts/identity-access/authorization-service"
	signup "ratehub/contexts/identity-access/signup-service"
	jwtadapter "ratehub/contexts/identity-access/signup-service/adapters/jwt"
	signupports "ratehub/contexts/identity-access/signup-service/ports"
	review "ratehub/contexts/review-engagement/review-service"
	"ratehub/internal/platform/httpserver"
)

const testSecret = "ratehub-dev-secret"

type testAPI struct {
	http    http.Handler
	issuer  jwtadapter.Issuer
	signup  signup.Module
	reviews review.Module
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()
	issuer := jwtadapter.NewIssuer(testSecret, 24*time.Hour)

	signupModule := signup.NewInMemoryModule(nil)
	accountsModule := accounts.NewInMemoryModule(nil)
	reviewBare := review.NewInMemoryModule(nil, nil)
	catalogModule := catalog.NewInMemoryModule(nil, reviewBare.Store)
	reviewModule := review.NewModule(review.Dependencies{
		Repository: reviewBare.Store,
		Titles:     catalogModule.Store,
		Clock:      reviewBare.Store,
		IDGen:      reviewBare.Store,
	})
	authzModule := authorization.NewInMemoryModule(nil)

	server := httpserver.New(httpserver.Modules{
		Signup:        signupModule,
		Accounts:      accountsModule,
		Catalog:       catalogModule,
		Reviews:       reviewModule,
		Authorization: authzModule,
	}, issuer, nil, "")

	return testAPI{
		http:    server.Handler(),
		issuer:  issuer,
		signup:  signupModule,
		reviews: reviewModule,
	}
}

func (a testAPI) do(t *testing.T, method string, path string, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	a.http.ServeHTTP(recorder, req)
	return recorder
}

// mint signs a token directly, standing in for the full signup exchange.
func (a testAPI) mint(t *testing.T, username string, role string) string {
	t.Helper()
	token, err := a.issuer.Issue(signupports.Account{
		AccountID: "id-" + username,
		Username:  username,
		Role:      role,
	}, time.Now().UTC())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token.Token
}

func TestSignupThenTokenOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "erwin",
		"email":    "erwin@example.com",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("signup status %d: %s", resp.Code, resp.Body.String())
	}

	delivery, ok := api.signup.Store.LastDelivery("erwin@example.com")
	if !ok {
		t.Fatalf("no confirmation mail recorded")
	}

	resp = api.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username":          "erwin",
		"confirmation_code": delivery.Code,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("token status %d: %s", resp.Code, resp.Body.String())
	}
	var tokenResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &tokenResp); err != nil || tokenResp.Token == "" {
		t.Fatalf("no token in response: %s", resp.Body.String())
	}

	identity, err := api.issuer.Parse(tokenResp.Token)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if identity.Username != "erwin" || identity.Role != "user" {
		t.Fatalf("unexpected identity %+v", identity)
	}

	resp = api.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username":          "erwin",
		"confirmation_code": "not-the-code-000000000",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong code, got %d", resp.Code)
	}
}

func TestCatalogWritePolicyOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	body := map[string]string{"name": "Films", "slug": "films"}

	resp := api.do(t, http.MethodPost, "/api/v1/categories", "", body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous, got %d", resp.Code)
	}

	resp = api.do(t, http.MethodPost, "/api/v1/categories", api.mint(t, "reader", "user"), body)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user, got %d", resp.Code)
	}

	resp = api.do(t, http.MethodPost, "/api/v1/categories", api.mint(t, "chief", "admin"), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = api.do(t, http.MethodGet, "/api/v1/categories", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected public read 200, got %d", resp.Code)
	}
}

func TestTitleFiltersOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.mint(t, "chief", "admin")

	resp := api.do(t, http.MethodPost, "/api/v1/categories", adminToken, map[string]string{"name": "Films", "slug": "films"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create category status %d: %s", resp.Code, resp.Body.String())
	}
	for _, title := range []map[string]any{
		{"name": "Winter Light", "year": 1963, "category": "films"},
		{"name": "Summer Book", "year": 1972},
	} {
		resp = api.do(t, http.MethodPost, "/api/v1/titles", adminToken, title)
		if resp.Code != http.StatusCreated {
			t.Fatalf("create title status %d: %s", resp.Code, resp.Body.String())
		}
	}

	var listing struct {
		Titles []struct {
			Name string `json:"name"`
		} `json:"titles"`
	}
	resp = api.do(t, http.MethodGet, "/api/v1/titles?category=films&name=winter", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("filtered list status %d: %s", resp.Code, resp.Body.String())
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listing.Titles) != 1 || listing.Titles[0].Name != "Winter Light" {
		t.Fatalf("expected only Winter Light, got %s", resp.Body.String())
	}

	resp = api.do(t, http.MethodGet, "/api/v1/titles?year=1972", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("year filter status %d: %s", resp.Code, resp.Body.String())
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listing.Titles) != 1 || listing.Titles[0].Name != "Summer Book" {
		t.Fatalf("expected only Summer Book, got %s", resp.Body.String())
	}

	resp = api.do(t, http.MethodGet, "/api/v1/titles?year=later", "", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric year, got %d", resp.Code)
	}
}

func TestReviewConflictOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.mint(t, "chief", "admin")

	resp := api.do(t, http.MethodPost, "/api/v1/titles", adminToken, map[string]any{
		"name": "Seven Windows",
		"year": 1994,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create title status %d: %s", resp.Code, resp.Body.String())
	}
	var title struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &title); err != nil || title.ID == "" {
		t.Fatalf("no title id: %s", resp.Body.String())
	}

	userToken := api.mint(t, "viewer", "user")
	reviewBody := map[string]any{"text": "dense", "score": 9}
	resp = api.do(t, http.MethodPost, "/api/v1/titles/"+title.ID+"/reviews", userToken, reviewBody)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create review status %d: %s", resp.Code, resp.Body.String())
	}
	resp = api.do(t, http.MethodPost, "/api/v1/titles/"+title.ID+"/reviews", userToken, reviewBody)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 duplicate, got %d", resp.Code)
	}

	resp = api.do(t, http.MethodGet, "/api/v1/titles/"+title.ID, "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get title status %d", resp.Code)
	}
	var rated struct {
		Rating *float64 `json:"rating"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &rated); err != nil {
		t.Fatalf("decode title: %v", err)
	}
	if rated.Rating == nil || *rated.Rating != 9 {
		t.Fatalf("expected rating 9, got %v", rated.Rating)
	}
}

func TestGarbledTokenRejectedOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodGet, "/api/v1/users/me", "garbage.token.value", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbled token, got %d", resp.Code)
	}
}

func TestSelfProfileOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	adminToken := api.mint(t, "chief", "admin")

	resp := api.do(t, http.MethodPost, "/api/v1/users", adminToken, map[string]string{
		"username": "margo",
		"email":    "margo@example.com",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create account status %d: %s", resp.Code, resp.Body.String())
	}

	margoToken := api.mint(t, "margo", "user")
	resp = api.do(t, http.MethodGet, "/api/v1/users/me", margoToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get self status %d: %s", resp.Code, resp.Body.String())
	}

	resp = api.do(t, http.MethodPatch, "/api/v1/users/me", margoToken, map[string]string{
		"bio": "night-shift reviewer",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("patch self status %d: %s", resp.Code, resp.Body.String())
	}
	var account struct {
		Bio  string `json:"bio"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &account); err != nil {
		t.Fatalf("decode account: %v", err)
	}
	if account.Bio != "night-shift reviewer" || account.Role != "user" {
		t.Fatalf("unexpected account %+v", account)
	}
}

func TestAuthzCheckEndpoint(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/authz/v1/check", "", map[string]any{
		"account_id": "u1",
		"role":       "moderator",
		"verb":       "delete",
		"resource":   "review",
		"author_id":  "someone-else",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("check status %d: %s", resp.Code, resp.Body.String())
	}
	var decision struct {
		Allowed bool `json:"allowed"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decision); err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("moderator should be allowed to delete a review")
	}

	resp = api.do(t, http.MethodPost, "/api/authz/v1/check", "", map[string]any{
		"verb":     "create",
		"resource": "review",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("anonymous check status %d: %s", resp.Code, resp.Body.String())
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decision); err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if decision.Allowed {
		t.Fatalf("anonymous create must be denied")
	}
}
