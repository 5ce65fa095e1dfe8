package application

import (
	"context"
	"errors"
	"testing"

	"ratehub/contexts/identity-access/accounts-service/adapters/memory"
	domainerrors "ratehub/contexts/identity-access/accounts-service/domain/errors"
	"ratehub/contexts/identity-access/accounts-service/ports"
	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	authzerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
)

func admin() authzentities.Requester {
	return authzentities.Requester{AccountID: "admin-1", Username: "root", Role: authzentities.RoleAdmin, Authenticated: true}
}

func plainUser(id, username string) authzentities.Requester {
	return authzentities.Requester{AccountID: id, Username: username, Role: authzentities.RoleUser, Authenticated: true}
}

func newService(store *memory.Store) Service {
	return Service{Repo: store, Clock: store, IDGen: store}
}

func TestAdminCreatesAndListsAccounts(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	created, err := service.CreateAccount(context.Background(), admin(), NewAccount{
		Username: "critic_1",
		Email:    "critic1@example.com",
		Role:     "moderator",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Role != "moderator" {
		t.Fatalf("expected moderator role, got %q", created.Role)
	}

	accounts, err := service.ListAccounts(context.Background(), admin())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("expected one account, got %d", len(accounts))
	}
}

func TestNonAdminCannotListAccounts(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	_, err := service.ListAccounts(context.Background(), plainUser("u1", "critic_1"))
	if !errors.Is(err, authzerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	_, err = service.ListAccounts(context.Background(), authzentities.Requester{})
	if !errors.Is(err, authzerrors.ErrAuthenticationRequired) {
		t.Fatalf("expected authentication required, got %v", err)
	}
}

func TestSelfPatchCannotChangeRole(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	store.SeedAccount(ports.Account{AccountID: "u1", Username: "critic_1", Email: "critic1@example.com", Role: "user"})

	bio := "reads a lot"
	role := "admin"
	updated, err := service.UpdateSelf(context.Background(), plainUser("u1", "critic_1"), ports.AccountPatch{
		Bio:  &bio,
		Role: &role,
	})
	if err != nil {
		t.Fatalf("self patch failed: %v", err)
	}
	if updated.Bio != "reads a lot" {
		t.Fatalf("bio not updated: %q", updated.Bio)
	}
	if updated.Role != "user" {
		t.Fatalf("role must be immutable on self patch, got %q", updated.Role)
	}
}

func TestSelfPatchResolvesByUsername(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	created, err := service.CreateAccount(context.Background(), admin(), NewAccount{
		Username: "critic_1",
		Email:    "critic1@example.com",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// The credential's account id need not match the stored record's id;
	// the username is what identifies the record.
	requester := plainUser("credential-"+created.AccountID, "critic_1")
	bio := "reads a lot"
	updated, err := service.UpdateSelf(context.Background(), requester, ports.AccountPatch{Bio: &bio})
	if err != nil {
		t.Fatalf("self patch failed: %v", err)
	}
	if updated.Bio != "reads a lot" {
		t.Fatalf("bio not updated: %q", updated.Bio)
	}
}

func TestAdminPatchChangesRole(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	store.SeedAccount(ports.Account{AccountID: "u1", Username: "critic_1", Email: "critic1@example.com", Role: "user"})

	role := "moderator"
	updated, err := service.UpdateAccount(context.Background(), admin(), "critic_1", ports.AccountPatch{Role: &role})
	if err != nil {
		t.Fatalf("admin patch failed: %v", err)
	}
	if updated.Role != "moderator" {
		t.Fatalf("expected moderator, got %q", updated.Role)
	}
}

func TestUserCannotPatchOtherAccount(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	store.SeedAccount(ports.Account{AccountID: "u2", Username: "critic_2", Email: "critic2@example.com", Role: "user"})

	bio := "hijacked"
	_, err := service.UpdateAccount(context.Background(), plainUser("u1", "critic_1"), "critic_2", ports.AccountPatch{Bio: &bio})
	if !errors.Is(err, authzerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	_, err := service.GetAccount(context.Background(), admin(), "ghost")
	if !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateRejectsReservedUsername(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	_, err := service.CreateAccount(context.Background(), admin(), NewAccount{Username: "ME", Email: "me@example.com"})
	if !errors.Is(err, domainerrors.ErrReservedUsername) {
		t.Fatalf("expected reserved username, got %v", err)
	}
}
