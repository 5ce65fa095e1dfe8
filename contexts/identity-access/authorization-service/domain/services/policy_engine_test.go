package services

import (
	"errors"
	"testing"

	"ratehub/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
)

func requester(id string, role entities.Role) entities.Requester {
	return entities.Requester{AccountID: id, Role: role, Authenticated: true}
}

func TestReadIsAllowedForEveryoneOnContent(t *testing.T) {
	classes := []entities.ResourceClass{
		entities.ResourceCategory,
		entities.ResourceGenre,
		entities.ResourceTitle,
		entities.ResourceReview,
		entities.ResourceComment,
	}
	requesters := []entities.Requester{
		{}, // anonymous
		requester("u1", entities.RoleUser),
		requester("m1", entities.RoleModerator),
		requester("a1", entities.RoleAdmin),
	}
	for _, class := range classes {
		for _, req := range requesters {
			err := Evaluate(req, entities.Action{Verb: entities.VerbRead, Class: class}, entities.Resource{})
			if err != nil {
				t.Fatalf("read %s by %q denied: %v", class, req.AccountID, err)
			}
		}
	}
}

func TestAnonymousWriteRequiresAuthentication(t *testing.T) {
	for _, verb := range []entities.Verb{entities.VerbCreate, entities.VerbUpdate, entities.VerbDelete} {
		err := Evaluate(entities.Requester{}, entities.Action{Verb: verb, Class: entities.ResourceReview}, entities.Resource{})
		if !errors.Is(err, domainerrors.ErrAuthenticationRequired) {
			t.Fatalf("anonymous %s: expected authentication required, got %v", verb, err)
		}
	}
}

func TestAuthorMayMutateOwnReview(t *testing.T) {
	author := requester("u1", entities.RoleUser)
	res := entities.Resource{AuthorID: "u1"}

	if err := Evaluate(author, entities.Action{Verb: entities.VerbUpdate, Class: entities.ResourceReview}, res); err != nil {
		t.Fatalf("author update denied: %v", err)
	}

	other := requester("u2", entities.RoleUser)
	err := Evaluate(other, entities.Action{Verb: entities.VerbUpdate, Class: entities.ResourceReview}, res)
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("stranger update: expected forbidden, got %v", err)
	}
}

func TestModeratorAndAdminMayMutateAnyReviewOrComment(t *testing.T) {
	res := entities.Resource{AuthorID: "someone-else"}
	for _, req := range []entities.Requester{
		requester("m1", entities.RoleModerator),
		requester("a1", entities.RoleAdmin),
	} {
		for _, class := range []entities.ResourceClass{entities.ResourceReview, entities.ResourceComment} {
			if err := Evaluate(req, entities.Action{Verb: entities.VerbDelete, Class: class}, res); err != nil {
				t.Fatalf("%s delete %s denied: %v", req.Role, class, err)
			}
		}
	}
}

func TestCatalogWritesRequireAdmin(t *testing.T) {
	classes := []entities.ResourceClass{entities.ResourceCategory, entities.ResourceGenre, entities.ResourceTitle}

	for _, class := range classes {
		err := Evaluate(requester("m1", entities.RoleModerator), entities.Action{Verb: entities.VerbCreate, Class: class}, entities.Resource{})
		if !errors.Is(err, domainerrors.ErrForbidden) {
			t.Fatalf("moderator create %s: expected forbidden, got %v", class, err)
		}
		if err := Evaluate(requester("a1", entities.RoleAdmin), entities.Action{Verb: entities.VerbDelete, Class: class}, entities.Resource{}); err != nil {
			t.Fatalf("admin delete %s denied: %v", class, err)
		}
	}
}

func TestSuperuserFlagGrantsAdminCapability(t *testing.T) {
	super := entities.Requester{AccountID: "s1", Role: entities.RoleUser, Superuser: true, Authenticated: true}
	if err := Evaluate(super, entities.Action{Verb: entities.VerbCreate, Class: entities.ResourceTitle}, entities.Resource{}); err != nil {
		t.Fatalf("superuser catalog write denied: %v", err)
	}
	if err := Evaluate(super, entities.Action{Verb: entities.VerbDelete, Class: entities.ResourceAccount}, entities.Resource{AccountID: "u9"}); err != nil {
		t.Fatalf("superuser account delete denied: %v", err)
	}
}

func TestAccountSelfEditExcludesRole(t *testing.T) {
	self := requester("u1", entities.RoleUser)

	if err := Evaluate(self, entities.Action{Verb: entities.VerbUpdate, Class: entities.ResourceAccount}, entities.Resource{AccountID: "u1"}); err != nil {
		t.Fatalf("self edit denied: %v", err)
	}

	err := Evaluate(self, entities.Action{Verb: entities.VerbUpdate, Class: entities.ResourceAccount}, entities.Resource{AccountID: "u1", RoleChange: true})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("self role change: expected forbidden, got %v", err)
	}

	err = Evaluate(self, entities.Action{Verb: entities.VerbUpdate, Class: entities.ResourceAccount}, entities.Resource{AccountID: "u2"})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("editing another account: expected forbidden, got %v", err)
	}

	admin := requester("a1", entities.RoleAdmin)
	if err := Evaluate(admin, entities.Action{Verb: entities.VerbUpdate, Class: entities.ResourceAccount}, entities.Resource{AccountID: "u2", RoleChange: true}); err != nil {
		t.Fatalf("admin role change denied: %v", err)
	}
}

func TestAccountReadsBeyondSelfRequireAdmin(t *testing.T) {
	self := requester("u1", entities.RoleUser)

	if err := Evaluate(self, entities.Action{Verb: entities.VerbRead, Class: entities.ResourceAccount}, entities.Resource{AccountID: "u1"}); err != nil {
		t.Fatalf("self read denied: %v", err)
	}
	err := Evaluate(self, entities.Action{Verb: entities.VerbRead, Class: entities.ResourceAccount}, entities.Resource{AccountID: "u2"})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("foreign account read: expected forbidden, got %v", err)
	}
	err = Evaluate(entities.Requester{}, entities.Action{Verb: entities.VerbRead, Class: entities.ResourceAccount}, entities.Resource{AccountID: "u2"})
	if !errors.Is(err, domainerrors.ErrAuthenticationRequired) {
		t.Fatalf("anonymous account read: expected authentication required, got %v", err)
	}
}

func TestModeratorCannotManageAccounts(t *testing.T) {
	mod := requester("m1", entities.RoleModerator)
	err := Evaluate(mod, entities.Action{Verb: entities.VerbDelete, Class: entities.ResourceAccount}, entities.Resource{AccountID: "u1"})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("moderator account delete: expected forbidden, got %v", err)
	}
}
