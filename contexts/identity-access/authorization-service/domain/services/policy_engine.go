package services

import (
	"ratehub/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
)

// Capability is a granted action on a resource class, beyond the base
// read/own-content rights every account holds.
type Capability string

const (
	// CapabilityModerateContent allows editing/deleting any review or comment.
	CapabilityModerateContent Capability = "content.moderate"
	// CapabilityManageCatalog allows writes to categories, genres and titles.
	CapabilityManageCatalog Capability = "catalog.manage"
	// CapabilityManageAccounts allows reading and managing any account,
	// including its role field.
	CapabilityManageAccounts Capability = "accounts.manage"
)

var roleCapabilities = map[entities.Role][]Capability{
	entities.RoleUser:      nil,
	entities.RoleModerator: {CapabilityModerateContent},
	entities.RoleAdmin: {
		CapabilityModerateContent,
		CapabilityManageCatalog,
		CapabilityManageAccounts,
	},
}

// Has reports whether the requester's role grants a capability. A superuser
// is evaluated against the admin capability set regardless of role field.
func Has(requester entities.Requester, capability Capability) bool {
	if !requester.Authenticated {
		return false
	}
	role := requester.Role
	if requester.Superuser {
		role = entities.RoleAdmin
	}
	for _, c := range roleCapabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// Evaluate is the single access decision point. It is a pure function of
// (requester, action, resource): nil means allowed,
// ErrAuthenticationRequired means the caller must log in, ErrForbidden
// means the caller lacks rights. The two denial kinds are distinct so the
// transport can map them to different status codes.
func Evaluate(requester entities.Requester, action entities.Action, resource entities.Resource) error {
	if !action.Verb.Valid() || !action.Class.Valid() {
		return domainerrors.ErrUnknownAction
	}
	if requester.Authenticated && !requester.Role.Valid() {
		return domainerrors.ErrUnknownRole
	}

	if action.Verb == entities.VerbRead {
		if action.Class != entities.ResourceAccount {
			// Catalog and review content is world-readable.
			return nil
		}
		if !requester.Authenticated {
			return domainerrors.ErrAuthenticationRequired
		}
		if resource.AccountID == requester.AccountID || Has(requester, CapabilityManageAccounts) {
			return nil
		}
		return domainerrors.ErrForbidden
	}

	if !requester.Authenticated {
		return domainerrors.ErrAuthenticationRequired
	}

	switch action.Class {
	case entities.ResourceCategory, entities.ResourceGenre, entities.ResourceTitle:
		if Has(requester, CapabilityManageCatalog) {
			return nil
		}
		return domainerrors.ErrForbidden

	case entities.ResourceReview, entities.ResourceComment:
		if action.Verb == entities.VerbCreate {
			return nil
		}
		if resource.AuthorID != "" && resource.AuthorID == requester.AccountID {
			return nil
		}
		if Has(requester, CapabilityModerateContent) {
			return nil
		}
		return domainerrors.ErrForbidden

	case entities.ResourceAccount:
		if Has(requester, CapabilityManageAccounts) {
			return nil
		}
		if action.Verb == entities.VerbUpdate &&
			resource.AccountID == requester.AccountID &&
			!resource.RoleChange {
			return nil
		}
		return domainerrors.ErrForbidden
	}
	return domainerrors.ErrUnknownAction
}
