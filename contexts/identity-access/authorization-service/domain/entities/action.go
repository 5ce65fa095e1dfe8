package entities

import "strings"

// Verb classifies an operation the way HTTP methods do.
type Verb string

const (
	VerbRead   Verb = "read"
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
)

// ResourceClass tags the kind of object an action targets.
type ResourceClass string

const (
	ResourceCategory ResourceClass = "category"
	ResourceGenre    ResourceClass = "genre"
	ResourceTitle    ResourceClass = "title"
	ResourceReview   ResourceClass = "review"
	ResourceComment  ResourceClass = "comment"
	ResourceAccount  ResourceClass = "account"
)

// Action pairs a verb with the resource class it targets.
type Action struct {
	Verb  Verb
	Class ResourceClass
}

// Resource describes the concrete target of an action. AuthorID is the
// authoring account for review/comment targets, AccountID the target
// account, RoleChange marks an account update touching the role field.
// The zero value stands for "no concrete target" (e.g. create, list).
type Resource struct {
	AuthorID   string
	AccountID  string
	RoleChange bool
}

func (v Verb) Valid() bool {
	switch v {
	case VerbRead, VerbCreate, VerbUpdate, VerbDelete:
		return true
	default:
		return false
	}
}

func (c ResourceClass) Valid() bool {
	switch c {
	case ResourceCategory, ResourceGenre, ResourceTitle,
		ResourceReview, ResourceComment, ResourceAccount:
		return true
	default:
		return false
	}
}

func ParseVerb(v string) (Verb, bool) {
	switch Verb(strings.ToLower(strings.TrimSpace(v))) {
	case VerbRead:
		return VerbRead, true
	case VerbCreate:
		return VerbCreate, true
	case VerbUpdate:
		return VerbUpdate, true
	case VerbDelete:
		return VerbDelete, true
	default:
		return "", false
	}
}

func ParseResourceClass(v string) (ResourceClass, bool) {
	switch ResourceClass(strings.ToLower(strings.TrimSpace(v))) {
	case ResourceCategory:
		return ResourceCategory, true
	case ResourceGenre:
		return ResourceGenre, true
	case ResourceTitle:
		return ResourceTitle, true
	case ResourceReview:
		return ResourceReview, true
	case ResourceComment:
		return ResourceComment, true
	case ResourceAccount:
		return ResourceAccount, true
	default:
		return "", false
	}
}
