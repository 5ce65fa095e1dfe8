package httptransport

import "time"

// CheckAccessRequest is the request body for a single access evaluation.
// Identity fields describe the requester; empty account_id means anonymous.
type CheckAccessRequest struct {
	AccountID string `json:"account_id,omitempty"`
	Role      string `json:"role,omitempty"`
	Superuser bool   `json:"superuser,omitempty"`

	Verb     string `json:"verb"`
	Resource string `json:"resource"`

	AuthorID        string `json:"author_id,omitempty"`
	TargetAccountID string `json:"target_account_id,omitempty"`
	RoleChange      bool   `json:"role_change,omitempty"`
}

type CheckAccessResponse struct {
	Allowed   bool      `json:"allowed"`
	Reason    string    `json:"reason"`
	CheckedAt time.Time `json:"checked_at"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
