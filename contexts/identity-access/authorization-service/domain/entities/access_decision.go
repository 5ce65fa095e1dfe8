package entities

import "time"

// AccessDecision is returned by access check APIs.
type AccessDecision struct {
	Allowed   bool      `json:"allowed"`
	Reason    string    `json:"reason"`
	CheckedAt time.Time `json:"checked_at"`
}
