package httptransport

// SignupRequest registers or re-registers a (username, email) pair.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SignupResponse echoes the accepted pair. The confirmation code is only
// ever delivered by email, never in the response body.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
