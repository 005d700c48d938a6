package domain

// Result statuses as they appear on the wire.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// TokenLifetimeSeconds is the advertised lifetime of every issued token.
const TokenLifetimeSeconds = 3600

// AuthResult is the tagged outcome of a registration or authentication
// attempt. Exactly one variant is populated: success carries the token, the
// persisted user and the token lifetime; error carries a human-readable
// message. It exists so the service never builds untyped response maps — the
// API layer converts it to the wire format at the boundary.
type AuthResult struct {
	Status    string
	Token     string
	User      *User
	ExpiresIn int
	Message   string
}

// OK reports whether the result is the success variant.
func (r AuthResult) OK() bool {
	return r.Status == StatusSuccess
}

// AuthSuccess builds the success variant with the fixed token lifetime.
func AuthSuccess(token string, user *User, message string) AuthResult {
	return AuthResult{
		Status:    StatusSuccess,
		Token:     token,
		User:      user,
		ExpiresIn: TokenLifetimeSeconds,
		Message:   message,
	}
}

// AuthError builds the error variant.
func AuthError(message string) AuthResult {
	return AuthResult{Status: StatusError, Message: message}
}
