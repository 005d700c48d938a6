package ports

// TokenIssuer produces an opaque signed token for an authenticated identity.
type TokenIssuer interface {
	GenerateToken(email, role string) (string, error)
}
