package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTIssuer_GenerateToken(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	signed, err := issuer.GenerateToken("alice@example.com", "USER")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected token, got empty")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["email"] != "alice@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
	if claims["role"] != "USER" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("missing exp claim")
	}
	if remaining := time.Until(time.Unix(int64(exp), 0)); remaining < 55*time.Minute || remaining > time.Hour {
		t.Fatalf("exp outside expected window: %v", remaining)
	}
}

func TestJWTIssuer_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	signed, err := issuer.GenerateToken("bob@example.com", "ADMIN")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	if err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}
