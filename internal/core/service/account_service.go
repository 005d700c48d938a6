package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tuneup/accounts-api/internal/core/domain"
	"github.com/tuneup/accounts-api/internal/core/ports"
)

// Messages returned to callers. These are part of the external contract and
// must not be reworded.
const (
	msgUserDataRequired  = "User data is required"
	msgEmailRequired     = "Email is required"
	msgPasswordRequired  = "Password is required"
	msgUsernameRequired  = "Username is required"
	msgEmailTaken        = "User with this email already exists"
	msgDuplicateOnSave   = "User with this email or username already exists"
	msgInvalidData       = "Invalid data. Please check your input."
	msgUserCreated       = "User created successfully"
	msgInvalidCredential = "Invalid Credentials"
)

// AccountService implements registration, authentication and lookup.
type AccountService struct {
	repo     ports.UserRepository
	issuer   ports.TokenIssuer
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewAccountService(repo ports.UserRepository, issuer ports.TokenIssuer, notifier ports.Notifier, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, issuer: issuer, notifier: notifier, log: log}
}

// Register validates the candidate, enforces email uniqueness best-effort,
// persists the record and issues a token so the new account is signed in
// immediately. Validation failures and store rejections come back as error
// results, never as raised errors.
func (s *AccountService) Register(ctx context.Context, candidate *domain.User) domain.AuthResult {
	if candidate == nil {
		return domain.AuthError(msgUserDataRequired)
	}
	if strings.TrimSpace(candidate.Email) == "" {
		return domain.AuthError(msgEmailRequired)
	}
	if strings.TrimSpace(candidate.Password) == "" {
		return domain.AuthError(msgPasswordRequired)
	}
	if strings.TrimSpace(candidate.Username) == "" {
		return domain.AuthError(msgUsernameRequired)
	}

	// Best-effort duplicate check. A failing lookup does not block signup —
	// the unique index on email is the backstop for the race this leaves open.
	existing, err := s.repo.FindByEmail(ctx, candidate.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		s.log.Warn().Err(err).Str("email", candidate.Email).Msg("duplicate check failed, continuing signup")
	}
	if existing != nil {
		return domain.AuthError(msgEmailTaken)
	}

	candidate.Role = domain.NormalizeRole(candidate.Role)

	saved, err := s.repo.Save(ctx, candidate)
	if err != nil {
		return domain.AuthError(classifySaveError(err))
	}

	token, err := s.issuer.GenerateToken(saved.Email, saved.Role)
	if err != nil {
		s.log.Error().Err(err).Str("email", saved.Email).Msg("token issuance failed after signup")
		return domain.AuthError("Failed to create user: " + err.Error())
	}

	s.sendWelcome(ctx, saved.Email)

	return domain.AuthSuccess(token, saved, msgUserCreated)
}

// Authenticate verifies the credential pair and issues a token. Unknown email
// and wrong password produce the same message so callers cannot probe which
// accounts exist.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) domain.AuthResult {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Str("email", email).Msg("user lookup failed during signin")
		}
		return domain.AuthError(msgInvalidCredential)
	}
	if user.Password != password {
		return domain.AuthError(msgInvalidCredential)
	}

	token, err := s.issuer.GenerateToken(user.Email, user.Role)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("token issuance failed during signin")
		return domain.AuthError(msgInvalidCredential)
	}

	return domain.AuthSuccess(token, user, "")
}

// FindByID returns the record, or (nil, nil) when no record has that
// identifier. Absence is not a fault.
func (s *AccountService) FindByID(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// FindByEmail mirrors FindByID for email lookups, with the same
// absence-is-not-a-fault contract.
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// sendWelcome hands the welcome mail to the notifier. Delivery is fire and
// forget: a failure is logged and the signup outcome stands.
func (s *AccountService) sendWelcome(ctx context.Context, email string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendWelcome(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("welcome mail not sent")
	}
}

// classifySaveError maps a store rejection to the message shown to the
// caller: duplicate key, invalid data, or a generic failure carrying the
// underlying cause.
func classifySaveError(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return msgDuplicateOnSave
	case errors.Is(err, domain.ErrInvalidData):
		return msgInvalidData
	}
	if msg := err.Error(); msg != "" {
		return "Failed to create user: " + msg
	}
	return "Failed to create user: Unknown error"
}
