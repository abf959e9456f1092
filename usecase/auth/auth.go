package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/repository"
)

const minPasswordLen = 6

// Config carries token issuing settings.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// UseCase issues and revokes bearer tokens and manages accounts. Tokens are
// JWTs carrying the user id and a session id; the session record in Redis
// allows revocation before JWT expiry.
type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cfg      Config
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, cfg Config, logger *zap.Logger) *UseCase {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// Credentials is the token + user pair returned by register and login.
type Credentials struct {
	Token string          `json:"token"`
	User  domain.SafeUser `json:"user"`
}

// Register creates an account and logs it in.
func (uc *UseCase) Register(ctx context.Context, username, email, password string) (*Credentials, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "username, email and password are required")
	}
	if len(password) < minPasswordLen {
		return nil, domain.NewError(domain.ErrCodeInvalid, "password must be at least 6 characters")
	}

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user registered", zap.String("user_id", user.ID))

	return uc.issue(ctx, user)
}

// Login verifies credentials and issues a token. Invalid email and invalid
// password are indistinguishable to the caller.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "email and password are required")
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.NewError(domain.ErrCodeUnauthorized, "Invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.NewError(domain.ErrCodeUnauthorized, "Invalid credentials")
	}

	return uc.issue(ctx, user)
}

// ValidateSession reports whether the session behind a token is still live.
// Used by the auth middleware to honor revocation.
func (uc *UseCase) ValidateSession(ctx context.Context, sessionID string) error {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return domain.ErrSessionNotFound
	}
	return nil
}

// Revoke invalidates a session before its token expires.
func (uc *UseCase) Revoke(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) issue(ctx context.Context, user *domain.User) (*Credentials, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.TTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{
		"id":  user.ID,
		"sid": session.ID,
		"iss": uc.cfg.Issuer,
		"iat": now.Unix(),
		"exp": session.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.cfg.Secret))
	if err != nil {
		return nil, err
	}

	return &Credentials{Token: token, User: user.SafeView()}, nil
}
