package authsvc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alliedscientific/delivery-svc/internal/service/models/user"
	"github.com/alliedscientific/delivery-svc/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL    = 5 * 24 * time.Hour
	rememberMeTTL = 30 * 24 * time.Hour
)

var (
	// ErrUserNotFound means no user row matches the email.
	ErrUserNotFound = errors.New("no user with that email")
	// ErrInvalidCredentials means the password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// Session is an issued login session. MaxAge mirrors the token expiry and is
// used verbatim for the cookie.
type Session struct {
	Token  string
	MaxAge time.Duration
	UserID int64
}

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	userRepo userRepository
	secret   []byte
}

// option is a function that configures the AuthService.
type option func(*AuthService)

// MustNewAuthService creates a new AuthService.
func MustNewAuthService(opts ...option) *AuthService {
	s := &AuthService{
		secret: []byte(os.Getenv("DELIVERY_JWT_SECRET")),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.userRepo == nil {
		panic("authsvc: user repository is required")
	}

	return s
}

// WithUserRepository sets the user repository for the AuthService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(repo userRepository) option {
	return func(s *AuthService) {
		s.userRepo = repo
	}
}

// WithSecret overrides the token signing secret.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSecret(secret []byte) option {
	return func(s *AuthService) {
		s.secret = secret
	}
}

// Login verifies the email/password pair and issues a signed session token
// embedding the user's display name. The token lives 5 days, or 30 with
// rememberMe.
func (s *AuthService) Login(
	ctx context.Context,
	email string,
	password string,
	rememberMe bool,
) (*Session, error) {
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	ttl := sessionTTL
	if rememberMe {
		ttl = rememberMeTTL
	}

	signed, err := token.Generate(s.secret, u.Name, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &Session{
		Token:  signed,
		MaxAge: ttl,
		UserID: u.ID,
	}, nil
}
