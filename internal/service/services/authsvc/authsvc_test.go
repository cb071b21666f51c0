package authsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alliedscientific/delivery-svc/internal/service/models/user"
	"github.com/alliedscientific/delivery-svc/pkg/token"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	findByEmail func(ctx context.Context, email string) (*user.User, error)
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.findByEmail(ctx, email)
}

func TestLogin(t *testing.T) {
	secret := []byte("test-secret")
	hashed, err := bcrypt.GenerateFromPassword([]byte("securepass"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &user.User{
		ID:           7,
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		PasswordHash: string(hashed),
	}

	tests := []struct {
		name       string
		email      string
		password   string
		rememberMe bool
		repo       *fakeUserRepo
		wantErr    error
		wantMaxAge time.Duration
	}{
		{
			name:     "valid credentials",
			email:    "asha@example.com",
			password: "securepass",
			repo: &fakeUserRepo{findByEmail: func(ctx context.Context, email string) (*user.User, error) {
				return stored, nil
			}},
			wantMaxAge: 5 * 24 * time.Hour,
		},
		{
			name:       "remember me extends the session",
			email:      "asha@example.com",
			password:   "securepass",
			rememberMe: true,
			repo: &fakeUserRepo{findByEmail: func(ctx context.Context, email string) (*user.User, error) {
				return stored, nil
			}},
			wantMaxAge: 30 * 24 * time.Hour,
		},
		{
			name:     "wrong password",
			email:    "asha@example.com",
			password: "wrongpass",
			repo: &fakeUserRepo{findByEmail: func(ctx context.Context, email string) (*user.User, error) {
				return stored, nil
			}},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "securepass",
			repo: &fakeUserRepo{findByEmail: func(ctx context.Context, email string) (*user.User, error) {
				return nil, nil
			}},
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := MustNewAuthService(
				WithUserRepository(tt.repo),
				WithSecret(secret),
			)

			session, err := svc.Login(context.Background(), tt.email, tt.password, tt.rememberMe)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, session)

				return
			}

			require.NoError(t, err)
			require.Equal(t, stored.ID, session.UserID)
			require.Equal(t, tt.wantMaxAge, session.MaxAge)

			claims, err := token.Validate(secret, session.Token)
			require.NoError(t, err)
			require.Equal(t, stored.Name, claims.Name)
			require.WithinDuration(t, time.Now().Add(tt.wantMaxAge), claims.ExpiresAt.Time, time.Minute)
		})
	}
}

func TestLoginRepositoryError(t *testing.T) {
	svc := MustNewAuthService(
		WithUserRepository(&fakeUserRepo{findByEmail: func(ctx context.Context, email string) (*user.User, error) {
			return nil, errors.New("connection reset")
		}}),
		WithSecret([]byte("test-secret")),
	)

	session, err := svc.Login(context.Background(), "asha@example.com", "securepass", false)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
	require.NotErrorIs(t, err, ErrUserNotFound)
	require.Nil(t, session)
}
