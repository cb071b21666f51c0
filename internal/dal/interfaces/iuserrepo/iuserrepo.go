package iuserrepo

import (
	"context"

	"github.com/alliedscientific/delivery-svc/internal/service/models/user"
)

type IUserPostgresRepository interface {
	// FindByEmail returns nil without an error when no user matches.
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}
