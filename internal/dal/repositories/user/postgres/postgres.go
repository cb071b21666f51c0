package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/alliedscientific/delivery-svc/internal/dal/postgres"
	"github.com/alliedscientific/delivery-svc/internal/service/models/user"
	"github.com/jackc/pgx/v5"
)

// UserDal represents the user data access layer model.
type UserDal struct {
	Id       int64  `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"password"`
}

// ToModel converts UserDal to the service layer User model.
func (u *UserDal) ToModel() *user.User {
	return &user.User{
		ID:           u.Id,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.Password,
	}
}

// PostgresUserRepository represents a Postgres user repository.
type PostgresUserRepository struct {
	conn postgres.Querier
	sb   sq.StatementBuilderType
}

// NewPostgresUserRepository creates a new Postgres user repository.
func NewPostgresUserRepository(conn postgres.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindByEmail looks up exactly one user by email. A missing user is not an
// error: the caller decides how a failed lookup surfaces.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query, args, err := r.sb.
		Select("id", "name", "email", "password").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}

	var dal UserDal
	row := r.conn.QueryRow(ctx, query, args...)
	if err := row.Scan(&dal.Id, &dal.Name, &dal.Email, &dal.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return dal.ToModel(), nil
}
