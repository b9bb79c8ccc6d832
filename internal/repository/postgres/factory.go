package postgres

import (
	"context"
	"errors"

	repo "github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repositories use. Each call acquires
// a pooled connection and releases it before returning.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

type Repositories struct {
	Users repo.Users
	Posts repo.Posts
}

func NewRepositories(db DB) Repositories {
	return Repositories{
		Users: &usersRepo{db},
		Posts: &postsRepo{db},
	}
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// mapErr turns driver conditions into repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return errors.Join(repo.ErrDuplicate, err)
		case foreignKeyViolation:
			return errors.Join(repo.ErrReference, err)
		}
	}
	return err
}
