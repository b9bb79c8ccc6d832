// internal/repository/postgres/users_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/baharkarakas/blog-backend/internal/models"
	"github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type usersRepo struct{ db DB }

func NewUsers(db DB) repository.Users {
	return &usersRepo{db: db}
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	rows, err := r.db.Query(ctx,
		`INSERT INTO users(id, email, login, password) VALUES($1,$2,$3,$4)
		 RETURNING id, email, login, password`,
		uuid.NewString(), u.Email, u.Login, u.PasswordHash,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", mapErr(err))
	}
	out, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", mapErr(err))
	}
	return out, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, login, password FROM users WHERE email=$1`, email,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("select user: %w", mapErr(err))
	}
	u, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return models.User{}, fmt.Errorf("select user: %w", mapErr(err))
	}
	return u, nil
}

func (r *usersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	rows, err := r.db.Query(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email)
	if err != nil {
		return false, fmt.Errorf("check email: %w", mapErr(err))
	}
	exists, err := pgx.CollectExactlyOneRow(rows, pgx.RowTo[bool])
	if err != nil {
		return false, fmt.Errorf("check email: %w", mapErr(err))
	}
	return exists, nil
}
