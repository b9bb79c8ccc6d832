package postgres

import (
	"context"
	"fmt"

	"github.com/baharkarakas/blog-backend/internal/models"
	"github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type postsRepo struct{ db DB }

func NewPosts(db DB) repository.Posts {
	return &postsRepo{db: db}
}

const postColumns = `id, title, content, author_id, created_at, updated_at`

// pageTxOptions keeps the count and the page consistent with each other.
var pageTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	rows, err := r.db.Query(ctx,
		`INSERT INTO posts(id, title, content, author_id) VALUES($1,$2,$3,$4)
		 RETURNING `+postColumns,
		uuid.NewString(), p.Title, p.Content, p.AuthorID,
	)
	if err != nil {
		return models.Post{}, fmt.Errorf("insert post: %w", mapErr(err))
	}
	return collectPost(rows, "insert post")
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	if !validID(id) {
		return models.Post{}, repository.ErrNotFound
	}
	rows, err := r.db.Query(ctx, `SELECT `+postColumns+` FROM posts WHERE id=$1`, id)
	if err != nil {
		return models.Post{}, fmt.Errorf("select post: %w", mapErr(err))
	}
	return collectPost(rows, "select post")
}

func (r *postsRepo) Update(ctx context.Context, id, title, content string) (models.Post, error) {
	if !validID(id) {
		return models.Post{}, repository.ErrNotFound
	}
	rows, err := r.db.Query(ctx,
		`UPDATE posts SET title=$2, content=$3, updated_at=now() WHERE id=$1
		 RETURNING `+postColumns,
		id, title, content,
	)
	if err != nil {
		return models.Post{}, fmt.Errorf("update post: %w", mapErr(err))
	}
	return collectPost(rows, "update post")
}

func (r *postsRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *postsRepo) Page(ctx context.Context, limit, offset int) ([]models.PostListItem, int, error) {
	tx, err := r.db.BeginTx(ctx, pageTxOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("begin page: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	total, err := pgx.CollectExactlyOneRow(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	rows, err = tx.Query(ctx,
		`SELECT p.id, p.title, p.content, p.created_at, u.login AS author_name
		   FROM posts p
		   JOIN users u ON p.author_id = u.id
		  ORDER BY p.created_at DESC, p.id DESC
		  LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("select page: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PostListItem])
	if err != nil {
		return nil, 0, fmt.Errorf("select page: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit page: %w", err)
	}
	return items, int(total), nil
}

func collectPost(rows pgx.Rows, op string) (models.Post, error) {
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Post])
	if err != nil {
		return models.Post{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return p, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
