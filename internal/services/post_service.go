package services

import (
	"context"
	"errors"
	"math"

	"github.com/baharkarakas/blog-backend/internal/metrics"
	"github.com/baharkarakas/blog-backend/internal/models"
	repo "github.com/baharkarakas/blog-backend/internal/repository"
	"github.com/baharkarakas/blog-backend/internal/validation"
)

type PostService struct {
	posts repo.Posts
}

func NewPostService(posts repo.Posts) *PostService { return &PostService{posts: posts} }

// Create stores a post owned by authorID, which must come from verified claims.
func (s *PostService) Create(ctx context.Context, authorID, title, content string) (p models.Post, err error) {
	defer func() { metrics.PostOpsTotal.WithLabelValues("create", outcome(err)).Inc() }()

	title, content, err = cleanPost(title, content)
	if err != nil {
		return models.Post{}, err
	}
	p, err = s.posts.Create(ctx, models.Post{Title: title, Content: content, AuthorID: authorID})
	if errors.Is(err, repo.ErrReference) {
		return models.Post{}, ErrUserNotFound
	}
	if err != nil {
		return models.Post{}, storeErr("create post", err)
	}
	return p, nil
}

// Edit checks existence, then ownership, then the new values.
func (s *PostService) Edit(ctx context.Context, postID, requesterID, title, content string) (p models.Post, err error) {
	defer func() { metrics.PostOpsTotal.WithLabelValues("edit", outcome(err)).Inc() }()

	if err := s.authorize(ctx, postID, requesterID); err != nil {
		return models.Post{}, err
	}
	title, content, err = cleanPost(title, content)
	if err != nil {
		return models.Post{}, err
	}
	p, err = s.posts.Update(ctx, postID, title, content)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Post{}, ErrUpdateFailed
	}
	if err != nil {
		return models.Post{}, storeErr("update post", err)
	}
	return p, nil
}

// Delete removes the post permanently. A post that vanishes between the
// ownership check and the delete is reported as ErrDeleteFailed.
func (s *PostService) Delete(ctx context.Context, postID, requesterID string) (err error) {
	defer func() { metrics.PostOpsTotal.WithLabelValues("delete", outcome(err)).Inc() }()

	if err := s.authorize(ctx, postID, requesterID); err != nil {
		return err
	}
	err = s.posts.Delete(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrDeleteFailed
	}
	if err != nil {
		return storeErr("delete post", err)
	}
	return nil
}

// List returns one 1-based page, newest first. A page below 1 is read as 1.
func (s *PostService) List(ctx context.Context, page, pageSize int) (out models.NewsPage, err error) {
	defer func() { metrics.PostOpsTotal.WithLabelValues("list", outcome(err)).Inc() }()

	if page < 1 {
		page = 1
	}
	if err := validation.Collect(validation.IntRange("page_size", pageSize, 1, MaxPageSize)); err != nil {
		return models.NewsPage{}, err
	}

	items, total, err := s.posts.Page(ctx, pageSize, pageOffset(page, pageSize))
	if err != nil {
		return models.NewsPage{}, storeErr("list posts", err)
	}
	if items == nil {
		items = []models.PostListItem{}
	}
	totalPages := (total + pageSize - 1) / pageSize
	return models.NewsPage{
		Posts: items,
		Pagination: models.Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalPosts:  total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrev:     page > 1,
		},
	}, nil
}

// pageOffset saturates at math.MaxInt; such pages are past any real total.
func pageOffset(page, pageSize int) int {
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

func (s *PostService) authorize(ctx context.Context, postID, requesterID string) error {
	p, err := s.posts.GetByID(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return storeErr("get post", err)
	}
	if p.AuthorID != requesterID {
		return ErrForbidden
	}
	return nil
}

func cleanPost(title, content string) (string, string, error) {
	t, tErr := validation.Title(title)
	c, cErr := validation.Content(content)
	if err := validation.Collect(tErr, cErr); err != nil {
		return "", "", err
	}
	return t, c, nil
}
